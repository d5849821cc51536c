package models

import "time"

// CartItem is a single line item of a cart: a product reference with a
// quantity. LineTotal is filled in when the cart is priced against current
// product prices.
type CartItem struct {
	ID        uint     `json:"-" gorm:"primaryKey"`
	CartID    string   `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product" gorm:"type:varchar(36)" validate:"required"`
	Product   *Product `json:"productDetails,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity" validate:"required,gte=1"`
	LineTotal float64  `json:"itemPrice"`
}

// Cart is the single cart document owned by a user.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string     `json:"userId" gorm:"uniqueIndex;type:varchar(36)" validate:"required"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" validate:"required,min=1,dive"`
	TotalPrice float64    `json:"totalPrice" validate:"gte=0"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
