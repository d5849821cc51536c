package models

import "time"

// Order statuses. No transition graph is enforced: whatever status the caller
// writes is stored directly.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
)

// OrderItem is a single line item of an order.
type OrderItem struct {
	ID        uint     `json:"-" gorm:"primaryKey"`
	OrderID   string   `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product" gorm:"type:varchar(36)" validate:"required"`
	Product   *Product `json:"productDetails,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity" validate:"required,gte=1"`
}

// Order mirrors the cart shape plus a status field. Like the cart there is at
// most one per user.
type Order struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string      `json:"userId" gorm:"uniqueIndex;type:varchar(36)" validate:"required"`
	Items      []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" validate:"required,min=1,dive"`
	TotalPrice float64     `json:"totalPrice" validate:"gte=0"`
	Status     string      `json:"status" gorm:"type:varchar(16);default:pending" validate:"omitempty,oneof=pending processing shipped delivered"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
