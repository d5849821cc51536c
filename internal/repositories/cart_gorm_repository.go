package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetAll retrieves all carts with their line items.
func (r *GORMCartRepository) GetAll() ([]models.Cart, error) {
	var carts []models.Cart
	if err := r.db.Preload("Items").Find(&carts).Error; err != nil {
		return nil, fmt.Errorf("failed to get all carts: %w", err)
	}
	return carts, nil
}

// GetByUserID retrieves the user's cart with product details populated.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Items.Product").First(&cart, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// UpsertItems replaces the cart's line items, creating the cart when the
// user has none.
func (r *GORMCartRepository) UpsertItems(userID string, items []models.CartItem) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cart, "user_id = ?", userID).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return fmt.Errorf("failed to look up cart for user %s: %w", userID, err)
			}
			cart = models.Cart{ID: uuid.New().String(), UserID: userID}
			if err := tx.Create(&cart).Error; err != nil {
				return fmt.Errorf("failed to create cart for user %s: %w", userID, err)
			}
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart items: %w", err)
		}
		for i := range items {
			items[i].ID = 0
			items[i].CartID = cart.ID
			items[i].Product = nil
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to store cart items: %w", err)
			}
		}
		cart.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save replaces the cart's stored item collection and total with the values
// on the given cart.
func (r *GORMCartRepository) Save(cart *models.Cart) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart items: %w", err)
		}
		for i := range cart.Items {
			cart.Items[i].ID = 0
			cart.Items[i].CartID = cart.ID
		}
		if len(cart.Items) > 0 {
			if err := tx.Omit("Items.Product").Create(&cart.Items).Error; err != nil {
				return fmt.Errorf("failed to store cart items: %w", err)
			}
		}
		if err := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("total_price", cart.TotalPrice).Error; err != nil {
			return fmt.Errorf("failed to update cart total: %w", err)
		}
		return nil
	})
}

// Replace overwrites items and total without touching product prices. Fails
// with a not-found error when the user has no cart.
func (r *GORMCartRepository) Replace(userID string, items []models.CartItem, totalPrice float64) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cart, "user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to get cart for user %s: %w", userID, err)
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart items: %w", err)
		}
		for i := range items {
			items[i].ID = 0
			items[i].CartID = cart.ID
			items[i].Product = nil
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to store cart items: %w", err)
			}
		}
		if err := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("total_price", totalPrice).Error; err != nil {
			return fmt.Errorf("failed to update cart total: %w", err)
		}
		cart.Items = items
		cart.TotalPrice = totalPrice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// DeleteByUserID removes the user's cart and its items.
func (r *GORMCartRepository) DeleteByUserID(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.First(&cart, "user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to get cart for user %s: %w", userID, err)
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart items: %w", err)
		}
		if err := tx.Delete(&cart).Error; err != nil {
			return fmt.Errorf("failed to delete cart: %w", err)
		}
		return nil
	})
}
