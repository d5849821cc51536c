package repositories

import (
	"storefront/internal/models"
)

// CartRepository defines the interface for cart data access. Each user owns
// at most one cart, so user-scoped lookups are the primary access path.
type CartRepository interface {
	GetAll() ([]models.Cart, error)
	// GetByUserID loads the user's cart with product references populated.
	GetByUserID(userID string) (*models.Cart, error)
	// UpsertItems replaces the cart's line items wholesale, creating the cart
	// if the user does not have one yet.
	UpsertItems(userID string, items []models.CartItem) (*models.Cart, error)
	// Save persists the cart's current items and total, replacing the stored
	// item collection.
	Save(cart *models.Cart) error
	// Replace overwrites items and total with caller-supplied values. Unlike
	// UpsertItems it fails when no cart exists.
	Replace(userID string, items []models.CartItem, totalPrice float64) (*models.Cart, error)
	DeleteByUserID(userID string) error
}
