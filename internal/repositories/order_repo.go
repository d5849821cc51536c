package repositories

import (
	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access. Orders follow
// the cart's one-document-per-user shape, but the write path is an upsert:
// placing an order creates the document when the user has none.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	// GetByUserID loads the user's order with product references populated.
	GetByUserID(userID string) (*models.Order, error)
	// Upsert writes items, total and status, creating the order when absent.
	// An empty status leaves the stored status untouched (or defaults to
	// pending on creation).
	Upsert(userID string, items []models.OrderItem, totalPrice float64, status string) (*models.Order, error)
	// Update is the strict variant: it fails when no order exists.
	Update(userID string, items []models.OrderItem, totalPrice float64, status string) (*models.Order, error)
	DeleteByUserID(userID string) error
}
