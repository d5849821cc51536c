package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders with their line items.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByUserID retrieves the user's order with product details populated.
func (r *GORMOrderRepository) GetByUserID(userID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items.Product").First(&order, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get order for user %s: %w", userID, err)
	}
	return &order, nil
}

func (r *GORMOrderRepository) write(userID string, items []models.OrderItem, totalPrice float64, status string, upsert bool) (*models.Order, error) {
	var order models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "user_id = ?", userID).Error; err != nil {
			if err != gorm.ErrRecordNotFound || !upsert {
				return fmt.Errorf("failed to get order for user %s: %w", userID, err)
			}
			order = models.Order{
				ID:     uuid.New().String(),
				UserID: userID,
				Status: models.OrderStatusPending,
			}
			if err := tx.Create(&order).Error; err != nil {
				return fmt.Errorf("failed to create order for user %s: %w", userID, err)
			}
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear order items: %w", err)
		}
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
			items[i].Product = nil
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to store order items: %w", err)
			}
		}
		updates := map[string]interface{}{"total_price": totalPrice}
		if status != "" {
			updates["status"] = status
			order.Status = status
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		order.Items = items
		order.TotalPrice = totalPrice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Upsert writes the order, creating it when the user has none.
func (r *GORMOrderRepository) Upsert(userID string, items []models.OrderItem, totalPrice float64, status string) (*models.Order, error) {
	return r.write(userID, items, totalPrice, status, true)
}

// Update writes the order and fails when the user has none.
func (r *GORMOrderRepository) Update(userID string, items []models.OrderItem, totalPrice float64, status string) (*models.Order, error) {
	return r.write(userID, items, totalPrice, status, false)
}

// DeleteByUserID removes the user's order and its items.
func (r *GORMOrderRepository) DeleteByUserID(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to get order for user %s: %w", userID, err)
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Delete(&order).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
}
