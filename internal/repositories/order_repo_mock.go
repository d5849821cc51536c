package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository,
// keyed by owning user.
type MockOrderRepository struct {
	orders map[string]models.Order // userID -> order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

func copyOrderItems(items []models.OrderItem) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	copy(out, items)
	return out
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		order.Items = copyOrderItems(order.Items)
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// GetByUserID returns the user's order.
func (r *MockOrderRepository) GetByUserID(userID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[userID]
	if !ok {
		return nil, fmt.Errorf("order for user %s not found: %w", userID, gorm.ErrRecordNotFound)
	}
	order.Items = copyOrderItems(order.Items)
	return &order, nil
}

func (r *MockOrderRepository) write(userID string, items []models.OrderItem, totalPrice float64, status string, upsert bool) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[userID]
	if !ok {
		if !upsert {
			return nil, fmt.Errorf("order for user %s not found: %w", userID, gorm.ErrRecordNotFound)
		}
		order = models.Order{
			ID:     uuid.New().String(),
			UserID: userID,
			Status: models.OrderStatusPending,
		}
	}
	order.Items = copyOrderItems(items)
	order.TotalPrice = totalPrice
	if status != "" {
		order.Status = status
	}
	r.orders[userID] = order
	return &order, nil
}

// Upsert writes the order, creating it when absent.
func (r *MockOrderRepository) Upsert(userID string, items []models.OrderItem, totalPrice float64, status string) (*models.Order, error) {
	return r.write(userID, items, totalPrice, status, true)
}

// Update writes the order, failing when absent.
func (r *MockOrderRepository) Update(userID string, items []models.OrderItem, totalPrice float64, status string) (*models.Order, error) {
	return r.write(userID, items, totalPrice, status, false)
}

// DeleteByUserID removes the user's order.
func (r *MockOrderRepository) DeleteByUserID(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[userID]; !ok {
		return fmt.Errorf("order for user %s not found: %w", userID, gorm.ErrRecordNotFound)
	}
	delete(r.orders, userID)
	return nil
}
