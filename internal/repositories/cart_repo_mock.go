package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository, keyed
// by owning user.
type MockCartRepository struct {
	carts map[string]models.Cart // userID -> cart
	mu    sync.RWMutex

	// Products backs the populate step of GetByUserID when set.
	Products *MockProductRepository
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

func copyItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

// GetAll returns all carts.
func (r *MockCartRepository) GetAll() ([]models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cartList := make([]models.Cart, 0, len(r.carts))
	for _, c := range r.carts {
		c.Items = copyItems(c.Items)
		cartList = append(cartList, c)
	}
	return cartList, nil
}

// GetByUserID returns the user's cart, populating product details from the
// attached product repository when available.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart for user %s not found: %w", userID, gorm.ErrRecordNotFound)
	}
	cart.Items = copyItems(cart.Items)
	if r.Products != nil {
		for i := range cart.Items {
			if product, err := r.Products.GetByID(cart.Items[i].ProductID); err == nil {
				cart.Items[i].Product = product
			}
		}
	}
	return &cart, nil
}

// UpsertItems replaces the cart's items, creating the cart when absent.
func (r *MockCartRepository) UpsertItems(userID string, items []models.CartItem) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		cart = models.Cart{ID: uuid.New().String(), UserID: userID}
	}
	cart.Items = copyItems(items)
	r.carts[userID] = cart
	return &cart, nil
}

// Save persists the cart's items and total.
func (r *MockCartRepository) Save(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *cart
	stored.Items = copyItems(cart.Items)
	r.carts[cart.UserID] = stored
	return nil
}

// Replace overwrites items and total; fails when the user has no cart.
func (r *MockCartRepository) Replace(userID string, items []models.CartItem, totalPrice float64) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart for user %s not found: %w", userID, gorm.ErrRecordNotFound)
	}
	cart.Items = copyItems(items)
	cart.TotalPrice = totalPrice
	r.carts[userID] = cart
	return &cart, nil
}

// DeleteByUserID removes the user's cart.
func (r *MockCartRepository) DeleteByUserID(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[userID]; !ok {
		return fmt.Errorf("cart for user %s not found: %w", userID, gorm.ErrRecordNotFound)
	}
	delete(r.carts, userID)
	return nil
}
