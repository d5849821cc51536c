package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService handles business logic related to carts, most importantly the
// pricing aggregation: joining line items against current product prices.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetAllCarts retrieves all carts.
func (s *CartService) GetAllCarts() ([]models.Cart, error) {
	return s.cartRepo.GetAll()
}

// GetCart retrieves a user's cart with product details populated.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	return s.cartRepo.GetByUserID(userID)
}

// AddToCart stores the submitted line items on the user's cart, creating the
// cart on first use, then reprices it against current product prices.
func (s *CartService) AddToCart(userID string, items []models.CartItem) (*models.Cart, error) {
	if _, err := s.cartRepo.UpsertItems(userID, items); err != nil {
		return nil, err
	}
	return s.Recompute(userID)
}

// Recompute reprices the user's cart: each line total is quantity times the
// product's price as of this call, and the cart total is their sum. Line
// items whose product no longer exists are dropped; if nothing survives the
// join the cart is reported as not found. Repeated calls with unchanged
// inputs yield the same totals, and a price change between calls shows up on
// the next one.
func (s *CartService) Recompute(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	priced := make([]models.CartItem, 0, len(cart.Items))
	var total float64
	for _, item := range cart.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to resolve product %s: %w", item.ProductID, err)
		}
		item.Product = product
		item.LineTotal = float64(item.Quantity) * product.Price
		total += item.LineTotal
		priced = append(priced, item)
	}

	if len(priced) == 0 {
		return nil, fmt.Errorf("cart for user %s has no resolvable items: %w", userID, gorm.ErrRecordNotFound)
	}

	cart.Items = priced
	cart.TotalPrice = total
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, fmt.Errorf("failed to save repriced cart: %w", err)
	}
	return cart, nil
}

// ReplaceCart overwrites the cart's items and total with caller-supplied
// values without repricing. The caller is trusted to have computed the total.
func (s *CartService) ReplaceCart(userID string, items []models.CartItem, totalPrice float64) (*models.Cart, error) {
	return s.cartRepo.Replace(userID, items, totalPrice)
}

// ClearCart deletes the user's cart.
func (s *CartService) ClearCart(userID string) error {
	return s.cartRepo.DeleteByUserID(userID)
}
