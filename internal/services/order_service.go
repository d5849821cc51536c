package services

import (
	"encoding/json"
	"log"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderService handles business logic related to orders. Orders are written
// with upsert semantics: placing one creates the document when the user has
// none, unlike the cart's strict existence check.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher // may be nil when no broker is configured
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrder retrieves a user's order with product details populated.
func (s *OrderService) GetOrder(userID string) (*models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// PlaceOrder upserts the user's order and publishes an order.updated event.
// Publishing is best-effort: a broker failure is logged and the order write
// still succeeds.
func (s *OrderService) PlaceOrder(userID string, items []models.OrderItem, totalPrice float64, status string) (*models.Order, error) {
	order, err := s.orderRepo.Upsert(userID, items, totalPrice, status)
	if err != nil {
		return nil, err
	}
	s.publishOrderEvent(order)
	return order, nil
}

// UpdateOrder overwrites the user's existing order; unlike PlaceOrder it
// fails when no order exists.
func (s *OrderService) UpdateOrder(userID string, items []models.OrderItem, totalPrice float64, status string) (*models.Order, error) {
	order, err := s.orderRepo.Update(userID, items, totalPrice, status)
	if err != nil {
		return nil, err
	}
	s.publishOrderEvent(order)
	return order, nil
}

// DeleteOrder removes the user's order.
func (s *OrderService) DeleteOrder(userID string) error {
	return s.orderRepo.DeleteByUserID(userID)
}

func (s *OrderService) publishOrderEvent(order *models.Order) {
	if s.publisher == nil {
		log.Println("Event publisher is not configured. Skipping order event publication.")
		return
	}

	event := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.TotalPrice,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}
	if err := s.publisher.Publish("order", "order.updated", body); err != nil {
		log.Printf("Warning: Failed to publish order event for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Published order event for order %s", order.ID)
}
