package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes behind the same user guard as
// the cart routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, userGuard fiber.Handler) {
	router.Get("/orders", h.HandleGetOrders)
	router.Get("/:userId/order", userGuard, h.HandleGetOrder)
	router.Post("/:userId/order", userGuard, h.HandlePlaceOrder)
	router.Put("/:userId/order", userGuard, h.HandleUpdateOrder)
	router.Delete("/:userId/order", userGuard, h.HandleDeleteOrder)
}

// OrderRequest represents the request body for order writes. Status is
// optional; placement defaults it to pending.
type OrderRequest struct {
	Items      []models.OrderItem `json:"items" validate:"required,min=1,dive"`
	TotalPrice float64            `json:"totalPrice" validate:"gte=0"`
	Status     string             `json:"status" validate:"omitempty,oneof=pending processing shipped delivered"`
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}
	return c.Status(fiber.StatusOK).JSON(orders)
}

// HandleGetOrder retrieves the user's order with product details populated.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	userID := c.Params("userId")
	order, err := h.service.GetOrder(userID)
	if err != nil {
		log.Printf("Error getting order for user %s: %v", userID, err)
		if apperrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}
	return c.Status(fiber.StatusOK).JSON(order)
}

// HandlePlaceOrder upserts the user's order: it is created on first write,
// overwritten afterwards.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	userID := c.Params("userId")
	req, err := h.parseOrderRequest(c)
	if err != nil {
		log.Printf("Error in order request for user %s: %v", userID, err)
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}

	order, err := h.service.PlaceOrder(userID, req.Items, req.TotalPrice, req.Status)
	if err != nil {
		log.Printf("Error placing order for user %s: %v", userID, err)
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}
	return c.Status(fiber.StatusOK).JSON(order)
}

// HandleUpdateOrder overwrites the user's existing order; 404 when there is
// none, unlike placement.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	userID := c.Params("userId")
	req, err := h.parseOrderRequest(c)
	if err != nil {
		log.Printf("Error in order update request for user %s: %v", userID, err)
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}

	order, err := h.service.UpdateOrder(userID, req.Items, req.TotalPrice, req.Status)
	if err != nil {
		log.Printf("Error updating order for user %s: %v", userID, err)
		if apperrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}
	return c.Status(fiber.StatusOK).JSON(order)
}

// HandleDeleteOrder removes the user's order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := h.service.DeleteOrder(userID); err != nil {
		log.Printf("Error deleting order for user %s: %v", userID, err)
		if apperrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Order cleared successfully",
	})
}

func (h *OrderHandler) parseOrderRequest(c *fiber.Ctx) (*OrderRequest, error) {
	var req OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, err
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if _, err := uuid.Parse(item.ProductID); err != nil {
			return nil, &apperrors.InvalidReferenceError{Field: "product"}
		}
	}
	return &req, nil
}
