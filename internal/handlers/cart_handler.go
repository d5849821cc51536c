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

// CartHandler handles HTTP requests for carts.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes. The user-scoped routes run behind
// the userGuard, which rejects requests for identifiers that do not resolve
// to a stored user.
func (h *CartHandler) RegisterRoutes(router fiber.Router, userGuard fiber.Handler) {
	router.Get("/carts", h.HandleGetCarts)
	router.Get("/:userId/cart", userGuard, h.HandleGetCart)
	router.Post("/:userId/cart", userGuard, h.HandleAddToCart)
	router.Put("/:userId/cart", userGuard, h.HandleUpdateCart)
	router.Delete("/:userId/cart", userGuard, h.HandleClearCart)
}

// CartRequest represents the request body for cart writes.
type CartRequest struct {
	Items      []models.CartItem `json:"items" validate:"required,min=1,dive"`
	TotalPrice float64           `json:"totalPrice" validate:"gte=0"`
}

// HandleGetCarts retrieves all carts.
func (h *CartHandler) HandleGetCarts(c *fiber.Ctx) error {
	carts, err := h.service.GetAllCarts()
	if err != nil {
		log.Printf("Error getting carts: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}
	return c.Status(fiber.StatusOK).JSON(carts)
}

// HandleGetCart retrieves the user's cart with product details populated.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID := c.Params("userId")
	cart, err := h.service.GetCart(userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		if apperrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Cart not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}
	return c.Status(fiber.StatusOK).JSON(cart)
}

// HandleAddToCart stores the submitted line items and reprices the cart
// against current product prices.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	userID := c.Params("userId")
	req, err := h.parseCartRequest(c)
	if err != nil {
		log.Printf("Error in add-to-cart request for user %s: %v", userID, err)
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}

	cart, err := h.service.AddToCart(userID, req.Items)
	if err != nil {
		log.Printf("Error adding to cart for user %s: %v", userID, err)
		if apperrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart not found or could not be created.",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}
	return c.Status(fiber.StatusOK).JSON(cart)
}

// HandleUpdateCart overwrites items and total with the caller's values, with
// no repricing.
func (h *CartHandler) HandleUpdateCart(c *fiber.Ctx) error {
	userID := c.Params("userId")
	req, err := h.parseCartRequest(c)
	if err != nil {
		log.Printf("Error in cart update request for user %s: %v", userID, err)
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}

	cart, err := h.service.ReplaceCart(userID, req.Items, req.TotalPrice)
	if err != nil {
		log.Printf("Error updating cart for user %s: %v", userID, err)
		if apperrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Cart not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}
	return c.Status(fiber.StatusOK).JSON(cart)
}

// HandleClearCart deletes the user's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if err := h.service.ClearCart(userID); err != nil {
		log.Printf("Error clearing cart for user %s: %v", userID, err)
		if apperrors.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Cart not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(apperrors.Normalize(err))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Cart cleared successfully",
	})
}

// parseCartRequest parses and validates the body, reporting malformed product
// references on their field path the way a persistence-layer cast failure
// would be.
func (h *CartHandler) parseCartRequest(c *fiber.Ctx) (*CartRequest, error) {
	var req CartRequest
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
