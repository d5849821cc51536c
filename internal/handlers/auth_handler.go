package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/apperrors"
	"storefront/internal/middleware"
	"storefront/internal/services"
)

// AuthHandler handles HTTP requests for authentication and user listing.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the user/auth routes. The sessionGuard runs before
// signup and login to reject callers who are already logged in.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, sessionGuard fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Post("/register", sessionGuard, h.HandleSignup)
	userRoutes.Post("/login", sessionGuard, h.HandleLogin)
}

// SignupRequest represents the request body for registration.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleGetUsers lists all registered users. Password hashes never serialize.
func (h *AuthHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers()
	if err != nil {
		log.Printf("Error getting users: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Error Getting Users",
		})
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// HandleSignup registers a new user, sets a session cookie and returns the
// username with a fresh token. Every failure is normalized into a field-keyed
// error map before it reaches the wire.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signup request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err, "username", "email", "password"),
		})
	}

	user, token, err := h.authService.Signup(req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		log.Printf("Error signing up: %v", err)
		return c.Status(authErrorStatus(err)).JSON(fiber.Map{
			"errors": apperrors.Normalize(err, "username", "email", "password"),
		})
	}

	setSessionCookie(c, middleware.SignupCookie, token)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"username": user.Username,
		"token":    token,
	})
}

// HandleLogin authenticates a user, sets a session cookie and returns the
// username with a fresh token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": apperrors.Normalize(err, "email", "password"),
		})
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		log.Printf("Error logging in: %v", err)
		return c.Status(authErrorStatus(err)).JSON(fiber.Map{
			"errors": apperrors.Normalize(err, "email", "password"),
		})
	}

	setSessionCookie(c, middleware.LoginCookie, token)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"username": user.Username,
		"token":    token,
	})
}

// authErrorStatus picks the response status for signup and login failures: a
// missing signing secret is a server-side configuration failure, everything
// else is the caller's.
func authErrorStatus(err error) int {
	if errors.Is(err, apperrors.ErrMissingSecret) {
		return fiber.StatusInternalServerError
	}
	return fiber.StatusBadRequest
}

func setSessionCookie(c *fiber.Ctx, name, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    token,
		HTTPOnly: true,
		MaxAge:   int((24 * time.Hour).Seconds()),
	})
}
