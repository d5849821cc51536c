package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/services"
)

// Session cookie names. Signup and login issue distinct cookies so a session
// records how it was established.
const (
	SignupCookie = "signupcookie"
	LoginCookie  = "logincookie"
)

// CheckExistingSession rejects signup/login attempts from callers who already
// hold a valid session cookie resolving to a live user. A present but
// invalid or expired cookie is cleared and the request proceeds as if
// unauthenticated.
func CheckExistingSession(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(LoginCookie)
		if token == "" {
			token = c.Cookies(SignupCookie)
		}
		if token == "" {
			return c.Next()
		}

		user, err := authService.ResolveUser(token)
		if err != nil {
			log.Printf("Clearing stale session cookie: %v", err)
			c.ClearCookie(LoginCookie, SignupCookie)
			return c.Next()
		}

		if user != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": fiber.Map{
					"message": "User is already logged in. Log out before you attempt to log in again",
				},
			})
		}
		return c.Next()
	}
}
