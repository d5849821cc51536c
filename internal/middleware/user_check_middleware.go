package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"storefront/internal/repositories"
)

// RequireExistingUser validates the :userId route parameter: it must be a
// well-formed identifier that resolves to a stored user.
func RequireExistingUser(userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("userId")
		if _, err := uuid.Parse(userID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "UserId is not a valid UserId",
			})
		}

		if _, err := userRepo.GetByID(userID); err != nil {
			log.Printf("Rejecting request for unknown user %s: %v", userID, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "UserId is not a valid UserId. Not found in Database",
			})
		}
		return c.Next()
	}
}
