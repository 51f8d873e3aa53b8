package httpapi

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"taskboard/internal/auth"
	"taskboard/internal/model"
)

const localsUserKey = "currentUser"

// authenticate resolves the bearer token into a live user record. A
// missing, malformed or expired token rejects the request, as does a
// token for an account that no longer exists.
func (s *Server) authenticate(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing authorization header"})
	}

	token, err := auth.ExtractTokenFromHeader(header)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authorization header format must be Bearer {token}"})
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized or invalid token"})
	}

	user, err := s.userRepo.FindByID(c.Context(), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized or invalid token"})
	}

	c.Locals(localsUserKey, user)
	return c.Next()
}

// permit gates a route to the given roles. Denials are logged for audit.
func (s *Server) permit(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := currentUser(c)
		if user != nil {
			for _, role := range allowedRoles {
				if user.Role == role {
					return c.Next()
				}
			}
		}

		caller, actual := "Guest", "None"
		if user != nil {
			caller, actual = user.Email, user.Role
		}
		log.Printf("Forbidden: user %s tried to access a route restricted to roles: %s. User role: %s",
			caller, strings.Join(allowedRoles, ", "), actual)

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access forbidden"})
	}
}

// currentUser returns the authenticated user attached by authenticate,
// or nil when the request never passed it.
func currentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(localsUserKey).(*model.User)
	return user
}
