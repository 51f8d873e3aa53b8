package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/internal/service"
)

func (s *Server) handleGetProfile(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// handleUpdateProfile applies the self-service profile update. Only the
// name fields are writable; anything else in the body is dropped.
func (s *Server) handleUpdateProfile(c *fiber.Ctx) error {
	var update service.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to parse request body"})
	}

	user, err := s.userSvc.UpdateProfile(c.Context(), currentUser(c), update)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

func (s *Server) handleListUsers(c *fiber.Ctx) error {
	users, err := s.userSvc.ListUsers(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(users)
}

func (s *Server) handleGetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	user, err := s.userSvc.GetUser(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

func (s *Server) handleDeleteUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	user, err := s.userSvc.DeleteUser(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User " + user.Username + " has been deleted"})
}
