package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

type categoryInput struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateCategory(c *fiber.Ctx) error {
	var input categoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to parse request body"})
	}

	category, err := s.catSvc.CreateCategory(c.Context(), currentUser(c).ID, input.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (s *Server) handleListCategories(c *fiber.Ctx) error {
	categories, err := s.catSvc.ListCategories(c.Context(), currentUser(c).ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(categories)
}

func (s *Server) handleUpdateCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	var input categoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to parse request body"})
	}

	category, err := s.catSvc.UpdateCategory(c.Context(), currentUser(c).ID, id, input.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(category)
}

func (s *Server) handleDeleteCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.catSvc.DeleteCategory(c.Context(), currentUser(c).ID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category successfully deleted"})
}
