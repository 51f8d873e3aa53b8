package httpapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func (s *Server) handleCreateTask(c *fiber.Ctx) error {
	var input service.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to parse request body"})
	}

	task, err := s.taskSvc.CreateTask(c.Context(), currentUser(c).ID, input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (s *Server) handleListTasks(c *fiber.Ctx) error {
	filter := repository.TaskFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		SortBy:   c.Query("sortBy"),
	}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  fiber.Map{"category": "must be a positive integer"},
			})
		}
		filter.CategoryID = uint(id)
	}

	tasks, err := s.taskSvc.ListTasks(c.Context(), currentUser(c).ID, filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(tasks)
}

func (s *Server) handleListAllTasks(c *fiber.Ctx) error {
	tasks, err := s.taskSvc.ListAllTasks(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(tasks)
}

func (s *Server) handleGetTask(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	task, err := s.taskSvc.GetTask(c.Context(), currentUser(c).ID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(task)
}

func (s *Server) handleUpdateTask(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	var update service.TaskUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to parse request body"})
	}

	task, err := s.taskSvc.UpdateTask(c.Context(), currentUser(c).ID, id, update)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(task)
}

func (s *Server) handleDeleteTask(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.taskSvc.DeleteTask(c.Context(), currentUser(c).ID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Task successfully deleted"})
}
