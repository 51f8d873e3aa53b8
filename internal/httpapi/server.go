// Package httpapi exposes the REST surface. Handlers stay thin: they
// parse input, call a service and serialize the result; every access
// decision lives in the middleware and the owner-scoped services.
package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

// Server bundles the Fiber app with the services behind it.
type Server struct {
	app      *fiber.App
	tokens   *auth.TokenManager
	userRepo *repository.UserRepository
	authSvc  *service.AuthService
	userSvc  *service.UserService
	taskSvc  *service.TaskService
	catSvc   *service.CategoryService
}

func NewServer(
	tokens *auth.TokenManager,
	userRepo *repository.UserRepository,
	authSvc *service.AuthService,
	userSvc *service.UserService,
	taskSvc *service.TaskService,
	catSvc *service.CategoryService,
) *Server {
	s := &Server{
		app:      fiber.New(),
		tokens:   tokens,
		userRepo: userRepo,
		authSvc:  authSvc,
		userSvc:  userSvc,
		taskSvc:  taskSvc,
		catSvc:   catSvc,
	}
	s.registerRoutes()
	return s
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerRoutes() {
	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome!"})
	})

	api := s.app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.handleRegister)
	authGroup.Post("/login", s.handleLogin)

	users := api.Group("/users", s.authenticate)
	users.Get("/me", s.handleGetProfile)
	users.Put("/me", s.handleUpdateProfile)
	users.Get("/", s.permit(model.RoleAdmin), s.handleListUsers)
	users.Get("/:id", s.permit(model.RoleAdmin), s.handleGetUser)
	users.Delete("/:id", s.permit(model.RoleAdmin), s.handleDeleteUser)

	tasks := api.Group("/tasks", s.authenticate)
	tasks.Get("/admin/all", s.permit(model.RoleAdmin), s.handleListAllTasks)
	tasks.Post("/", s.handleCreateTask)
	tasks.Get("/", s.handleListTasks)
	tasks.Get("/:id", s.handleGetTask)
	tasks.Put("/:id", s.handleUpdateTask)
	tasks.Delete("/:id", s.handleDeleteTask)

	categories := api.Group("/categories", s.authenticate)
	categories.Post("/", s.handleCreateCategory)
	categories.Get("/", s.handleListCategories)
	categories.Put("/:id", s.handleUpdateCategory)
	categories.Delete("/:id", s.handleDeleteCategory)
}
