package handlers

import (
	"exercisetracker/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
	opts     Options
	log      *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, opts Options, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: newValidator(),
		opts:     opts,
		log:      log,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Post("/", h.HandleCreateUser)
}

// HandleListUsers returns every user as {_id, username}.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.UserContext())
	if err != nil {
		h.log.Error("error fetching users", zap.Error(err))
		return serverError(c, "Failed to fetch users")
	}

	if len(users) == 0 && h.opts.LegacyResponses {
		return c.SendString(msgNoUsers)
	}
	return c.JSON(users)
}

// HandleCreateUser creates a user from the username field.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.Debug("error parsing create user body", zap.Error(err))
		return h.opts.invalidInput(c, "Failed to create user", validationDetails(err))
	}
	if err := h.validate.Struct(req); err != nil {
		return h.opts.invalidInput(c, "Failed to create user", validationDetails(err))
	}

	user, err := h.service.CreateUser(c.UserContext(), req.Username)
	if err != nil {
		h.log.Error("error creating user", zap.Error(err))
		return serverError(c, "Failed to create user")
	}

	h.log.Info("user created", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return c.JSON(user)
}
