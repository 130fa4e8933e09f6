package handlers

import (
	"strconv"
	"time"

	"exercisetracker/internal/models"
	"exercisetracker/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ExerciseResponse is returned after an exercise is logged.
type ExerciseResponse struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntry is a single exercise in a log response.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResponse is a user's exercise log. Count is the number of entries in
// Log, after the limit is applied.
type LogResponse struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"_id"`
	Log      []LogEntry `json:"log"`
}

// ExerciseHandler handles HTTP requests for exercises and logs.
type ExerciseHandler struct {
	service  *services.ExerciseService
	validate *validator.Validate
	opts     Options
	log      *zap.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(service *services.ExerciseService, opts Options, log *zap.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		service:  service,
		validate: newValidator(),
		opts:     opts,
		log:      log,
	}
}

// RegisterRoutes registers the exercise routes with the Fiber app.
func (h *ExerciseHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users/:id")
	userRoutes.Post("/exercises", h.HandleLogExercise)
	userRoutes.Get("/logs", h.HandleGetLog)
}

// HandleLogExercise stores an exercise for the user in the path.
func (h *ExerciseHandler) HandleLogExercise(c *fiber.Ctx) error {
	const failMsg = "Failed to save exercise"
	userID := c.Params("id")
	ctx := c.UserContext()

	input, details := h.parseExercise(c)
	// legacy clients learn about an unknown user before any body error
	if details != nil && !h.opts.LegacyResponses {
		return h.opts.invalidInput(c, failMsg, details)
	}

	user, err := h.service.GetUser(ctx, userID)
	if err != nil {
		return h.failed(c, userID, failMsg, err)
	}
	if details != nil {
		return h.opts.invalidInput(c, failMsg, details)
	}

	exercise, err := h.service.LogExerciseFor(ctx, user, input)
	if err != nil {
		return h.failed(c, userID, failMsg, err)
	}

	return c.JSON(ExerciseResponse{
		ID:          user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.FormattedDate(),
	})
}

// parseExercise decodes and validates the request body. details is nil when
// the body is valid.
func (h *ExerciseHandler) parseExercise(c *fiber.Ctx) (services.LogExerciseInput, map[string]string) {
	var input services.LogExerciseInput

	var req LogExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.Debug("error parsing exercise body", zap.Error(err))
		return input, validationDetails(err)
	}
	if err := h.validate.Struct(req); err != nil {
		return input, validationDetails(err)
	}

	duration, err := strconv.Atoi(string(req.Duration))
	if err != nil {
		return input, map[string]string{"duration": "duration must be a whole number of minutes"}
	}
	input.Description = req.Description
	input.Duration = duration

	if req.Date != "" {
		date, err := models.ParseDate(req.Date)
		if err != nil {
			return input, map[string]string{"date": err.Error()}
		}
		input.Date = &date
	}
	return input, nil
}

// HandleGetLog returns the user's exercises, filtered by the optional from,
// to and limit query parameters. The user is looked up before the filters
// are parsed.
func (h *ExerciseHandler) HandleGetLog(c *fiber.Ctx) error {
	const failMsg = "Failed to fetch logs"
	userID := c.Params("id")
	ctx := c.UserContext()

	user, err := h.service.GetUser(ctx, userID)
	if err != nil {
		return h.failed(c, userID, failMsg, err)
	}

	var query services.LogQuery
	details := make(map[string]string)
	for name, target := range map[string]**time.Time{"from": &query.From, "to": &query.To} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		t, err := models.ParseDate(raw)
		if err != nil {
			details[name] = err.Error()
			continue
		}
		*target = &t
	}
	if len(details) > 0 {
		return h.opts.invalidInput(c, failMsg, details)
	}
	// non-numeric limits fall back to the default page size
	query.Limit, _ = strconv.Atoi(c.Query("limit"))

	exerciseLog, err := h.service.GetLogFor(ctx, user, query)
	if err != nil {
		return h.failed(c, userID, failMsg, err)
	}

	entries := make([]LogEntry, 0, exerciseLog.Count())
	for _, e := range exerciseLog.Exercises {
		entries = append(entries, LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.FormattedDate(),
		})
	}
	return c.JSON(LogResponse{
		Username: exerciseLog.User.Username,
		Count:    len(entries),
		ID:       exerciseLog.User.ID,
		Log:      entries,
	})
}

// failed maps a service error onto the response for an unknown user or a
// store failure.
func (h *ExerciseHandler) failed(c *fiber.Ctx, userID, failMsg string, err error) error {
	if services.IsUserNotFound(err) {
		return h.opts.userNotFound(c)
	}
	h.log.Error(failMsg, zap.String("user_id", userID), zap.Error(err))
	return serverError(c, failMsg)
}
