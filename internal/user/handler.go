package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"poolbook/internal/api"
	"poolbook/internal/auth"
	"poolbook/internal/metrics"
)

type action string

const (
	actionRegister action = "register"
	actionLogin    action = "login"
)

// envelope carries the action tag; the payload is re-decoded into the typed
// request for that action.
type envelope struct {
	Action action `json:"action"`
}

type Handler struct {
	repo     *Repository
	validate *validator.Validate
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		repo:     NewRepository(db),
		validate: validator.New(),
	}
}

// Handle godoc
// @Summary      Register or log in
// @Description  Dispatches on the action tag: "register" creates a user, "login" checks credentials.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Auth request with action tag"
// @Success      200      {object}  AuthResponse
// @Success      201      {object}  AuthResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /auth [post]
func (h *Handler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		api.WriteError(c, api.NewError(api.KindValidation, "Invalid request body"))
		return
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		api.WriteError(c, api.NewError(api.KindValidation, "Invalid request body"))
		return
	}

	switch env.Action {
	case actionRegister:
		h.register(c, body)
	case actionLogin:
		h.login(c, body)
	default:
		api.WriteError(c, api.NewError(api.KindValidation, "Invalid action"))
	}
}

func (h *Handler) register(c *gin.Context, body []byte) {
	var req RegisterRequest
	if err := json.Unmarshal(body, &req); err != nil {
		api.WriteError(c, api.NewError(api.KindValidation, "Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.WriteError(c, api.NewError(api.KindValidation, "Missing required fields"))
		return
	}

	ctx := c.Request.Context()

	// Fast path; the unique constraint still backstops the race.
	exists, err := h.repo.EmailExists(ctx, req.Email)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	if exists {
		api.WriteError(c, api.NewError(api.KindConflict, "Email already registered"))
		return
	}

	created, err := h.repo.Create(ctx, req.Email, auth.HashPassword(req.Password), req.FirstName, req.LastName, req.Phone)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			api.WriteError(c, api.NewError(api.KindConflict, "Email already registered"))
			return
		}
		api.WriteError(c, err)
		return
	}

	metrics.RecordRegistration()
	c.JSON(http.StatusCreated, AuthResponse{Success: true, User: created})
}

func (h *Handler) login(c *gin.Context, body []byte) {
	var req LoginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		api.WriteError(c, api.NewError(api.KindValidation, "Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.WriteError(c, api.NewError(api.KindValidation, "Missing email or password"))
		return
	}

	found, err := h.repo.FindByCredentials(c.Request.Context(), req.Email, auth.HashPassword(req.Password))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// One message for unknown email and wrong password alike.
			api.WriteError(c, api.NewError(api.KindAuthentication, "Invalid credentials"))
			return
		}
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Success: true, User: found})
}
