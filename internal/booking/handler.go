package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"poolbook/internal/api"
	"poolbook/internal/email"
	"poolbook/internal/metrics"
	"poolbook/internal/session"
	"poolbook/internal/user"
)

type action string

const (
	actionBook   action = "book"
	actionCancel action = "cancel"
)

type envelope struct {
	Action action `json:"action"`
}

type Handler struct {
	repo     *Repository
	sessions *session.Repository
	users    *user.Repository
	email    *email.Service
	validate *validator.Validate
}

// NewHandler wires the booking surface. emailService may be nil; confirmation
// mail is best-effort either way.
func NewHandler(db *sqlx.DB, emailService *email.Service) *Handler {
	return &Handler{
		repo:     NewRepository(db),
		sessions: session.NewRepository(db),
		users:    user.NewRepository(db),
		email:    emailService,
		validate: validator.New(),
	}
}

// List godoc
// @Summary      List sessions or a user's bookings
// @Description  With userId returns that user's bookings; with date returns that day's sessions; bare returns upcoming sessions capped at 20.
// @Tags         bookings
// @Produce      json
// @Param        userId  query     int     false  "User ID"
// @Param        date    query     string  false  "Session date (YYYY-MM-DD)"
// @Success      200     {object}  ListResponse
// @Failure      400     {object}  api.ErrorResponse
// @Failure      500     {object}  api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if userIDStr := c.Query("userId"); userIDStr != "" {
		userID, err := strconv.Atoi(userIDStr)
		if err != nil {
			api.WriteError(c, api.NewError(api.KindValidation, "Invalid userId"))
			return
		}

		bookings, err := h.repo.ForUser(ctx, userID)
		if err != nil {
			api.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, ListResponse{Bookings: bookings})
		return
	}

	if date := c.Query("date"); date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			api.WriteError(c, api.NewError(api.KindValidation, "Invalid date, expected YYYY-MM-DD"))
			return
		}

		sessions, err := h.sessions.ByDate(ctx, date)
		if err != nil {
			api.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, session.ListResponse{Sessions: sessions})
		return
	}

	sessions, err := h.sessions.Upcoming(ctx)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.ListResponse{Sessions: sessions})
}

// Handle godoc
// @Summary      Book or cancel a session
// @Description  Dispatches on the action tag: "book" reserves a slot, "cancel" releases one.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request  body      BookRequest  true  "Booking request with action tag"
// @Success      200      {object}  api.SuccessResponse
// @Success      201      {object}  BookResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /bookings [post]
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
	case actionBook:
		h.book(c, body)
	case actionCancel:
		h.cancel(c, body)
	default:
		api.WriteError(c, api.NewError(api.KindValidation, "Invalid action"))
	}
}

func (h *Handler) book(c *gin.Context, body []byte) {
	var req BookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		api.WriteError(c, api.NewError(api.KindValidation, "Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.WriteError(c, api.NewError(api.KindValidation, "Missing userId or sessionId"))
		return
	}

	bookingID, err := h.repo.Book(c.Request.Context(), req.UserID, req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoAvailableSlots):
			metrics.RecordBooking("capacity")
			api.WriteError(c, api.NewError(api.KindCapacity, "No available slots"))
		case errors.Is(err, ErrAlreadyBooked):
			metrics.RecordBooking("duplicate")
			api.WriteError(c, api.NewError(api.KindDuplicateBooking, "Already booked"))
		default:
			metrics.RecordBooking("error")
			api.WriteError(c, err)
		}
		return
	}

	metrics.RecordBooking("created")
	h.sendConfirmation(c, req.UserID, req.SessionID)

	c.JSON(http.StatusCreated, BookResponse{Success: true, BookingID: bookingID})
}

func (h *Handler) cancel(c *gin.Context, body []byte) {
	var req CancelRequest
	if err := json.Unmarshal(body, &req); err != nil {
		api.WriteError(c, api.NewError(api.KindValidation, "Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.WriteError(c, api.NewError(api.KindValidation, "Missing bookingId"))
		return
	}

	if err := h.repo.Cancel(c.Request.Context(), req.BookingID); err != nil {
		if errors.Is(err, ErrBookingNotFoundOrAlreadyCancelled) {
			api.WriteError(c, api.NewError(api.KindNotFound, "Booking not found or already cancelled"))
			return
		}
		api.WriteError(c, err)
		return
	}

	metrics.RecordBookingCancellation()
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}

// sendConfirmation queues the booking-confirmation mail. Failures are
// swallowed: the booking is already committed.
func (h *Handler) sendConfirmation(c *gin.Context, userID, sessionID int) {
	if h.email == nil {
		return
	}

	ctx := c.Request.Context()
	u, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return
	}
	s, err := h.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return
	}

	h.email.SendBookingConfirmation(ctx, u.Email, u.FirstName,
		fmt.Sprintf("%s %s-%s", s.SessionDate, s.StartTime, s.EndTime))
}
