package booking

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

type Booking struct {
	ID          int        `db:"id" json:"id"`
	UserID      int        `db:"user_id" json:"user_id"`
	SessionID   int        `db:"session_id" json:"session_id"`
	Status      Status     `db:"status" json:"status"`
	BookedAt    time.Time  `db:"booked_at" json:"booked_at"`
	CancelledAt *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
}

// BookingWithSession joins a booking to its session and, when assigned, the
// trainer. Cancelled rows are listed too; callers branch on status.
type BookingWithSession struct {
	ID             int       `db:"id" json:"id"`
	Status         Status    `db:"status" json:"status"`
	BookedAt       time.Time `db:"booked_at" json:"booked_at"`
	SessionDate    string    `db:"session_date" json:"session_date"`
	StartTime      string    `db:"start_time" json:"start_time"`
	EndTime        string    `db:"end_time" json:"end_time"`
	TrainerName    *string   `db:"trainer_name" json:"trainer_name"`
	Specialization *string   `db:"specialization" json:"specialization"`
}

type BookRequest struct {
	UserID    int `json:"userId" validate:"required"`
	SessionID int `json:"sessionId" validate:"required"`
}

type CancelRequest struct {
	BookingID int `json:"bookingId" validate:"required"`
}

type BookResponse struct {
	Success   bool `json:"success" example:"true"`
	BookingID int  `json:"bookingId" example:"17"`
}

type ListResponse struct {
	Bookings []BookingWithSession `json:"bookings"`
}
