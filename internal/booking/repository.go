package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNoAvailableSlots                  = errors.New("no available slots")
	ErrAlreadyBooked                     = errors.New("already booked")
	ErrBookingNotFoundOrAlreadyCancelled = errors.New("booking not found or already cancelled")
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Book creates an active booking and decrements the session's slot counter
// in one transaction. The session row is locked for the duration, the insert
// relies on the active-pair unique index, and the decrement is conditional on
// available_slots staying non-negative; any failure rolls the whole unit back,
// so two racing requests can never oversell the last slot.
func (r *Repository) Book(ctx context.Context, userID, sessionID int) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var available int
	err = tx.GetContext(ctx, &available,
		`SELECT available_slots FROM sessions WHERE id = $1 FOR UPDATE`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoAvailableSlots
	}
	if err != nil {
		return 0, err
	}
	if available <= 0 {
		return 0, ErrNoAvailableSlots
	}

	var bookingID int
	err = tx.GetContext(ctx, &bookingID, `
		INSERT INTO bookings (user_id, session_id, status)
		VALUES ($1, $2, 'active')
		ON CONFLICT (user_id, session_id) WHERE status = 'active' DO NOTHING
		RETURNING id
	`, userID, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrAlreadyBooked
	}
	if err != nil {
		return 0, err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE sessions
		SET available_slots = available_slots - 1
		WHERE id = $1 AND available_slots > 0
	`, sessionID)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrNoAvailableSlots
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return bookingID, nil
}

// Cancel transitions an active booking to cancelled, stamps the cancellation
// time and returns the slot to the session, atomically. Cancelled is terminal;
// a second cancel of the same id reports not-found.
func (r *Repository) Cancel(ctx context.Context, bookingID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var sessionID int
	err = tx.GetContext(ctx, &sessionID, `
		UPDATE bookings
		SET status = 'cancelled', cancelled_at = NOW()
		WHERE id = $1 AND status = 'active'
		RETURNING session_id
	`, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFoundOrAlreadyCancelled
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE sessions
		SET available_slots = available_slots + 1
		WHERE id = $1
	`, sessionID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) ForUser(ctx context.Context, userID int) ([]BookingWithSession, error) {
	query := `
		SELECT b.id, b.status, b.booked_at,
		       s.session_date::text AS session_date,
		       s.start_time::text AS start_time, s.end_time::text AS end_time,
		       t.name AS trainer_name, t.specialization
		FROM bookings b
		JOIN sessions s ON b.session_id = s.id
		LEFT JOIN trainers t ON s.trainer_id = t.id
		WHERE b.user_id = $1
		ORDER BY s.session_date DESC, s.start_time DESC
	`

	bookings := []BookingWithSession{}
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
