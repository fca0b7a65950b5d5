package session

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrSessionNotFound = errors.New("session not found")

// upcomingCap bounds the default listing; deeper paging is not offered.
const upcomingCap = 20

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Upcoming(ctx context.Context) ([]SessionWithTrainer, error) {
	query := `
		SELECT s.id, s.session_date::text AS session_date,
		       s.start_time::text AS start_time, s.end_time::text AS end_time,
		       s.available_slots, s.total_slots,
		       t.name AS trainer_name, t.specialization
		FROM sessions s
		LEFT JOIN trainers t ON s.trainer_id = t.id
		WHERE s.session_date >= CURRENT_DATE
		ORDER BY s.session_date, s.start_time
		LIMIT $1
	`

	sessions := []SessionWithTrainer{}
	err := r.db.SelectContext(ctx, &sessions, query, upcomingCap)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *Repository) ByDate(ctx context.Context, date string) ([]SessionWithTrainer, error) {
	query := `
		SELECT s.id, s.session_date::text AS session_date,
		       s.start_time::text AS start_time, s.end_time::text AS end_time,
		       s.available_slots, s.total_slots,
		       t.name AS trainer_name, t.specialization
		FROM sessions s
		LEFT JOIN trainers t ON s.trainer_id = t.id
		WHERE s.session_date = $1
		ORDER BY s.start_time
	`

	sessions := []SessionWithTrainer{}
	err := r.db.SelectContext(ctx, &sessions, query, date)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Session, error) {
	query := `
		SELECT id, session_date::text AS session_date,
		       start_time::text AS start_time, end_time::text AS end_time,
		       total_slots, available_slots, trainer_id, created_at
		FROM sessions
		WHERE id = $1
	`

	var s Session
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}
