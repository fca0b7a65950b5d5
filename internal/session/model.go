package session

import "time"

type Trainer struct {
	ID             int       `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Session is one bookable pool slot. Dates and times travel as
// "YYYY-MM-DD" / "HH:MM:SS" strings end to end.
type Session struct {
	ID             int       `db:"id" json:"id"`
	SessionDate    string    `db:"session_date" json:"session_date"`
	StartTime      string    `db:"start_time" json:"start_time"`
	EndTime        string    `db:"end_time" json:"end_time"`
	TotalSlots     int       `db:"total_slots" json:"total_slots"`
	AvailableSlots int       `db:"available_slots" json:"available_slots"`
	TrainerID      *int      `db:"trainer_id" json:"trainer_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// SessionWithTrainer is the list-row shape: trainer fields stay null for
// sessions without an assigned trainer.
type SessionWithTrainer struct {
	ID             int     `db:"id" json:"id"`
	SessionDate    string  `db:"session_date" json:"session_date"`
	StartTime      string  `db:"start_time" json:"start_time"`
	EndTime        string  `db:"end_time" json:"end_time"`
	AvailableSlots int     `db:"available_slots" json:"available_slots"`
	TotalSlots     int     `db:"total_slots" json:"total_slots"`
	TrainerName    *string `db:"trainer_name" json:"trainer_name"`
	Specialization *string `db:"specialization" json:"specialization"`
}

type ListResponse struct {
	Sessions []SessionWithTrainer `json:"sessions"`
}
