package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTrainer(t *testing.T, database *sqlx.DB, name, specialization string) int {
	var trainerID int
	err := database.QueryRow(`
		INSERT INTO trainers (name, specialization)
		VALUES ($1, $2)
		RETURNING id
	`, name, specialization).Scan(&trainerID)

	require.NoError(t, err)
	return trainerID
}

func createSessionWithTrainer(t *testing.T, database *sqlx.DB, date, start string, trainerID *int) int {
	var sessionID int
	err := database.QueryRow(`
		INSERT INTO sessions (session_date, start_time, end_time, total_slots, available_slots, trainer_id)
		VALUES ($1, $2, $2::time + interval '1 hour', 10, 10, $3)
		RETURNING id
	`, date, start, trainerID).Scan(&sessionID)

	require.NoError(t, err)
	return sessionID
}

func getJSON(t *testing.T, router http.Handler, path string, out interface{}) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	return w
}

func TestSessionsByDateWithTrainerJoin(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()
	cleanDatabase(t, database)

	router := newTestRouter(t, database)

	trainerID := createTestTrainer(t, database, "Olga", "freestyle")
	createSessionWithTrainer(t, database, "2030-06-01", "09:00", &trainerID)
	createSessionWithTrainer(t, database, "2030-06-01", "08:00", nil)
	createSessionWithTrainer(t, database, "2030-06-02", "08:00", nil)

	var resp struct {
		Sessions []struct {
			SessionDate string  `json:"session_date"`
			StartTime   string  `json:"start_time"`
			TrainerName *string `json:"trainer_name"`
		} `json:"sessions"`
	}
	w := getJSON(t, router, "/bookings?date=2030-06-01", &resp)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Sessions, 2)

	// ordered by start time; null trainer fields survive the left join
	assert.Equal(t, "08:00:00", resp.Sessions[0].StartTime)
	assert.Nil(t, resp.Sessions[0].TrainerName)
	require.NotNil(t, resp.Sessions[1].TrainerName)
	assert.Equal(t, "Olga", *resp.Sessions[1].TrainerName)
}

func TestUpcomingSessionsCapped(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()
	cleanDatabase(t, database)

	router := newTestRouter(t, database)

	for i := 0; i < 25; i++ {
		createSessionWithTrainer(t, database, fmt.Sprintf("2030-07-%02d", i%28+1), "08:00", nil)
	}

	var resp struct {
		Sessions []json.RawMessage `json:"sessions"`
	}
	w := getJSON(t, router, "/bookings", &resp)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Sessions, 20)
}

func TestUserBookingsIncludeCancelled(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()
	cleanDatabase(t, database)

	router := newTestRouter(t, database)

	userID := createTestUser(t, database, "list@example.com")
	s1 := createSessionWithTrainer(t, database, "2030-06-01", "08:00", nil)
	s2 := createSessionWithTrainer(t, database, "2030-06-02", "08:00", nil)

	w := postJSON(router, "/bookings", map[string]interface{}{"action": "book", "userId": userID, "sessionId": s1})
	require.Equal(t, http.StatusCreated, w.Code)
	var first struct {
		BookingID int `json:"bookingId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	w = postJSON(router, "/bookings", map[string]interface{}{"action": "book", "userId": userID, "sessionId": s2})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/bookings", map[string]interface{}{"action": "cancel", "bookingId": first.BookingID})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Bookings []struct {
			Status      string `json:"status"`
			SessionDate string `json:"session_date"`
		} `json:"bookings"`
	}
	rw := getJSON(t, router, fmt.Sprintf("/bookings?userId=%d", userID), &resp)

	assert.Equal(t, http.StatusOK, rw.Code)
	require.Len(t, resp.Bookings, 2)

	// most recent session first, cancelled rows included
	assert.Equal(t, "2030-06-02", resp.Bookings[0].SessionDate)
	assert.Equal(t, "active", resp.Bookings[0].Status)
	assert.Equal(t, "2030-06-01", resp.Bookings[1].SessionDate)
	assert.Equal(t, "cancelled", resp.Bookings[1].Status)
}
