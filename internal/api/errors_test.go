package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poolbook/internal/logger"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindConflict, http.StatusBadRequest},
		{KindDuplicateBooking, http.StatusBadRequest},
		{KindAuthentication, http.StatusUnauthorized},
		{KindNotFound, http.StatusNotFound},
		{KindCapacity, http.StatusBadRequest},
		{KindMethodNotAllowed, http.StatusMethodNotAllowed},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(NewError(tc.kind, "x")), "kind %d", tc.kind)
	}
}

func TestStatusUnclassified(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("connection refused")))
}

func TestStatusWrappedError(t *testing.T) {
	err := fmt.Errorf("book session: %w", NewError(KindCapacity, "No available slots"))
	assert.Equal(t, http.StatusBadRequest, Status(err))
}

func TestWriteErrorExposesMessage(t *testing.T) {
	logger.Init()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/bookings", nil)

	WriteError(c, NewError(KindNotFound, "Booking not found or already cancelled"))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Booking not found or already cancelled", body.Error)
}
