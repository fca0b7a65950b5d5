package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"poolbook/internal/logger"
)

// Kind classifies a request failure. Every kind maps to exactly one HTTP
// status; handlers never pick status codes themselves.
type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindDuplicateBooking
	KindAuthentication
	KindNotFound
	KindCapacity
	KindMethodNotAllowed
	KindInternal
)

var kindStatus = map[Kind]int{
	KindValidation:       http.StatusBadRequest,
	KindConflict:         http.StatusBadRequest,
	KindDuplicateBooking: http.StatusBadRequest,
	KindAuthentication:   http.StatusUnauthorized,
	KindNotFound:         http.StatusNotFound,
	KindCapacity:         http.StatusBadRequest,
	KindMethodNotAllowed: http.StatusMethodNotAllowed,
	KindInternal:         http.StatusInternalServerError,
}

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Status resolves an error to its HTTP status. Unclassified errors,
// database connectivity failures included, fall through to 500.
func Status(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if status, ok := kindStatus[apiErr.Kind]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// WriteError maps err through the kind table and writes the JSON error body.
// The message is always exposed, matching the upstream contract.
func WriteError(c *gin.Context, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		logger.Error("unclassified request failure", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
