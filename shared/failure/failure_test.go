package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"villa/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("guests must be at least 1")), code: http.StatusBadRequest, message: "guests must be at least 1"},
		{name: "bad request from string", err: failure.BadRequestFromString("end_date must be after start_date"), code: http.StatusBadRequest, message: "end_date must be after start_date"},
		{name: "unauthorized", err: failure.Unauthorized("Invalid credentials"), code: http.StatusUnauthorized, message: "Invalid credentials"},
		{name: "internal", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, message: "db down"},
		{name: "unimplemented", err: failure.Unimplemented("Refund"), code: http.StatusNotImplemented, message: "Refund"},
		{name: "not found", err: failure.NotFound("booking not found"), code: http.StatusNotFound, message: "booking not found"},
		{name: "conflict", err: failure.Conflict("dates already booked"), code: http.StatusConflict, message: "dates already booked"},
		{name: "too many requests", err: failure.TooManyRequests("slow down"), code: http.StatusTooManyRequests, message: "slow down"},
		{name: "forbidden", err: failure.Forbidden("admins only"), code: http.StatusForbidden, message: "admins only"},
		{name: "restricted", err: failure.ResourceRestrictedError, code: http.StatusForbidden, message: "You don't have permission to access this resource"},
		{name: "invalid page", err: failure.InvalidPageParam, code: http.StatusBadRequest, message: "invalid page parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
			assert.Equal(t, tt.message, failure.PublicMessage(tt.err))
		})
	}
}

func TestNilStaysNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("failed to confirm booking: %w", failure.Conflict("dates already booked"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, "dates already booked", failure.PublicMessage(wrapped))
}

func TestPlainErrorsAreHidden(t *testing.T) {
	err := errors.New(`pq: duplicate key value violates unique constraint "bookings_pkey"`)

	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.Equal(t, "Internal server error", failure.PublicMessage(err))
}
