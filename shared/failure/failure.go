package failure

import (
	"errors"
	"net/http"
)

const internalMessage = "Internal server error"

// Failure is an error the API is willing to show to a caller, paired with
// the HTTP status it maps to.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	InvalidPageParam        = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
	InvalidLimitParam       = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}
)

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest wraps err as a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

// InternalError marks err as a 500 whose text may be shown as is. A nil err
// stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusInternalServerError, err.Error())
}

func Unimplemented(methodName string) error {
	return newFailure(http.StatusNotImplemented, methodName)
}

func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

// Conflict covers double bookings, illegal status moves, taken slugs and
// stock that would go negative.
func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

func TooManyRequests(msg string) error {
	return newFailure(http.StatusTooManyRequests, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// GetCode returns the status carried by err, or 500 for anything that is
// not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// PublicMessage is the text a caller may see for err. Errors that never
// became a Failure are database, broker or provider errors and stay hidden.
func PublicMessage(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Message
	}

	return internalMessage
}
