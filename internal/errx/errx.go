package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is the user-facing fallback for internal failures.
	SystemErrorMessage   = "internal server error"
	RedisErrorMessage    = "redis operation failed"
	DatabaseErrorMessage = "database operation failed"
	RemoteErrorMessage   = "answer service unavailable"
)

// AppError wraps an underlying error with an HTTP status and a safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

func wrap(err error, status int, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{Err: err, Status: status, Message: message}
}

// WrapRedis tags a session-store failure.
func WrapRedis(err error) error {
	return wrap(err, http.StatusBadGateway, RedisErrorMessage)
}

// WrapDatabase tags a Postgres failure.
func WrapDatabase(err error) error {
	return wrap(err, http.StatusInternalServerError, DatabaseErrorMessage)
}

// WrapRemote tags a failure of the external answer service.
func WrapRemote(err error) error {
	return wrap(err, http.StatusBadGateway, RemoteErrorMessage)
}

// StatusOf returns the HTTP status carried by err, or 500.
func StatusOf(err error) int {
	var ae *AppError
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the safe message carried by err, or SystemErrorMessage.
func MessageOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return SystemErrorMessage
}
