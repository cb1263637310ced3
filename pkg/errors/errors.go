package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the error shape the API layer renders to clients. Code and
// Message are safe for consumers; Internal is kept for server logs only.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

// Unwrap lets errors.Is and errors.As reach the wrapped internal error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// WithInternal copies the error and attaches err for logging. The shared
// sentinels are never mutated.
func (e *AppError) WithInternal(err error) *AppError {
	if e == nil {
		return nil
	}
	cpy := *e
	cpy.Internal = err
	return &cpy
}

// New builds an AppError from a client-facing code and message.
func New(code, message string, statusCode int) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusCode}
}

// NewBadRequest returns a 400 carrying a request-specific message.
func NewBadRequest(message string) *AppError {
	return New(ErrBadRequest.Code, message, ErrBadRequest.StatusCode)
}

// Sentinels shared across handlers. Room availability gets distinct codes so
// a prospect client can tell a dead link from a not-yet-published room.
var (
	ErrUnauthorized     = New("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	ErrInvalidPassword  = New("INVALID_PASSWORD", "Invalid password", http.StatusUnauthorized)
	ErrNotFound         = New("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrRoomNotAvailable = New("ROOM_NOT_AVAILABLE", "Room not available", http.StatusNotFound)
	ErrRoomExpired      = New("ROOM_EXPIRED", "Room has expired", http.StatusGone)
	ErrFileInUse        = New("FILE_IN_USE", "File is used in active deal hubs", http.StatusBadRequest)
	ErrBadRequest       = New("BAD_REQUEST", "Invalid request", http.StatusBadRequest)
	ErrInternalServer   = New("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
)

// FromError normalises any error into an AppError. Unknown errors become
// ErrInternalServer with the original kept internally, never echoed back.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer.WithInternal(err)
}
