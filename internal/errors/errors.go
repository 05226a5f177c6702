package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrGameNotFound is returned when a catalog entry is not found.
	ErrGameNotFound = errors.New("game not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering with an email that exists.
	ErrEmailTaken = errors.New("a user with this email already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAlreadyOwned is returned on a duplicate purchase attempt.
	ErrAlreadyOwned = errors.New("you already own this game")
	// ErrNotGameOwner is returned when a non-creator, non-admin caller tries
	// to mutate a catalog entry.
	ErrNotGameOwner = errors.New("access denied: you can only modify your own games")
	// ErrNotEntitled is returned when submitting a score for a paid game the
	// caller does not own.
	ErrNotEntitled = errors.New("you must own this game to submit scores")
)

// FieldError describes one offending field of a failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Code    string       `json:"code,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. A duplicate purchase is a
// 400 with a domain message rather than a 409, matching the public contract.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "GAME_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAlreadyOwned):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_OWNED")
	case errors.Is(err, ErrNotGameOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotEntitled):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
