package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotAuthenticated is returned when no session accompanies a request.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUnknownAccount is returned when a sign-in email matches no user.
	ErrUnknownAccount = errors.New("account not recognised")
	// ErrForbidden is returned when the scope resolver denies an action.
	ErrForbidden = errors.New("action forbidden")
	// ErrSelfDeletion is returned when a principal tries to delete themselves.
	ErrSelfDeletion = errors.New("you cannot delete yourself")
	// ErrUserNotFound is returned when a target user id is absent.
	ErrUserNotFound = errors.New("user not found")
	// ErrLogNotFound is returned when a target hour log id is absent.
	ErrLogNotFound = errors.New("log not found")
	// ErrDepartmentNotFound is returned when a department id is absent.
	ErrDepartmentNotFound = errors.New("department not found")
	// ErrInvalidTimeRange is returned when an hour log ends at or before it starts.
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	// ErrInvalidCategory is returned for a category outside the closed set.
	ErrInvalidCategory = errors.New("invalid hour category")
	// ErrLogAlreadyResolved is returned when approving or rejecting a terminal log.
	ErrLogAlreadyResolved = errors.New("log has already been approved or rejected")
	// ErrEmailTaken is returned when creating a user with an email already in use.
	ErrEmailTaken = errors.New("email already in use")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors are
// reported as a generic 500 so store failures never leak details.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrUnknownAccount):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "NOT_AUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrSelfDeletion):
		return NewHTTPError(http.StatusForbidden, err.Error(), "SELF_DELETION")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrLogNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "LOG_NOT_FOUND")
	case errors.Is(err, ErrDepartmentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "DEPARTMENT_NOT_FOUND")
	case errors.Is(err, ErrInvalidTimeRange):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TIME_RANGE")
	case errors.Is(err, ErrInvalidCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CATEGORY")
	case errors.Is(err, ErrLogAlreadyResolved):
		return NewHTTPError(http.StatusConflict, err.Error(), "LOG_ALREADY_RESOLVED")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
