package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrCourseNotFound is returned when a course is not found.
	ErrCourseNotFound = errors.New("course not found")
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyOwned is returned when the user already owns the course.
	ErrAlreadyOwned = errors.New("course already purchased")
	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when login credentials are wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidAdminPassword is returned when the admin password is wrong.
	ErrInvalidAdminPassword = errors.New("invalid admin password")
	// ErrInvalidCategory is returned when a course category is unknown.
	ErrInvalidCategory = errors.New("invalid course category")
	// ErrInvalidStatus is returned when an order status is unknown.
	ErrInvalidStatus = errors.New("invalid order status")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Domain rejections keep
// 4xx codes so callers can render a precise message; anything unknown is a
// generic 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrCourseNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "COURSE_NOT_FOUND")
	case ErrOrderNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ORDER_NOT_FOUND")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrAlreadyOwned:
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_OWNED")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrInvalidAdminPassword:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_ADMIN_PASSWORD")
	case ErrInvalidCategory:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CATEGORY")
	case ErrInvalidStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
