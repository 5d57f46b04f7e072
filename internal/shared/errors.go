package shared

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrNotFound is returned by stores when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSessionRevoked is returned by the session registry when a
	// token's login session has been logged out or expired.
	ErrSessionRevoked = errors.New("session revoked")
)

type APIError struct {
	Code    string `json:"code" example:"assistant_not_found"`
	Message string `json:"message" example:"assistant not found"`
	Details any    `json:"details,omitempty" swaggertype:"object"`
}

func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

func (e *APIError) WithDetails(details any) *APIError {
	e.Details = details
	return e
}

func (e *APIError) ToHTTP(status int) *echo.HTTPError {
	return echo.NewHTTPError(status, e)
}

func BadRequest(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusBadRequest)
}

func Unauthorized(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusUnauthorized)
}

func Forbidden(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusForbidden)
}

func NotFound(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusNotFound)
}

func Conflict(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusConflict)
}

func InternalError(code, message string) *echo.HTTPError {
	return NewAPIError(code, message).ToHTTP(http.StatusInternalServerError)
}
