// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "net/http"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// Error is a domain error carrying its HTTP status. Services return these;
// handlers map them to responses via Status/Mensaje without inspecting the
// message text. Anything that is not an *Error is treated as Internal.
type Error struct {
	Status  int
	Mensaje string
}

func (e *Error) Error() string { return e.Mensaje }

func Unauthorized(msg string) *Error { return &Error{Status: http.StatusUnauthorized, Mensaje: msg} }
func Forbidden(msg string) *Error    { return &Error{Status: http.StatusForbidden, Mensaje: msg} }
func BadRequest(msg string) *Error   { return &Error{Status: http.StatusBadRequest, Mensaje: msg} }
func Conflict(msg string) *Error     { return &Error{Status: http.StatusConflict, Mensaje: msg} }
func NotFound(msg string) *Error     { return &Error{Status: http.StatusNotFound, Mensaje: msg} }

// Internal deliberately carries a generic localized message; the original
// error must be logged server-side by the caller, never sent to the client.
func Internal() *Error {
	return &Error{Status: http.StatusInternalServerError, Mensaje: "Error interno del servidor"}
}
