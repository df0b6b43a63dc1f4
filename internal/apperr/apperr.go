package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Code identifies an error category. Each code maps to a fixed HTTP status
// and a default message so handlers never invent either.
type Code string

const (
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeBadRequest         Code = "BAD_REQUEST"
	CodeRateLimit          Code = "RATE_LIMIT"
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeInternal           Code = "INTERNAL_SERVER_ERROR"
)

var httpStatus = map[Code]int{
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeConflict:           http.StatusConflict,
	CodeValidation:         http.StatusUnprocessableEntity,
	CodeBadRequest:         http.StatusBadRequest,
	CodeRateLimit:          http.StatusTooManyRequests,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
	CodeInternal:           http.StatusInternalServerError,
}

var defaultMessage = map[Code]string{
	CodeUnauthorized:       "authentication required",
	CodeForbidden:          "insufficient permissions",
	CodeNotFound:           "resource not found",
	CodeConflict:           "resource conflict",
	CodeValidation:         "validation failed",
	CodeBadRequest:         "bad request",
	CodeRateLimit:          "rate limit exceeded",
	CodeServiceUnavailable: "service unavailable",
	CodeInternal:           "internal server error",
}

// Error is a typed application error carrying a taxonomy code, a message
// safe to return to clients, and optional structured details.
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus returns the fixed status for the error's code.
func (e *Error) HTTPStatus() int {
	if s, ok := httpStatus[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// New creates an error with the given code and message. An empty message
// falls back to the code's default.
func New(code Code, message string) *Error {
	if message == "" {
		message = defaultMessage[code]
	}
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches structured details to the error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

func NotFound(resource string) *Error {
	return Newf(CodeNotFound, "%s not found", resource)
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message)
}

func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message)
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

func BadRequest(message string) *Error {
	return New(CodeBadRequest, message)
}

func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// As unwraps err into an *Error if it carries one.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Postgres error classes surfaced by pgconn.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// FromPostgres translates storage-layer errors into the taxonomy so pgx
// error types never escape the repository layer. Unknown errors pass
// through unchanged for the outermost handler to log as 500s.
func FromPostgres(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound(resource)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Newf(CodeConflict, "%s already exists", resource)
		case pgForeignKeyViolation:
			return Newf(CodeBadRequest, "%s references a missing record", resource)
		case pgCheckViolation:
			return Newf(CodeBadRequest, "%s violates a data constraint", resource)
		}
	}
	return err
}
