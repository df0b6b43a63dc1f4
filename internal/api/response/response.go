package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/domain"
)

// Response represents a standard API response
type Response struct {
	Success bool          `json:"success"`
	Data    any           `json:"data,omitempty"`
	Error   *apperr.Error `json:"error,omitempty"`
	Meta    ResponseMeta  `json:"meta"`
}

// ResponseMeta carries the response timestamp and, for list responses,
// pagination data
type ResponseMeta struct {
	Timestamp  time.Time        `json:"timestamp"`
	Pagination *domain.PageMeta `json:"pagination,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Response{
		Success: status >= 200 && status < 300,
		Data:    data,
		Meta:    ResponseMeta{Timestamp: time.Now().UTC()},
	}

	json.NewEncoder(w).Encode(resp)
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 Created response with data
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// NoContent sends a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Page sends a 200 OK response with data and pagination meta
func Page(w http.ResponseWriter, data any, meta domain.PageMeta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	resp := Response{
		Success: true,
		Data:    data,
		Meta:    ResponseMeta{Timestamp: time.Now().UTC(), Pagination: &meta},
	}

	json.NewEncoder(w).Encode(resp)
}

// Err renders an error through the taxonomy. Typed errors keep their code
// and status; anything else is logged and becomes an opaque 500.
func Err(w http.ResponseWriter, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		log.Error().Err(err).Msg("unhandled error")
		appErr = apperr.Internal("")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus())

	json.NewEncoder(w).Encode(Response{
		Success: false,
		Error:   appErr,
		Meta:    ResponseMeta{Timestamp: time.Now().UTC()},
	})
}

// BadRequest sends a 400 with the given message
func BadRequest(w http.ResponseWriter, message string) {
	Err(w, apperr.BadRequest(message))
}

// Unauthorized sends a 401 with the given message
func Unauthorized(w http.ResponseWriter, message string) {
	Err(w, apperr.Unauthorized(message))
}

// ValidationFailed sends a 422 with per-field details
func ValidationFailed(w http.ResponseWriter, err error) {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string]any, len(validationErrors))
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				fields[field] = "field is required"
			case "min":
				fields[field] = "must be at least " + e.Param()
			case "max":
				fields[field] = "must be at most " + e.Param()
			case "gt":
				fields[field] = "must be greater than " + e.Param()
			case "oneof":
				fields[field] = "must be one of: " + e.Param()
			case "len":
				fields[field] = "must be exactly " + e.Param() + " characters"
			case "hexadecimal":
				fields[field] = "must be a hexadecimal string"
			case "url":
				fields[field] = "must be a valid URL"
			default:
				fields[field] = "validation failed on " + e.Tag()
			}
		}
		Err(w, apperr.Validation("").WithDetails(fields))
		return
	}
	Err(w, apperr.Validation(err.Error()))
}
