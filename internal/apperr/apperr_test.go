package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestError_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("bounty").HTTPStatus())
	assert.Equal(t, http.StatusForbidden, Forbidden("").HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("").HTTPStatus())
	assert.Equal(t, http.StatusConflict, Conflict("").HTTPStatus())
	assert.Equal(t, http.StatusUnprocessableEntity, Validation("").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, BadRequest("").HTTPStatus())
	assert.Equal(t, http.StatusTooManyRequests, New(CodeRateLimit, "").HTTPStatus())
	assert.Equal(t, http.StatusServiceUnavailable, New(CodeServiceUnavailable, "").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Internal("").HTTPStatus())
}

func TestNew_DefaultMessage(t *testing.T) {
	err := New(CodeForbidden, "")
	assert.Equal(t, "insufficient permissions", err.Message)

	err = New(CodeForbidden, "custom")
	assert.Equal(t, "custom", err.Message)
}

func TestAs(t *testing.T) {
	appErr, ok := As(NotFound("user"))
	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)

	wrapped := fmt.Errorf("outer: %w", Conflict("dup"))
	appErr, ok = As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeConflict, appErr.Code)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestFromPostgres(t *testing.T) {
	t.Run("no rows becomes not found", func(t *testing.T) {
		err := FromPostgres(pgx.ErrNoRows, "bounty")
		appErr, ok := As(err)
		assert.True(t, ok)
		assert.Equal(t, CodeNotFound, appErr.Code)
	})

	t.Run("unique violation becomes conflict", func(t *testing.T) {
		err := FromPostgres(&pgconn.PgError{Code: "23505"}, "workspace")
		appErr, ok := As(err)
		assert.True(t, ok)
		assert.Equal(t, CodeConflict, appErr.Code)
	})

	t.Run("foreign key violation becomes bad request", func(t *testing.T) {
		err := FromPostgres(&pgconn.PgError{Code: "23503"}, "membership")
		appErr, ok := As(err)
		assert.True(t, ok)
		assert.Equal(t, CodeBadRequest, appErr.Code)
	})

	t.Run("check violation becomes bad request", func(t *testing.T) {
		err := FromPostgres(&pgconn.PgError{Code: "23514"}, "transaction")
		appErr, ok := As(err)
		assert.True(t, ok)
		assert.Equal(t, CodeBadRequest, appErr.Code)
	})

	t.Run("unknown errors pass through", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := FromPostgres(cause, "bounty")
		assert.Equal(t, cause, err)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, FromPostgres(nil, "bounty"))
	})
}
