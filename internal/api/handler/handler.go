package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/satsworks/bounties/internal/api/response"
	"github.com/satsworks/bounties/internal/domain"
)

var validate = validator.New()

// decode unmarshals and validates a JSON request body. Both failure modes
// write the response themselves; callers just return on false.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		response.ValidationFailed(w, err)
		return false
	}
	return true
}

// uuidParam parses a UUID path parameter
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(w, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads page and pageSize from the query string; anything
// unparseable falls back to the defaults
func pageParams(r *http.Request) domain.PageParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	return domain.NewPageParams(page, pageSize)
}
