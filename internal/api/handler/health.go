package handler

import (
	"net/http"

	"github.com/satsworks/bounties/internal/api/response"
	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/repository/postgres"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ReadyCheck returns readiness status including database connectivity
func ReadyCheck(db *postgres.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			response.Err(w, apperr.New(apperr.CodeServiceUnavailable, "database not ready"))
			return
		}

		response.OK(w, map[string]string{
			"status": "ready",
		})
	}
}
