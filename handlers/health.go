package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"tasks-api/utilities"
)

const indexMessage = "Tasks backend is running! Use the /tasks endpoint to interact with the API."

// HealthChecker é satisfeito por *database.Pool.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Stats() sql.DBStats
}

type HealthResponse struct {
	Status          string `json:"status"`
	Database        string `json:"database"`
	OpenConnections int    `json:"open_connections"`
	InUse           int    `json:"in_use"`
	Idle            int    `json:"idle"`
}

// IndexHandler responde o texto estático da raiz.
func IndexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexMessage))
}

// HealthHandler verifica se o banco responde e expõe as estatísticas do pool.
func HealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		stats := checker.Stats()
		resp := HealthResponse{
			Status:          "ok",
			Database:        "up",
			OpenConnections: stats.OpenConnections,
			InUse:           stats.InUse,
			Idle:            stats.Idle,
		}

		status := http.StatusOK
		if err := checker.Ping(ctx); err != nil {
			utilities.LogError(err, "Health check: banco de dados indisponível")
			resp.Status = "degraded"
			resp.Database = "down"
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}
