package handlers

import (
	"context"
	"net/http"
	"time"
)

const readinessTimeout = 3 * time.Second

type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment,omitempty"`
}

type ReadyResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Tables   int    `json:"tables"`
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, HealthResponse{
		Status:    "ok",
		Message:   "API бутика работает",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, HealthResponse{
		Status:      "ok",
		Message:     "Сервер работает",
		Timestamp:   h.now().UTC().Format(time.RFC3339),
		Environment: h.Cfg.AppEnv,
	}, http.StatusOK)
}

// Ready checks that the database answers and reports how many tables it holds.
func (h *Handlers) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	readiness, err := h.TablesService.Ready(ctx)
	if err != nil {
		resp := ReadyResponse{Status: "unavailable", Database: "unreachable"}
		if readiness != nil {
			resp.Database = readiness.Database
		}
		writeSuccess(w, resp, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, ReadyResponse{Status: "ok", Database: readiness.Database, Tables: readiness.Tables}, http.StatusOK)
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, "Маршрут не найден: "+r.Method+" "+r.URL.Path, http.StatusNotFound)
}

func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeFailure(w, "Метод не поддерживается: "+r.Method+" "+r.URL.Path, http.StatusMethodNotAllowed)
}
