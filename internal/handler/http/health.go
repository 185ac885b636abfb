package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	store   Pinger
	driver  string
	timeout time.Duration
}

func NewHealthHandler(store Pinger, driver string) HealthHandler {
	return &healthHandlerImpl{store: store, driver: driver, timeout: 2 * time.Second}
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Driver string `json:"driver"`
}

// Check implements HealthHandler.
func (h *healthHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		response.ServiceUnavailable(w, "Store unreachable", healthResponse{
			Status: "degraded",
			Store:  "unreachable",
			Driver: h.driver,
		})
		return
	}

	response.Success(w, healthResponse{Status: "ok", Store: "ok", Driver: h.driver})
}
