package handlers

import (
	"log/slog"
	"net/http"

	"customer-route-service/internal/api/dto"
	"customer-route-service/internal/platform/obs"
	"customer-route-service/internal/ports"
)

// CustomerHandler exposes read-only customer retrieval endpoints.
// Repo is nil when no database is configured.
type CustomerHandler struct {
	Repo   ports.CustomerRepository
	Logger *slog.Logger
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "customer store is not configured")
		return
	}

	customers, err := h.Repo.ListCustomers(r.Context())
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "list customers failed", "req_id", obs.RequestID(r.Context()), "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListCustomersResponse{Customers: customers})
}
