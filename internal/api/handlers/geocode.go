package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"customer-route-service/internal/api/dto"
	"customer-route-service/internal/domain"
	"customer-route-service/internal/platform/obs"
	"customer-route-service/internal/platform/validate"
	"customer-route-service/internal/ports"

	"github.com/go-playground/validator/v10"
)

type GeocodeHandler struct {
	Geocoder ports.Geocoder
	Validate *validator.Validate
	Logger   *slog.Logger
}

func (h *GeocodeHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := dto.GeocodeQuery{Q: strings.TrimSpace(r.URL.Query().Get("q"))}
	if err := h.Validate.Struct(q); err != nil {
		writeError(w, r, http.StatusBadRequest, validate.Describe(err))
		return
	}

	places, err := h.Geocoder.Search(r.Context(), q.Q)
	if err != nil {
		h.Logger.WarnContext(r.Context(), "geocode failed", "req_id", obs.RequestID(r.Context()), "err", err)
		writeError(w, r, http.StatusBadGateway, "geocoding service unavailable")
		return
	}

	if places == nil {
		places = []domain.Place{}
	}

	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{Places: places})
}
