package handlers

import (
	"net/http"
	"strconv"

	"customer-route-service/internal/api/dto"
	"customer-route-service/internal/domain"
	"customer-route-service/internal/platform/validate"
	"customer-route-service/internal/services"

	"github.com/go-playground/validator/v10"
)

type ConditionsHandler struct {
	Service  *services.ConditionsService
	Validate *validator.Validate
}

// Get answers with provider defaults when an upstream is down; degraded lists which.
func (h *ConditionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	var q dto.ConditionsQuery

	for _, p := range []struct {
		name string
		dst  **float64
	}{
		{"lat", &q.Lat},
		{"lon", &q.Lon},
	} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, p.name+" must be a number")
			return
		}
		*p.dst = &v
	}

	if raw := r.URL.Query().Get("radius"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "radius must be a number")
			return
		}
		q.Radius = v
	}

	if err := h.Validate.Struct(q); err != nil {
		writeError(w, r, http.StatusBadRequest, validate.Describe(err))
		return
	}

	cond := h.Service.Within(r.Context(), domain.GeoPoint{Lat: *q.Lat, Lng: *q.Lon}, q.Radius)

	writeJSON(w, r, http.StatusOK, dto.NewConditionsResponse(cond))
}
