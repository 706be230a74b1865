package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tablekit/tablekit/internal/api/request"
	"github.com/tablekit/tablekit/internal/api/response"
	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/services/settings"
	"github.com/tablekit/tablekit/internal/sse"
)

// SettingsHandler handles the restaurant settings endpoints
type SettingsHandler struct {
	settingsService *settings.Service
	broadcaster     sse.Broadcaster
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *settings.Service, broadcaster sse.Broadcaster) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		broadcaster:     broadcaster,
	}
}

// Get handles GET /api/v1/settings
//
// Unauthenticated: the login screen needs the restaurant name and
// whether ordering is open before any session exists.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.settingsService.Get(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SettingsFromModel(s))
}

// Update handles PATCH /api/v1/settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	s, err := h.settingsService.Apply(r.Context(), settings.Update{
		RestaurantName: req.RestaurantName,
		Currency:       req.Currency,
		OrderingOpen:   req.OrderingOpen,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.Event{Type: model.EventSettingsChanged})
	response.JSON(w, http.StatusOK, response.SettingsFromModel(s))
}
