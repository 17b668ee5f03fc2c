package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"guardian-backend/internal/middleware"
	"guardian-backend/internal/models"
	"guardian-backend/internal/services"
)

type sosService interface {
	Trigger(ctx context.Context, userID uuid.UUID, loc *models.LocationInput) (*models.SOSEvent, error)
	History(ctx context.Context, userID uuid.UUID) ([]models.SOSEvent, error)
}

type SOSHandler struct {
	svc sosService
}

func NewSOSHandler(svc sosService) *SOSHandler {
	return &SOSHandler{svc: svc}
}

// Trigger records a manual SOS alert. The user identity comes from the
// verified token, never from the body.
func (h *SOSHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.TriggerSOSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFlatError(w, http.StatusBadRequest, "Location with numeric lat and lng is required")
		return
	}

	event, err := h.svc.Trigger(r.Context(), userID, req.Location)
	if err != nil {
		var validation *services.ValidationError
		if errors.As(err, &validation) {
			writeFlatError(w, http.StatusBadRequest, "Location with numeric lat and lng is required")
			return
		}
		var unauthorized *services.UnauthorizedError
		if errors.As(err, &unauthorized) {
			writeFlatError(w, http.StatusUnauthorized, unauthorized.Message)
			return
		}
		writeFlatError(w, http.StatusInternalServerError, "Could not trigger SOS")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":  true,
		"message":  "SOS alert triggered",
		"sosEvent": event,
	})
}

func (h *SOSHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	events, err := h.svc.History(r.Context(), userID)
	if err != nil {
		writeFlatError(w, http.StatusInternalServerError, "Could not load SOS events")
		return
	}

	writeJSON(w, http.StatusOK, events)
}
