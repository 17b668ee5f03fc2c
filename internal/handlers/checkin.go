package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"guardian-backend/internal/models"
	"guardian-backend/internal/services"
)

type checkinService interface {
	Start(ctx context.Context, req models.StartCheckinRequest) (*models.Checkin, error)
	Cancel(ctx context.Context, userID string) (*models.Checkin, error)
	Trigger(ctx context.Context, req models.TriggerCheckinRequest) (*models.Checkin, *models.SOSEvent, error)
}

// CheckinHandler exposes the check-in timer endpoints. These accept the
// userId from the request body without cross-checking an authenticated
// caller — the existing client contract — so the response bodies keep
// the original flat shapes too.
type CheckinHandler struct {
	svc checkinService
}

func NewCheckinHandler(svc checkinService) *CheckinHandler {
	return &CheckinHandler{svc: svc}
}

func (h *CheckinHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req models.StartCheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFlatError(w, http.StatusBadRequest, "Could not start check-in")
		return
	}

	checkin, err := h.svc.Start(r.Context(), req)
	if err != nil {
		writeFlatError(w, http.StatusBadRequest, "Could not start check-in")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Check-in started",
		"checkin": checkin,
	})
}

func (h *CheckinHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req models.CancelCheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFlatError(w, http.StatusBadRequest, "Could not cancel check-in")
		return
	}

	checkin, err := h.svc.Cancel(r.Context(), req.UserID)
	if err != nil {
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			writeFlatError(w, http.StatusNotFound, "No active check-in found")
			return
		}
		writeFlatError(w, http.StatusBadRequest, "Could not cancel check-in")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Check-in cancelled",
		"checkin": checkin,
	})
}

func (h *CheckinHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var req models.TriggerCheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFlatError(w, http.StatusBadRequest, "Could not trigger auto-SOS")
		return
	}

	_, event, err := h.svc.Trigger(r.Context(), req)
	if err != nil {
		var invalidState *services.InvalidStateError
		if errors.As(err, &invalidState) {
			writeFlatError(w, http.StatusBadRequest, "No expired check-in to trigger SOS")
			return
		}
		writeFlatError(w, http.StatusBadRequest, "Could not trigger auto-SOS")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Auto-SOS triggered",
		"sosEvent": event,
	})
}
