package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"guardian-backend/internal/middleware"
	"guardian-backend/internal/models"
)

type contactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, contactID, userID uuid.UUID) error
}

type ContactHandler struct {
	contacts contactStore
}

func NewContactHandler(contacts contactStore) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	contacts, err := h.contacts.ListByUser(r.Context(), userID)
	if err != nil {
		writeFlatError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFlatError(w, http.StatusBadRequest, "Invalid contact data")
		return
	}

	if req.Name == "" || req.Phone == "" {
		writeFlatError(w, http.StatusBadRequest, "Name and phone are required")
		return
	}

	contact := &models.Contact{
		UserID:             userID,
		Name:               req.Name,
		Phone:              req.Phone,
		Email:              req.Email,
		Relationship:       normalizeRelationship(req.Relationship),
		IsEmergencyContact: req.IsEmergencyContact,
	}

	if err := h.contacts.Create(r.Context(), contact); err != nil {
		writeFlatError(w, http.StatusBadRequest, "Invalid contact data")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Contact created successfully",
		"contact": contact,
	})
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	contactID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeFlatError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFlatError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	if req.Name == "" || req.Phone == "" {
		writeFlatError(w, http.StatusBadRequest, "Name and phone are required")
		return
	}

	contact := &models.Contact{
		ID:                 contactID,
		UserID:             userID,
		Name:               req.Name,
		Phone:              req.Phone,
		Email:              req.Email,
		Relationship:       normalizeRelationship(req.Relationship),
		IsEmergencyContact: req.IsEmergencyContact,
	}

	if err := h.contacts.Update(r.Context(), contact); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeFlatError(w, http.StatusNotFound, "Contact not found or not authorized")
			return
		}
		writeFlatError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	contactID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeFlatError(w, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	if err := h.contacts.Delete(r.Context(), contactID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeFlatError(w, http.StatusNotFound, "Contact not found or not authorized")
			return
		}
		writeFlatError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Contact deleted"})
}

func normalizeRelationship(rel string) string {
	for _, allowed := range models.ContactRelationships {
		if rel == allowed {
			return rel
		}
	}
	return "Other"
}
