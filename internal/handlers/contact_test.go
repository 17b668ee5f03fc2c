package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"guardian-backend/internal/middleware"
	"guardian-backend/internal/models"
)

type stubContactStore struct {
	contacts  []models.Contact
	updateErr error
	deleteErr error
	created   *models.Contact
}

func (s *stubContactStore) Create(ctx context.Context, contact *models.Contact) error {
	contact.ID = uuid.New()
	s.created = contact
	return nil
}

func (s *stubContactStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Contact, error) {
	return s.contacts, nil
}

func (s *stubContactStore) Update(ctx context.Context, contact *models.Contact) error {
	return s.updateErr
}

func (s *stubContactStore) Delete(ctx context.Context, contactID, userID uuid.UUID) error {
	return s.deleteErr
}

func authedRequest(method, path string, body []byte, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestContactHandler_CreateRequiresNameAndPhone(t *testing.T) {
	h := NewContactHandler(&stubContactStore{})

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"phone": "+123"}},
		{"missing phone", map[string]interface{}{"name": "Alice"}},
		{"empty body", map[string]interface{}{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.body)
			rr := httptest.NewRecorder()
			h.Create(rr, authedRequest(http.MethodPost, "/api/contacts", body, uuid.New()))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}
			resp := decodeBody(t, rr)
			if resp["error"] != "Name and phone are required" {
				t.Fatalf("expected 'Name and phone are required', got %v", resp["error"])
			}
		})
	}
}

func TestContactHandler_CreateSuccess(t *testing.T) {
	store := &stubContactStore{}
	h := NewContactHandler(store)
	userID := uuid.New()

	body, _ := json.Marshal(map[string]interface{}{
		"name":               "Alice",
		"phone":              "+44123456",
		"email":              "alice@example.com",
		"relationship":       "Family",
		"isEmergencyContact": true,
	})
	rr := httptest.NewRecorder()
	h.Create(rr, authedRequest(http.MethodPost, "/api/contacts", body, userID))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
	if store.created == nil || store.created.UserID != userID {
		t.Fatalf("contact should be created with the caller's user id")
	}
	resp := decodeBody(t, rr)
	if resp["message"] != "Contact created successfully" {
		t.Fatalf("expected message 'Contact created successfully', got %v", resp["message"])
	}
}

func TestContactHandler_CreateNormalizesRelationship(t *testing.T) {
	store := &stubContactStore{}
	h := NewContactHandler(store)

	body, _ := json.Marshal(map[string]interface{}{
		"name":         "Bob",
		"phone":        "+1555",
		"relationship": "Dog Walker",
	})
	rr := httptest.NewRecorder()
	h.Create(rr, authedRequest(http.MethodPost, "/api/contacts", body, uuid.New()))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
	if store.created.Relationship != "Other" {
		t.Fatalf("unknown relationship should normalize to 'Other', got %q", store.created.Relationship)
	}
}

func TestContactHandler_UpdateNotOwned(t *testing.T) {
	h := NewContactHandler(&stubContactStore{updateErr: pgx.ErrNoRows})

	body, _ := json.Marshal(map[string]interface{}{"name": "Alice", "phone": "+1"})
	req := authedRequest(http.MethodPut, "/api/contacts/"+uuid.NewString(), body, uuid.New())
	req = withURLParam(req, "id", uuid.NewString())

	rr := httptest.NewRecorder()
	h.Update(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
	resp := decodeBody(t, rr)
	if resp["error"] != "Contact not found or not authorized" {
		t.Fatalf("expected ownership error, got %v", resp["error"])
	}
}

func TestContactHandler_DeleteSuccess(t *testing.T) {
	h := NewContactHandler(&stubContactStore{})

	req := authedRequest(http.MethodDelete, "/api/contacts/"+uuid.NewString(), nil, uuid.New())
	req = withURLParam(req, "id", uuid.NewString())

	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	resp := decodeBody(t, rr)
	if resp["message"] != "Contact deleted" {
		t.Fatalf("expected message 'Contact deleted', got %v", resp["message"])
	}
}

func TestContactHandler_DeleteInvalidID(t *testing.T) {
	h := NewContactHandler(&stubContactStore{})

	req := authedRequest(http.MethodDelete, "/api/contacts/not-a-uuid", nil, uuid.New())
	req = withURLParam(req, "id", "not-a-uuid")

	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}
