package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func passthroughHandler(gotUserID *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUserID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTMiddleware_ValidBearerToken(t *testing.T) {
	jwtAuth := NewJWTAuth("test-secret")
	userID := uuid.New()

	token, err := jwtAuth.GenerateAccessToken(userID, "a@b.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var gotUserID uuid.UUID
	req := httptest.NewRequest(http.MethodGet, "/api/sos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	jwtAuth.Middleware(passthroughHandler(&gotUserID)).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if gotUserID != userID {
		t.Fatalf("expected user id %v in context, got %v", userID, gotUserID)
	}
}

func TestJWTMiddleware_CookieFallback(t *testing.T) {
	jwtAuth := NewJWTAuth("test-secret")
	userID := uuid.New()

	token, err := jwtAuth.GenerateAccessToken(userID, "a@b.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var gotUserID uuid.UUID
	req := httptest.NewRequest(http.MethodGet, "/api/sos", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rr := httptest.NewRecorder()
	jwtAuth.Middleware(passthroughHandler(&gotUserID)).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if gotUserID != userID {
		t.Fatalf("expected user id %v from cookie token, got %v", userID, gotUserID)
	}
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	jwtAuth := NewJWTAuth("test-secret")
	otherAuth := NewJWTAuth("other-secret")

	foreignToken, err := otherAuth.GenerateAccessToken(uuid.New(), "a@b.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"missing header", func(r *http.Request) {}},
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer not.a.jwt") }},
		{"wrong secret", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+foreignToken) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotUserID uuid.UUID
			req := httptest.NewRequest(http.MethodGet, "/api/sos", nil)
			tc.setup(req)
			rr := httptest.NewRecorder()
			jwtAuth.Middleware(passthroughHandler(&gotUserID)).ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
			}
			if gotUserID != uuid.Nil {
				t.Fatalf("handler should not run for rejected request")
			}
		})
	}
}
