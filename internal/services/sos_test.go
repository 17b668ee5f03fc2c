package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"guardian-backend/internal/models"
)

type fakeUserGetter struct {
	users map[uuid.UUID]*models.User
}

func (g *fakeUserGetter) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := g.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type fakeSOSLister struct {
	events []models.SOSEvent
}

func (l *fakeSOSLister) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SOSEvent, error) {
	return l.events, nil
}

func TestSOSService_TriggerValidation(t *testing.T) {
	userID := uuid.New()
	events := &fakeSOSRecorder{}
	svc := NewSOSService(events, &fakeSOSLister{}, &fakeUserGetter{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "a@b.com"},
	}}, nil)

	tests := []struct {
		name string
		loc  *models.LocationInput
	}{
		{"nil location", nil},
		{"missing lat", &models.LocationInput{Lng: f(2)}},
		{"missing lng", &models.LocationInput{Lat: f(1)}},
		{"NaN lat", &models.LocationInput{Lat: f(math.NaN()), Lng: f(2)}},
		{"infinite lng", &models.LocationInput{Lat: f(1), Lng: f(math.Inf(1))}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Trigger(context.Background(), userID, tc.loc)
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}

	if len(events.events) != 0 {
		t.Fatalf("no event should be persisted on validation failure, got %d", len(events.events))
	}
}

func TestSOSService_TriggerUnknownUser(t *testing.T) {
	events := &fakeSOSRecorder{}
	svc := NewSOSService(events, &fakeSOSLister{}, &fakeUserGetter{users: map[uuid.UUID]*models.User{}}, nil)

	_, err := svc.Trigger(context.Background(), uuid.New(), &models.LocationInput{Lat: f(1), Lng: f(2)})
	var unauthorized *UnauthorizedError
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
	if unauthorized.Message != "User not found" {
		t.Fatalf("expected %q, got %q", "User not found", unauthorized.Message)
	}
	if len(events.events) != 0 {
		t.Fatalf("no event should be persisted for an unknown user, got %d", len(events.events))
	}
}

func TestSOSService_TriggerSuccess(t *testing.T) {
	userID := uuid.New()
	events := &fakeSOSRecorder{}
	notifier := &fakeNotifier{}
	svc := NewSOSService(events, &fakeSOSLister{}, &fakeUserGetter{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "a@b.com"},
	}}, notifier)

	event, err := svc.Trigger(context.Background(), userID, &models.LocationInput{Lat: f(40.7128), Lng: f(-74.006)})
	if err != nil {
		t.Fatalf("trigger failed: %v", err)
	}
	if event.Status != models.SOSStatusTriggered {
		t.Fatalf("expected status %q, got %q", models.SOSStatusTriggered, event.Status)
	}
	if event.UserID == nil || *event.UserID != userID {
		t.Fatalf("event should carry the caller's user id")
	}
	if event.Location.Lat != 40.7128 || event.Location.Lng != -74.006 {
		t.Fatalf("location should be echoed exactly, got %+v", event.Location)
	}
	if notifier.notified != 1 {
		t.Fatalf("expected 1 alert notification, got %d", notifier.notified)
	}
}
