package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"guardian-backend/internal/metrics"
	"guardian-backend/internal/models"
)

// CheckinStore is the persistence surface of the check-in state machine.
// Deactivate and DeactivateExpired must be atomic conditional updates
// (active true → false in one round trip) and must return pgx.ErrNoRows
// when nothing matched.
type CheckinStore interface {
	Create(ctx context.Context, checkin *models.Checkin) error
	Deactivate(ctx context.Context, userID string) (*models.Checkin, error)
	DeactivateExpired(ctx context.Context, userID string) (*models.Checkin, error)
}

// SOSRecorder persists SOS events.
type SOSRecorder interface {
	Create(ctx context.Context, event *models.SOSEvent) error
}

// AlertNotifier fans an SOS event out to the alert queue and the live
// feed. Delivery is best-effort; the event is already persisted.
type AlertNotifier interface {
	Notify(ctx context.Context, event *models.SOSEvent)
}

// CheckinService owns the check-in lifecycle: a session starts active,
// and exactly one of Cancel or Trigger resolves it. There is no
// server-side scheduler — escalation only happens when a client calls
// Trigger after the deadline, so an abandoned expired session stays
// active until someone does. The server re-checks the deadline itself;
// the client countdown is advisory.
type CheckinService struct {
	checkins CheckinStore
	events   SOSRecorder
	alerts   AlertNotifier
	now      func() time.Time
}

func NewCheckinService(checkins CheckinStore, events SOSRecorder, alerts AlertNotifier) *CheckinService {
	return &CheckinService{
		checkins: checkins,
		events:   events,
		alerts:   alerts,
		now:      time.Now,
	}
}

// Start creates a new active check-in expiring durationMinutes from now.
// Nothing prevents a second active session for the same user; the client
// is expected to cancel before restarting.
func (s *CheckinService) Start(ctx context.Context, req models.StartCheckinRequest) (*models.Checkin, error) {
	fieldErrors := make(map[string]string)

	if req.UserID == "" {
		fieldErrors["userId"] = "userId is required"
	}
	if req.DurationMinutes <= 0 || math.IsNaN(req.DurationMinutes) {
		fieldErrors["durationMinutes"] = "durationMinutes must be a positive number"
	}
	if _, err := validateLocation(req.Location); err != nil {
		fieldErrors["location"] = "location with numeric lat and lng is required"
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	// The location is validated but not persisted; only the deadline is
	// stored. Coordinates travel with the cancel/trigger calls instead.
	checkin := &models.Checkin{
		UserID:    req.UserID,
		ExpiresAt: s.now().Add(time.Duration(req.DurationMinutes * float64(time.Minute))),
	}

	if err := s.checkins.Create(ctx, checkin); err != nil {
		return nil, err
	}

	metrics.CheckinsStarted.Inc()
	return checkin, nil
}

// Cancel resolves the user's active check-in without escalation. Calling
// it twice fails cleanly: the second call finds no active session.
func (s *CheckinService) Cancel(ctx context.Context, userID string) (*models.Checkin, error) {
	if userID == "" {
		return nil, &ValidationError{Fields: map[string]string{"userId": "userId is required"}}
	}

	checkin, err := s.checkins.Deactivate(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Message: "No active check-in found"}
	}
	if err != nil {
		return nil, err
	}

	metrics.CheckinsCancelled.Inc()
	return checkin, nil
}

// Trigger escalates an expired check-in into an SOS event. The expiry is
// checked server-side inside the conditional update, so a Trigger before
// the deadline, after a Cancel has landed, or with no session at all gets
// the same "no expired check-in" outcome.
func (s *CheckinService) Trigger(ctx context.Context, req models.TriggerCheckinRequest) (*models.Checkin, *models.SOSEvent, error) {
	if req.UserID == "" {
		return nil, nil, &ValidationError{Fields: map[string]string{"userId": "userId is required"}}
	}

	checkin, err := s.checkins.DeactivateExpired(ctx, req.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, &InvalidStateError{Message: "No expired check-in to trigger SOS"}
	}
	if err != nil {
		return nil, nil, err
	}

	location, err := validateLocation(req.Location)
	if err != nil {
		// The session is already resolved at this point; mirroring the
		// cancel path would reopen the race the conditional update closed,
		// so the escalation fails without an event.
		return nil, nil, err
	}

	event := &models.SOSEvent{
		UserID:   checkinOwner(checkin.UserID),
		Location: *location,
		Status:   models.SOSStatusAutoTriggered,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, nil, err
	}

	metrics.SOSEventsCreated.WithLabelValues(models.SOSStatusAutoTriggered).Inc()
	if s.alerts != nil {
		s.alerts.Notify(ctx, event)
	}

	return checkin, event, nil
}

// checkinOwner maps the opaque check-in userId onto the SOS event's user
// reference. Check-ins accept any string, so the event's user is set only
// when the value is an actual user UUID.
func checkinOwner(userID string) *uuid.UUID {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	return &id
}

func validateLocation(loc *models.LocationInput) (*models.Location, error) {
	if loc == nil || loc.Lat == nil || loc.Lng == nil {
		return nil, &ValidationError{Fields: map[string]string{"location": "location with lat and lng is required"}}
	}

	lat, lng := *loc.Lat, *loc.Lng
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return nil, &ValidationError{Fields: map[string]string{"location": "lat and lng must be finite numbers"}}
	}

	return &models.Location{Lat: lat, Lng: lng}, nil
}
