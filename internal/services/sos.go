package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"guardian-backend/internal/metrics"
	"guardian-backend/internal/models"
)

// UserGetter resolves an authenticated user id to its record. Must
// return pgx.ErrNoRows for unknown ids.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SOSEventLister reads back a user's alert history.
type SOSEventLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SOSEvent, error)
}

// SOSService is the direct SOS path. Unlike the check-in endpoints, the
// user identity here comes strictly from the verified token, and the
// token's user must still exist.
type SOSService struct {
	events SOSRecorder
	lister SOSEventLister
	users  UserGetter
	alerts AlertNotifier
}

func NewSOSService(events SOSRecorder, lister SOSEventLister, users UserGetter, alerts AlertNotifier) *SOSService {
	return &SOSService{
		events: events,
		lister: lister,
		users:  users,
		alerts: alerts,
	}
}

// Trigger records a manual SOS alert at the given location. The location
// is echoed back exactly as supplied. Has no interaction with any
// check-in session.
func (s *SOSService) Trigger(ctx context.Context, userID uuid.UUID, loc *models.LocationInput) (*models.SOSEvent, error) {
	location, err := validateLocation(loc)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &UnauthorizedError{Message: "User not found"}
		}
		return nil, err
	}

	event := &models.SOSEvent{
		UserID:   &user.ID,
		Location: *location,
		Status:   models.SOSStatusTriggered,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	metrics.SOSEventsCreated.WithLabelValues(models.SOSStatusTriggered).Inc()
	if s.alerts != nil {
		s.alerts.Notify(ctx, event)
	}

	return event, nil
}

// History returns the caller's SOS events, newest first.
func (s *SOSService) History(ctx context.Context, userID uuid.UUID) ([]models.SOSEvent, error) {
	return s.lister.ListByUser(ctx, userID)
}
