package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SOSStatusTriggered     = "triggered"
	SOSStatusAutoTriggered = "auto-triggered"
	SOSStatusAcknowledged  = "acknowledged"
	SOSStatusResolved      = "resolved"
)

// SOSEvent is a recorded emergency alert. UserID is always set on the
// direct SOS path (derived from the verified token). On the check-in
// escalation path it is set only when the caller-supplied userId parses
// as a UUID, since check-ins carry an opaque string identifier.
// "acknowledged" and "resolved" are valid statuses but no operation here
// transitions into them.
type SOSEvent struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"userId,omitempty"`
	Location  Location   `json:"location"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

type TriggerSOSRequest struct {
	Location *LocationInput `json:"location"`
}
