package models

import (
	"time"

	"github.com/google/uuid"
)

var ContactRelationships = []string{"Family", "Friend", "Colleague", "Other"}

// Contact is an emergency contact owned by a user. Email is optional and
// is the delivery target for SOS alert fan-out; phone-only contacts are
// skipped by the dispatcher until an SMS gateway exists.
type Contact struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"-"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone"`
	Email              *string   `json:"email,omitempty"`
	Relationship       string    `json:"relationship"`
	IsEmergencyContact bool      `json:"isEmergencyContact"`
	CreatedAt          time.Time `json:"createdAt"`
}

type ContactRequest struct {
	Name               string  `json:"name"`
	Phone              string  `json:"phone"`
	Email              *string `json:"email"`
	Relationship       string  `json:"relationship"`
	IsEmergencyContact bool    `json:"isEmergencyContact"`
}
