package models

import (
	"time"

	"github.com/google/uuid"
)

// Checkin is a time-boxed promise by a user to confirm safety before a
// deadline. UserID is the caller-supplied identifier from the request body,
// stored as an opaque string; the check-in endpoints do not verify it
// against an authenticated caller.
type Checkin struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// Location is a persisted geolocation. Wire names stay camelCase to match
// the frontend contract.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocationInput is the request-body form of a location. Pointer fields
// distinguish a missing coordinate from a literal zero.
type LocationInput struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type StartCheckinRequest struct {
	UserID          string         `json:"userId"`
	DurationMinutes float64        `json:"durationMinutes"`
	Location        *LocationInput `json:"location"`
}

type CancelCheckinRequest struct {
	UserID string `json:"userId"`
}

type TriggerCheckinRequest struct {
	UserID   string         `json:"userId"`
	Location *LocationInput `json:"location"`
}
