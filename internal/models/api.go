package models

import "github.com/google/uuid"

// API error envelope used by the auth and user-scoped endpoints. The
// safety endpoints (check-in, SOS) keep the frontend's original flat
// {"error": "..."} bodies instead; see the handlers package.
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

// WebSocket message types

type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// SOSAlert is pushed over the live feed when an SOS event is created for
// a connected user.
type SOSAlert struct {
	EventID   uuid.UUID `json:"event_id"`
	Status    string    `json:"status"`
	Location  Location  `json:"location"`
	CreatedAt string    `json:"created_at"`
}
