package events

import "time"

// Envelope is the JSON document written to the events topic
type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// UserEvent is the payload of user.registered and user.deleted
type UserEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Method string `json:"method,omitempty"` // "local" or "google"
}

// PlaylistEvent is the payload of playlist.created and playlist.deleted
type PlaylistEvent struct {
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
	Name       string `json:"name,omitempty"`
}
