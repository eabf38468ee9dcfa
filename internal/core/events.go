package core

import "context"

// Domain event types
const (
	EventUserRegistered  = "user.registered"
	EventUserDeleted     = "user.deleted"
	EventPlaylistCreated = "playlist.created"
	EventPlaylistDeleted = "playlist.deleted"
)

// EventPublisher emits domain events. Callers treat delivery as best effort.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, data any) error
	Close() error
}
