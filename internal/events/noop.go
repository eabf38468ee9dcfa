package events

import (
	"context"

	"github.com/NathanBartolo/echo/internal/core"
)

// NoopPublisher drops every event; used when KAFKA_BROKERS is unset
type NoopPublisher struct{}

var _ core.EventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, string, string, any) error { return nil }

func (NoopPublisher) Close() error { return nil }
