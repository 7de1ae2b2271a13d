package events

import (
	"context"

	"capstone-blog/internal/model"
)

// Publisher hands post events to whoever consumes them.
type Publisher interface {
	Publish(ctx context.Context, event model.PostEvent) error
}

// Nop discards every event. Used when no queue is configured.
type Nop struct{}

func (Nop) Publish(context.Context, model.PostEvent) error { return nil }
