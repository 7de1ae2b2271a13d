package store

import (
	"context"
	"time"

	"capstone-blog/internal/model"
)

// Store owns the post collection and its identifier sequence.
// A missing post is reported through the found flag, never as an error;
// errors are reserved for backend faults.
type Store interface {
	List(ctx context.Context) ([]model.Post, error)
	Create(ctx context.Context, title, content string) (model.Post, error)
	FindByID(ctx context.Context, id int64) (model.Post, bool, error)
	Update(ctx context.Context, id int64, title, content string) (model.Post, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Close() error
}

type options struct {
	now func() time.Time
}

// Option configures a store.
type Option func(*options)

// WithClock replaces time.Now as the source of post timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
