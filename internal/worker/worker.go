package worker

import (
	"context"
	"time"

	"capstone-blog/internal/metrics"
	"capstone-blog/internal/model"

	"go.uber.org/zap"
)

// Source yields post events, blocking until one is available.
// This allows us to swap the Redis queue out in tests.
type Source interface {
	Pop(ctx context.Context) (model.PostEvent, error)
}

type Worker struct {
	source  Source
	logger  *zap.Logger
	metrics *metrics.Metrics
	backoff time.Duration
}

func NewWorker(source Source, logger *zap.Logger, m *metrics.Metrics) *Worker {
	return &Worker{
		source:  source,
		logger:  logger,
		metrics: m,
		backoff: time.Second,
	}
}

// Start drains the event queue until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Event worker started. Waiting for post events...")

	for {
		event, err := w.source.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info("Event worker shutting down")
				return
			}
			w.logger.Error("Queue error", zap.Error(err))
			select {
			case <-ctx.Done():
				w.logger.Info("Event worker shutting down")
				return
			case <-time.After(w.backoff):
			}
			continue
		}

		w.process(event)
	}
}

func (w *Worker) process(event model.PostEvent) {
	w.logger.Info("Post event",
		zap.String("event_id", event.ID.String()),
		zap.String("type", string(event.Type)),
		zap.Int64("post_id", event.PostID),
		zap.String("title", event.Title),
		zap.Time("at", event.At),
	)
	if w.metrics != nil {
		w.metrics.Events.WithLabelValues(string(event.Type)).Inc()
	}
}
