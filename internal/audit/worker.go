package audit

import (
	"context"
	"log/slog"

	id "memoria/pkg/domain"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByActor(ctx context.Context, actorID id.UserID) ([]*Event, error)
}

// Sink mirrors events to an external system, such as a Kafka topic. A nil
// sink disables mirroring.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Worker drains the inbox and persists each event. Sink failures are logged
// and do not block persistence; store failures stop the worker.
type Worker struct {
	store  Store
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{
		store:  store,
		sink:   sink,
		inbox:  inbox,
		logger: logger,
	}
}

// Run consumes events until ctx is cancelled or the store fails.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
			if w.sink == nil {
				continue
			}
			if err := w.sink.Publish(ctx, event); err != nil {
				w.logger.WarnContext(ctx, "audit sink publish failed",
					"event_id", event.ID.String(),
					"action", event.Action,
					"error", err.Error(),
				)
			}
		}
	}
}
