package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"memoria/pkg/requestcontext"
)

// Publisher turns service-level Record calls into Events on the worker's
// inbox. Emission is non-blocking: when the inbox is full the event is
// dropped with a log line rather than stalling the request path.
type Publisher struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewPublisher(inbox chan<- Event, logger *slog.Logger) *Publisher {
	return &Publisher{inbox: inbox, logger: logger}
}

// Record captures one event. The actor and timestamp come from the request
// context set by the middleware chain.
func (p *Publisher) Record(ctx context.Context, action, subject, detail string) {
	event := Event{
		ID:         uuid.New(),
		ActorID:    requestcontext.UserID(ctx),
		Action:     action,
		Subject:    subject,
		Detail:     detail,
		OccurredAt: requestcontext.Now(ctx),
	}

	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, event dropped",
			"action", action,
			"subject", subject,
		)
	}
}
