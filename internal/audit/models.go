package audit

import (
	"time"

	"github.com/google/uuid"

	id "memoria/pkg/domain"
)

// Event records one privacy-relevant mutation. Keep it transport-agnostic so
// stores and sinks can fan out.
type Event struct {
	ID         uuid.UUID `json:"id"`
	ActorID    id.UserID `json:"actor_id"`
	Action     string    `json:"action"`
	Subject    string    `json:"subject"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
