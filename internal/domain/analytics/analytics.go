package analytics

import (
	"context"
	"time"

	"jobport/internal/common"
)

// Event is a best-effort product analytics record. Services emit events on
// successful operations and ignore the error; emission never fails a
// user-facing call.
type Event struct {
	ID        common.UUID       `json:"id"`
	Name      string            `json:"name"`
	UserID    *common.UUID      `json:"user_id,omitempty"`
	Payload   map[string]string `json:"payload,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, event Event) error
}
