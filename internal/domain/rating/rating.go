package rating

import (
	"context"
	"time"

	"jobport/internal/common"
)

type Category string

const (
	CategoryApplicant Category = "applicant"
	CategoryJob       Category = "job"
)

// Unset is returned by Get when the sender has never rated the receiver.
const Unset = -1.0

// Rating is one sender's score for a receiver in a category. At most one row
// exists per (sender, receiver, category); re-rating updates in place.
type Rating struct {
	ID         common.UUID `json:"id"`
	SenderID   common.UUID `json:"sender_id"`
	ReceiverID common.UUID `json:"receiver_id"`
	Category   Category    `json:"category"`
	Value      float64     `json:"value"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type Repository interface {
	// Upsert writes the rating and recomputes the receiver's stored average
	// in the same transaction, returning the new average.
	Upsert(ctx context.Context, r Rating) (float64, error)
	// Get returns the sender's individual rating for the receiver, or Unset.
	Get(ctx context.Context, senderID, receiverID common.UUID, category Category) (float64, error)
}
