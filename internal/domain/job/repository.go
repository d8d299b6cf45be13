package job

import (
	"context"

	"jobport/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	// Update writes posting fields only; counters and rating are owned by the
	// capacity ledger and the rating aggregator.
	Update(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]Job, error)
	ListOpen(ctx context.Context, limit, offset int) ([]Job, error)
	// Delete removes the job and tombstones its applications to deleted in
	// the same transaction.
	Delete(ctx context.Context, id, recruiterID common.UUID) error
	SetRating(ctx context.Context, id common.UUID, rating float64) error
}
