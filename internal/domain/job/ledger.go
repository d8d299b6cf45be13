package job

import (
	"context"

	"jobport/internal/common"
)

// CapacityLedger is the single owner of a job's application counters. Every
// operation is an atomic storage-side conditional update; two concurrent
// reservations against the last slot cannot both succeed.
type CapacityLedger interface {
	// ReserveSlot increments activeApplications if it is below maxApplicants
	// and reports whether a slot was taken.
	ReserveSlot(ctx context.Context, jobID common.UUID) (bool, error)
	// ReleaseSlot decrements activeApplications, flooring at zero.
	ReleaseSlot(ctx context.Context, jobID common.UUID) error
	// ReserveAcceptedSlot increments acceptedCandidates if it is below
	// maxPositions and reports whether a position was taken.
	ReserveAcceptedSlot(ctx context.Context, jobID common.UUID) (bool, error)
	// ReleaseAcceptedSlot decrements acceptedCandidates, flooring at zero.
	ReleaseAcceptedSlot(ctx context.Context, jobID common.UUID) error
}
