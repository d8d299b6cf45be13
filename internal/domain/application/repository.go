package application

import (
	"context"
	"time"

	"jobport/internal/common"
)

// Repository persists applications. The composite operations (CreateReserving,
// Accept, Transition) are transactional: either every effect lands or none do.
type Repository interface {
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	// FindActiveByJobAndApplicant returns the applicant's active application
	// for the job, or a not_found error.
	FindActiveByJobAndApplicant(ctx context.Context, jobID, applicantID common.UUID) (*Application, error)
	CountActiveByApplicant(ctx context.Context, applicantID common.UUID) (int, error)
	HasAccepted(ctx context.Context, applicantID common.UUID) (bool, error)
	// CreateReserving reserves an application slot on the job and inserts the
	// application as one atomic unit. Fails with capacity_exceeded when the job
	// is full and duplicate_application when an active application already
	// exists for the (applicant, job) pair.
	CreateReserving(ctx context.Context, app Application) (*Application, error)
	// Accept moves the application to accepted, sets the joining date,
	// reserves an accepted slot on the job (positions_filled when none is
	// free) and cascade-cancels the applicant's other active applications,
	// releasing their slots, all in one transaction.
	Accept(ctx context.Context, id common.UUID, joiningAt time.Time) (*Application, error)
	// Transition performs a guarded non-accept status write: the current
	// status is re-checked at write time and the job's slots are adjusted in
	// the same transaction. Fails with storage_conflict when the application
	// was concurrently moved out of from.
	Transition(ctx context.Context, id common.UUID, from, to Status) (*Application, error)
	// HasEngagementWithRecruiter reports whether the applicant has an
	// accepted or finished application under the recruiter.
	HasEngagementWithRecruiter(ctx context.Context, applicantID, recruiterID common.UUID) (bool, error)
	// HasEngagementWithJob reports whether the applicant has an accepted or
	// finished application for the job.
	HasEngagementWithJob(ctx context.Context, applicantID, jobID common.UUID) (bool, error)
	ListByApplicant(ctx context.Context, applicantID common.UUID) ([]Application, error)
	ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]Application, error)
	ListByJob(ctx context.Context, jobID common.UUID, status Status) ([]Application, error)
}
