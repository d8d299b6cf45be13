package postgres

import (
	"context"
	"database/sql"
	"time"

	"jobport/internal/common"
	"jobport/internal/domain/job"
)

var _ job.CapacityLedger = (*CapacityLedger)(nil)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CapacityLedger owns the jobs.active_applications and
// jobs.accepted_candidates counters. Every reservation is a single
// conditional UPDATE, so check and increment cannot be split by a concurrent
// caller. The unexported variants run on a caller-supplied transaction.
type CapacityLedger struct {
	db *sql.DB
}

func NewCapacityLedger(db *sql.DB) *CapacityLedger {
	return &CapacityLedger{db: db}
}

func (l *CapacityLedger) ReserveSlot(ctx context.Context, jobID common.UUID) (bool, error) {
	return l.reserveSlot(ctx, l.db, jobID)
}

func (l *CapacityLedger) ReleaseSlot(ctx context.Context, jobID common.UUID) error {
	return l.releaseSlot(ctx, l.db, jobID)
}

func (l *CapacityLedger) ReserveAcceptedSlot(ctx context.Context, jobID common.UUID) (bool, error) {
	return l.reserveAcceptedSlot(ctx, l.db, jobID)
}

func (l *CapacityLedger) ReleaseAcceptedSlot(ctx context.Context, jobID common.UUID) error {
	return l.releaseAcceptedSlot(ctx, l.db, jobID)
}

func (l *CapacityLedger) reserveSlot(ctx context.Context, q execer, jobID common.UUID) (bool, error) {
	result, err := q.ExecContext(ctx, `UPDATE jobs SET active_applications = active_applications + 1, updated_at = $2
		WHERE id = $1 AND active_applications < max_applicants`, jobID, time.Now().UTC())
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to reserve application slot", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to reserve application slot", err)
	}
	return rows == 1, nil
}

func (l *CapacityLedger) releaseSlot(ctx context.Context, q execer, jobID common.UUID) error {
	_, err := q.ExecContext(ctx, `UPDATE jobs SET active_applications = GREATEST(active_applications - 1, 0), updated_at = $2
		WHERE id = $1`, jobID, time.Now().UTC())
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to release application slot", err)
	}
	return nil
}

func (l *CapacityLedger) reserveAcceptedSlot(ctx context.Context, q execer, jobID common.UUID) (bool, error) {
	result, err := q.ExecContext(ctx, `UPDATE jobs SET accepted_candidates = accepted_candidates + 1, updated_at = $2
		WHERE id = $1 AND accepted_candidates < max_positions`, jobID, time.Now().UTC())
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to reserve position", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to reserve position", err)
	}
	return rows == 1, nil
}

func (l *CapacityLedger) releaseAcceptedSlot(ctx context.Context, q execer, jobID common.UUID) error {
	_, err := q.ExecContext(ctx, `UPDATE jobs SET accepted_candidates = GREATEST(accepted_candidates - 1, 0), updated_at = $2
		WHERE id = $1`, jobID, time.Now().UTC())
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to release position", err)
	}
	return nil
}
