package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"

	"jobport/internal/common"
	"jobport/internal/domain/application"
)

const applicationColumns = `id, applicant_id, recruiter_id, job_id, status, sop, date_of_application, date_of_joining,
	name, email, resume, bio, contact_number, skills, education, rating`

type ApplicationRepository struct {
	db     *sql.DB
	ledger *CapacityLedger
}

func NewApplicationRepository(db *sql.DB, ledger *CapacityLedger) *ApplicationRepository {
	return &ApplicationRepository{db: db, ledger: ledger}
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return app, nil
}

func (r *ApplicationRepository) FindActiveByJobAndApplicant(ctx context.Context, jobID, applicantID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE job_id = $1 AND applicant_id = $2 AND status = ANY($3)`, jobID, applicantID, pq.Array(activeStatusStrings()))
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return app, nil
}

func (r *ApplicationRepository) CountActiveByApplicant(ctx context.Context, applicantID common.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications WHERE applicant_id = $1 AND status = ANY($2)`,
		applicantID, pq.Array(activeStatusStrings())).Scan(&count)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count applications", err)
	}
	return count, nil
}

func (r *ApplicationRepository) HasAccepted(ctx context.Context, applicantID common.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE applicant_id = $1 AND status = $2)`,
		applicantID, application.StatusAccepted).Scan(&exists)
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to check accepted applications", err)
	}
	return exists, nil
}

// CreateReserving reserves a slot on the job and inserts the application in
// one transaction. The partial unique index on (applicant_id, job_id) over
// active rows closes the pre-check race between concurrent applies.
func (r *ApplicationRepository) CreateReserving(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.DateOfApplication = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	reserved, err := r.ledger.reserveSlot(ctx, tx, app.JobID)
	if err != nil {
		return nil, err
	}
	if !reserved {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, app.JobID).Scan(&exists); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to check job", err)
		}
		if !exists {
			return nil, common.NewError(common.CodeNotFound, "job not found", nil)
		}
		return nil, common.NewError(common.CodeCapacityExceeded, "application limit reached for this job", nil)
	}

	educationJSON, err := json.Marshal(app.Education)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to encode education", err)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		app.ID, app.ApplicantID, app.RecruiterID, app.JobID, app.Status, app.SOP, app.DateOfApplication, app.DateOfJoining,
		app.Name, app.Email, app.Resume, app.Bio, app.ContactNumber, pq.Array(app.Skills), educationJSON, app.Rating, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeDuplicateApplication, "you have already applied for this job", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return nil, common.NewError(common.CodeStorageConflict, "apply lost a concurrent race", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to commit application", err)
	}
	return &app, nil
}

// Accept applies the full accept effect set in one transaction: the
// conditional position increment, the status and joining-date write, the
// cascade cancel of the applicant's other active applications and the
// release of their job slots. An abort retains nothing.
func (r *ApplicationRepository) Accept(ctx context.Context, id common.UUID, joiningAt time.Time) (*application.Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1 FOR UPDATE`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	if !application.CanTransition(app.Status, application.StatusAccepted) {
		// The caller validated against a snapshot; a concurrent transition
		// moved the row first.
		return nil, common.NewError(common.CodeStorageConflict, "application changed concurrently", nil)
	}
	if joiningAt.Before(app.DateOfApplication) {
		return nil, common.NewValidationError("invalid joining date", map[string]string{"date_of_joining": "joining date should not precede the application date"})
	}

	reserved, err := r.ledger.reserveAcceptedSlot(ctx, tx, app.JobID)
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, common.NewError(common.CodePositionsFilled, "all positions for this job are already filled", nil)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `UPDATE applications SET status = $1, date_of_joining = $2, updated_at = $3 WHERE id = $4`,
		application.StatusAccepted, joiningAt, now, app.ID); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to accept application", err)
	}

	// One accepted offer per applicant: every other open application is
	// cancelled and its slot on the owning job released, grouped per job.
	cancellable := []string{string(application.StatusApplied), string(application.StatusShortlisted)}
	if _, err := tx.ExecContext(ctx, `UPDATE jobs SET active_applications = GREATEST(active_applications - sub.cnt, 0), updated_at = $1
		FROM (SELECT job_id, COUNT(*) AS cnt FROM applications
			WHERE applicant_id = $2 AND id <> $3 AND status = ANY($4) GROUP BY job_id) AS sub
		WHERE jobs.id = sub.job_id`, now, app.ApplicantID, app.ID, pq.Array(cancellable)); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to release slots", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2
		WHERE applicant_id = $3 AND id <> $4 AND status = ANY($5)`,
		application.StatusCancelled, now, app.ApplicantID, app.ID, pq.Array(cancellable)); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to cancel other applications", err)
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return nil, common.NewError(common.CodeStorageConflict, "accept lost a concurrent race", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to commit accept", err)
	}
	app.Status = application.StatusAccepted
	app.DateOfJoining = &joiningAt
	return app, nil
}

// Transition performs a guarded non-accept status write. The current status
// is part of the UPDATE predicate, so a row that moved concurrently is left
// untouched and reported as a storage conflict for the caller to re-read.
func (r *ApplicationRepository) Transition(ctx context.Context, id common.UUID, from, to application.Status) (*application.Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1 FOR UPDATE`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	if app.Status != from {
		return nil, common.NewError(common.CodeStorageConflict, "application changed concurrently", nil)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`, to, now, id); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application status", err)
	}
	if application.IsActive(from) && application.IsTerminal(to) {
		if err := r.ledger.releaseSlot(ctx, tx, app.JobID); err != nil {
			return nil, err
		}
		// A finished engagement frees its position for refilling.
		if from == application.StatusAccepted {
			if err := r.ledger.releaseAcceptedSlot(ctx, tx, app.JobID); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return nil, common.NewError(common.CodeStorageConflict, "transition lost a concurrent race", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to commit transition", err)
	}
	app.Status = to
	return app, nil
}

func (r *ApplicationRepository) HasEngagementWithRecruiter(ctx context.Context, applicantID, recruiterID common.UUID) (bool, error) {
	return r.hasEngagement(ctx, `applicant_id = $1 AND recruiter_id = $2`, applicantID, recruiterID)
}

func (r *ApplicationRepository) HasEngagementWithJob(ctx context.Context, applicantID, jobID common.UUID) (bool, error) {
	return r.hasEngagement(ctx, `applicant_id = $1 AND job_id = $2`, applicantID, jobID)
}

func (r *ApplicationRepository) hasEngagement(ctx context.Context, predicate string, a, b common.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE `+predicate+` AND status = ANY($3))`,
		a, b, pq.Array([]string{string(application.StatusAccepted), string(application.StatusFinished)})).Scan(&exists)
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to check engagement", err)
	}
	return exists, nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE applicant_id = $1 ORDER BY date_of_application DESC`, applicantID)
}

func (r *ApplicationRepository) ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE recruiter_id = $1 ORDER BY date_of_application DESC`, recruiterID)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID, status application.Status) ([]application.Application, error) {
	if status != "" {
		return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND status = $2 ORDER BY date_of_application DESC`, jobID, status)
	}
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY date_of_application DESC`, jobID)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read applications", err)
	}
	return items, nil
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	var joining sql.NullTime
	var educationJSON []byte
	if err := row.Scan(&app.ID, &app.ApplicantID, &app.RecruiterID, &app.JobID, &app.Status, &app.SOP,
		&app.DateOfApplication, &joining, &app.Name, &app.Email, &app.Resume, &app.Bio, &app.ContactNumber,
		pq.Array(&app.Skills), &educationJSON, &app.Rating); err != nil {
		return nil, err
	}
	if joining.Valid {
		app.DateOfJoining = &joining.Time
	}
	if len(educationJSON) > 0 {
		if err := json.Unmarshal(educationJSON, &app.Education); err != nil {
			return nil, err
		}
	}
	return &app, nil
}
