package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"jobport/internal/common"
	"jobport/internal/domain/application"
	"jobport/internal/domain/job"
)

const jobColumns = `id, recruiter_id, title, company_name, location, job_type, salary, duration, job_description,
	required_skillset, experience_level, education_requirement, industry, employment_type, application_deadline,
	date_of_posting, max_applicants, max_positions, active_applications, accepted_candidates, rating, created_at, updated_at`

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		j.ID, j.RecruiterID, j.Title, j.CompanyName, j.Location, j.JobType, j.Salary, j.Duration, j.JobDescription,
		pq.Array(j.RequiredSkillset), j.ExperienceLevel, j.EducationRequirement, j.Industry, j.EmploymentType,
		j.ApplicationDeadline, j.DateOfPosting, j.MaxApplicants, j.MaxPositions, j.ActiveApplications,
		j.AcceptedCandidates, j.Rating, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

// Update writes posting fields only. The counters and the rating are owned
// by the capacity ledger and the rating aggregator.
func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	j.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, job_type = $2, salary = $3, duration = $4,
		job_description = $5, required_skillset = $6, experience_level = $7, education_requirement = $8,
		employment_type = $9, application_deadline = $10, max_applicants = $11, max_positions = $12, updated_at = $13
		WHERE id = $14 AND recruiter_id = $15`,
		j.Title, j.JobType, j.Salary, j.Duration, j.JobDescription, pq.Array(j.RequiredSkillset), j.ExperienceLevel,
		j.EducationRequirement, j.EmploymentType, j.ApplicationDeadline, j.MaxApplicants, j.MaxPositions,
		j.UpdatedAt, j.ID, j.RecruiterID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, j.ID)
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return j, nil
}

func (r *JobRepository) ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE recruiter_id = $1 ORDER BY date_of_posting DESC`, recruiterID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list recruiter jobs", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *JobRepository) ListOpen(ctx context.Context, limit, offset int) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE application_deadline IS NULL OR application_deadline > $1
		ORDER BY date_of_posting DESC LIMIT $2 OFFSET $3`, time.Now().UTC(), limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

// Delete removes the job row and tombstones its applications to deleted in
// one transaction. Applications are never physically removed.
func (r *JobRepository) Delete(ctx context.Context, id, recruiterID common.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2
		WHERE job_id = $3 AND status = ANY($4)`,
		application.StatusDeleted, now, id, pq.Array(activeStatusStrings())); err != nil {
		return common.NewError(common.CodeInternal, "failed to tombstone applications", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1 AND recruiter_id = $2`, id, recruiterID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return common.NewError(common.CodeStorageConflict, "job delete lost a concurrent race", err)
		}
		return common.NewError(common.CodeInternal, "failed to commit job delete", err)
	}
	return nil
}

func (r *JobRepository) SetRating(ctx context.Context, id common.UUID, ratingValue float64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET rating = $1, updated_at = $2 WHERE id = $3`, ratingValue, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update job rating", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*job.Job, error) {
	var j job.Job
	var deadline sql.NullTime
	if err := row.Scan(&j.ID, &j.RecruiterID, &j.Title, &j.CompanyName, &j.Location, &j.JobType, &j.Salary,
		&j.Duration, &j.JobDescription, pq.Array(&j.RequiredSkillset), &j.ExperienceLevel, &j.EducationRequirement,
		&j.Industry, &j.EmploymentType, &deadline, &j.DateOfPosting, &j.MaxApplicants, &j.MaxPositions,
		&j.ActiveApplications, &j.AcceptedCandidates, &j.Rating, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	if deadline.Valid {
		j.ApplicationDeadline = &deadline.Time
	}
	return &j, nil
}

func collectJobs(rows *sql.Rows) ([]job.Job, error) {
	var items []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read jobs", err)
	}
	return items, nil
}

func activeStatusStrings() []string {
	statuses := application.ActiveStatuses()
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
