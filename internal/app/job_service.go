package app

import (
	"context"
	"fmt"
	"time"

	"jobport/internal/common"
	"jobport/internal/domain/job"
)

type JobService struct {
	repo job.Repository
}

func NewJobService(repo job.Repository) *JobService {
	return &JobService{repo: repo}
}

func (s *JobService) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	if j.DateOfPosting.IsZero() {
		j.DateOfPosting = time.Now().UTC()
	}
	j.Rating = job.RatingUnset
	j.ActiveApplications = 0
	j.AcceptedCandidates = 0
	if err := validateJob(j); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, j)
}

// Update writes posting fields on the recruiter's own job. Capacity limits
// may change; the counters and the rating never pass through here.
func (s *JobService) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	current, err := s.repo.GetByID(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	if current.RecruiterID != j.RecruiterID {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	merged := *current
	if j.Title != "" {
		merged.Title = j.Title
	}
	if j.JobType != "" {
		merged.JobType = j.JobType
	}
	if j.Salary > 0 {
		merged.Salary = j.Salary
	}
	if j.Duration > 0 {
		merged.Duration = j.Duration
	}
	if j.JobDescription != "" {
		merged.JobDescription = j.JobDescription
	}
	if len(j.RequiredSkillset) > 0 {
		merged.RequiredSkillset = j.RequiredSkillset
	}
	if j.ExperienceLevel != "" {
		merged.ExperienceLevel = j.ExperienceLevel
	}
	if j.EducationRequirement != "" {
		merged.EducationRequirement = j.EducationRequirement
	}
	if j.EmploymentType != "" {
		merged.EmploymentType = j.EmploymentType
	}
	if j.ApplicationDeadline != nil {
		merged.ApplicationDeadline = j.ApplicationDeadline
	}
	if j.MaxApplicants > 0 {
		merged.MaxApplicants = j.MaxApplicants
	}
	if j.MaxPositions > 0 {
		merged.MaxPositions = j.MaxPositions
	}
	if err := validateJob(merged); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, merged)
}

func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *JobService) ListOpen(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListOpen(ctx, limit, offset)
}

func (s *JobService) ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]job.Job, error) {
	return s.repo.ListByRecruiter(ctx, recruiterID)
}

// Delete removes the recruiter's job; its applications are tombstoned to
// deleted in the same transaction, not removed.
func (s *JobService) Delete(ctx context.Context, id, recruiterID common.UUID) error {
	return s.repo.Delete(ctx, id, recruiterID)
}

func validateJob(j job.Job) error {
	fields := map[string]string{}
	if j.Title == "" {
		fields["title"] = "title is required"
	}
	if j.JobType == "" {
		fields["job_type"] = "job type is required"
	}
	if j.JobDescription == "" {
		fields["job_description"] = "description is required"
	}
	if len(j.RequiredSkillset) == 0 {
		fields["required_skillset"] = "at least one skill is required"
	}
	if j.ExperienceLevel == "" {
		fields["experience_level"] = "experience level is required"
	}
	if j.EducationRequirement == "" {
		fields["education_requirement"] = "education requirement is required"
	}
	if j.EmploymentType == "" {
		fields["employment_type"] = "employment type is required"
	}
	if j.Salary < 0 {
		fields["salary"] = "salary should be positive"
	}
	if j.Duration < 0 {
		fields["duration"] = "duration should be positive"
	}
	if j.MaxApplicants <= 0 {
		fields["max_applicants"] = "max applicants should be greater than 0"
	}
	if j.MaxPositions <= 0 {
		fields["max_positions"] = "max positions should be greater than 0"
	}
	if j.ApplicationDeadline != nil && !j.ApplicationDeadline.After(j.DateOfPosting) {
		fields["application_deadline"] = fmt.Sprintf("deadline should be after the posting date %s", j.DateOfPosting.Format(time.RFC3339))
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid job", fields)
	}
	return nil
}
