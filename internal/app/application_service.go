package app

import (
	"context"
	"time"

	"jobport/internal/common"
	"jobport/internal/domain/analytics"
	"jobport/internal/domain/application"
	"jobport/internal/domain/job"
	"jobport/internal/domain/profile"
	"jobport/internal/domain/user"
)

// maxOpenApplications caps how many active applications one applicant may
// hold across all jobs.
const maxOpenApplications = 10

type ApplicationService struct {
	repo       application.Repository
	jobs       job.Repository
	applicants profile.ApplicantRepository
	analytics  analytics.Repository
}

func NewApplicationService(repo application.Repository, jobs job.Repository, applicants profile.ApplicantRepository, analytics analytics.Repository) *ApplicationService {
	return &ApplicationService{repo: repo, jobs: jobs, applicants: applicants, analytics: analytics}
}

// Apply creates an application in state applied and reserves a slot on the
// job. The capacity reservation and the insert land atomically; the pre-check
// queries only produce friendlier failures for the common cases.
func (s *ApplicationService) Apply(ctx context.Context, jobID, applicantID common.UUID, sop string) (*application.Application, error) {
	applicant, err := s.applicants.GetByUserID(ctx, applicantID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "applicant profile is required", nil)
		}
		return nil, err
	}
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindActiveByJobAndApplicant(ctx, jobID, applicantID); err == nil {
		return nil, common.NewError(common.CodeDuplicateApplication, "you have already applied for this job", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	open, err := s.repo.CountActiveByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if open >= maxOpenApplications {
		return nil, common.NewError(common.CodeTooManyOpenApplications, "you already have 10 open applications", nil)
	}
	employed, err := s.repo.HasAccepted(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if employed {
		return nil, common.NewError(common.CodeAlreadyEmployed, "you already have an accepted job", nil)
	}

	app := application.Application{
		ApplicantID:   applicantID,
		RecruiterID:   posting.RecruiterID,
		JobID:         posting.ID,
		Status:        application.StatusApplied,
		SOP:           sop,
		Name:          applicant.Name,
		Email:         applicant.Email,
		Resume:        applicant.Resume,
		Bio:           applicant.Bio,
		ContactNumber: applicant.ContactNumber,
		Skills:        applicant.Skills,
		Education:     applicant.Education,
		Rating:        applicant.Rating,
	}
	created, err := s.repo.CreateReserving(ctx, app)
	if common.Is(err, common.CodeStorageConflict) {
		created, err = s.repo.CreateReserving(ctx, app)
	}
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.created", UserID: &applicantID,
		Payload: map[string]string{"application_id": created.ID.String(), "job_id": jobID.String()}})
	return created, nil
}

// UpdateStatus applies one state-machine transition on behalf of the actor.
// Recruiters may shortlist, accept, reject or finish applications for jobs
// they own; applicants may only cancel their own.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID, actorID common.UUID, role user.Role, rawStatus string) (*application.Application, error) {
	next, ok := application.ParseStatus(rawStatus)
	if !ok {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "unknown status value"})
	}
	updated, err := s.transition(ctx, applicationID, actorID, role, next)
	if common.Is(err, common.CodeStorageConflict) {
		updated, err = s.transition(ctx, applicationID, actorID, role, next)
	}
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.status_changed", UserID: &actorID,
		Payload: map[string]string{"application_id": updated.ID.String(), "status": string(updated.Status)}})
	return updated, nil
}

func (s *ApplicationService) transition(ctx context.Context, applicationID, actorID common.UUID, role user.Role, next application.Status) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	// Out-of-scope applications look absent rather than forbidden.
	switch role {
	case user.RoleRecruiter:
		if app.RecruiterID != actorID {
			return nil, common.NewError(common.CodeNotFound, "application not found", nil)
		}
	case user.RoleApplicant:
		if app.ApplicantID != actorID {
			return nil, common.NewError(common.CodeNotFound, "application not found", nil)
		}
	default:
		return nil, common.NewError(common.CodeForbidden, "unknown role", nil)
	}
	if err := allowedForRole(role, next); err != nil {
		return nil, err
	}
	if !application.CanTransition(app.Status, next) {
		return nil, common.NewError(common.CodeInvalidTransition, "status is not reachable from "+string(app.Status), nil)
	}
	if next == application.StatusAccepted {
		return s.repo.Accept(ctx, app.ID, time.Now().UTC())
	}
	return s.repo.Transition(ctx, app.ID, app.Status, next)
}

func allowedForRole(role user.Role, next application.Status) error {
	switch role {
	case user.RoleRecruiter:
		switch next {
		case application.StatusShortlisted, application.StatusAccepted, application.StatusRejected, application.StatusFinished:
			return nil
		}
	case user.RoleApplicant:
		if next == application.StatusCancelled {
			return nil
		}
	}
	return common.NewError(common.CodeForbidden, "you don't have permission to set this status", nil)
}

// List returns the actor's applications: their own for applicants, those on
// their jobs for recruiters.
func (s *ApplicationService) List(ctx context.Context, actorID common.UUID, role user.Role) ([]application.Application, error) {
	switch role {
	case user.RoleRecruiter:
		return s.repo.ListByRecruiter(ctx, actorID)
	case user.RoleApplicant:
		return s.repo.ListByApplicant(ctx, actorID)
	default:
		return nil, common.NewError(common.CodeForbidden, "unknown role", nil)
	}
}

// ListByJob returns a job's applications to its owning recruiter, optionally
// filtered by status.
func (s *ApplicationService) ListByJob(ctx context.Context, jobID, recruiterID common.UUID, rawStatus string) ([]application.Application, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if posting.RecruiterID != recruiterID {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	var status application.Status
	if rawStatus != "" {
		parsed, ok := application.ParseStatus(rawStatus)
		if !ok {
			return nil, common.NewValidationError("invalid status", map[string]string{"status": "unknown status value"})
		}
		status = parsed
	}
	return s.repo.ListByJob(ctx, jobID, status)
}

func (s *ApplicationService) Get(ctx context.Context, id, actorID common.UUID) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != actorID && app.RecruiterID != actorID {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return app, nil
}
