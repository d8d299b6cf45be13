package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobport/internal/common"
	"jobport/internal/domain/job"
)

func validJob(recruiterID common.UUID) job.Job {
	return job.Job{
		RecruiterID:          recruiterID,
		Title:                "Backend Engineer",
		CompanyName:          "Acme",
		JobType:              "full-time",
		Salary:               90000,
		JobDescription:       "Build services",
		RequiredSkillset:     []string{"go", "sql"},
		ExperienceLevel:      "mid",
		EducationRequirement: "bachelor",
		EmploymentType:       "permanent",
		MaxApplicants:        10,
		MaxPositions:         2,
	}
}

func TestJobServiceCreate_Defaults(t *testing.T) {
	repo := newFakeJobRepo()
	service := NewJobService(repo)

	input := validJob(common.NewUUID())
	input.Rating = 4.5
	input.ActiveApplications = 7
	input.AcceptedCandidates = 3

	created, err := service.Create(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.False(t, created.DateOfPosting.IsZero())
	assert.Equal(t, job.RatingUnset, created.Rating)
	assert.Equal(t, 0, created.ActiveApplications)
	assert.Equal(t, 0, created.AcceptedCandidates)
}

func TestJobServiceCreate_Validation(t *testing.T) {
	repo := newFakeJobRepo()
	service := NewJobService(repo)

	input := validJob(common.NewUUID())
	input.Title = ""
	input.MaxApplicants = 0

	_, err := service.Create(context.Background(), input)
	require.Error(t, err)
	assert.True(t, common.Is(err, common.CodeValidation))
	var appErr *common.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "title")
	assert.Contains(t, appErr.Fields, "max_applicants")
}

func TestJobServiceCreate_DeadlineBeforePosting(t *testing.T) {
	repo := newFakeJobRepo()
	service := NewJobService(repo)

	input := validJob(common.NewUUID())
	past := time.Now().UTC().Add(-24 * time.Hour)
	input.ApplicationDeadline = &past

	_, err := service.Create(context.Background(), input)
	assert.True(t, common.Is(err, common.CodeValidation))
}

func TestJobServiceUpdate_MergesAndPreservesCounters(t *testing.T) {
	repo := newFakeJobRepo()
	service := NewJobService(repo)
	recruiter := common.NewUUID()

	created, err := service.Create(context.Background(), validJob(recruiter))
	require.NoError(t, err)
	reserved, found := repo.reserveActive(created.ID)
	require.True(t, reserved)
	require.True(t, found)

	updated, err := service.Update(context.Background(), job.Job{
		ID:          created.ID,
		RecruiterID: recruiter,
		Title:       "Senior Backend Engineer",
		Salary:      120000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", updated.Title)
	assert.Equal(t, 120000, updated.Salary)
	assert.Equal(t, "full-time", updated.JobType, "unset fields keep their value")
	assert.Equal(t, 1, updated.ActiveApplications, "counters never pass through update")
}

func TestJobServiceUpdate_ForeignRecruiterSeesNotFound(t *testing.T) {
	repo := newFakeJobRepo()
	service := NewJobService(repo)

	created, err := service.Create(context.Background(), validJob(common.NewUUID()))
	require.NoError(t, err)

	_, err = service.Update(context.Background(), job.Job{
		ID:          created.ID,
		RecruiterID: common.NewUUID(),
		Title:       "Hijacked",
	})
	assert.True(t, common.Is(err, common.CodeNotFound))
}

func TestJobServiceDelete(t *testing.T) {
	repo := newFakeJobRepo()
	service := NewJobService(repo)
	recruiter := common.NewUUID()

	created, err := service.Create(context.Background(), validJob(recruiter))
	require.NoError(t, err)

	err = service.Delete(context.Background(), created.ID, common.NewUUID())
	assert.True(t, common.Is(err, common.CodeNotFound))

	require.NoError(t, service.Delete(context.Background(), created.ID, recruiter))
	_, err = service.Get(context.Background(), created.ID)
	assert.True(t, common.Is(err, common.CodeNotFound))
}

func TestJobServiceListOpen_ClampsLimit(t *testing.T) {
	repo := newFakeJobRepo()
	service := NewJobService(repo)

	for i := 0; i < 3; i++ {
		_, err := service.Create(context.Background(), validJob(common.NewUUID()))
		require.NoError(t, err)
	}

	items, err := service.ListOpen(context.Background(), -5, -1)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
