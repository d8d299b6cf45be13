package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobport/internal/common"
	"jobport/internal/domain/application"
	"jobport/internal/domain/profile"
	"jobport/internal/domain/rating"
	"jobport/internal/domain/user"
)

func profileFor(userID common.UUID) profile.ApplicantProfile {
	return profile.ApplicantProfile{
		UserID: userID,
		Name:   "Ada Lovelace",
		Email:  "ada@example.com",
		Resume: "resume.pdf",
		Skills: []string{"go"},
		Rating: rating.Unset,
	}
}

type ratingKey struct {
	sender   common.UUID
	receiver common.UUID
	category rating.Category
}

type fakeRatingRepo struct {
	mu       sync.Mutex
	ratings  map[ratingKey]rating.Rating
	jobs     *fakeJobRepo
	profiles *fakeApplicantProfileRepo
}

func newFakeRatingRepo(jobs *fakeJobRepo, profiles *fakeApplicantProfileRepo) *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[ratingKey]rating.Rating), jobs: jobs, profiles: profiles}
}

func (r *fakeRatingRepo) Upsert(ctx context.Context, value rating.Rating) (float64, error) {
	r.mu.Lock()
	key := ratingKey{sender: value.SenderID, receiver: value.ReceiverID, category: value.Category}
	if value.ID.IsZero() {
		value.ID = common.NewUUID()
	}
	r.ratings[key] = value
	sum, count := 0.0, 0
	for k, stored := range r.ratings {
		if k.receiver == value.ReceiverID && k.category == value.Category {
			sum += stored.Value
			count++
		}
	}
	average := sum / float64(count)
	r.mu.Unlock()

	var err error
	if value.Category == rating.CategoryJob {
		err = r.jobs.SetRating(ctx, value.ReceiverID, average)
	} else {
		err = r.profiles.SetRating(ctx, value.ReceiverID, average)
	}
	if err != nil {
		return 0, err
	}
	return average, nil
}

func (r *fakeRatingRepo) Get(ctx context.Context, senderID, receiverID common.UUID, category rating.Category) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.ratings[ratingKey{sender: senderID, receiver: receiverID, category: category}]
	if !ok {
		return rating.Unset, nil
	}
	return stored.Value, nil
}

type ratingFixture struct {
	jobs     *fakeJobRepo
	apps     *fakeApplicationRepo
	profiles *fakeApplicantProfileRepo
	ratings  *fakeRatingRepo
	service  *RatingService
}

func newRatingFixture() *ratingFixture {
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo(jobs)
	profiles := newFakeApplicantProfileRepo()
	ratings := newFakeRatingRepo(jobs, profiles)
	return &ratingFixture{
		jobs:     jobs,
		apps:     apps,
		profiles: profiles,
		ratings:  ratings,
		service:  NewRatingService(ratings, apps),
	}
}

// seedEngagement plants a finished application linking the applicant, the
// recruiter and the job, which is what rating eligibility keys off.
func (f *ratingFixture) seedEngagement(applicantID, recruiterID, jobID common.UUID, status application.Status) {
	id := common.NewUUID()
	f.apps.apps[id] = &application.Application{
		ID:                id,
		ApplicantID:       applicantID,
		RecruiterID:       recruiterID,
		JobID:             jobID,
		Status:            status,
		DateOfApplication: time.Now().UTC(),
	}
}

func TestRatingServiceRate_RejectsOutOfRange(t *testing.T) {
	f := newRatingFixture()

	for _, value := range []float64{-0.5, 5.5, 6} {
		err := f.service.Rate(context.Background(), common.NewUUID(), user.RoleRecruiter, common.NewUUID(), value)
		assert.True(t, common.Is(err, common.CodeInvalidRating), "value %v", value)
	}
	assert.Empty(t, f.ratings.ratings, "rejected ratings must not be stored")
}

func TestRatingServiceRate_RequiresEngagement(t *testing.T) {
	f := newRatingFixture()

	err := f.service.Rate(context.Background(), common.NewUUID(), user.RoleRecruiter, common.NewUUID(), 4)
	assert.True(t, common.Is(err, common.CodeNotEligible))

	err = f.service.Rate(context.Background(), common.NewUUID(), user.RoleApplicant, common.NewUUID(), 4)
	assert.True(t, common.Is(err, common.CodeNotEligible))
}

func TestRatingServiceRate_RecruiterRatesApplicant(t *testing.T) {
	f := newRatingFixture()
	recruiter := common.NewUUID()
	applicant := common.NewUUID()
	_, err := f.profiles.Upsert(context.Background(), profileFor(applicant))
	require.NoError(t, err)
	f.seedEngagement(applicant, recruiter, common.NewUUID(), application.StatusFinished)

	require.NoError(t, f.service.Rate(context.Background(), recruiter, user.RoleRecruiter, applicant, 4))

	stored, err := f.profiles.GetByUserID(context.Background(), applicant)
	require.NoError(t, err)
	assert.InDelta(t, 4, stored.Rating, 1e-9)

	value, err := f.service.GetRating(context.Background(), recruiter, user.RoleRecruiter, applicant)
	require.NoError(t, err)
	assert.InDelta(t, 4, value, 1e-9)
}

func TestRatingServiceRate_ApplicantRatesJob(t *testing.T) {
	f := newRatingFixture()
	recruiter := common.NewUUID()
	applicant := common.NewUUID()
	posting, err := f.jobs.Create(context.Background(), validJob(recruiter))
	require.NoError(t, err)
	f.seedEngagement(applicant, recruiter, posting.ID, application.StatusAccepted)

	require.NoError(t, f.service.Rate(context.Background(), applicant, user.RoleApplicant, posting.ID, 3.5))

	after, err := f.jobs.GetByID(context.Background(), posting.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, after.Rating, 1e-9)
}

func TestRatingServiceRate_RepeatRatingUpdatesInPlace(t *testing.T) {
	f := newRatingFixture()
	recruiter := common.NewUUID()
	other := common.NewUUID()
	applicant := common.NewUUID()
	_, err := f.profiles.Upsert(context.Background(), profileFor(applicant))
	require.NoError(t, err)
	f.seedEngagement(applicant, recruiter, common.NewUUID(), application.StatusFinished)
	f.seedEngagement(applicant, other, common.NewUUID(), application.StatusFinished)

	require.NoError(t, f.service.Rate(context.Background(), recruiter, user.RoleRecruiter, applicant, 2))
	require.NoError(t, f.service.Rate(context.Background(), other, user.RoleRecruiter, applicant, 4))
	require.NoError(t, f.service.Rate(context.Background(), recruiter, user.RoleRecruiter, applicant, 5))

	assert.Len(t, f.ratings.ratings, 2, "one row per sender")
	stored, err := f.profiles.GetByUserID(context.Background(), applicant)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, stored.Rating, 1e-9)
}

func TestRatingServiceGetRating_UnsetSentinel(t *testing.T) {
	f := newRatingFixture()

	value, err := f.service.GetRating(context.Background(), common.NewUUID(), user.RoleApplicant, common.NewUUID())
	require.NoError(t, err)
	assert.Equal(t, rating.Unset, value)
}
