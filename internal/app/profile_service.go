package app

import (
	"context"

	"jobport/internal/common"
	"jobport/internal/domain/profile"
	"jobport/internal/domain/rating"
)

type ProfileService struct {
	applicants profile.ApplicantRepository
}

func NewProfileService(applicants profile.ApplicantRepository) *ProfileService {
	return &ProfileService{applicants: applicants}
}

func (s *ProfileService) Get(ctx context.Context, userID common.UUID) (*profile.ApplicantProfile, error) {
	return s.applicants.GetByUserID(ctx, userID)
}

// Upsert writes the applicant's profile. The stored rating is owned by the
// rating aggregator and never taken from the caller.
func (s *ProfileService) Upsert(ctx context.Context, p profile.ApplicantProfile) (*profile.ApplicantProfile, error) {
	fields := map[string]string{}
	if p.Name == "" {
		fields["name"] = "name is required"
	}
	if p.Email == "" {
		fields["email"] = "email is required"
	}
	for _, entry := range p.Education {
		if entry.InstitutionName == "" {
			fields["education"] = "institution name is required"
		}
		if entry.EndDate != nil && entry.EndDate.Before(entry.StartDate) {
			fields["education"] = "end date should not precede the start date"
		}
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid profile", fields)
	}
	p.Rating = rating.Unset
	return s.applicants.Upsert(ctx, p)
}
