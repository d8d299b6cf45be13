package app

import (
	"context"

	"jobport/internal/common"
	"jobport/internal/domain/application"
	"jobport/internal/domain/rating"
	"jobport/internal/domain/user"
)

type RatingService struct {
	ratings      rating.Repository
	applications application.Repository
}

func NewRatingService(ratings rating.Repository, applications application.Repository) *RatingService {
	return &RatingService{ratings: ratings, applications: applications}
}

// Rate records the sender's rating for the receiver and recomputes the
// receiver's running average. Recruiters rate applicants who worked under
// them; applicants rate jobs they worked for. A repeat rating from the same
// sender updates in place.
func (s *RatingService) Rate(ctx context.Context, senderID common.UUID, role user.Role, receiverID common.UUID, value float64) error {
	if value < 0 || value > 5 {
		return common.NewError(common.CodeInvalidRating, "rating must be between 0 and 5", nil)
	}
	var (
		category rating.Category
		eligible bool
		err      error
	)
	switch role {
	case user.RoleRecruiter:
		category = rating.CategoryApplicant
		eligible, err = s.applications.HasEngagementWithRecruiter(ctx, receiverID, senderID)
	case user.RoleApplicant:
		category = rating.CategoryJob
		eligible, err = s.applications.HasEngagementWithJob(ctx, senderID, receiverID)
	default:
		return common.NewError(common.CodeForbidden, "unknown role", nil)
	}
	if err != nil {
		return err
	}
	if !eligible {
		return common.NewError(common.CodeNotEligible, "no accepted or finished application links you to this receiver", nil)
	}
	_, err = s.ratings.Upsert(ctx, rating.Rating{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Category:   category,
		Value:      value,
	})
	return err
}

// GetRating returns the sender's own stored rating for the receiver, or -1
// when the sender has never rated them.
func (s *RatingService) GetRating(ctx context.Context, senderID common.UUID, role user.Role, receiverID common.UUID) (float64, error) {
	category := rating.CategoryJob
	if role == user.RoleRecruiter {
		category = rating.CategoryApplicant
	}
	return s.ratings.Get(ctx, senderID, receiverID, category)
}
