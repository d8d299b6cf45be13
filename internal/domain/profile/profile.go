package profile

import (
	"context"
	"time"

	"jobport/internal/common"
	"jobport/internal/domain/application"
)

// ApplicantProfile carries the fields snapshotted onto an application at
// apply time. Rating is the running average maintained by the rating
// aggregator, -1 when unset.
type ApplicantProfile struct {
	UserID        common.UUID             `json:"user_id"`
	Name          string                  `json:"name"`
	Email         string                  `json:"email"`
	Bio           string                  `json:"bio,omitempty"`
	ContactNumber string                  `json:"contact_number,omitempty"`
	Resume        string                  `json:"resume"`
	Photo         string                  `json:"photo,omitempty"`
	Skills        []string                `json:"skills"`
	Education     []application.Education `json:"education"`
	Rating        float64                 `json:"rating"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

type ApplicantRepository interface {
	GetByUserID(ctx context.Context, userID common.UUID) (*ApplicantProfile, error)
	Upsert(ctx context.Context, p ApplicantProfile) (*ApplicantProfile, error)
	SetRating(ctx context.Context, userID common.UUID, rating float64) error
}
