package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"

	"jobport/internal/common"
	"jobport/internal/domain/profile"
)

type ApplicantProfileRepository struct {
	db *sql.DB
}

func NewApplicantProfileRepository(db *sql.DB) *ApplicantProfileRepository {
	return &ApplicantProfileRepository{db: db}
}

func (r *ApplicantProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.ApplicantProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT user_id, name, email, bio, contact_number, resume, photo, skills, education, rating, created_at, updated_at
		FROM applicant_profiles WHERE user_id = $1`, userID)
	var p profile.ApplicantProfile
	var educationJSON []byte
	if err := row.Scan(&p.UserID, &p.Name, &p.Email, &p.Bio, &p.ContactNumber, &p.Resume, &p.Photo,
		pq.Array(&p.Skills), &educationJSON, &p.Rating, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "applicant profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load applicant profile", err)
	}
	if len(educationJSON) > 0 {
		if err := json.Unmarshal(educationJSON, &p.Education); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to decode education", err)
		}
	}
	return &p, nil
}

func (r *ApplicantProfileRepository) Upsert(ctx context.Context, p profile.ApplicantProfile) (*profile.ApplicantProfile, error) {
	now := time.Now().UTC()
	p.UpdatedAt = now
	educationJSON, err := json.Marshal(p.Education)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to encode education", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO applicant_profiles (user_id, name, email, bio, contact_number, resume, photo, skills, education, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		ON CONFLICT (user_id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, bio = EXCLUDED.bio,
			contact_number = EXCLUDED.contact_number, resume = EXCLUDED.resume, photo = EXCLUDED.photo,
			skills = EXCLUDED.skills, education = EXCLUDED.education, updated_at = EXCLUDED.updated_at`,
		p.UserID, p.Name, p.Email, p.Bio, p.ContactNumber, p.Resume, p.Photo, pq.Array(p.Skills), educationJSON, p.Rating, now)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to upsert applicant profile", err)
	}
	return r.GetByUserID(ctx, p.UserID)
}

func (r *ApplicantProfileRepository) SetRating(ctx context.Context, userID common.UUID, ratingValue float64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE applicant_profiles SET rating = $1, updated_at = $2 WHERE user_id = $3`,
		ratingValue, time.Now().UTC(), userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update applicant rating", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "applicant profile not found", sql.ErrNoRows)
	}
	return nil
}
