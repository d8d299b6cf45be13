package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobport/internal/common"
	"jobport/internal/domain/rating"
)

type RatingRepository struct {
	db *sql.DB
}

func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

var _ rating.Repository = (*RatingRepository)(nil)

// Upsert writes the rating, recomputes the receiver's mean and writes it
// back to the receiver entity, all in one transaction. The unique constraint
// on (sender_id, receiver_id, category) makes a repeat rating an update.
func (r *RatingRepository) Upsert(ctx context.Context, rec rating.Rating) (float64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `INSERT INTO ratings (id, sender_id, receiver_id, category, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (sender_id, receiver_id, category) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		common.NewUUID(), rec.SenderID, rec.ReceiverID, rec.Category, rec.Value, now); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to upsert rating", err)
	}

	var average float64
	if err := tx.QueryRowContext(ctx, `SELECT AVG(value) FROM ratings WHERE receiver_id = $1 AND category = $2`,
		rec.ReceiverID, rec.Category).Scan(&average); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to compute rating average", err)
	}

	var writeBack string
	switch rec.Category {
	case rating.CategoryApplicant:
		writeBack = `UPDATE applicant_profiles SET rating = $1, updated_at = $2 WHERE user_id = $3`
	case rating.CategoryJob:
		writeBack = `UPDATE jobs SET rating = $1, updated_at = $2 WHERE id = $3`
	default:
		return 0, common.NewError(common.CodeValidation, "unknown rating category", nil)
	}
	result, err := tx.ExecContext(ctx, writeBack, average, now, rec.ReceiverID)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to update receiver rating", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return 0, common.NewError(common.CodeNotFound, "rating receiver not found", sql.ErrNoRows)
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return 0, common.NewError(common.CodeStorageConflict, "rating lost a concurrent race", err)
		}
		return 0, common.NewError(common.CodeInternal, "failed to commit rating", err)
	}
	return average, nil
}

func (r *RatingRepository) Get(ctx context.Context, senderID, receiverID common.UUID, category rating.Category) (float64, error) {
	var value float64
	err := r.db.QueryRowContext(ctx, `SELECT value FROM ratings WHERE sender_id = $1 AND receiver_id = $2 AND category = $3`,
		senderID, receiverID, category).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return rating.Unset, nil
	}
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to load rating", err)
	}
	return value, nil
}
