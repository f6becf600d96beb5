package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/amer1301/bokrecension/pkg/errors"
)

// LikeRepository implements domain.LikeRepository backed by PostgreSQL.
type LikeRepository struct {
	db DB
}

// NewLikeRepository creates a new PostgreSQL like repository.
func NewLikeRepository(db DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Add records a like. The unique constraint on (review_id, user_id) is
// the source of truth; a second like from the same user affects zero
// rows and is reported as a conflict.
func (r *LikeRepository) Add(ctx context.Context, reviewID, userID string) error {
	query := `
		INSERT INTO review_likes (id, review_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (review_id, user_id) DO NOTHING`

	tag, err := r.db.Exec(ctx, query, uuid.New().String(), reviewID, userID)
	if err != nil {
		return fmt.Errorf("add like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict("review already liked")
	}

	return nil
}

// Remove deletes a like. Removing a like that does not exist is a no-op.
func (r *LikeRepository) Remove(ctx context.Context, reviewID, userID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM review_likes WHERE review_id = $1 AND user_id = $2`,
		reviewID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove like: %w", err)
	}

	return nil
}

// Exists reports whether the user has liked the review.
func (r *LikeRepository) Exists(ctx context.Context, reviewID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM review_likes WHERE review_id = $1 AND user_id = $2)`,
		reviewID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check like exists: %w", err)
	}

	return exists, nil
}
