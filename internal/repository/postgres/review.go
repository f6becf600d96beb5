package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/amer1301/bokrecension/internal/domain"
	apperrors "github.com/amer1301/bokrecension/pkg/errors"
	"github.com/amer1301/bokrecension/pkg/pagination"
)

// ReviewRepository implements domain.ReviewRepository backed by PostgreSQL.
type ReviewRepository struct {
	db DB
}

// NewReviewRepository creates a new PostgreSQL review repository.
func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// reviewSelect joins the author and derives likes_count and
// is_liked_by_user per row. $1 is the viewer's user ID; an empty string
// (anonymous) makes is_liked_by_user false for every row.
const reviewSelect = `
	SELECT
		r.id, r.book_id, r.user_id, u.name, r.rating, r.text,
		(SELECT COUNT(*) FROM review_likes l WHERE l.review_id = r.id) AS likes_count,
		EXISTS(
			SELECT 1 FROM review_likes l
			WHERE l.review_id = r.id AND l.user_id = NULLIF($1, '')::uuid
		) AS is_liked_by_user,
		r.created_at, r.updated_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id`

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(
		&rv.ID, &rv.BookID, &rv.Author.ID, &rv.Author.Name, &rv.Rating, &rv.Text,
		&rv.LikesCount, &rv.IsLikedByUser, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Create inserts a new review.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, book_id, user_id, rating, text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		review.ID, review.BookID, review.Author.ID, review.Rating, review.Text,
	).Scan(&review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

// GetByID retrieves a single review with derived like fields.
func (r *ReviewRepository) GetByID(ctx context.Context, id, viewerID string) (*domain.Review, error) {
	query := reviewSelect + ` WHERE r.id = $2`

	review, err := scanReview(r.db.QueryRow(ctx, query, viewerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("get review by id: %w", err)
	}

	return review, nil
}

// ListByBook returns one page of a book's reviews plus the total count.
func (r *ReviewRepository) ListByBook(ctx context.Context, bookID, viewerID string, params pagination.Params) ([]*domain.Review, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE book_id = $1`, bookID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews by book: %w", err)
	}

	query := reviewSelect + `
	WHERE r.book_id = $2
	ORDER BY r.created_at ` + params.SortDirection() + `
	LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, viewerID, bookID, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews by book: %w", err)
	}
	defer rows.Close()

	reviews, err := collectReviews(rows)
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// ListByUser returns one page of a user's reviews plus the total count.
func (r *ReviewRepository) ListByUser(ctx context.Context, userID, viewerID string, params pagination.Params) ([]*domain.Review, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews by user: %w", err)
	}

	query := reviewSelect + `
	WHERE r.user_id = $2
	ORDER BY r.created_at ` + params.SortDirection() + `
	LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, viewerID, userID, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews by user: %w", err)
	}
	defer rows.Close()

	reviews, err := collectReviews(rows)
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// Update modifies the rating and text of a review.
func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	query := `
		UPDATE reviews
		SET rating = $1, text = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query, review.Rating, review.Text, review.ID).
		Scan(&review.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("review", review.ID)
		}
		return fmt.Errorf("update review: %w", err)
	}

	return nil
}

// Delete removes a review. Its likes are removed by foreign key cascade.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("review", id)
	}

	return nil
}

func collectReviews(rows pgx.Rows) ([]*domain.Review, error) {
	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}
