package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amer1301/bokrecension/internal/domain"
	"github.com/amer1301/bokrecension/internal/event"
	apperrors "github.com/amer1301/bokrecension/pkg/errors"
	"github.com/amer1301/bokrecension/pkg/pagination"
)

// ReviewService handles review creation, editing, listing, and likes.
type ReviewService struct {
	reviews  domain.ReviewRepository
	likes    domain.LikeRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviews domain.ReviewRepository, likes domain.LikeRepository, producer *event.Producer, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		likes:    likes,
		producer: producer,
		logger:   logger,
	}
}

// Create posts a new review by the given user.
func (s *ReviewService) Create(ctx context.Context, userID string, input domain.CreateReviewInput) (*domain.Review, error) {
	review := &domain.Review{
		ID:     uuid.New().String(),
		BookID: input.BookID,
		Author: domain.Author{ID: userID},
		Rating: input.Rating,
		Text:   input.Text,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	// Re-read so the response carries the author name and derived fields.
	created, err := s.reviews.GetByID(ctx, review.ID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.producer.PublishReviewCreated(ctx, created); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", created.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", created.ID),
		slog.String("book_id", created.BookID),
		slog.Int("rating", created.Rating),
	)

	return created, nil
}

// GetByID returns a single review. viewerID may be empty for anonymous
// callers.
func (s *ReviewService) GetByID(ctx context.Context, id, viewerID string) (*domain.Review, error) {
	return s.reviews.GetByID(ctx, id, viewerID)
}

// ListByBook returns one page of a book's reviews.
func (s *ReviewService) ListByBook(ctx context.Context, bookID, viewerID string, params pagination.Params) (pagination.Result[*domain.Review], error) {
	reviews, total, err := s.reviews.ListByBook(ctx, bookID, viewerID, params)
	if err != nil {
		return pagination.Result[*domain.Review]{}, err
	}

	return pagination.NewResult(reviews, total, params), nil
}

// ListByUser returns one page of a user's reviews.
func (s *ReviewService) ListByUser(ctx context.Context, userID, viewerID string, params pagination.Params) (pagination.Result[*domain.Review], error) {
	reviews, total, err := s.reviews.ListByUser(ctx, userID, viewerID, params)
	if err != nil {
		return pagination.Result[*domain.Review]{}, err
	}

	return pagination.NewResult(reviews, total, params), nil
}

// Update edits a review. Only the author may update it.
func (s *ReviewService) Update(ctx context.Context, id, userID string, input domain.UpdateReviewInput) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if review.Author.ID != userID {
		return nil, apperrors.Forbidden("you can only edit your own reviews")
	}

	review.Rating = input.Rating
	review.Text = input.Text

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}

	if err := s.producer.PublishReviewUpdated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.updated event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	return review, nil
}

// Delete removes a review and its likes. Only the author may delete it.
func (s *ReviewService) Delete(ctx context.Context, id, userID string) error {
	review, err := s.reviews.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if review.Author.ID != userID {
		return apperrors.Forbidden("you can only delete your own reviews")
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.producer.PublishReviewDeleted(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.deleted event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review deleted", slog.String("review_id", id))

	return nil
}

// Like records a like on a review. Liking an unknown review is not
// found; liking the same review twice is a conflict.
func (s *ReviewService) Like(ctx context.Context, reviewID, userID string) (*domain.Review, error) {
	if _, err := s.reviews.GetByID(ctx, reviewID, userID); err != nil {
		return nil, err
	}

	if err := s.likes.Add(ctx, reviewID, userID); err != nil {
		return nil, err
	}

	if err := s.producer.PublishReviewLiked(ctx, reviewID, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.liked event",
			slog.String("review_id", reviewID),
			slog.String("error", err.Error()),
		)
	}

	// Return the review with its fresh like count.
	return s.reviews.GetByID(ctx, reviewID, userID)
}

// Unlike removes a like. Unliking a review that was never liked is a
// no-op, but the review itself must exist.
func (s *ReviewService) Unlike(ctx context.Context, reviewID, userID string) (*domain.Review, error) {
	if _, err := s.reviews.GetByID(ctx, reviewID, userID); err != nil {
		return nil, err
	}

	if err := s.likes.Remove(ctx, reviewID, userID); err != nil {
		return nil, err
	}

	if err := s.producer.PublishReviewUnliked(ctx, reviewID, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.unliked event",
			slog.String("review_id", reviewID),
			slog.String("error", err.Error()),
		)
	}

	return s.reviews.GetByID(ctx, reviewID, userID)
}
