package domain

import (
	"context"
	"time"

	"github.com/amer1301/bokrecension/pkg/pagination"
)

// Author is the public subset of a user attached to a review.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Review represents a user's review of a book. LikesCount and
// IsLikedByUser are derived at read time and never stored.
type Review struct {
	ID            string    `json:"id"`
	BookID        string    `json:"bookId"`
	Author        Author    `json:"author"`
	Rating        int       `json:"rating"`
	Text          string    `json:"text"`
	LikesCount    int       `json:"likesCount"`
	IsLikedByUser bool      `json:"isLikedByUser"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateReviewInput is the payload for posting a new review.
type CreateReviewInput struct {
	BookID string `json:"bookId" validate:"required,max=64"`
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Text   string `json:"text" validate:"required,min=5,max=2000"`
}

// UpdateReviewInput is the payload for editing an existing review.
type UpdateReviewInput struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Text   string `json:"text" validate:"required,min=5,max=2000"`
}

// ReviewRepository defines persistence operations for reviews.
// Read methods take a viewerID used to derive IsLikedByUser; an empty
// viewerID means anonymous and always yields false.
type ReviewRepository interface {
	// Create inserts a new review.
	Create(ctx context.Context, review *Review) error
	// GetByID retrieves a single review with derived like fields.
	GetByID(ctx context.Context, id, viewerID string) (*Review, error)
	// ListByBook returns one page of a book's reviews plus the total count.
	ListByBook(ctx context.Context, bookID, viewerID string, params pagination.Params) ([]*Review, int, error)
	// ListByUser returns one page of a user's reviews plus the total count.
	ListByUser(ctx context.Context, userID, viewerID string, params pagination.Params) ([]*Review, int, error)
	// Update modifies the rating and text of a review.
	Update(ctx context.Context, review *Review) error
	// Delete removes a review and, via cascade, its likes.
	Delete(ctx context.Context, id string) error
}

// LikeRepository defines persistence operations for review likes.
type LikeRepository interface {
	// Add records a like; returns a conflict error when the user has
	// already liked the review.
	Add(ctx context.Context, reviewID, userID string) error
	// Remove deletes a like; removing a like that does not exist is a no-op.
	Remove(ctx context.Context, reviewID, userID string) error
	// Exists reports whether the user has liked the review.
	Exists(ctx context.Context, reviewID, userID string) (bool, error)
}
