package domain

import (
	"context"
	"time"
)

// Reading status values.
const (
	StatusWantToRead = "want_to_read"
	StatusReading    = "reading"
	StatusFinished   = "finished"
)

// ReadingStatus tracks where a user is with a book. PagesRead drives
// the client's progress display against the book's page count.
type ReadingStatus struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
	Format    string    `json:"format,omitempty"`
	PagesRead int       `json:"pagesRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetReadingStatusInput is the payload for setting a reading status.
type SetReadingStatusInput struct {
	BookID    string `json:"bookId" validate:"required,max=64"`
	Status    string `json:"status" validate:"required,oneof=want_to_read reading finished"`
	Format    string `json:"format" validate:"omitempty,max=32"`
	PagesRead int    `json:"pagesRead" validate:"gte=0"`
}

// ReadingStatusRepository defines persistence operations for reading statuses.
type ReadingStatusRepository interface {
	// Upsert inserts a status or replaces the existing one for the
	// same (book, user) pair.
	Upsert(ctx context.Context, status *ReadingStatus) error
	// Get retrieves the status of a book for a user.
	Get(ctx context.Context, bookID, userID string) (*ReadingStatus, error)
	// ListByUser returns all statuses for a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]*ReadingStatus, error)
	// Delete removes a status.
	Delete(ctx context.Context, bookID, userID string) error
}
