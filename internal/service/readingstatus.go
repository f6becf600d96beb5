package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amer1301/bokrecension/internal/domain"
	"github.com/amer1301/bokrecension/internal/event"
)

// ReadingStatusService handles reading status upserts and lookups.
type ReadingStatusService struct {
	statuses domain.ReadingStatusRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewReadingStatusService creates a new reading status service.
func NewReadingStatusService(statuses domain.ReadingStatusRepository, producer *event.Producer, logger *slog.Logger) *ReadingStatusService {
	return &ReadingStatusService{
		statuses: statuses,
		producer: producer,
		logger:   logger,
	}
}

// Set creates or replaces the caller's status for a book.
func (s *ReadingStatusService) Set(ctx context.Context, userID string, input domain.SetReadingStatusInput) (*domain.ReadingStatus, error) {
	status := &domain.ReadingStatus{
		ID:        uuid.New().String(),
		BookID:    input.BookID,
		UserID:    userID,
		Status:    input.Status,
		Format:    input.Format,
		PagesRead: input.PagesRead,
	}

	if err := s.statuses.Upsert(ctx, status); err != nil {
		return nil, err
	}

	if err := s.producer.PublishReadingStatusSet(ctx, status); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish reading_status.set event",
			slog.String("book_id", status.BookID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "reading status set",
		slog.String("book_id", status.BookID),
		slog.String("status", status.Status),
	)

	return status, nil
}

// Get returns the caller's status for a book.
func (s *ReadingStatusService) Get(ctx context.Context, bookID, userID string) (*domain.ReadingStatus, error) {
	return s.statuses.Get(ctx, bookID, userID)
}

// ListByUser returns all of the caller's statuses, newest first.
func (s *ReadingStatusService) ListByUser(ctx context.Context, userID string) ([]*domain.ReadingStatus, error) {
	return s.statuses.ListByUser(ctx, userID)
}

// Delete removes the caller's status for a book.
func (s *ReadingStatusService) Delete(ctx context.Context, bookID, userID string) error {
	return s.statuses.Delete(ctx, bookID, userID)
}
