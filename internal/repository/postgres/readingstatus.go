package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/amer1301/bokrecension/internal/domain"
	apperrors "github.com/amer1301/bokrecension/pkg/errors"
)

// ReadingStatusRepository implements domain.ReadingStatusRepository
// backed by PostgreSQL.
type ReadingStatusRepository struct {
	db DB
}

// NewReadingStatusRepository creates a new PostgreSQL reading status repository.
func NewReadingStatusRepository(db DB) *ReadingStatusRepository {
	return &ReadingStatusRepository{db: db}
}

const readingStatusColumns = `id, book_id, user_id, status, format, pages_read, created_at, updated_at`

func scanReadingStatus(row pgx.Row) (*domain.ReadingStatus, error) {
	var s domain.ReadingStatus
	err := row.Scan(&s.ID, &s.BookID, &s.UserID, &s.Status, &s.Format, &s.PagesRead, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert inserts a status or replaces the existing one for the same
// (book, user) pair. The returned row reflects whichever happened.
func (r *ReadingStatusRepository) Upsert(ctx context.Context, status *domain.ReadingStatus) error {
	query := `
		INSERT INTO reading_statuses (id, book_id, user_id, status, format, pages_read)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (book_id, user_id)
		DO UPDATE SET
			status = EXCLUDED.status,
			format = EXCLUDED.format,
			pages_read = EXCLUDED.pages_read,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		status.ID, status.BookID, status.UserID, status.Status, status.Format, status.PagesRead,
	).Scan(&status.ID, &status.CreatedAt, &status.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert reading status: %w", err)
	}

	return nil
}

// Get retrieves the status of a book for a user.
func (r *ReadingStatusRepository) Get(ctx context.Context, bookID, userID string) (*domain.ReadingStatus, error) {
	query := `SELECT ` + readingStatusColumns + ` FROM reading_statuses WHERE book_id = $1 AND user_id = $2`

	status, err := scanReadingStatus(r.db.QueryRow(ctx, query, bookID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("reading status", bookID)
		}
		return nil, fmt.Errorf("get reading status: %w", err)
	}

	return status, nil
}

// ListByUser returns all statuses for a user, newest first.
func (r *ReadingStatusRepository) ListByUser(ctx context.Context, userID string) ([]*domain.ReadingStatus, error) {
	query := `SELECT ` + readingStatusColumns + ` FROM reading_statuses WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list reading statuses: %w", err)
	}
	defer rows.Close()

	statuses := make([]*domain.ReadingStatus, 0)
	for rows.Next() {
		status, err := scanReadingStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reading status: %w", err)
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reading statuses: %w", err)
	}

	return statuses, nil
}

// Delete removes a status.
func (r *ReadingStatusRepository) Delete(ctx context.Context, bookID, userID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM reading_statuses WHERE book_id = $1 AND user_id = $2`,
		bookID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete reading status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("reading status", bookID)
	}

	return nil
}
