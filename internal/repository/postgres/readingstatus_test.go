package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amer1301/bokrecension/internal/domain"
	apperrors "github.com/amer1301/bokrecension/pkg/errors"
)

func newStatusTestFixture(t *testing.T) (*ReadingStatusRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewReadingStatusRepository(mock)
	return repo, mock
}

func sampleStatus() *domain.ReadingStatus {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.ReadingStatus{
		ID:        "1a7f3c2e-9d4b-4f6a-8e21-5b0c7d9e3f10",
		BookID:    "zyTCAlFPjgYC",
		UserID:    "4f2d81f0-68f8-4c88-9f5e-2f1a9d3b7c01",
		Status:    domain.StatusReading,
		Format:    "paperback",
		PagesRead: 120,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func statusRow(s *domain.ReadingStatus) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "book_id", "user_id", "status", "format", "pages_read", "created_at", "updated_at"}).
		AddRow(s.ID, s.BookID, s.UserID, s.Status, s.Format, s.PagesRead, s.CreatedAt, s.UpdatedAt)
}

func TestReadingStatusRepository_Upsert_Insert(t *testing.T) {
	repo, mock := newStatusTestFixture(t)
	defer mock.Close()

	s := sampleStatus()
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO reading_statuses").
		WithArgs(s.ID, s.BookID, s.UserID, s.Status, s.Format, s.PagesRead).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(s.ID, now, now))

	err := repo.Upsert(context.Background(), s)
	assert.NoError(t, err)
	assert.Equal(t, now, s.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingStatusRepository_Upsert_ReplacesExisting(t *testing.T) {
	repo, mock := newStatusTestFixture(t)
	defer mock.Close()

	s := sampleStatus()
	s.Status = domain.StatusFinished
	s.PagesRead = 304
	created := s.CreatedAt
	updated := created.Add(time.Hour)

	// The conflict path keeps the original row's ID and created_at.
	mock.ExpectQuery("INSERT INTO reading_statuses").
		WithArgs(s.ID, s.BookID, s.UserID, s.Status, s.Format, s.PagesRead).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("existing-row-id", created, updated))

	err := repo.Upsert(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "existing-row-id", s.ID)
	assert.Equal(t, updated, s.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingStatusRepository_Get_Success(t *testing.T) {
	repo, mock := newStatusTestFixture(t)
	defer mock.Close()

	s := sampleStatus()

	mock.ExpectQuery("SELECT .+ FROM reading_statuses WHERE book_id =").
		WithArgs(s.BookID, s.UserID).
		WillReturnRows(statusRow(s))

	got, err := repo.Get(context.Background(), s.BookID, s.UserID)
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingStatusRepository_Get_NotFound(t *testing.T) {
	repo, mock := newStatusTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM reading_statuses WHERE book_id =").
		WithArgs("missing", "u-1").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.Get(context.Background(), "missing", "u-1")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingStatusRepository_ListByUser(t *testing.T) {
	repo, mock := newStatusTestFixture(t)
	defer mock.Close()

	s := sampleStatus()

	mock.ExpectQuery("SELECT .+ FROM reading_statuses WHERE user_id =").
		WithArgs(s.UserID).
		WillReturnRows(statusRow(s))

	statuses, err := repo.ListByUser(context.Background(), s.UserID)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, s.BookID, statuses[0].BookID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingStatusRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newStatusTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM reading_statuses").
		WithArgs("missing", "u-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing", "u-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
