package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/amer1301/bokrecension/pkg/errors"
)

func newLikeTestFixture(t *testing.T) (*LikeRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewLikeRepository(mock)
	return repo, mock
}

func TestLikeRepository_Add_Success(t *testing.T) {
	repo, mock := newLikeTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO review_likes").
		WithArgs(pgxmock.AnyArg(), "r-1", "u-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Add(context.Background(), "r-1", "u-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Add_AlreadyLiked(t *testing.T) {
	repo, mock := newLikeTestFixture(t)
	defer mock.Close()

	// ON CONFLICT DO NOTHING swallows the duplicate; zero rows affected
	// means the like already existed.
	mock.ExpectExec("INSERT INTO review_likes").
		WithArgs(pgxmock.AnyArg(), "r-1", "u-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err := repo.Add(context.Background(), "r-1", "u-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict), "expected ErrConflict, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Remove_Success(t *testing.T) {
	repo, mock := newLikeTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM review_likes").
		WithArgs("r-1", "u-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Remove(context.Background(), "r-1", "u-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Remove_NotLiked_NoError(t *testing.T) {
	repo, mock := newLikeTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM review_likes").
		WithArgs("r-1", "u-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Remove(context.Background(), "r-1", "u-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Exists(t *testing.T) {
	repo, mock := newLikeTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("r-1", "u-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), "r-1", "u-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
