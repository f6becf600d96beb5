package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amer1301/bokrecension/internal/domain"
	"github.com/amer1301/bokrecension/internal/event"
	"github.com/amer1301/bokrecension/internal/service"
	"github.com/amer1301/bokrecension/pkg/httputil"
	pkgkafka "github.com/amer1301/bokrecension/pkg/kafka"
	"github.com/amer1301/bokrecension/pkg/middleware"
	"github.com/amer1301/bokrecension/pkg/pagination"
)

const (
	testUserID   = "550e8400-e29b-41d4-a716-446655440001"
	testOtherID  = "550e8400-e29b-41d4-a716-446655440002"
	testReviewID = "550e8400-e29b-41d4-a716-446655440003"
	testBookID   = "zyTCAlFPjgYC"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) Stats(ctx context.Context, id string) (*domain.UserStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id, viewerID string) (*domain.Review, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepo) ListByBook(ctx context.Context, bookID, viewerID string, params pagination.Params) ([]*domain.Review, int, error) {
	args := m.Called(ctx, bookID, viewerID, params)
	return args.Get(0).([]*domain.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepo) ListByUser(ctx context.Context, userID, viewerID string, params pagination.Params) ([]*domain.Review, int, error) {
	args := m.Called(ctx, userID, viewerID, params)
	return args.Get(0).([]*domain.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockLikeRepo struct {
	mock.Mock
}

func (m *mockLikeRepo) Add(ctx context.Context, reviewID, userID string) error {
	args := m.Called(ctx, reviewID, userID)
	return args.Error(0)
}

func (m *mockLikeRepo) Remove(ctx context.Context, reviewID, userID string) error {
	args := m.Called(ctx, reviewID, userID)
	return args.Error(0)
}

func (m *mockLikeRepo) Exists(ctx context.Context, reviewID, userID string) (bool, error) {
	args := m.Called(ctx, reviewID, userID)
	return args.Bool(0), args.Error(1)
}

type mockStatusRepo struct {
	mock.Mock
}

func (m *mockStatusRepo) Upsert(ctx context.Context, status *domain.ReadingStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *mockStatusRepo) Get(ctx context.Context, bookID, userID string) (*domain.ReadingStatus, error) {
	args := m.Called(ctx, bookID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReadingStatus), args.Error(1)
}

func (m *mockStatusRepo) ListByUser(ctx context.Context, userID string) ([]*domain.ReadingStatus, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*domain.ReadingStatus), args.Error(1)
}

func (m *mockStatusRepo) Delete(ctx context.Context, bookID, userID string) error {
	args := m.Called(ctx, bookID, userID)
	return args.Error(0)
}

// ============================================================================
// Test Helpers
// ============================================================================

func handlerTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func handlerTestEventProducer() *event.Producer {
	logger := handlerTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:19092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func reviewTestService(reviews *mockReviewRepo, likes *mockLikeRepo) *service.ReviewService {
	return service.NewReviewService(reviews, likes, handlerTestEventProducer(), handlerTestLogger())
}

// fakeTokenValidator returns a middleware.TokenValidator that always
// succeeds and injects the given userID into the request context.
func fakeTokenValidator(userID string) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		return &middleware.Claims{UserID: userID, Email: "test@example.com"}, nil
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

// dataAsMap re-marshals resp.Data so tests can assert on the JSON shape.
func dataAsMap(t *testing.T, resp httputil.Response) map[string]any {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}
