package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amer1301/bokrecension/internal/auth"
	"github.com/amer1301/bokrecension/internal/service"
	apperrors "github.com/amer1301/bokrecension/pkg/errors"
)

func authTestService(userRepo *mockUserRepo) *service.UserService {
	jwtManager := auth.NewJWTManager("test-secret-key-for-testing", 15*time.Minute)
	return service.NewUserService(userRepo, jwtManager, handlerTestEventProducer(), handlerTestLogger())
}

func setupAuthRouter(userRepo *mockUserRepo) *chi.Mux {
	handler := NewAuthHandler(authTestService(userRepo), handlerTestLogger())
	r := chi.NewRouter()
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
	})
	return r
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := setupAuthRouter(userRepo)

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	rec := postJSON(t, router, "/api/v1/auth/register",
		`{"name":"Astrid Lind","email":"astrid@example.com","password":"correct horse battery"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	data := dataAsMap(t, decodeResponse(t, rec))
	user := data["user"].(map[string]any)
	assert.Equal(t, "astrid@example.com", user["email"])
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, user, "password_hash")
	tokens := data["tokens"].(map[string]any)
	assert.NotEmpty(t, tokens["accessToken"])
	userRepo.AssertExpectations(t)
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := setupAuthRouter(userRepo)

	rec := postJSON(t, router, "/api/v1/auth/register",
		`{"name":"A","email":"not-an-email","password":"short"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Len(t, resp.Error.Fields, 3)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := setupAuthRouter(userRepo)

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(apperrors.AlreadyExists("user", "email", "astrid@example.com"))

	rec := postJSON(t, router, "/api/v1/auth/register",
		`{"name":"Astrid Lind","email":"astrid@example.com","password":"correct horse battery"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := setupAuthRouter(userRepo)

	userRepo.On("GetByEmail", mock.Anything, "astrid@example.com").
		Return(nil, apperrors.NotFound("user", "astrid@example.com"))

	rec := postJSON(t, router, "/api/v1/auth/login",
		`{"email":"astrid@example.com","password":"wrong password"}`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestAuthHandler_Register_WrongContentType(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := setupAuthRouter(userRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register",
		bytes.NewBufferString("name=Astrid"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
