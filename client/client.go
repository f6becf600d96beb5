// Package client is a typed Go client for the bokrecension HTTP API.
// It is consumed by the seed tool and by front-end adapters; ReviewCache
// builds on it to add optimistic page caching for review lists.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/amer1301/bokrecension/internal/domain"
	"github.com/amer1301/bokrecension/pkg/httputil"
	"github.com/amer1301/bokrecension/pkg/pagination"
)

// HTTPDoer is the interface for executing HTTP requests. Both
// httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Session is the authentication payload returned by register and login.
type Session struct {
	User   *domain.User      `json:"user"`
	Tokens *domain.TokenPair `json:"tokens"`
}

// APIError is a non-2xx response decoded from the API's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// Client calls the bokrecension API. The zero value is not usable;
// construct one with New. Credentials are held per Client instance, not
// in process-wide state; WithToken derives an authenticated copy.
type Client struct {
	http    HTTPDoer
	baseURL string
	token   string
	logger  *slog.Logger
}

// New creates an API client for the given base URL, e.g.
// "http://localhost:8080".
func New(doer HTTPDoer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:    doer,
		baseURL: baseURL,
		logger:  logger,
	}
}

// WithToken returns a copy of the client that authenticates requests
// with the given bearer token. The receiver is not modified.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Register creates a new account and returns the session for it.
func (c *Client) Register(ctx context.Context, input domain.RegisterInput) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", input, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, input domain.LoginInput) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", input, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserStats returns aggregate review statistics for a user.
func (c *Client) UserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	var stats domain.UserStats
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/"+url.PathEscape(userID)+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListReviews fetches one page of a book's reviews. The server derives
// like counts and the liked-by-viewer flag from the caller's token.
func (c *Client) ListReviews(ctx context.Context, bookID string, params pagination.Params) (*pagination.Result[*domain.Review], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("limit", strconv.Itoa(params.Limit))
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}

	path := "/api/v1/books/" + url.PathEscape(bookID) + "/reviews?" + q.Encode()

	var result pagination.Result[*domain.Review]
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateReview posts a new review.
func (c *Client) CreateReview(ctx context.Context, input domain.CreateReviewInput) (*domain.Review, error) {
	var review domain.Review
	if err := c.do(ctx, http.MethodPost, "/api/v1/reviews", input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateReview edits the rating and text of an owned review.
func (c *Client) UpdateReview(ctx context.Context, reviewID string, input domain.UpdateReviewInput) (*domain.Review, error) {
	var review domain.Review
	if err := c.do(ctx, http.MethodPut, "/api/v1/reviews/"+url.PathEscape(reviewID), input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes an owned review and its likes.
func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/reviews/"+url.PathEscape(reviewID), nil, nil)
}

// LikeReview likes a review and returns it with a fresh like count.
// Liking an already-liked review fails with a conflict APIError.
func (c *Client) LikeReview(ctx context.Context, reviewID string) (*domain.Review, error) {
	var review domain.Review
	if err := c.do(ctx, http.MethodPost, "/api/v1/reviews/"+url.PathEscape(reviewID)+"/like", nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// UnlikeReview removes the caller's like and returns the review with a
// fresh like count. Unliking a review that was never liked is a no-op.
func (c *Client) UnlikeReview(ctx context.Context, reviewID string) (*domain.Review, error) {
	var review domain.Review
	if err := c.do(ctx, http.MethodDelete, "/api/v1/reviews/"+url.PathEscape(reviewID)+"/like", nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// SetReadingStatus creates or replaces the caller's status for a book.
func (c *Client) SetReadingStatus(ctx context.Context, input domain.SetReadingStatusInput) (*domain.ReadingStatus, error) {
	var status domain.ReadingStatus
	if err := c.do(ctx, http.MethodPut, "/api/v1/reading-status", input, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// do executes one request against the API, decoding the data half of
// the response envelope into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = new(bytes.Buffer)
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Code: "UNKNOWN"}

	var envelope struct {
		Error *httputil.ErrorResponse `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		apiErr.Fields = envelope.Error.Fields
	}

	return apiErr
}
