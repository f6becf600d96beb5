// Package books looks up book metadata from the Google Books volumes
// API.
package books

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	apperrors "github.com/amer1301/bokrecension/pkg/errors"
	"github.com/amer1301/bokrecension/pkg/httpclient"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// HTTPDoer is the interface for executing HTTP requests. Both
// httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Book holds the subset of volume metadata the application uses.
type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	PublishedDate string   `json:"publishedDate"`
	PageCount     int      `json:"pageCount"`
	Categories    []string `json:"categories"`
	Thumbnail     string   `json:"thumbnail"`
}

// SearchResult is one page of volume search hits.
type SearchResult struct {
	TotalItems int    `json:"totalItems"`
	Items      []Book `json:"items"`
}

// volume mirrors the wire format of a Google Books volume.
type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		Description   string   `json:"description"`
		PublishedDate string   `json:"publishedDate"`
		PageCount     int      `json:"pageCount"`
		Categories    []string `json:"categories"`
		ImageLinks    struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

type searchResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

// Client fetches book metadata over HTTP.
type Client struct {
	http    HTTPDoer
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// NewClient creates a new Google Books client. baseURL may be empty to
// use the public API endpoint; apiKey may be empty for unauthenticated
// quota.
func NewClient(doer HTTPDoer, baseURL, apiKey string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		http:    doer,
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

// Search queries volumes matching the free-text query.
func (c *Client) Search(ctx context.Context, query string, startIndex, maxResults int) (*SearchResult, error) {
	if query == "" {
		return nil, apperrors.InvalidInput("query must not be empty")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("maxResults", strconv.Itoa(maxResults))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	var resp searchResponse
	if err := c.getJSON(ctx, c.baseURL+"/volumes?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	result := &SearchResult{
		TotalItems: resp.TotalItems,
		Items:      make([]Book, 0, len(resp.Items)),
	}
	for _, v := range resp.Items {
		result.Items = append(result.Items, toBook(v))
	}

	return result, nil
}

// GetByID fetches a single volume by its Google Books ID.
func (c *Client) GetByID(ctx context.Context, id string) (*Book, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("book id must not be empty")
	}

	u := c.baseURL + "/volumes/" + url.PathEscape(id)
	if c.apiKey != "" {
		u += "?key=" + url.QueryEscape(c.apiKey)
	}

	var v volume
	if err := c.getJSON(ctx, u, &v); err != nil {
		return nil, err
	}

	book := toBook(v)
	return &book, nil
}

func (c *Client) getJSON(ctx context.Context, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("google books request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, "google-books")
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode google books response: %w", err)
	}

	return nil
}

func toBook(v volume) Book {
	return Book{
		ID:            v.ID,
		Title:         v.VolumeInfo.Title,
		Authors:       v.VolumeInfo.Authors,
		Description:   v.VolumeInfo.Description,
		PublishedDate: v.VolumeInfo.PublishedDate,
		PageCount:     v.VolumeInfo.PageCount,
		Categories:    v.VolumeInfo.Categories,
		Thumbnail:     v.VolumeInfo.ImageLinks.Thumbnail,
	}
}
