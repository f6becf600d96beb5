package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amer1301/bokrecension/internal/books"
	apperrors "github.com/amer1301/bokrecension/pkg/errors"
	"github.com/amer1301/bokrecension/pkg/httputil"
)

const maxSearchResults = 40

// BookLookup is the subset of the books client used by the handler.
// Both books.Client and books.CachedClient satisfy this.
type BookLookup interface {
	Search(ctx context.Context, query string, startIndex, maxResults int) (*books.SearchResult, error)
	GetByID(ctx context.Context, id string) (*books.Book, error)
}

// BooksHandler proxies book metadata lookups.
type BooksHandler struct {
	books  BookLookup
	logger *slog.Logger
}

// NewBooksHandler creates a new books HTTP handler.
func NewBooksHandler(lookup BookLookup, logger *slog.Logger) *BooksHandler {
	return &BooksHandler{books: lookup, logger: logger}
}

// Search handles GET /api/v1/books?q=...
func (h *BooksHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("query parameter q is required"), h.logger)
		return
	}

	startIndex := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("startIndex")); err == nil && v > 0 {
		startIndex = v
	}
	maxResults := 10
	if v, err := strconv.Atoi(r.URL.Query().Get("maxResults")); err == nil && v > 0 && v <= maxSearchResults {
		maxResults = v
	}

	result, err := h.books.Search(r.Context(), query, startIndex, maxResults)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Get handles GET /api/v1/books/{bookId}
func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookId")

	book, err := h.books.GetByID(r.Context(), bookID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: book})
}
