package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/amer1301/bokrecension/internal/domain"
	"github.com/amer1301/bokrecension/pkg/pagination"
)

// PageKey identifies one cached page of a book's reviews.
type PageKey struct {
	BookID string
	Page   int
	Limit  int
	Sort   string
}

// KeyFor builds the page key for a book and pagination params.
func KeyFor(bookID string, params pagination.Params) PageKey {
	return PageKey{
		BookID: bookID,
		Page:   params.Page,
		Limit:  params.Limit,
		Sort:   params.Sort,
	}
}

func (k PageKey) params() pagination.Params {
	return pagination.Params{
		Page:   k.Page,
		Limit:  k.Limit,
		Sort:   k.Sort,
		Offset: (k.Page - 1) * k.Limit,
	}
}

// pageEntry is one cached page. flight serializes mutations on the key
// so a rollback can never restore a snapshot taken before an earlier,
// still-unsettled optimistic patch. mu guards data and valid; Peek only
// needs mu, so the optimistic patch is visible while the request is in
// flight.
type pageEntry struct {
	flight sync.Mutex

	mu    sync.RWMutex
	data  *pagination.Result[*domain.Review]
	valid bool
}

// ReviewCache caches pages of reviews and applies mutations
// optimistically: the cached page is patched before the request is
// sent, the pre-mutation snapshot is restored verbatim on failure, and
// the entry is invalidated once the request settles either way, so the
// next read fetches the authoritative state. The optimistic patch is a
// latency hint, never a source of truth.
type ReviewCache struct {
	api    *Client
	viewer domain.Author
	logger *slog.Logger

	mu      sync.Mutex
	entries map[PageKey]*pageEntry
}

// NewReviewCache creates a cache on top of an authenticated client.
// viewer identifies the client's user; it fills the author of
// optimistically created reviews until the server responds.
func NewReviewCache(api *Client, viewer domain.Author, logger *slog.Logger) *ReviewCache {
	return &ReviewCache{
		api:     api,
		viewer:  viewer,
		logger:  logger,
		entries: make(map[PageKey]*pageEntry),
	}
}

func (c *ReviewCache) entry(key PageKey) *pageEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &pageEntry{}
		c.entries[key] = e
	}
	return e
}

// GetPage returns the cached page if it is still valid, otherwise it
// fetches from the server and caches the result. It waits for any
// in-flight mutation on the key to settle first.
func (c *ReviewCache) GetPage(ctx context.Context, key PageKey) (*pagination.Result[*domain.Review], error) {
	e := c.entry(key)
	e.flight.Lock()
	defer e.flight.Unlock()

	e.mu.RLock()
	if e.valid {
		page := copyPage(e.data)
		e.mu.RUnlock()
		return page, nil
	}
	e.mu.RUnlock()

	result, err := c.api.ListReviews(ctx, key.BookID, key.params())
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.data = copyPage(result)
	e.valid = true
	e.mu.Unlock()

	return result, nil
}

// Peek returns the current cached page without fetching or waiting,
// including any optimistic patch or restored snapshot. ok is false when
// the key has never been loaded.
func (c *ReviewCache) Peek(key PageKey) (*pagination.Result[*domain.Review], bool) {
	e := c.entry(key)
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.data == nil {
		return nil, false
	}
	return copyPage(e.data), true
}

// Invalidate drops the cached page for a key, forcing the next GetPage
// to fetch.
func (c *ReviewCache) Invalidate(key PageKey) {
	e := c.entry(key)
	e.mu.Lock()
	e.valid = false
	e.mu.Unlock()
}

// Like likes a review, optimistically bumping its like count on the
// cached page while the request is in flight.
func (c *ReviewCache) Like(ctx context.Context, key PageKey, reviewID string) (*domain.Review, error) {
	return c.mutate(ctx, key, func(page *pagination.Result[*domain.Review]) {
		patchLike(page, reviewID, true)
	}, func(ctx context.Context) (*domain.Review, error) {
		return c.api.LikeReview(ctx, reviewID)
	})
}

// Unlike removes the viewer's like, optimistically dropping the count.
func (c *ReviewCache) Unlike(ctx context.Context, key PageKey, reviewID string) (*domain.Review, error) {
	return c.mutate(ctx, key, func(page *pagination.Result[*domain.Review]) {
		patchLike(page, reviewID, false)
	}, func(ctx context.Context) (*domain.Review, error) {
		return c.api.UnlikeReview(ctx, reviewID)
	})
}

// Create posts a review, optimistically splicing a placeholder into the
// top of the cached page. The placeholder has no ID; the entry is
// invalidated on settlement, so it never outlives the request.
func (c *ReviewCache) Create(ctx context.Context, key PageKey, input domain.CreateReviewInput) (*domain.Review, error) {
	placeholder := &domain.Review{
		BookID:    input.BookID,
		Author:    c.viewer,
		Rating:    input.Rating,
		Text:      input.Text,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	return c.mutate(ctx, key, func(page *pagination.Result[*domain.Review]) {
		page.Data = append([]*domain.Review{placeholder}, page.Data...)
		page.Total++
	}, func(ctx context.Context) (*domain.Review, error) {
		return c.api.CreateReview(ctx, input)
	})
}

// Delete removes a review, optimistically splicing it out of the
// cached page.
func (c *ReviewCache) Delete(ctx context.Context, key PageKey, reviewID string) error {
	_, err := c.mutate(ctx, key, func(page *pagination.Result[*domain.Review]) {
		kept := page.Data[:0]
		for _, r := range page.Data {
			if r.ID != reviewID {
				kept = append(kept, r)
			}
		}
		if len(kept) < len(page.Data) {
			page.Total--
		}
		page.Data = kept
	}, func(ctx context.Context) (*domain.Review, error) {
		return nil, c.api.DeleteReview(ctx, reviewID)
	})
	return err
}

// mutate runs one optimistic mutation against a page key: snapshot,
// patch, send, then settle. The flight lock is held for the whole
// sequence, so a second mutation on the same key waits for this one's
// settlement before taking its own snapshot.
func (c *ReviewCache) mutate(
	ctx context.Context,
	key PageKey,
	patch func(*pagination.Result[*domain.Review]),
	send func(context.Context) (*domain.Review, error),
) (*domain.Review, error) {
	e := c.entry(key)
	e.flight.Lock()
	defer e.flight.Unlock()

	e.mu.Lock()
	snapshot := copyPage(e.data)
	if e.data != nil {
		patch(e.data)
	}
	e.mu.Unlock()

	review, err := send(ctx)

	e.mu.Lock()
	if err != nil {
		e.data = snapshot
	}
	e.valid = false
	e.mu.Unlock()

	if err != nil {
		c.logger.WarnContext(ctx, "optimistic mutation rolled back",
			slog.String("book_id", key.BookID),
			slog.Int("page", key.Page),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return review, nil
}

// patchLike flips the liked flag and adjusts the count for one review
// on the page. A review outside the page leaves the page untouched.
func patchLike(page *pagination.Result[*domain.Review], reviewID string, liked bool) {
	for _, r := range page.Data {
		if r.ID != reviewID {
			continue
		}
		if liked && !r.IsLikedByUser {
			r.IsLikedByUser = true
			r.LikesCount++
		} else if !liked && r.IsLikedByUser {
			r.IsLikedByUser = false
			r.LikesCount--
		}
		return
	}
}

// copyPage deep-copies a page so snapshots and returned values are
// isolated from later patches. Copying nil yields nil.
func copyPage(page *pagination.Result[*domain.Review]) *pagination.Result[*domain.Review] {
	if page == nil {
		return nil
	}
	clone := *page
	clone.Data = make([]*domain.Review, len(page.Data))
	for i, r := range page.Data {
		rc := *r
		clone.Data[i] = &rc
	}
	return &clone
}
