package books

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	bookKeyPrefix   = "book:"
	searchKeyPrefix = "booksearch:"
)

// CachedClient wraps a Client with a Redis read-through cache. Book
// metadata is external and immutable for our purposes, so cache entries
// only expire by TTL.
type CachedClient struct {
	client    *Client
	redis     *redis.Client
	bookTTL   time.Duration
	searchTTL time.Duration
	logger    *slog.Logger
}

// NewCachedClient creates a caching wrapper around a books client.
func NewCachedClient(client *Client, rdb *redis.Client, bookTTL, searchTTL time.Duration, logger *slog.Logger) *CachedClient {
	return &CachedClient{
		client:    client,
		redis:     rdb,
		bookTTL:   bookTTL,
		searchTTL: searchTTL,
		logger:    logger,
	}
}

// GetByID fetches a volume, serving from cache when possible. Cache
// failures degrade to a direct fetch, never to an error.
func (c *CachedClient) GetByID(ctx context.Context, id string) (*Book, error) {
	key := bookKeyPrefix + id

	if data, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		var book Book
		if err := json.Unmarshal(data, &book); err == nil {
			return &book, nil
		}
	} else if err != redis.Nil {
		c.logger.WarnContext(ctx, "book cache read failed",
			slog.String("book_id", id),
			slog.String("error", err.Error()),
		)
	}

	book, err := c.client.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, book, c.bookTTL)

	return book, nil
}

// Search queries volumes, serving repeated queries from cache.
func (c *CachedClient) Search(ctx context.Context, query string, startIndex, maxResults int) (*SearchResult, error) {
	key := fmt.Sprintf("%s%s:%d:%d", searchKeyPrefix, query, startIndex, maxResults)

	if data, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		var result SearchResult
		if err := json.Unmarshal(data, &result); err == nil {
			return &result, nil
		}
	}

	result, err := c.client.Search(ctx, query, startIndex, maxResults)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, result, c.searchTTL)

	return result, nil
}

func (c *CachedClient) store(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "book cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
