package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smashhub/smashhub-server/models"
)

// Client wraps the redis connection used for winner-board caching. A nil
// *Client is a valid no-op cache, so the server runs fine without redis.
type Client struct {
	rdb *redis.Client
}

// Connect dials redis from a URL. An empty URL disables caching.
func Connect(url string) (*Client, error) {
	if url == "" {
		slog.Info("redis not configured, summary caching disabled")
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

const summaryTTL = 30 * time.Second

func summaryKey(clubID, date string) string {
	return fmt.Sprintf("summary:%s:%s", clubID, date)
}

// GetSummary returns a cached winner-board summary, or nil on miss.
func (c *Client) GetSummary(ctx context.Context, clubID, date string) *models.DecoratedSummary {
	if c == nil || c.rdb == nil {
		return nil
	}
	data, err := c.rdb.Get(ctx, summaryKey(clubID, date)).Bytes()
	if err != nil {
		return nil
	}
	var summary models.DecoratedSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil
	}
	return &summary
}

// SetSummary stores a winner-board summary with a short TTL. Failures are
// logged and ignored: the cache is an optimization, not a source of truth.
func (c *Client) SetSummary(ctx context.Context, summary *models.DecoratedSummary) {
	if c == nil || c.rdb == nil || summary == nil {
		return
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, summaryKey(summary.ClubID, summary.Date), data, summaryTTL).Err(); err != nil {
		slog.Warn("failed to cache summary", slog.Any("error", err))
	}
}

// InvalidateSummary drops the cached entry after a summary update.
func (c *Client) InvalidateSummary(ctx context.Context, clubID, date string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, summaryKey(clubID, date)).Err(); err != nil {
		slog.Warn("failed to invalidate summary cache", slog.Any("error", err))
	}
}
