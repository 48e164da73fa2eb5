// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache for public API responses.
// Encoded JSON for the blog and project listing endpoints is stored in
// Valkey so repeat requests skip the database entirely. Admin mutations
// invalidate the affected keys.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached responses.
	responseKeyPrefix = "resp:"

	// DefaultResponseTTL is how long an encoded response stays cached.
	DefaultResponseTTL = 5 * time.Minute
)

// ResponseCache manages public API response caching in Valkey.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body. Returns false on miss. Cache
// errors degrade to a miss so the handler falls through to the database.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores an encoded response body with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if err := rc.client.Set(ctx, responseKeyPrefix+key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single cached response.
func (rc *ResponseCache) Invalidate(ctx context.Context, key string) {
	if err := rc.client.Del(ctx, responseKeyPrefix+key).Err(); err != nil {
		slog.Warn("response cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("response cache invalidated", "key", key)
}

// InvalidatePosts clears every cached blog endpoint. Called after any
// post mutation, since list pages and the mutated post all change.
func (rc *ResponseCache) InvalidatePosts(ctx context.Context) {
	rc.invalidatePrefix(ctx, "posts")
}

// InvalidateProjects clears every cached project endpoint.
func (rc *ResponseCache) InvalidateProjects(ctx context.Context) {
	rc.invalidatePrefix(ctx, "projects")
}

func (rc *ResponseCache) invalidatePrefix(ctx context.Context, prefix string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, responseKeyPrefix+prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("response cache cleared", "prefix", prefix, "deleted", deleted)
	}
}

// PostsKey returns the cache key for the full published post list.
func PostsKey() string { return "posts" }

// RecentPostsKey returns the cache key for the recent-posts endpoint at
// the given page size.
func RecentPostsKey(limit int) string { return fmt.Sprintf("posts:recent:%d", limit) }

// PostKey returns the cache key for a single post by slug.
func PostKey(slug string) string { return "posts:" + slug }

// ProjectsKey returns the cache key for the full project list.
func ProjectsKey() string { return "projects" }

// FeaturedProjectsKey returns the cache key for the featured-projects endpoint.
func FeaturedProjectsKey() string { return "projects:featured" }

// ProjectKey returns the cache key for a single project by ID.
func ProjectKey(id string) string { return "projects:" + id }
