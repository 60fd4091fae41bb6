// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"devsocial_backend/internal/feature/profile/domain/entity"
	"devsocial_backend/internal/feature/profile/usecase"
)

const (
	defaultTTL       = 10 * time.Minute
	defaultNamespace = "github:repos"
)

// CachingRepoFinder decorates a RepoFinder with Redis caching.
// Only successful lookups are cached; failures always reach the inner finder.
type CachingRepoFinder struct {
	inner     usecase.RepoFinder
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.RepoFinder = (*CachingRepoFinder)(nil)

// NewCachingRepoFinder decorates inner with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "github:repos".
// A nil rdb disables caching.
func NewCachingRepoFinder(rdb *redis.Client, ttl time.Duration, inner usecase.RepoFinder, namespace string) *CachingRepoFinder {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingRepoFinder{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetRepos checks the cache first and falls back to the inner finder.
func (c *CachingRepoFinder) GetRepos(ctx context.Context, username string) ([]entity.Repo, error) {
	if c.rdb == nil {
		return c.inner.GetRepos(ctx, username)
	}

	key := c.cacheKey(username)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Repo
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && err != redis.Nil {
		slog.Warn("repo cache read failed", "key", key, "error", err)
	}

	// 2) Fallback to GitHub
	out, err := c.inner.GetRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates the key for one username. GitHub logins are case-insensitive.
func (c *CachingRepoFinder) cacheKey(username string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(strings.ToLower(username)))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
