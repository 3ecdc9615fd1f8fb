// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package articles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// RedisSlugCache implements SlugCache using Redis with JSON-encoded values.
type RedisSlugCache struct {
	client *redis.Client
}

// NewSlugCache creates a new Redis-backed SlugCache.
func NewSlugCache(client *redis.Client) *RedisSlugCache {
	return &RedisSlugCache{client: client}
}

func cacheKey(slug string) string {
	return constants.RedisPrefixPublicArticle + slug
}

/*
GetPublic retrieves a cached public article by slug.

Description: A miss is (nil, nil), not an error. A corrupt entry is dropped
and treated as a miss so the caller falls back to the database.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Article: Cached entity, or nil on a miss
  - error: Execution errors
*/
func (cache *RedisSlugCache) GetPublic(context context.Context, slug string) (*Article, error) {
	payload, err := cache.client.Get(context, cacheKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_article_get_failed: %w", err)
	}

	article := &Article{}
	if err := json.Unmarshal(payload, article); err != nil {
		cache.client.Del(context, cacheKey(slug))
		return nil, nil
	}

	return article, nil
}

/*
SetPublic stores a public article under its slug.

Description: Refuses private articles outright. An entry under the public
prefix must always be safe to serve to an anonymous caller.

Parameters:
  - context: context.Context
  - article: *Article

Returns:
  - error: Execution errors, or a refusal for a private article
*/
func (cache *RedisSlugCache) SetPublic(context context.Context, article *Article) error {
	if !article.IsPublic {
		return fmt.Errorf("redis_article_set_refused: article %q is private", article.Slug)
	}

	payload, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("redis_article_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, cacheKey(article.Slug), payload, constants.PublicArticleCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_article_set_failed: %w", err)
	}

	return nil
}

// Invalidate removes the cache entry for slug. Deleting an absent key is a no-op.
func (cache *RedisSlugCache) Invalidate(context context.Context, slug string) error {
	if err := cache.client.Del(context, cacheKey(slug)).Err(); err != nil {
		return fmt.Errorf("redis_article_del_failed: %w", err)
	}

	return nil
}
