// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package articles

import (
	"context"
	"fmt"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/pkg/pagination"
	"github.com/taibuivan/inkwell/pkg/pointer"
	"github.com/taibuivan/inkwell/pkg/slug"
)

// # Service

// Service implements the article use cases with ownership and visibility
// rules applied on top of the repository.
//
// The cache is optional; a nil cache disables public-article caching without
// changing any authorization behavior.
type Service struct {
	repository Repository
	cache      SlugCache
	logger     Logger
}

// Logger is the minimal structured logging surface the service needs.
type Logger interface {
	Warn(msg string, args ...any)
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repo Repository, cache SlugCache, logger Logger) *Service {
	return &Service{
		repository: repo,
		cache:      cache,
		logger:     logger,
	}
}

// # Owner-Scoped Reads

/*
List returns one page of the caller's own articles, newest first.

Description: The listing is strictly owner-scoped. Other users' articles never
appear, regardless of their visibility.

Parameters:
  - context: context.Context
  - ownerID: string (authenticated caller identity)
  - page: pagination.Params

Returns:
  - []*Article: Page of owned articles ordered by creation time descending
  - pagination.Meta: Page metadata with the owner's total article count
  - error: Storage errors
*/
func (service *Service) List(context context.Context, ownerID string, page pagination.Params) ([]*Article, pagination.Meta, error) {
	items, total, err := service.repository.ListByOwner(context, ownerID, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("article_service_list_failed: %w", err)
	}

	return items, pagination.NewMeta(page.Page, page.Limit, total), nil
}

/*
GetBySlug returns a single article by its public slug, subject to visibility.

Description: Public articles are readable by anyone, including anonymous
callers, and are served read-through from the cache. A private article is
returned only to its owner; every other caller receives the same NotFound an
unknown slug produces, so the slug's existence is never revealed.

Parameters:
  - context: context.Context
  - callerID: string (empty for anonymous callers)
  - articleSlug: string

Returns:
  - *Article: Hydrated entity
  - error: apperr.NotFound or storage errors
*/
func (service *Service) GetBySlug(context context.Context, callerID, articleSlug string) (*Article, error) {

	// Cache holds public articles only, so a hit is safe for any caller.
	if service.cache != nil {
		cached, err := service.cache.GetPublic(context, articleSlug)
		if err != nil {
			// Degraded cache must not take reads down with it.
			service.logger.Warn("article cache read failed", "slug", articleSlug, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	article, err := service.repository.FindBySlug(context, articleSlug)
	if err != nil {
		return nil, err
	}

	if article.IsPublic {
		service.cachePublic(context, article)
		return article, nil
	}

	// Private: only the owner may see it. Everyone else gets the exact
	// NotFound an absent slug produces.
	if callerID != "" && callerID == article.OwnerID {
		return article, nil
	}

	return nil, apperr.NotFound("Article")
}

// # Mutations

/*
Create persists a new article owned by the caller.

Description: The slug may be supplied explicitly or derived from the title.
Either way, uniqueness is enforced atomically by the store's unique index and
a collision surfaces as Conflict.

Parameters:
  - context: context.Context
  - ownerID: string (authenticated caller identity)
  - input: CreateInput

Returns:
  - *Article: Created entity with store-assigned fields hydrated
  - error: apperr.Conflict on a duplicate slug, or storage errors
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Article, error) {
	articleSlug := input.Slug
	if articleSlug == "" {
		articleSlug = slug.From(input.Title)
	}
	if articleSlug == "" {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldSlug,
			Message: "A slug could not be derived from the title",
		})
	}

	article := &Article{
		OwnerID:  ownerID,
		Slug:     articleSlug,
		Title:    input.Title,
		Content:  input.Content,
		IsPublic: input.IsPublic,
	}

	if err := service.repository.Create(context, article); err != nil {
		return nil, err
	}

	if article.IsPublic {
		service.cachePublic(context, article)
	}

	return article, nil
}

/*
Update applies a partial update to an article the caller owns.

Description: Absent fields keep their stored values. The outcome distinguishes
two failure modes deliberately: an id that does not exist is NotFound, while
an id owned by someone else is Forbidden. The slug and the owner are never
mutated.

Parameters:
  - context: context.Context
  - callerID: string (authenticated caller identity)
  - id: int
  - input: UpdateInput

Returns:
  - *Article: Updated entity
  - error: apperr.NotFound, apperr.Forbidden, or storage errors
*/
func (service *Service) Update(context context.Context, callerID string, id int, input UpdateInput) (*Article, error) {
	article, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if article.OwnerID != callerID {
		return nil, apperr.Forbidden("You do not own this article")
	}

	article.Title = pointer.Fallback(input.Title, article.Title)
	article.Content = pointer.Fallback(input.Content, article.Content)
	article.IsPublic = pointer.Fallback(input.IsPublic, article.IsPublic)

	if err := service.repository.Update(context, article); err != nil {
		return nil, err
	}

	// The stored row changed; a stale cache entry could serve old content or,
	// worse, a now-private article. Drop it and let the next public read refill.
	service.invalidate(context, article.Slug)

	return article, nil
}

/*
Delete removes an article the caller owns.

Description: The ownership check and the delete are a single statement, so a
concurrent delete cannot race it. A miss for any reason, unknown id or foreign
owner alike, is reported uniformly as NotFound.

Parameters:
  - context: context.Context
  - callerID: string (authenticated caller identity)
  - id: int

Returns:
  - error: apperr.NotFound or storage errors
*/
func (service *Service) Delete(context context.Context, callerID string, id int) error {
	deletedSlug, err := service.repository.DeleteByIDAndOwner(context, id, callerID)
	if err != nil {
		return err
	}

	service.invalidate(context, deletedSlug)

	return nil
}

// # Cache Helpers

// cachePublic stores a public article in the slug cache, best effort.
func (service *Service) cachePublic(context context.Context, article *Article) {
	if service.cache == nil || !article.IsPublic {
		return
	}
	if err := service.cache.SetPublic(context, article); err != nil {
		service.logger.Warn("article cache write failed", "slug", article.Slug, "error", err)
	}
}

// invalidate drops a slug from the cache, best effort.
func (service *Service) invalidate(context context.Context, articleSlug string) {
	if service.cache == nil {
		return
	}
	if err := service.cache.Invalidate(context, articleSlug); err != nil {
		service.logger.Warn("article cache invalidation failed", "slug", articleSlug, "error", err)
	}
}
