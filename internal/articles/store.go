// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package articles

import "context"

// # Article Data Access

// Repository defines the data access contract for article rows.
type Repository interface {

	/*
		FindByID returns the article with the given store-assigned id.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *Article: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int) (*Article, error)

	/*
		FindBySlug returns the article with the given public slug.

		Visibility is NOT applied here; the service layer decides who may
		see the result.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Article: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindBySlug(context context.Context, slug string) (*Article, error)

	/*
		ListByOwner returns the owner's articles, newest first.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*Article: Page of articles ordered by creation time descending
		  - int: Total number of articles owned by ownerID
		  - error: Database retrieval failures
	*/
	ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Article, int, error)

	/*
		Create inserts a new article and hydrates its store-assigned fields
		(ID, CreatedAt, UpdatedAt).

		Parameters:
		  - context: context.Context
		  - article: *Article

		Returns:
		  - error: apperr.Conflict on slug collision, or persistence failures
	*/
	Create(context context.Context, article *Article) error

	/*
		Update persists the article's mutable fields (title, content,
		visibility) and refreshes UpdatedAt.

		Parameters:
		  - context: context.Context
		  - article: *Article

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, article *Article) error

	/*
		DeleteByIDAndOwner atomically deletes the article only if it is owned
		by ownerID, returning the slug of the deleted row for cache cleanup.

		A zero-row result, whether the id does not exist or belongs to a
		different owner, is reported uniformly as apperr.NotFound.

		Parameters:
		  - context: context.Context
		  - id: int
		  - ownerID: string

		Returns:
		  - string: Slug of the deleted article
		  - error: apperr.NotFound or persistence failures
	*/
	DeleteByIDAndOwner(context context.Context, id int, ownerID string) (string, error)
}

// # Public Article Cache

// SlugCache is a read-through cache for PUBLIC articles keyed by slug.
//
// # Safety
//
// Implementations must never hold private articles: the service only writes
// public ones, and every mutation invalidates the slug, so a stale entry can
// never widen visibility.
type SlugCache interface {

	// GetPublic returns the cached public article for slug, or (nil, nil)
	// on a cache miss.
	GetPublic(context context.Context, slug string) (*Article, error)

	// SetPublic stores a public article under its slug with the cache TTL.
	SetPublic(context context.Context, article *Article) error

	// Invalidate removes the slug's cache entry, if any.
	Invalidate(context context.Context, slug string) error
}
