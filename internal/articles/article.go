// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package articles implements the ownership-scoped publishing domain of Inkwell.

Every article belongs to exactly one owner. Mutations succeed only for the
owning identity, and a private article is visible only to its owner; to
anyone else it is indistinguishable from an article that does not exist.

# Architecture

  - Service: Authorization and visibility rules layered over CRUD.
  - Repository: Abstracted interface for Postgres rows.
  - SlugCache: Optional Redis read-through cache for public articles.
*/
package articles

import "time"

// # Domain Entities

// Article is a published or draft piece of writing.
//
// The owner is set at creation from the acting identity and is immutable.
// The slug is the article's public, globally unique key.
type Article struct {
	ID        int       `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateInput holds the caller-supplied fields for a new article.
//
// Slug is optional: when empty, one is generated from the title.
type CreateInput struct {
	Slug     string
	Title    string
	Content  string
	IsPublic bool
}

// UpdateInput holds a partial update. A nil field keeps the existing value.
//
// The slug and the owner are immutable after creation.
type UpdateInput struct {
	Title    *string
	Content  *string
	IsPublic *bool
}

// # Field Identifiers

// Global field names for validation in the articles domain.
const (
	FieldSlug    = "slug"
	FieldTitle   = "title"
	FieldContent = "content"
)

// # Content Constraints

const (
	// TitleMaxLength bounds article titles.
	TitleMaxLength = 200

	// SlugMaxLength bounds slugs, generated or explicit.
	SlugMaxLength = 200
)
