// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package articles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/database/schema"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// # Article Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// articleColumns is the canonical SELECT column list for content.article.
func articleColumns() string {
	return strings.Join(schema.ContentArticle.Columns(), ", ")
}

// scanArticle hydrates one Article from a row in column order.
func scanArticle(row pgx.Row) (*Article, error) {
	article := &Article{}
	err := row.Scan(
		&article.ID,
		&article.OwnerID,
		&article.Slug,
		&article.Title,
		&article.Content,
		&article.IsPublic,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return article, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Article, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		articleColumns(), schema.ContentArticle.Table, schema.ContentArticle.ID,
	)

	article, err := scanArticle(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Article")
		}
		return nil, dberr.Wrap(err, "find_article_by_id")
	}

	return article, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Article, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		articleColumns(), schema.ContentArticle.Table, schema.ContentArticle.Slug,
	)

	article, err := scanArticle(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Article")
		}
		return nil, dberr.Wrap(err, "find_article_by_slug")
	}

	return article, nil
}

/*
ListByOwner retrieves one page of the owner's articles, newest first.

Description: The total count and the page rows come from two statements on the
same pool. The count may drift by a concurrent write between them, which is
acceptable for pagination metadata.

Parameters:
  - context: context.Context
  - ownerID: string
  - limit: int
  - offset: int

Returns:
  - []*Article: Page ordered by creation time descending, newest first
  - int: Total articles owned by ownerID
  - error: Database errors
*/
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Article, int, error) {
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE %s = $1`,
		schema.ContentArticle.Table, schema.ContentArticle.OwnerID,
	)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_articles_by_owner")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC
		LIMIT $2 OFFSET $3`,
		articleColumns(), schema.ContentArticle.Table, schema.ContentArticle.OwnerID,
		schema.ContentArticle.CreatedAt, schema.ContentArticle.ID,
	)

	rows, err := repository.pool.Query(context, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_articles_by_owner")
	}
	defer rows.Close()

	articles := make([]*Article, 0, limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_article_row")
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_article_rows")
	}

	return articles, total, nil
}

/*
Create inserts a new article row.

Description: Single atomic INSERT. The unique index on slug is the sole
uniqueness authority; a collision is reported as apperr.Conflict with no
partial row left behind.

Parameters:
  - context: context.Context
  - article: *Article

Returns:
  - error: apperr.Conflict on slug collision, or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, article *Article) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`,
		schema.ContentArticle.Table, schema.ContentArticle.OwnerID, schema.ContentArticle.Slug,
		schema.ContentArticle.Title, schema.ContentArticle.Content, schema.ContentArticle.IsPublic,
		schema.ContentArticle.CreatedAt, schema.ContentArticle.UpdatedAt,
		schema.ContentArticle.ID,
	)

	now := time.Now()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	article.UpdatedAt = article.CreatedAt

	err := repository.pool.QueryRow(context, query,
		article.OwnerID,
		article.Slug,
		article.Title,
		article.Content,
		article.IsPublic,
		article.CreatedAt,
		article.UpdatedAt,
	).Scan(&article.ID)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Slug is already taken")
		}
		return dberr.Wrap(err, "create_article")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, article *Article) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4
		WHERE %s = $5`,
		schema.ContentArticle.Table, schema.ContentArticle.Title, schema.ContentArticle.Content,
		schema.ContentArticle.IsPublic, schema.ContentArticle.UpdatedAt,
		schema.ContentArticle.ID,
	)

	article.UpdatedAt = time.Now()

	_, err := repository.pool.Exec(context, query,
		article.Title,
		article.Content,
		article.IsPublic,
		article.UpdatedAt,
		article.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_article")
	}

	return nil
}

/*
DeleteByIDAndOwner deletes an article scoped to its owner in one statement.

Description: The WHERE clause carries both the id and the owner, so ownership
is enforced by the database itself with no check-then-act window. RETURNING
hands back the slug so the caller can evict the cache entry.

Parameters:
  - context: context.Context
  - id: int
  - ownerID: string

Returns:
  - string: Slug of the deleted row
  - error: apperr.NotFound when no row matched, or connectivity errors
*/
func (repository *PostgresRepository) DeleteByIDAndOwner(context context.Context, id int, ownerID string) (string, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND %s = $2
		RETURNING %s`,
		schema.ContentArticle.Table, schema.ContentArticle.ID, schema.ContentArticle.OwnerID,
		schema.ContentArticle.Slug,
	)

	var deletedSlug string
	err := repository.pool.QueryRow(context, query, id, ownerID).Scan(&deletedSlug)
	if err != nil {
		// Zero rows covers both an unknown id and a foreign owner. They must
		// be indistinguishable to the caller.
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("Article")
		}
		return "", dberr.Wrap(err, "delete_article")
	}

	return deletedSlug, nil
}
