// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package articles_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/articles"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/pkg/pagination"
	"github.com/taibuivan/inkwell/pkg/pointer"
)

// # Test Doubles

// memoryRepository is an in-memory Repository with the same atomic slug and
// ownership semantics as the Postgres implementation.
type memoryRepository struct {
	articles map[int]*articles.Article
	nextID   int
	failing  bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{articles: make(map[int]*articles.Article), nextID: 1}
}

func (repo *memoryRepository) FindByID(_ context.Context, id int) (*articles.Article, error) {
	if repo.failing {
		return nil, apperr.Internal(errors.New("connection refused"))
	}
	article, exists := repo.articles[id]
	if !exists {
		return nil, apperr.NotFound("Article")
	}
	found := *article
	return &found, nil
}

func (repo *memoryRepository) FindBySlug(_ context.Context, slug string) (*articles.Article, error) {
	if repo.failing {
		return nil, apperr.Internal(errors.New("connection refused"))
	}
	for _, article := range repo.articles {
		if article.Slug == slug {
			found := *article
			return &found, nil
		}
	}
	return nil, apperr.NotFound("Article")
}

func (repo *memoryRepository) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*articles.Article, int, error) {
	if repo.failing {
		return nil, 0, apperr.Internal(errors.New("connection refused"))
	}

	owned := make([]*articles.Article, 0)
	for id := repo.nextID - 1; id >= 1; id-- {
		article, exists := repo.articles[id]
		if exists && article.OwnerID == ownerID {
			found := *article
			owned = append(owned, &found)
		}
	}

	total := len(owned)
	if offset >= total {
		return []*articles.Article{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return owned[offset:end], total, nil
}

func (repo *memoryRepository) Create(_ context.Context, article *articles.Article) error {
	if repo.failing {
		return apperr.Internal(errors.New("connection refused"))
	}
	for _, existing := range repo.articles {
		if existing.Slug == article.Slug {
			return apperr.Conflict("Slug is already taken")
		}
	}
	article.ID = repo.nextID
	repo.nextID++
	now := time.Now()
	article.CreatedAt = now
	article.UpdatedAt = now
	stored := *article
	repo.articles[article.ID] = &stored
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, article *articles.Article) error {
	if repo.failing {
		return apperr.Internal(errors.New("connection refused"))
	}
	article.UpdatedAt = time.Now()
	stored := *article
	repo.articles[article.ID] = &stored
	return nil
}

func (repo *memoryRepository) DeleteByIDAndOwner(_ context.Context, id int, ownerID string) (string, error) {
	if repo.failing {
		return "", apperr.Internal(errors.New("connection refused"))
	}
	article, exists := repo.articles[id]
	if !exists || article.OwnerID != ownerID {
		return "", apperr.NotFound("Article")
	}
	delete(repo.articles, id)
	return article.Slug, nil
}

// memorySlugCache records every cache interaction for assertions.
type memorySlugCache struct {
	entries      map[string]*articles.Article
	setCalls     []string
	invalidated  []string
	rejectedSets []string
}

func newMemorySlugCache() *memorySlugCache {
	return &memorySlugCache{entries: make(map[string]*articles.Article)}
}

func (cache *memorySlugCache) GetPublic(_ context.Context, slug string) (*articles.Article, error) {
	article, exists := cache.entries[slug]
	if !exists {
		return nil, nil
	}
	found := *article
	return &found, nil
}

func (cache *memorySlugCache) SetPublic(_ context.Context, article *articles.Article) error {
	if !article.IsPublic {
		cache.rejectedSets = append(cache.rejectedSets, article.Slug)
		return errors.New("refused private article")
	}
	cache.setCalls = append(cache.setCalls, article.Slug)
	stored := *article
	cache.entries[article.Slug] = &stored
	return nil
}

func (cache *memorySlugCache) Invalidate(_ context.Context, slug string) error {
	cache.invalidated = append(cache.invalidated, slug)
	delete(cache.entries, slug)
	return nil
}

// discardLogger satisfies the service's logging contract without output.
type discardLogger struct{}

func (discardLogger) Warn(string, ...any) {}

func newTestService() (*articles.Service, *memoryRepository, *memorySlugCache) {
	repo := newMemoryRepository()
	cache := newMemorySlugCache()
	return articles.NewService(repo, cache, discardLogger{}), repo, cache
}

func mustCreate(t *testing.T, service *articles.Service, ownerID string, input articles.CreateInput) *articles.Article {
	t.Helper()
	article, err := service.Create(context.Background(), ownerID, input)
	require.NoError(t, err)
	return article
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an application error, got %v", err)
	return appError.HTTPStatus
}

// # Creation

func TestCreate_DerivesSlugFromTitle(t *testing.T) {
	service, _, _ := newTestService()

	article := mustCreate(t, service, "owner-1", articles.CreateInput{
		Title:   "Why Go Maps Are Not Ordered",
		Content: "Because iteration order is randomized.",
	})

	assert.Equal(t, "why-go-maps-are-not-ordered", article.Slug)
	assert.Equal(t, "owner-1", article.OwnerID)
	assert.NotZero(t, article.ID)
}

func TestCreate_ExplicitSlugWins(t *testing.T) {
	service, _, _ := newTestService()

	article := mustCreate(t, service, "owner-1", articles.CreateInput{
		Slug:    "custom-slug",
		Title:   "A Completely Different Title",
		Content: "body",
	})

	assert.Equal(t, "custom-slug", article.Slug)
}

func TestCreate_DuplicateSlugConflicts(t *testing.T) {
	service, _, _ := newTestService()

	mustCreate(t, service, "owner-1", articles.CreateInput{Title: "Same Title", Content: "a"})

	_, err := service.Create(context.Background(), "owner-2", articles.CreateInput{
		Title:   "Same Title",
		Content: "b",
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestCreate_UnsluggableTitleRejected(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Create(context.Background(), "owner-1", articles.CreateInput{
		Title:   "???",
		Content: "body",
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestCreate_PublicArticleIsCached(t *testing.T) {
	service, _, cache := newTestService()

	mustCreate(t, service, "owner-1", articles.CreateInput{
		Title:    "Public Piece",
		Content:  "body",
		IsPublic: true,
	})

	assert.Contains(t, cache.setCalls, "public-piece")
}

func TestCreate_PrivateArticleNeverCached(t *testing.T) {
	service, _, cache := newTestService()

	mustCreate(t, service, "owner-1", articles.CreateInput{
		Title:   "Private Piece",
		Content: "body",
	})

	assert.Empty(t, cache.setCalls)
	assert.Empty(t, cache.entries)
}

// # Listing

func TestList_OnlyOwnArticles(t *testing.T) {
	service, _, _ := newTestService()

	mustCreate(t, service, "alice", articles.CreateInput{Title: "Alice One", Content: "a"})
	mustCreate(t, service, "bob", articles.CreateInput{Title: "Bob Public", Content: "b", IsPublic: true})
	mustCreate(t, service, "alice", articles.CreateInput{Title: "Alice Two", Content: "c"})

	items, meta, err := service.List(context.Background(), "alice", pagination.Params{Page: 1, Limit: 20})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, meta.Total)
	for _, item := range items {
		assert.Equal(t, "alice", item.OwnerID)
	}
}

func TestList_NewestFirstAndPaged(t *testing.T) {
	service, _, _ := newTestService()

	mustCreate(t, service, "alice", articles.CreateInput{Title: "Oldest", Content: "a"})
	mustCreate(t, service, "alice", articles.CreateInput{Title: "Middle", Content: "b"})
	mustCreate(t, service, "alice", articles.CreateInput{Title: "Newest", Content: "c"})

	firstPage, meta, err := service.List(context.Background(), "alice", pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, firstPage, 2)
	assert.Equal(t, "Newest", firstPage[0].Title)
	assert.Equal(t, "Middle", firstPage[1].Title)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)

	secondPage, _, err := service.List(context.Background(), "alice", pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, secondPage, 1)
	assert.Equal(t, "Oldest", secondPage[0].Title)
}

// # Visibility

func TestGetBySlug_PublicReadableByAnyone(t *testing.T) {
	service, _, _ := newTestService()

	created := mustCreate(t, service, "alice", articles.CreateInput{
		Title:    "Open Post",
		Content:  "body",
		IsPublic: true,
	})

	for _, callerID := range []string{"", "alice", "bob"} {
		article, err := service.GetBySlug(context.Background(), callerID, created.Slug)
		require.NoError(t, err, "caller %q", callerID)
		assert.Equal(t, created.ID, article.ID)
	}
}

func TestGetBySlug_PrivateOnlyForOwner(t *testing.T) {
	service, _, _ := newTestService()

	created := mustCreate(t, service, "alice", articles.CreateInput{
		Title:   "Secret Draft",
		Content: "body",
	})

	article, err := service.GetBySlug(context.Background(), "alice", created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, article.ID)

	for _, callerID := range []string{"", "bob"} {
		_, err := service.GetBySlug(context.Background(), callerID, created.Slug)
		require.Error(t, err, "caller %q", callerID)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	}
}

/*
TestGetBySlug_PrivateIndistinguishableFromAbsent verifies existence hiding:
a stranger probing a private slug gets the exact same error as probing a slug
that was never created.
*/
func TestGetBySlug_PrivateIndistinguishableFromAbsent(t *testing.T) {
	service, _, _ := newTestService()

	created := mustCreate(t, service, "alice", articles.CreateInput{
		Title:   "Hidden Draft",
		Content: "body",
	})

	_, privateErr := service.GetBySlug(context.Background(), "bob", created.Slug)
	_, absentErr := service.GetBySlug(context.Background(), "bob", "never-created")

	require.Error(t, privateErr)
	require.Error(t, absentErr)

	privateApp := apperr.As(privateErr)
	absentApp := apperr.As(absentErr)
	require.NotNil(t, privateApp)
	require.NotNil(t, absentApp)
	assert.Equal(t, absentApp.HTTPStatus, privateApp.HTTPStatus)
	assert.Equal(t, absentApp.Code, privateApp.Code)
	assert.Equal(t, absentApp.Message, privateApp.Message)
}

func TestGetBySlug_ServedFromCache(t *testing.T) {
	service, repo, _ := newTestService()

	created := mustCreate(t, service, "alice", articles.CreateInput{
		Title:    "Cached Post",
		Content:  "body",
		IsPublic: true,
	})

	// The store going down must not affect cached public reads.
	repo.failing = true

	article, err := service.GetBySlug(context.Background(), "", created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, article.ID)
}

func TestGetBySlug_PopulatesCacheOnMiss(t *testing.T) {
	service, _, cache := newTestService()

	created := mustCreate(t, service, "alice", articles.CreateInput{
		Title:    "Warm Me Up",
		Content:  "body",
		IsPublic: true,
	})
	cache.Invalidate(context.Background(), created.Slug)
	cache.setCalls = nil

	_, err := service.GetBySlug(context.Background(), "", created.Slug)
	require.NoError(t, err)
	assert.Contains(t, cache.setCalls, created.Slug)
}

func TestGetBySlug_NilCacheStillWorks(t *testing.T) {
	repo := newMemoryRepository()
	service := articles.NewService(repo, nil, discardLogger{})

	created, err := service.Create(context.Background(), "alice", articles.CreateInput{
		Title:    "No Cache Configured",
		Content:  "body",
		IsPublic: true,
	})
	require.NoError(t, err)

	article, err := service.GetBySlug(context.Background(), "", created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, article.ID)
}

// # Updates

func TestUpdate_MergesPartialFields(t *testing.T) {
	service, _, _ := newTestService()

	created := mustCreate(t, service, "alice", articles.CreateInput{
		Title:   "Original Title",
		Content: "original content",
	})

	updated, err := service.Update(context.Background(), "alice", created.ID, articles.UpdateInput{
		Title: pointer.To("Revised Title"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Revised Title", updated.Title)
	assert.Equal(t, "original content", updated.Content)
	assert.False(t, updated.IsPublic)
	assert.Equal(t, created.Slug, updated.Slug, "slug is immutable")
}

func TestUpdate_VisibilityToggle(t *testing.T) {
	service, _, _ := newTestService()

	created := mustCreate(t, service, "alice", articles.CreateInput{
		Title:    "Toggle Me",
		Content:  "body",
		IsPublic: true,
	})

	updated, err := service.Update(context.Background(), "alice", created.ID, articles.UpdateInput{
		IsPublic: pointer.To(false),
	})

	require.NoError(t, err)
	assert.False(t, updated.IsPublic)

	// Was public, now private: a stranger must lose access immediately.
	_, err = service.GetBySlug(context.Background(), "bob", created.Slug)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestUpdate_ForeignArticleForbidden(t *testing.T) {
	service, _, _ := newTestService()

	created := mustCreate(t, service, "alice", articles.CreateInput{
		Title:   "Alice Owns This",
		Content: "body",
	})

	_, err := service.Update(context.Background(), "bob", created.ID, articles.UpdateInput{
		Title: pointer.To("Hijacked"),
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))
}

func TestUpdate_UnknownIDNotFound(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Update(context.Background(), "alice", 9999, articles.UpdateInput{
		Title: pointer.To("Ghost"),
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	service, _, cache := newTestService()

	created := mustCreate(t, service, "alice", articles.CreateInput{
		Title:    "Stale Soon",
		Content:  "body",
		IsPublic: true,
	})
	require.Contains(t, cache.entries, created.Slug)

	_, err := service.Update(context.Background(), "alice", created.ID, articles.UpdateInput{
		Content: pointer.To("fresh content"),
	})
	require.NoError(t, err)

	assert.Contains(t, cache.invalidated, created.Slug)
	assert.NotContains(t, cache.entries, created.Slug)
}

// # Deletion

func TestDelete_RemovesOwnedArticle(t *testing.T) {
	service, repo, _ := newTestService()

	created := mustCreate(t, service, "alice", articles.CreateInput{
		Title:   "Remove Me",
		Content: "body",
	})

	require.NoError(t, service.Delete(context.Background(), "alice", created.ID))
	assert.NotContains(t, repo.articles, created.ID)
}

/*
TestDelete_UniformNotFound verifies that deleting a foreign article and
deleting a nonexistent one are indistinguishable, so ids cannot be probed.
*/
func TestDelete_UniformNotFound(t *testing.T) {
	service, _, _ := newTestService()

	created := mustCreate(t, service, "alice", articles.CreateInput{
		Title:   "Not Yours",
		Content: "body",
	})

	foreignErr := service.Delete(context.Background(), "bob", created.ID)
	absentErr := service.Delete(context.Background(), "bob", 9999)

	require.Error(t, foreignErr)
	require.Error(t, absentErr)

	foreignApp := apperr.As(foreignErr)
	absentApp := apperr.As(absentErr)
	require.NotNil(t, foreignApp)
	require.NotNil(t, absentApp)
	assert.Equal(t, http.StatusNotFound, foreignApp.HTTPStatus)
	assert.Equal(t, absentApp.Code, foreignApp.Code)
	assert.Equal(t, absentApp.Message, foreignApp.Message)
}

func TestDelete_InvalidatesCache(t *testing.T) {
	service, _, cache := newTestService()

	created := mustCreate(t, service, "alice", articles.CreateInput{
		Title:    "Cached Then Gone",
		Content:  "body",
		IsPublic: true,
	})
	require.Contains(t, cache.entries, created.Slug)

	require.NoError(t, service.Delete(context.Background(), "alice", created.ID))
	assert.NotContains(t, cache.entries, created.Slug)

	_, err := service.GetBySlug(context.Background(), "", created.Slug)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
