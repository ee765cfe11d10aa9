// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/blog/article"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// fakeRepository is an in-memory article.Repository.
type fakeRepository struct {
	articles map[string]*article.Article
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{articles: map[string]*article.Article{}}
}

func (f *fakeRepository) Create(_ context.Context, created *article.Article) error {
	f.articles[created.ID] = created
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*article.Article, error) {
	if found, ok := f.articles[id]; ok {
		return found, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) FindBySlug(_ context.Context, articleSlug string) (*article.Article, error) {
	for _, found := range f.articles {
		if found.Slug == articleSlug {
			return found, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) Update(_ context.Context, updated *article.Article) error {
	if _, ok := f.articles[updated.ID]; !ok {
		return dberr.ErrNotFound
	}
	f.articles[updated.ID] = updated
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.articles[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.articles, id)
	return nil
}

func (f *fakeRepository) List(context.Context, article.Filter, int, int) ([]*article.Article, int, error) {
	return nil, 0, errors.New("not implemented")
}

/*
TestCreate verifies draft creation and the shape of the derived slug.
*/
func TestCreate(t *testing.T) {
	repository := newFakeRepository()
	service := article.NewService(repository)

	created, err := service.Create(context.Background(), "user-ada", article.DraftInput{
		Title:     "Go Concurrency Patterns",
		Summary:   "Channels, contexts, and cancellation.",
		Body:      "...",
		Tags:      []string{"go", "concurrency"},
		Published: true,
	})
	require.NoError(t, err)

	// 1. Identity and ownership
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-ada", created.OwnerID)

	// 2. The slug is the slugified title plus a short ID fragment
	assert.True(t, strings.HasPrefix(created.Slug, "go-concurrency-patterns-"), created.Slug)
	assert.True(t, strings.HasSuffix(created.Slug, created.ID[:8]), created.Slug)

	// 3. The article is retrievable by that slug
	found, err := service.GetBySlug(context.Background(), created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

/*
TestCreate_SameTitle verifies that two articles sharing one title still get
distinct slugs.
*/
func TestCreate_SameTitle(t *testing.T) {
	service := article.NewService(newFakeRepository())

	first, err := service.Create(context.Background(), "user-ada", article.DraftInput{Title: "Hello World", Body: "..."})
	require.NoError(t, err)
	second, err := service.Create(context.Background(), "user-bob", article.DraftInput{Title: "Hello World", Body: "..."})
	require.NoError(t, err)

	assert.NotEqual(t, first.Slug, second.Slug)
}

/*
TestUpdate verifies that the slug follows the title while keeping the same
ID fragment.
*/
func TestUpdate(t *testing.T) {
	service := article.NewService(newFakeRepository())

	created, err := service.Create(context.Background(), "user-ada", article.DraftInput{Title: "Old Title", Body: "..."})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, article.DraftInput{
		Title:     "New Title",
		Body:      "revised",
		Published: true,
	})
	require.NoError(t, err)

	// 1. The slug tracks the new title
	assert.True(t, strings.HasPrefix(updated.Slug, "new-title-"), updated.Slug)

	// 2. The fragment is stable across renames
	assert.True(t, strings.HasSuffix(updated.Slug, created.ID[:8]), updated.Slug)

	// 3. The other fields were rewritten
	assert.Equal(t, "revised", updated.Body)
	assert.True(t, updated.Published)
}

/*
TestDelete verifies removal and the NotFound path for repeat deletion.
*/
func TestDelete(t *testing.T) {
	service := article.NewService(newFakeRepository())

	created, err := service.Create(context.Background(), "user-ada", article.DraftInput{Title: "Ephemeral", Body: "..."})
	require.NoError(t, err)

	// 1. First deletion succeeds
	require.NoError(t, service.Delete(context.Background(), created.ID))
	_, err = service.Get(context.Background(), created.ID)
	assert.Error(t, err)

	// 2. Second deletion reports NotFound
	assert.Error(t, service.Delete(context.Background(), created.ID))
}
