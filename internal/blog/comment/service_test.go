// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/blog/article"
	"github.com/taibuivan/inkwell/internal/blog/comment"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// fakeRepository is an in-memory comment.Repository.
type fakeRepository struct {
	created []*comment.Comment
}

func (f *fakeRepository) Create(_ context.Context, created *comment.Comment) error {
	f.created = append(f.created, created)
	return nil
}

func (f *fakeRepository) FindByID(context.Context, string) (*comment.Comment, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepository) UpdateBody(context.Context, string, string) (*comment.Comment, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepository) Delete(context.Context, string) error { return nil }

func (f *fakeRepository) ListForArticle(context.Context, string, int, int) ([]*comment.Comment, int, error) {
	return nil, 0, errors.New("not implemented")
}

// fakeDirectory resolves a single known article.
type fakeDirectory struct {
	article *article.Article
}

func (f *fakeDirectory) Get(_ context.Context, articleID string) (*article.Article, error) {
	if f.article != nil && f.article.ID == articleID {
		return f.article, nil
	}
	return nil, apperr.NotFound("Article")
}

// recordingNotifier records comment notices.
type recordingNotifier struct {
	ownerIDs []string
}

func (r *recordingNotifier) NotifyComment(_ context.Context, articleOwnerID, _, _, _ string) {
	r.ownerIDs = append(r.ownerIDs, articleOwnerID)
}

/*
TestCreate verifies comment creation against a live article, including the
notice to the article's author.
*/
func TestCreate(t *testing.T) {
	repository := &fakeRepository{}
	directory := &fakeDirectory{article: &article.Article{ID: "article-1", OwnerID: "user-author"}}
	notifier := &recordingNotifier{}
	service := comment.NewService(repository, directory, notifier)

	author := &sec.Principal{ID: "user-ada", Username: "ada", Role: sec.RoleGuest}
	created, err := service.Create(context.Background(), "article-1", author, "Great article!")
	require.NoError(t, err)

	// 1. The comment carries its parent and author identity
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "article-1", created.ArticleID)
	assert.Equal(t, "user-ada", created.OwnerID)
	assert.Equal(t, "ada", created.AuthorName)
	assert.Equal(t, "Great article!", created.Body)

	// 2. The row went through the repository
	require.Len(t, repository.created, 1)

	// 3. The article's author got the notice
	require.Len(t, notifier.ownerIDs, 1)
	assert.Equal(t, "user-author", notifier.ownerIDs[0])
}

/*
TestCreate_ArticleGone verifies that commenting on a deleted article fails
with 404 before any write happens.
*/
func TestCreate_ArticleGone(t *testing.T) {
	repository := &fakeRepository{}
	service := comment.NewService(repository, &fakeDirectory{}, &recordingNotifier{})

	author := &sec.Principal{ID: "user-ada", Username: "ada"}
	_, err := service.Create(context.Background(), "article-gone", author, "Anyone here?")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
	assert.Empty(t, repository.created)
}

/*
TestCreate_OwnArticle verifies the notifier is still invoked for own-article
comments; suppressing the self-notice is the notification service's call.
*/
func TestCreate_OwnArticle(t *testing.T) {
	directory := &fakeDirectory{article: &article.Article{ID: "article-1", OwnerID: "user-ada"}}
	notifier := &recordingNotifier{}
	service := comment.NewService(&fakeRepository{}, directory, notifier)

	author := &sec.Principal{ID: "user-ada", Username: "ada"}
	_, err := service.Create(context.Background(), "article-1", author, "Replying to myself")
	require.NoError(t, err)

	// The notice reaches the notifier with identical owner and actor IDs.
	require.Len(t, notifier.ownerIDs, 1)
	assert.Equal(t, "user-ada", notifier.ownerIDs[0])
}
