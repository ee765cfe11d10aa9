// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reply_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/blog/comment"
	"github.com/taibuivan/inkwell/internal/blog/reply"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// fakeRepository is an in-memory reply.Repository.
type fakeRepository struct {
	created []*reply.Reply
}

func (f *fakeRepository) Create(_ context.Context, created *reply.Reply) error {
	f.created = append(f.created, created)
	return nil
}

func (f *fakeRepository) FindByID(context.Context, string) (*reply.Reply, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepository) UpdateBody(context.Context, string, string) (*reply.Reply, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepository) Delete(context.Context, string) error { return nil }

func (f *fakeRepository) ListForComment(context.Context, string, int, int) ([]*reply.Reply, int, error) {
	return nil, 0, errors.New("not implemented")
}

// fakeDirectory resolves a single known comment.
type fakeDirectory struct {
	comment *comment.Comment
}

func (f *fakeDirectory) Get(_ context.Context, commentID string) (*comment.Comment, error) {
	if f.comment != nil && f.comment.ID == commentID {
		return f.comment, nil
	}
	return nil, apperr.NotFound("Comment")
}

// recordingNotifier records reply notices.
type recordingNotifier struct {
	ownerIDs []string
}

func (r *recordingNotifier) NotifyReply(_ context.Context, commentOwnerID, _, _, _ string) {
	r.ownerIDs = append(r.ownerIDs, commentOwnerID)
}

/*
TestCreate verifies reply creation against a live comment, including the
notice to the comment's author.
*/
func TestCreate(t *testing.T) {
	repository := &fakeRepository{}
	directory := &fakeDirectory{comment: &comment.Comment{ID: "comment-1", OwnerID: "user-author"}}
	notifier := &recordingNotifier{}
	service := reply.NewService(repository, directory, notifier)

	author := &sec.Principal{ID: "user-ada", Username: "ada", Role: sec.RoleGuest}
	created, err := service.Create(context.Background(), "comment-1", author, "Couldn't agree more.")
	require.NoError(t, err)

	// 1. The reply carries its parent and author identity
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "comment-1", created.CommentID)
	assert.Equal(t, "user-ada", created.OwnerID)
	assert.Equal(t, "ada", created.AuthorName)
	assert.Equal(t, "Couldn't agree more.", created.Body)

	// 2. The row went through the repository, which owns the counter bump
	require.Len(t, repository.created, 1)

	// 3. The comment's author got the notice
	require.Len(t, notifier.ownerIDs, 1)
	assert.Equal(t, "user-author", notifier.ownerIDs[0])
}

/*
TestCreate_CommentGone verifies that replying to a deleted comment fails
with 404 before any write happens.
*/
func TestCreate_CommentGone(t *testing.T) {
	repository := &fakeRepository{}
	service := reply.NewService(repository, &fakeDirectory{}, &recordingNotifier{})

	author := &sec.Principal{ID: "user-ada", Username: "ada"}
	_, err := service.Create(context.Background(), "comment-gone", author, "Still there?")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
	assert.Empty(t, repository.created)
}

/*
TestCreate_OwnComment verifies the notifier is still invoked for own-comment
replies; suppressing the self-notice is the notification service's call.
*/
func TestCreate_OwnComment(t *testing.T) {
	directory := &fakeDirectory{comment: &comment.Comment{ID: "comment-1", OwnerID: "user-ada"}}
	notifier := &recordingNotifier{}
	service := reply.NewService(&fakeRepository{}, directory, notifier)

	author := &sec.Principal{ID: "user-ada", Username: "ada"}
	_, err := service.Create(context.Background(), "comment-1", author, "Replying to myself")
	require.NoError(t, err)

	// The notice reaches the notifier with identical owner and actor IDs.
	require.Len(t, notifier.ownerIDs, 1)
	assert.Equal(t, "user-ada", notifier.ownerIDs[0])
}
