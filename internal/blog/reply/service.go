// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reply

import (
	"context"
	"fmt"

	"github.com/taibuivan/inkwell/internal/blog/comment"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

// # Contracts & Types

// CommentDirectory is the slice of the comment service the reply service
// needs: resolving a comment and its owner.
type CommentDirectory interface {
	Get(ctx context.Context, commentID string) (*comment.Comment, error)
}

// Notifier delivers the "someone replied to your comment" notice.
// Implementations are best-effort and never return errors.
type Notifier interface {
	NotifyReply(ctx context.Context, commentOwnerID, replierName, commentID, replierID string)
}

// Service implements reply use cases.
type Service struct {
	repository Repository
	comments   CommentDirectory
	notifier   Notifier
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repository Repository, comments CommentDirectory, notifier Notifier) *Service {
	return &Service{repository: repository, comments: comments, notifier: notifier}
}

// # Discussion

/*
Create posts a new reply beneath a comment.

Description: Confirms the comment exists, writes the reply together with
the comment's counter bump in one transaction, then notifies the comment's
author best-effort. Replying to your own comment produces no notification.

Parameters:
  - context: context.Context
  - commentID: Target comment
  - author: *sec.Principal (the replying user)
  - body: Reply text

Returns:
  - *Reply: Created entity
  - err: apperr.NotFound if the comment is gone, or storage errors
*/
func (service *Service) Create(context context.Context, commentID string, author *sec.Principal, body string) (*Reply, error) {

	// ── 1. The target comment must exist ─────────────────────────────────
	parent, err := service.comments.Get(context, commentID)
	if err != nil {
		return nil, err
	}

	// ── 2. Transactional write: reply row + comment counter ──────────────
	reply := &Reply{
		ID:         uuid.New(),
		CommentID:  parent.ID,
		OwnerID:    author.ID,
		AuthorName: author.Username,
		Body:       body,
	}

	if err := service.repository.Create(context, reply); err != nil {
		return nil, fmt.Errorf("reply_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("reply_created",
		"reply_id", reply.ID,
		"comment_id", parent.ID,
		"owner_id", author.ID,
	)

	// ── 3. Best-effort notice to the comment's author ────────────────────
	service.notifier.NotifyReply(context, parent.OwnerID, author.Username, parent.ID, author.ID)

	return reply, nil
}

/*
UpdateBody edits a reply's text.

Parameters:
  - context: context.Context
  - replyID: string
  - body: New reply text

Returns:
  - *Reply: Updated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) UpdateBody(context context.Context, replyID, body string) (*Reply, error) {
	return service.repository.UpdateBody(context, replyID, body)
}

/*
Delete removes a reply, lowering the comment's counter in the same
transaction.

Parameters:
  - context: context.Context
  - replyID: string

Returns:
  - err: apperr.NotFound or storage errors
*/
func (service *Service) Delete(context context.Context, replyID string) error {
	if err := service.repository.Delete(context, replyID); err != nil {
		return err
	}

	ctxutil.GetLogger(context).Info("reply_deleted", "reply_id", replyID)
	return nil
}

/*
Get returns a single reply by ID.

Parameters:
  - context: context.Context
  - replyID: string

Returns:
  - *Reply: Hydrated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) Get(context context.Context, replyID string) (*Reply, error) {
	return service.repository.FindByID(context, replyID)
}

/*
ListForComment returns a page of a comment's replies, oldest first.

Parameters:
  - context: context.Context
  - commentID: string
  - limit, offset: Pagination window

Returns:
  - []*Reply: The requested page
  - int: Total replies on the comment
  - err: Storage errors
*/
func (service *Service) ListForComment(context context.Context, commentID string, limit, offset int) ([]*Reply, int, error) {
	return service.repository.ListForComment(context, commentID, limit, offset)
}
