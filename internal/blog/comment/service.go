// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/taibuivan/inkwell/internal/blog/article"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

// # Contracts & Types

// ArticleDirectory is the slice of the article service the comment service
// needs: resolving an article and its owner.
type ArticleDirectory interface {
	Get(ctx context.Context, articleID string) (*article.Article, error)
}

// Notifier delivers the "someone commented on your article" notice.
// Implementations are best-effort and never return errors.
type Notifier interface {
	NotifyComment(ctx context.Context, articleOwnerID, commenterName, articleID, commenterID string)
}

// Service implements comment use cases.
type Service struct {
	repository Repository
	articles   ArticleDirectory
	notifier   Notifier
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repository Repository, articles ArticleDirectory, notifier Notifier) *Service {
	return &Service{repository: repository, articles: articles, notifier: notifier}
}

// # Discussion

/*
Create posts a new comment on an article.

Description: Confirms the article exists, writes the comment together with
the article's counter bump in one transaction, then notifies the article's
author best-effort. Commenting on your own article produces no notification.

Parameters:
  - context: context.Context
  - articleID: Target article
  - author: *sec.Principal (the commenting user)
  - body: Comment text

Returns:
  - *Comment: Created entity
  - err: apperr.NotFound if the article is gone, or storage errors
*/
func (service *Service) Create(context context.Context, articleID string, author *sec.Principal, body string) (*Comment, error) {

	// ── 1. The target article must exist ─────────────────────────────────
	parent, err := service.articles.Get(context, articleID)
	if err != nil {
		return nil, err
	}

	// ── 2. Transactional write: comment row + article counter ────────────
	comment := &Comment{
		ID:         uuid.New(),
		ArticleID:  parent.ID,
		OwnerID:    author.ID,
		AuthorName: author.Username,
		Body:       body,
	}

	if err := service.repository.Create(context, comment); err != nil {
		return nil, fmt.Errorf("comment_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("comment_created",
		"comment_id", comment.ID,
		"article_id", parent.ID,
		"owner_id", author.ID,
	)

	// ── 3. Best-effort notice to the article's author ────────────────────
	service.notifier.NotifyComment(context, parent.OwnerID, author.Username, parent.ID, author.ID)

	return comment, nil
}

/*
UpdateBody edits a comment's text.

Parameters:
  - context: context.Context
  - commentID: string
  - body: New comment text

Returns:
  - *Comment: Updated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) UpdateBody(context context.Context, commentID, body string) (*Comment, error) {
	return service.repository.UpdateBody(context, commentID, body)
}

/*
Delete removes a comment and its replies, lowering the article's counter in
the same transaction.

Parameters:
  - context: context.Context
  - commentID: string

Returns:
  - err: apperr.NotFound or storage errors
*/
func (service *Service) Delete(context context.Context, commentID string) error {
	if err := service.repository.Delete(context, commentID); err != nil {
		return err
	}

	ctxutil.GetLogger(context).Info("comment_deleted", "comment_id", commentID)
	return nil
}

/*
Get returns a single comment by ID.

Parameters:
  - context: context.Context
  - commentID: string

Returns:
  - *Comment: Hydrated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) Get(context context.Context, commentID string) (*Comment, error) {
	return service.repository.FindByID(context, commentID)
}

/*
ListForArticle returns a page of an article's comments, oldest first.

Parameters:
  - context: context.Context
  - articleID: string
  - limit, offset: Pagination window

Returns:
  - []*Comment: The requested page
  - int: Total comments on the article
  - err: Storage errors
*/
func (service *Service) ListForArticle(context context.Context, articleID string, limit, offset int) ([]*Comment, int, error) {
	return service.repository.ListForArticle(context, articleID, limit, offset)
}
