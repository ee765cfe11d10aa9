// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
)

// # Persistence Contracts

// Repository defines persistence operations for comments.
//
// Create and Delete are transactional with the owning article's comment
// counter: both rows change together or not at all.
type Repository interface {
	// Create inserts a comment and increments the article's comment_count
	// in one transaction.
	Create(ctx context.Context, comment *Comment) error

	// FindByID fetches a single comment by primary key.
	FindByID(ctx context.Context, id string) (*Comment, error)

	// UpdateBody persists an edited comment body.
	UpdateBody(ctx context.Context, id, body string) (*Comment, error)

	// Delete removes a comment (replies cascade) and decrements the
	// article's comment_count in one transaction.
	Delete(ctx context.Context, id string) error

	// ListForArticle returns a page of the article's comments, oldest
	// first, plus the total count.
	ListForArticle(ctx context.Context, articleID string, limit, offset int) ([]*Comment, int, error)
}
