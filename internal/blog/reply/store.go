// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reply

import (
	"context"
)

// # Persistence Contracts

// Repository defines persistence operations for replies.
//
// Create and Delete are transactional with the owning comment's reply
// counter: both rows change together or not at all.
type Repository interface {
	// Create inserts a reply and increments the comment's reply_count in
	// one transaction.
	Create(ctx context.Context, reply *Reply) error

	// FindByID fetches a single reply by primary key.
	FindByID(ctx context.Context, id string) (*Reply, error)

	// UpdateBody persists an edited reply body.
	UpdateBody(ctx context.Context, id, body string) (*Reply, error)

	// Delete removes a reply and decrements the comment's reply_count in
	// one transaction.
	Delete(ctx context.Context, id string) error

	// ListForComment returns a page of the comment's replies, oldest
	// first, plus the total count.
	ListForComment(ctx context.Context, commentID string, limit, offset int) ([]*Reply, int, error)
}
