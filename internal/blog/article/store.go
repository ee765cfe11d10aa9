// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article

import (
	"context"
)

// # Persistence Contracts

// Filter narrows an article listing. Zero values mean "no constraint".
type Filter struct {
	OwnerID   string // Only articles by this author
	Tag       string // Only articles carrying this tag
	Query     string // Free-text match on title and summary
	Published *bool  // Only published (true) or draft (false) articles
}

// Repository defines persistence operations for articles.
type Repository interface {
	// Create inserts a new article row.
	Create(ctx context.Context, article *Article) error

	// FindByID fetches a single article by primary key.
	FindByID(ctx context.Context, id string) (*Article, error)

	// FindBySlug fetches a single article by its unique slug.
	FindBySlug(ctx context.Context, slug string) (*Article, error)

	// Update persists the editable fields of an article.
	Update(ctx context.Context, article *Article) error

	// Delete removes an article and, through cascading constraints, its
	// comments and replies.
	Delete(ctx context.Context, id string) error

	// List returns a filtered, paginated page of articles, newest first,
	// plus the total count matching the filter.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Article, int, error)
}
