// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article

import (
	"context"
	"fmt"

	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/pkg/slug"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

// Service implements article publishing use cases.
//
// # Ownership
//
// The service never checks who is allowed to do what. Route guards run the
// policy rules before a handler calls in here; by the time a mutation
// reaches the service, the caller is already authorized for this exact
// article.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Authoring

// DraftInput holds the author-supplied fields of a new or edited article.
type DraftInput struct {
	Title     string
	Summary   string
	Body      string
	Tags      []string
	Published bool
}

/*
Create persists a brand new article owned by the given author.

Description: Derives a URL slug from the title (suffixed with a short ID
fragment so two articles may share a title) and stores the draft. The
comment counter starts at zero.

Parameters:
  - context: context.Context
  - ownerID: Author's user ID
  - input: DraftInput

Returns:
  - *Article: Created entity
  - err: Conflict on slug collision or storage errors
*/
func (service *Service) Create(context context.Context, ownerID string, input DraftInput) (*Article, error) {
	id := uuid.New()

	article := &Article{
		ID:        id,
		OwnerID:   ownerID,
		Title:     input.Title,
		Slug:      slugWithFragment(input.Title, id),
		Summary:   input.Summary,
		Body:      input.Body,
		Tags:      input.Tags,
		Published: input.Published,
	}

	if err := service.repository.Create(context, article); err != nil {
		return nil, fmt.Errorf("article_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("article_created",
		"article_id", article.ID,
		"owner_id", ownerID,
		"published", article.Published,
	)
	return article, nil
}

/*
Update rewrites the editable fields of an existing article.

Description: The slug follows the title so published URLs stay readable,
keeping the same ID fragment for stability.

Parameters:
  - context: context.Context
  - articleID: string
  - input: DraftInput

Returns:
  - *Article: Updated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) Update(context context.Context, articleID string, input DraftInput) (*Article, error) {
	article, err := service.repository.FindByID(context, articleID)
	if err != nil {
		return nil, err
	}

	article.Title = input.Title
	article.Slug = slugWithFragment(input.Title, article.ID)
	article.Summary = input.Summary
	article.Body = input.Body
	article.Tags = input.Tags
	article.Published = input.Published

	if err := service.repository.Update(context, article); err != nil {
		return nil, fmt.Errorf("article_service_update_failed: %w", err)
	}
	return article, nil
}

/*
Delete removes an article together with its comment tree.

Parameters:
  - context: context.Context
  - articleID: string

Returns:
  - err: apperr.NotFound or storage errors
*/
func (service *Service) Delete(context context.Context, articleID string) error {
	if err := service.repository.Delete(context, articleID); err != nil {
		return err
	}

	ctxutil.GetLogger(context).Info("article_deleted", "article_id", articleID)
	return nil
}

// # Reading

/*
Get returns a single article by ID.

Parameters:
  - context: context.Context
  - articleID: string

Returns:
  - *Article: Hydrated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) Get(context context.Context, articleID string) (*Article, error) {
	return service.repository.FindByID(context, articleID)
}

/*
GetBySlug returns a single article by its URL slug.

Parameters:
  - context: context.Context
  - articleSlug: string

Returns:
  - *Article: Hydrated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) GetBySlug(context context.Context, articleSlug string) (*Article, error) {
	return service.repository.FindBySlug(context, articleSlug)
}

/*
List returns a filtered, paginated page of articles.

Parameters:
  - context: context.Context
  - filter: Filter (author, tag, free-text, published state)
  - limit, offset: Pagination window

Returns:
  - []*Article: Newest first
  - int: Total matching the filter
  - err: Storage errors
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Article, int, error) {
	return service.repository.List(context, filter, limit, offset)
}

// slugWithFragment builds a stable, collision-resistant slug: the slugified
// title plus the first ID segment.
func slugWithFragment(title, id string) string {
	fragment := id
	if len(fragment) > 8 {
		fragment = fragment[:8]
	}
	return slug.From(title) + "-" + fragment
}
