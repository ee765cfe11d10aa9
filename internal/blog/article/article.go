// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package article implements the core publishing domain of the platform.

Articles are owned by their author. Writers manage only their own articles,
editors manage everyone's, and the public reads whatever is published. A
denormalized comment counter lives on the article row and is kept in lockstep
with the comment table inside one transaction per mutation.
*/
package article

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/ability"
)

// # Domain Entities

// Article represents a single published or drafted post.
type Article struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Summary      string    `json:"summary,omitempty"`
	Body         string    `json:"body"`
	Tags         []string  `json:"tags,omitempty"`
	Published    bool      `json:"published"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Subject normalizes the article into the policy-checkable shape.
func (article *Article) Subject() ability.Subject {
	return ability.Subject{
		ID:      article.ID,
		OwnerID: article.OwnerID,
		Type:    ability.ResourceArticle,
	}
}

// # Field Identifiers

// Global field names for validation in the publishing domain.
const (
	FieldTitle     = "title"
	FieldSlug      = "slug"
	FieldSummary   = "summary"
	FieldBody      = "body"
	FieldTags      = "tags"
	FieldPublished = "published"
)
