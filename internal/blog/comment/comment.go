// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment implements article discussion threads.

A comment always belongs to exactly one article. The article row carries a
denormalized comment counter; every comment insert or delete adjusts that
counter inside the same database transaction, so the two can never drift
apart even under concurrent writes or mid-operation failures.
*/
package comment

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/ability"
)

// # Domain Entities

// Comment represents a single top-level comment on an article.
type Comment struct {
	ID         string    `json:"id"`
	ArticleID  string    `json:"article_id"`
	OwnerID    string    `json:"owner_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	ReplyCount int       `json:"reply_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Subject normalizes the comment into the policy-checkable shape.
func (comment *Comment) Subject() ability.Subject {
	return ability.Subject{
		ID:      comment.ID,
		OwnerID: comment.OwnerID,
		Type:    ability.ResourceComment,
	}
}

// # Field Identifiers

// Global field names for validation in the discussion domain.
const (
	FieldArticleID = "article_id"
	FieldBody      = "body"
)
