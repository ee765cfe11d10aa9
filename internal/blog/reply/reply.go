// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reply implements second-level discussion: replies to comments.

Threads are exactly two levels deep. A reply belongs to one comment and can
never have replies of its own. The comment row carries a denormalized reply
counter maintained transactionally, mirroring how articles count comments.
*/
package reply

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/ability"
)

// # Domain Entities

// Reply represents a single reply beneath a comment.
type Reply struct {
	ID         string    `json:"id"`
	CommentID  string    `json:"comment_id"`
	OwnerID    string    `json:"owner_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Subject normalizes the reply into the policy-checkable shape.
func (reply *Reply) Subject() ability.Subject {
	return ability.Subject{
		ID:      reply.ID,
		OwnerID: reply.OwnerID,
		Type:    ability.ResourceReply,
	}
}

// # Field Identifiers

// Global field names for validation in the reply domain.
const (
	FieldCommentID = "comment_id"
	FieldBody      = "body"
)
