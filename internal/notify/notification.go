// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notify implements the in-app notification system.

Notifications are persisted first and pushed second: the database row is the
source of truth, while the Redis pub/sub push is a best-effort hint for
connected clients. A failed push never fails the operation that produced
the notification.
*/
package notify

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/ability"
)

// # Notification Kinds

// Kind classifies what event produced a notification.
type Kind string

const (
	// A comment was added to one of the recipient's articles.
	KindComment Kind = "comment"

	// A reply was added to one of the recipient's comments.
	KindReply Kind = "reply"

	// The recipient was mentioned in an article or comment.
	KindMention Kind = "mention"

	// An author the recipient follows published an article.
	KindArticlePublished Kind = "article_published"

	// The recipient's role was raised by an administrator.
	KindRoleChanged Kind = "role_changed"
)

// IsValid reports whether k is one of the known notification kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindComment, KindReply, KindMention, KindArticlePublished, KindRoleChanged:
		return true
	default:
		return false
	}
}

// # Entity

// Notification is a single in-app notice addressed to one user.
//
// SubjectID and SubjectType point at the resource the notice is about
// (the commented article, the replied-to comment, the elevated account).
// Metadata carries optional kind-specific extras for the client.
type Notification struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Kind        Kind              `json:"kind"`
	Message     string            `json:"message"`
	SubjectID   string            `json:"subject_id,omitempty"`
	SubjectType string            `json:"subject_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Read        bool              `json:"read"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Subject converts the notification into an authorization subject. The
// recipient is the owner, so only they (and administrators) can read or
// mark it.
func (notification *Notification) Subject() ability.Subject {
	return ability.Subject{
		ID:      notification.ID,
		OwnerID: notification.UserID,
		Type:    ability.ResourceNotification,
	}
}
