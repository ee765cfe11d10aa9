// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import (
	"context"
	"fmt"

	"github.com/taibuivan/inkwell/internal/platform/ability"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

// Service implements notification use cases.
//
// # Delivery Contract
//
// Every emit operation persists the notification row before attempting the
// push. Push failures are logged and swallowed: the recipient still sees the
// notice on their next listing.
type Service struct {
	repository Repository
	publisher  Publisher
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repository Repository, publisher Publisher) *Service {
	return &Service{repository: repository, publisher: publisher}
}

// # Emission

/*
CreateAndEmit persists a notification and pushes it best-effort.

Description: The database write is authoritative; if it fails, the whole
operation fails. The subsequent push is advisory and its failure is only
logged.

Parameters:
  - context: context.Context
  - notification: *Notification (ID and CreatedAt are assigned here)

Returns:
  - err: Persistence failures only
*/
func (service *Service) CreateAndEmit(context context.Context, notification *Notification) error {
	if !notification.Kind.IsValid() {
		return fmt.Errorf("notify_service_unknown_kind: %q", notification.Kind)
	}

	notification.ID = uuid.New()
	notification.Read = false

	// 1. Persist first. The row is the source of truth.
	if err := service.repository.Create(context, notification); err != nil {
		return fmt.Errorf("notify_service_create_failed: %w", err)
	}

	// 2. Push second. Failures never propagate to the caller.
	if err := service.publisher.Publish(context, notification); err != nil {
		ctxutil.GetLogger(context).Warn("notification_push_failed",
			"notification_id", notification.ID,
			"user_id", notification.UserID,
			"error", err.Error(),
		)
	}

	return nil
}

// NotifyComment tells an article's author that someone commented on it.
// Authors are never notified about their own comments.
func (service *Service) NotifyComment(context context.Context, articleOwnerID, commenterName, articleID, commenterID string) {
	if articleOwnerID == commenterID {
		return
	}
	service.emit(context, &Notification{
		UserID:      articleOwnerID,
		Kind:        KindComment,
		Message:     fmt.Sprintf("%s commented on your article", commenterName),
		SubjectID:   articleID,
		SubjectType: string(ability.ResourceArticle),
	})
}

// NotifyReply tells a comment's author that someone replied to it. Authors
// are never notified about their own replies.
func (service *Service) NotifyReply(context context.Context, commentOwnerID, replierName, commentID, replierID string) {
	if commentOwnerID == replierID {
		return
	}
	service.emit(context, &Notification{
		UserID:      commentOwnerID,
		Kind:        KindReply,
		Message:     fmt.Sprintf("%s replied to your comment", replierName),
		SubjectID:   commentID,
		SubjectType: string(ability.ResourceComment),
	})
}

// NotifyRoleChanged tells a member that an administrator raised their role.
func (service *Service) NotifyRoleChanged(context context.Context, userID string, newRole sec.UserRole) {
	service.emit(context, &Notification{
		UserID:      userID,
		Kind:        KindRoleChanged,
		Message:     fmt.Sprintf("Your role was changed to %s", newRole),
		SubjectID:   userID,
		SubjectType: string(ability.ResourceUser),
		Metadata:    map[string]string{"new_role": string(newRole)},
	})
}

// emit wraps CreateAndEmit for the fire-and-forget helpers: even the
// persistence failure only gets logged, so domain operations (comment
// creation, role elevation) never fail because of a notification.
func (service *Service) emit(context context.Context, notification *Notification) {
	if err := service.CreateAndEmit(context, notification); err != nil {
		ctxutil.GetLogger(context).Warn("notification_emit_failed",
			"user_id", notification.UserID,
			"kind", string(notification.Kind),
			"error", err.Error(),
		)
	}
}

// # Inbox

/*
ListForUser returns a filtered page of the user's own notifications.

Parameters:
  - context: context.Context
  - userID: Recipient whose inbox is listed
  - filter: Filter (kind, read-state, date range)
  - limit, offset: Pagination window

Returns:
  - []*Notification: Newest first
  - int: Total matching the filter
  - err: Storage errors
*/
func (service *Service) ListForUser(context context.Context, userID string, filter Filter, limit, offset int) ([]*Notification, int, error) {
	return service.repository.ListForUser(context, userID, filter, limit, offset)
}

/*
Get returns a single notification by ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Notification: Hydrated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) Get(context context.Context, id string) (*Notification, error) {
	return service.repository.FindByID(context, id)
}

/*
MarkRead flips a notification's read flag. Marking an already-read
notification succeeds without change.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Notification: Updated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) MarkRead(context context.Context, id string) (*Notification, error) {
	return service.repository.MarkRead(context, id)
}
