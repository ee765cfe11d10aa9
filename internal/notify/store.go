// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import (
	"context"
	"time"
)

// # Persistence Contracts

// Filter narrows a notification listing. Zero values mean "no constraint".
type Filter struct {
	Kind   Kind       // Only notices of this kind
	Read   *bool      // Only read (true) or unread (false) notices
	Since  *time.Time // Only notices created at or after this instant
	Before *time.Time // Only notices created before this instant
}

// Repository defines persistence operations for notifications.
type Repository interface {
	// Create inserts a new notification row.
	Create(ctx context.Context, notification *Notification) error

	// FindByID fetches a single notification by primary key.
	FindByID(ctx context.Context, id string) (*Notification, error)

	// ListForUser returns a filtered page of the user's notifications,
	// newest first, plus the total count matching the filter.
	ListForUser(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Notification, int, error)

	// MarkRead flips a notification's read flag to true.
	MarkRead(ctx context.Context, id string) (*Notification, error)
}

// Publisher pushes a freshly persisted notification toward connected
// clients. Implementations must be best-effort: errors are reported but
// callers are expected to ignore them.
type Publisher interface {
	Publish(ctx context.Context, notification *Notification) error
}
