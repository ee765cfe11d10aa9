// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// # Repository Contracts

// UserRepository abstracts the persistent store of user accounts.
//
// Implementations map storage errors (no rows, unique violations) onto
// [apperr.AppError] values before returning them.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	UpdateRole(ctx context.Context, id string, role sec.UserRole) (*User, error)
	List(ctx context.Context, filter UserFilter, limit, offset int) ([]*User, int, error)
}

// UserFilter holds the parameters for a paginated account search.
type UserFilter struct {
	// Role restricts results to one role when non-empty.
	Role string
	// Query matches against username, display name, and email.
	Query string
}

// RevocationStore tracks refresh tokens invalidated before their natural
// expiry (logout). Entries carry a TTL, so the store self-cleans once the
// token would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}
