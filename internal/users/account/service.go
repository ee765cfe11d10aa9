// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account implements administrative user management.

It sits above the auth package's user repository and provides the operations
reserved for staff: browsing the member directory and raising member roles.

# Role Elevation Rules

Roles only ever move upward. An elevation request naming a role at or below
the member's current role is rejected, which also means the operation can
never be used to demote anyone. Only administrators reach these endpoints;
the route guard enforces that before the service runs.
*/
package account

import (
	"context"
	"fmt"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

// # Contracts & Types

// Notifier is the slice of the notification service the account service
// needs: fire-and-forget delivery of a role change notice.
type Notifier interface {
	NotifyRoleChanged(ctx context.Context, userID string, newRole sec.UserRole)
}

// Service implements administrative user management use cases.
type Service struct {
	userRepository auth.UserRepository
	notifier       Notifier
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo auth.UserRepository, notifier Notifier) *Service {
	return &Service{userRepository: userRepo, notifier: notifier}
}

// # Directory

/*
ListUsers returns a filtered, paginated page of member accounts.

Parameters:
  - context: context.Context
  - filter: auth.UserFilter (optional role and free-text filters)
  - limit, offset: Pagination window

Returns:
  - []*auth.User: The requested page
  - int: Total accounts matching the filter
  - err: Storage errors
*/
func (service *Service) ListUsers(context context.Context, filter auth.UserFilter, limit, offset int) ([]*auth.User, int, error) {
	return service.userRepository.List(context, filter, limit, offset)
}

/*
GetUser returns a single member account by ID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: Hydrated account entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) GetUser(context context.Context, userID string) (*auth.User, error) {
	return service.userRepository.FindByID(context, userID)
}

// # Role Elevation

/*
ChangeRole raises a member's role to the requested value.

Description: Validates the requested role, verifies that it strictly exceeds
the member's current role (elevation only, never demotion or a no-op), then
persists the change and emits a role_changed notification to the member.

Parameters:
  - context: context.Context
  - userID: Target member ID
  - newRole: sec.UserRole to assign

Returns:
  - *auth.User: Updated entity
  - err: ValidationError for unknown/non-upward roles, NotFound, storage errors
*/
func (service *Service) ChangeRole(context context.Context, userID string, newRole sec.UserRole) (*auth.User, error) {

	// ── 1. Validate the requested role name ──────────────────────────────
	if !newRole.IsValid() {
		return nil, apperr.ValidationError(fmt.Sprintf("Unknown role %q", newRole))
	}

	// ── 2. Load the target and enforce strictly-upward movement ──────────
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if !newRole.Exceeds(user.Role) {
		return nil, apperr.ValidationError(
			fmt.Sprintf("Role %q does not exceed the member's current role %q", newRole, user.Role))
	}

	// ── 3. Persist and notify ────────────────────────────────────────────
	updated, err := service.userRepository.UpdateRole(context, userID, newRole)
	if err != nil {
		return nil, fmt.Errorf("account_service_role_change_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("role_elevated",
		"user_id", userID,
		"previous_role", string(user.Role),
		"new_role", string(newRole),
	)

	// Delivery failures never fail the elevation itself.
	service.notifier.NotifyRoleChanged(context, userID, newRole)

	return updated, nil
}
