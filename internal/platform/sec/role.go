// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can manage all articles and moderate comments
	RoleEditor UserRole = "editor"

	// Can publish and manage their own articles
	RoleWriter UserRole = "writer"

	// Default role for standard registered users
	RoleGuest UserRole = "guest"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// Exceeds checks if the current role ranks strictly above the target role.
func (r UserRole) Exceeds(target UserRole) bool {
	return r.level() > target.level()
}

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleEditor:
		return 30
	case RoleWriter:
		return 20
	case RoleGuest:
		return 10
	default:
		return 0
	}
}
