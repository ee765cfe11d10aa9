// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for registration,
authentication, session token issuance/renewal, and logout.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/ability"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Inkwell platform.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	Bio          string       `json:"bio,omitempty"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Principal converts the stored user into the request-context identity shape.
// The password hash does not survive the conversion.
func (user *User) Principal() *sec.Principal {
	return &sec.Principal{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

// Subject normalizes the user into the policy-checkable shape.
// A user account is owned by itself.
func (user *User) Subject() ability.Subject {
	return ability.Subject{
		ID:      user.ID,
		OwnerID: user.ID,
		Type:    ability.ResourceUser,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldDisplayName  = "display_name"
	FieldBio          = "bio"
	FieldLogin        = "login"
	FieldRole         = "role"
	FieldRefreshToken = "refresh_token"
	FieldAccessToken  = "access_token"
	FieldExpiresIn    = "expires_in"
	FieldUser         = "user"
)
