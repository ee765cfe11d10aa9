// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the core identity and access management (IAM) system.

It handles everything from user registration and secure password hashing to
session lifecycle management via paired JWTs (access + refresh) with a Redis
revocation list for logout.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Refresh, Logout).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Revocations).
  - Security: Leverages Bcrypt hashing and dual-secret HS256 JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform’s lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and renewing session tokens.
type TokenProvider interface {
	// IssuePair creates a signed access/refresh token pair for the given user.
	IssuePair(userID, email string, role sec.UserRole) (*sec.TokenPair, error)

	// RenewAccess exchanges a valid refresh token for a fresh access token.
	RenewAccess(refreshToken string) (string, time.Duration, error)

	// Verify decodes and validates a token of the expected type.
	Verify(tokenString string, expected sec.TokenType) (*sec.AuthClaims, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository  UserRepository
	revocationStore RevocationStore
	tokenProvider   TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, revocations RevocationStore, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository:  userRepo,
		revocationStore: revocations,
		tokenProvider:   tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Deep-enrollment of a new member, handling password hashing and
the default role assignment. Every new account starts as a guest; roles can
only be raised later through the admin elevation operation.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Role:         sec.RoleGuest,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresIn time.Duration
	User            *User
}

/*
Login validates user credentials and issues a session token pair.

Description: Verifies identity, performs constant-time password comparison,
and issues the access/refresh pair from the token service.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	var user *User
	var err error
	// Flexible login: look up by Email or Username
	user, err = service.userRepository.FindByEmail(context, input.Login)
	if err != nil {
		user, err = service.userRepository.FindByUsername(context, input.Login)
	}

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify the password hash using bcrypt's constant-time comparison to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Issue the access/refresh pair
	pair, err := service.tokenProvider.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issuance_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		AccessExpiresIn: pair.AccessExpiresIn,
		User:            user,
	}, nil
}

// # Session Management

// RenewedAccess is the result of a successful refresh operation.
type RenewedAccess struct {
	AccessToken     string
	AccessExpiresIn time.Duration
}

/*
Refresh exchanges a refresh token for a brand-new access token.

Description: Rejects revoked (logged-out) refresh tokens, then delegates the
renewal to the token service. The renewed access token is minted from the
refresh token's claims alone; whether the principal still exists is checked
by the authentication middleware when the new token is next used.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *RenewedAccess: Fresh access credentials
  - err: Unauthorized on invalid/expired/revoked tokens
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*RenewedAccess, error) {

	// Refuse tokens invalidated by a logout
	revoked, err := service.revocationStore.IsRevoked(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil, fmt.Errorf("auth_service_revocation_check_failed: %w", err)
	}
	if revoked {
		return nil, apperr.Unauthorized("Refresh token has been revoked")
	}

	accessToken, expiresIn, err := service.tokenProvider.RenewAccess(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	return &RenewedAccess{AccessToken: accessToken, AccessExpiresIn: expiresIn}, nil
}

/*
Logout permanently revokes the presented refresh token.

Description: The token's digest is stored in Redis until the moment the
token would have expired naturally, so it can never be used for renewal
again. Logout of an already-invalid token is a successful no-op (idempotent).

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation storage failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {

	// Decode the token to learn its remaining lifetime. An invalid or
	// expired token needs no revocation entry.
	claims, err := service.tokenProvider.Verify(refreshToken, sec.TokenTypeRefresh)
	if err != nil {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	if err := service.revocationStore.Revoke(context, sec.HashToken(refreshToken), remaining); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Profile

/*
Profile returns the stored account of the given user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated account entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) Profile(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// ProfileUpdateInput holds the editable profile fields.
type ProfileUpdateInput struct {
	DisplayName string
	Bio         string
}

/*
UpdateProfile updates the caller's own display name and bio.

Parameters:
  - context: context.Context
  - userID: string
  - input: ProfileUpdateInput

Returns:
  - *User: Updated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input ProfileUpdateInput) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = input.DisplayName
	user.Bio = input.Bio

	if err := service.userRepository.UpdateProfile(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_profile_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("profile_updated", "user_id", userID)
	return user, nil
}

// # Principal Loading

// LoadPrincipal implements [middleware.PrincipalLoader] on top of the user
// repository: the token's user ID must still resolve to a stored account.
func (service *Service) LoadPrincipal(context context.Context, userID string) (*sec.Principal, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user.Principal(), nil
}
