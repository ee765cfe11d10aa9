// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces ([middleware.TokenVerifier]).
//
// # Token Model
//
// Inkwell issues a pair of HS256-signed JWTs per login: a short-lived access
// token and a long-lived refresh token. Each type is signed with its OWN
// secret and carries an explicit "typ" discriminator claim, so a leaked
// refresh token can never be replayed where an access token is expected
// (and vice versa).
package sec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Types

// TokenType discriminates the two members of a session token pair.
type TokenType string

const (
	// TokenTypeAccess marks a short-lived per-request credential.
	TokenTypeAccess TokenType = "access"

	// TokenTypeRefresh marks a long-lived renewal credential.
	TokenTypeRefresh TokenType = "refresh"
)

// # Error Taxonomy

// Verification failures form a small hierarchy rooted at [ErrInvalidToken],
// so callers can handle coarsely (errors.Is(err, ErrInvalidToken)) or map
// each subtype to a specific client message.
var (
	// ErrInvalidToken is the parent of every token verification failure.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token is past its expiry claim.
	ErrTokenExpired = fmt.Errorf("token expired: %w", ErrInvalidToken)

	// ErrTokenMalformed is returned when the token encoding or claims cannot be parsed.
	ErrTokenMalformed = fmt.Errorf("token malformed: %w", ErrInvalidToken)

	// ErrTokenSignature is returned when the signature does not verify.
	ErrTokenSignature = fmt.Errorf("token signature invalid: %w", ErrInvalidToken)

	// ErrTokenTypeMismatch is returned when the token's "typ" claim does not
	// match the verification context (e.g. a refresh token presented as access).
	ErrTokenTypeMismatch = fmt.Errorf("token type mismatch: %w", ErrInvalidToken)
)

// # Claims

// AuthClaims represents the payload embedded inside an Inkwell session token.
//
// # Why custom claims?
//
// By embedding the UserID, Email, and Role directly inside the JWT,
// [middleware.Authenticate] can reconstruct the acting user context without
// querying the database for the claims themselves. Custom claim names are
// abbreviated to keep the JWT payload small.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID    string    `json:"uid"`
	Email     string    `json:"eml"`
	Role      string    `json:"rol"`
	TokenType TokenType `json:"typ"`
}

// # Token Service

// TokenConfig carries the signing material and lifetimes for [TokenService].
//
// It is built once from environment configuration at process start and passed
// by injection — there is no ambient global token state.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	Audience      string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenPair is the result of a successful token issuance.
type TokenPair struct {
	AccessToken  string
	RefreshToken string

	// AccessExpiresIn is the access token lifetime, for the login/refresh
	// response body (clients schedule renewal from it).
	AccessExpiresIn time.Duration
}

// TokenService issues and verifies the session token pair using HS256.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	audience      string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService validates the signing configuration and constructs a service.
//
// # Fail-Fast
//
// Missing secrets are a deployment error, not a per-request condition, so the
// constructor rejects them and the process exits during startup wiring.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.AccessSecret == "" {
		return nil, errors.New("sec: access token secret is not configured")
	}
	if cfg.RefreshSecret == "" {
		return nil, errors.New("sec: refresh token secret is not configured")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("sec: token lifetimes must be positive")
	}

	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}, nil
}

// # Issuance

/*
IssuePair creates a fresh access/refresh token pair for a user.

Description: Both tokens share issuedAt and identity claims but differ in
lifetime, "typ" discriminator, and signing secret.

Parameters:
  - userID: The ID of the account.
  - email: The email of the account.
  - role: The role of the account.

Returns:
  - *TokenPair: Signed tokens plus the access token lifetime.
  - err: Signing failures.
*/
func (service *TokenService) IssuePair(userID, email string, role UserRole) (*TokenPair, error) {
	issuedAt := time.Now()

	accessToken, err := service.sign(userID, email, role, TokenTypeAccess, issuedAt)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to sign access token: %w", err)
	}

	refreshToken, err := service.sign(userID, email, role, TokenTypeRefresh, issuedAt)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		AccessExpiresIn: service.accessTTL,
	}, nil
}

// sign builds and signs a single token of the given type.
func (service *TokenService) sign(userID, email string, role UserRole, tokenType TokenType, issuedAt time.Time) (string, error) {
	timeToLive := service.accessTTL
	secret := service.accessSecret
	if tokenType == TokenTypeRefresh {
		timeToLive = service.refreshTTL
		secret = service.refreshSecret
	}

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{service.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(timeToLive)),
		},
		UserID:    userID,
		Email:     email,
		Role:      string(role),
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// # Verification

/*
Verify checks the signature, issuer, audience, expiry, and type of a token.

Description: The expected [TokenType] selects the signing secret; the token's
"typ" claim must match it. The type check runs on the decoded (but not yet
verified) claims so that presenting the wrong member of a pair always fails
with [ErrTokenTypeMismatch] rather than an opaque signature error.

Parameters:
  - tokenString: Raw JWT string.
  - expected: The [TokenType] this verification context requires.

Returns:
  - *AuthClaims: Decoded claims on success.
  - err: One of the typed errors rooted at [ErrInvalidToken].
*/
func (service *TokenService) Verify(tokenString string, expected TokenType) (*AuthClaims, error) {
	secret := service.accessSecret
	if expected == TokenTypeRefresh {
		secret = service.refreshSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrTokenMalformed, token.Header["alg"])
		}

		// The keyfunc runs before signature verification, so the type
		// discriminator is checked first against the decoded claims.
		if claims, ok := token.Claims.(*AuthClaims); ok && claims.TokenType != expected {
			return nil, ErrTokenTypeMismatch
		}

		return secret, nil
	}, jwt.WithIssuer(service.issuer), jwt.WithAudience(service.audience))

	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// classifyTokenError maps golang-jwt parse failures onto the sec error taxonomy.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, ErrTokenTypeMismatch):
		return ErrTokenTypeMismatch
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	default:
		// Issuer/audience mismatches and any other claim failure.
		return fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}
}

// # Renewal

/*
RenewAccess exchanges a valid refresh token for a brand-new access token.

Description: Only the refresh token itself is verified here; whether the
principal still exists is checked by the authentication middleware the next
time the renewed access token is used.

Parameters:
  - refreshToken: Raw refresh JWT string.

Returns:
  - string: Fresh signed access token.
  - time.Duration: Access token lifetime.
  - err: Verification or signing failures.
*/
func (service *TokenService) RenewAccess(refreshToken string) (string, time.Duration, error) {
	claims, err := service.Verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", 0, err
	}

	accessToken, err := service.sign(claims.UserID, claims.Email, UserRole(claims.Role), TokenTypeAccess, time.Now())
	if err != nil {
		return "", 0, fmt.Errorf("sec: failed to sign renewed access token: %w", err)
	}

	return accessToken, service.accessTTL, nil
}

// # Header Parsing

// ExtractBearer returns the token after a case-sensitive "Bearer " prefix.
//
// It is pure parsing: no side effects and no error — a missing or malformed
// header yields ok == false.
func ExtractBearer(headerValue string) (string, bool) {
	token, found := strings.CutPrefix(headerValue, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
