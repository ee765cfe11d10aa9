// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Authentication middleware: bearer token extraction, verification,
// principal loading, and policy rule-set construction.
//
// # Request State Machine
//
// Every protected request walks the chain
// Unauthenticated → TokenExtracted → TokenVerified → PrincipalLoaded → Ready,
// short-circuiting to a 401 response at the first failing step. On success the
// loaded principal (password hash never included) and a freshly compiled
// [ability.RuleSet] are attached to the request context for downstream use.

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/taibuivan/inkwell/internal/platform/ability"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the [sec.TokenService]
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Verify(tokenString string, expected sec.TokenType) (*sec.AuthClaims, error)
}

// PrincipalLoader resolves a token's user ID to a live, stored principal.
//
// Token claims prove possession, not existence — a deleted or suspended
// account must stop authenticating the moment its row is gone, regardless
// of how long its tokens remain cryptographically valid.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, userID string) (*sec.Principal, error)
}

// Authenticate drives the request through the authentication state machine.
//
// # Flow
//  1. Extract the token after the 'Bearer ' prefix (case-sensitive).
//  2. Verify it as an ACCESS token (signature, issuer, audience, expiry, type).
//  3. Load the principal from the user store.
//  4. Compile the request-scoped policy rule set from the principal's role.
//  5. Inject principal + rules into the request context.
//
// Mount it on every route group that requires an authenticated caller;
// public endpoints (register, login, refresh, health) stay outside it.
func Authenticate(verifier TokenVerifier, loader PrincipalLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Token Extraction ───────────────────────────────────────────
			token, ok := sec.ExtractBearer(request.Header.Get("Authorization"))
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Access token is required"))
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.Verify(token, sec.TokenTypeAccess)
			if err != nil {
				respond.Error(writer, request, translateTokenError(err))
				return
			}

			// ── 3. Principal Loading ──────────────────────────────────────────
			// A missing row means the account is gone and the token no longer
			// authenticates anyone. Storage faults are not an identity verdict
			// and surface as the errors they are.
			principal, err := loader.LoadPrincipal(request.Context(), claims.UserID)
			if err != nil {
				if isNotFound(err) {
					respond.Error(writer, request, apperr.Unauthorized("User not found"))
					return
				}
				respond.Error(writer, request, err)
				return
			}
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("User not found"))
				return
			}

			// ── 4. Policy Compilation ─────────────────────────────────────────
			// The rule set reflects the STORED role, which may have changed
			// since the token was issued (e.g. an admin demotion).
			rules := ability.Compile(principal.ID, principal.Role)

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			ctx = ctxutil.WithRules(ctx, rules)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// translateTokenError maps the sec error taxonomy onto client-safe 401 responses.
// Errors outside the taxonomy fall through to the generic 500 handler.
func translateTokenError(err error) error {
	switch {
	case errors.Is(err, sec.ErrTokenExpired):
		return apperr.Unauthorized("Access token expired")
	case errors.Is(err, sec.ErrTokenTypeMismatch):
		return apperr.Unauthorized("Invalid token type")
	case errors.Is(err, sec.ErrTokenMalformed):
		return apperr.Unauthorized("Malformed access token")
	case errors.Is(err, sec.ErrTokenSignature):
		return apperr.Unauthorized("Invalid token signature")
	case errors.Is(err, sec.ErrInvalidToken):
		return apperr.Unauthorized("Invalid access token")
	default:
		return err
	}
}

// RequireRole blocks requests if the authenticated user doesn't have the required role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It provides coarse
// minimum-role gating; instance-level decisions belong to [Authorize].
//
// # Flow
//  1. Check if a [*sec.Principal] exists in context (implies AuthN).
//  2. Check if the user's role meets or exceeds the required target role using [sec.UserRole.AtLeast].
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("User not authenticated"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !principal.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
