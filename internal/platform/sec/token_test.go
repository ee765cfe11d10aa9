// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

func newTestService(t *testing.T) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		Issuer:        "inkwell.app",
		Audience:      "inkwell-api",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return service
}

/*
TestTokenService_Config verifies the fail-fast constructor validation.
*/
func TestTokenService_Config(t *testing.T) {
	// 1. Missing access secret
	_, err := sec.NewTokenService(sec.TokenConfig{
		RefreshSecret: "r", AccessTTL: time.Minute, RefreshTTL: time.Hour,
	})
	assert.Error(t, err)

	// 2. Missing refresh secret
	_, err = sec.NewTokenService(sec.TokenConfig{
		AccessSecret: "a", AccessTTL: time.Minute, RefreshTTL: time.Hour,
	})
	assert.Error(t, err)

	// 3. Non-positive lifetimes
	_, err = sec.NewTokenService(sec.TokenConfig{
		AccessSecret: "a", RefreshSecret: "r", AccessTTL: 0, RefreshTTL: time.Hour,
	})
	assert.Error(t, err)
}

/*
TestTokenService_RoundTrip verifies that an issued pair carries the identity
claims back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestService(t)

	// 1. Issue a pair
	pair, err := service.IssuePair("user-123", "ada@inkwell.app", sec.RoleWriter)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 15*time.Minute, pair.AccessExpiresIn)

	// 2. Verify the access token as an access token
	claims, err := service.Verify(pair.AccessToken, sec.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "ada@inkwell.app", claims.Email)
	assert.Equal(t, "writer", claims.Role)
	assert.Equal(t, sec.TokenTypeAccess, claims.TokenType)

	// 3. Verify the refresh token as a refresh token
	claims, err = service.Verify(pair.RefreshToken, sec.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, sec.TokenTypeRefresh, claims.TokenType)
}

/*
TestTokenService_TypeMismatch verifies that presenting a token in the wrong
verification context always classifies as a type mismatch, never as a
signature problem, even though the two types use different secrets.
*/
func TestTokenService_TypeMismatch(t *testing.T) {
	service := newTestService(t)

	pair, err := service.IssuePair("user-123", "ada@inkwell.app", sec.RoleWriter)
	require.NoError(t, err)

	// 1. Refresh token presented as access
	_, err = service.Verify(pair.RefreshToken, sec.TokenTypeAccess)
	assert.ErrorIs(t, err, sec.ErrTokenTypeMismatch)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)

	// 2. Access token presented as refresh
	_, err = service.Verify(pair.AccessToken, sec.TokenTypeRefresh)
	assert.ErrorIs(t, err, sec.ErrTokenTypeMismatch)
}

/*
TestTokenService_Expired verifies the expiry classification.
*/
func TestTokenService_Expired(t *testing.T) {
	shortLived, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		Issuer:        "inkwell.app",
		Audience:      "inkwell-api",
		AccessTTL:     time.Nanosecond,
		RefreshTTL:    time.Hour,
	})
	require.NoError(t, err)

	pair, err := shortLived.IssuePair("user-123", "ada@inkwell.app", sec.RoleGuest)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = shortLived.Verify(pair.AccessToken, sec.TokenTypeAccess)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_Tampered verifies signature and malformed classifications.
*/
func TestTokenService_Tampered(t *testing.T) {
	service := newTestService(t)

	pair, err := service.IssuePair("user-123", "ada@inkwell.app", sec.RoleGuest)
	require.NoError(t, err)

	// 1. Token signed by a different key
	stranger, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:  "some-other-access-secret",
		RefreshSecret: "some-other-refresh-secret",
		Issuer:        "inkwell.app",
		Audience:      "inkwell-api",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
	})
	require.NoError(t, err)

	strangerPair, err := stranger.IssuePair("user-123", "ada@inkwell.app", sec.RoleGuest)
	require.NoError(t, err)

	_, err = service.Verify(strangerPair.AccessToken, sec.TokenTypeAccess)
	assert.ErrorIs(t, err, sec.ErrTokenSignature)

	// 2. Garbage input
	_, err = service.Verify("not-a-jwt", sec.TokenTypeAccess)
	assert.ErrorIs(t, err, sec.ErrTokenMalformed)

	// 3. Payload flipped after signing
	parts := strings.Split(pair.AccessToken, ".")
	require.Len(t, parts, 3)
	corrupted := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))
	_, err = service.Verify(corrupted, sec.TokenTypeAccess)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_RenewAccess verifies that a refresh token yields a fresh,
verifiable access token, and that an access token cannot drive a renewal.
*/
func TestTokenService_RenewAccess(t *testing.T) {
	service := newTestService(t)

	pair, err := service.IssuePair("user-123", "ada@inkwell.app", sec.RoleEditor)
	require.NoError(t, err)

	// 1. Refresh token renews
	accessToken, expiresIn, err := service.RenewAccess(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, expiresIn)

	claims, err := service.Verify(accessToken, sec.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "editor", claims.Role)

	// 2. Access token cannot renew
	_, _, err = service.RenewAccess(pair.AccessToken)
	assert.ErrorIs(t, err, sec.ErrTokenTypeMismatch)
}

/*
TestExtractBearer verifies the case-sensitive Bearer prefix handling.
*/
func TestExtractBearer(t *testing.T) {
	testCases := []struct {
		name    string
		header  string
		token   string
		isFound bool
	}{
		{"well formed", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"empty header", "", "", false},
		{"missing prefix", "abc.def.ghi", "", false},
		{"lowercase scheme", "bearer abc.def.ghi", "", false},
		{"prefix only", "Bearer ", "", false},
		{"basic scheme", "Basic dXNlcjpwYXNz", "", false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			token, ok := sec.ExtractBearer(testCase.header)
			assert.Equal(t, testCase.isFound, ok)
			assert.Equal(t, testCase.token, token)
		})
	}
}

/*
TestHashToken verifies the revocation digest is stable and hex-encoded.
*/
func TestHashToken(t *testing.T) {
	first := sec.HashToken("some.refresh.token")
	second := sec.HashToken("some.refresh.token")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, sec.HashToken("another.refresh.token"))
}
