// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

// fakeUserRepository is an in-memory UserRepository.
type fakeUserRepository struct {
	users []*auth.User
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUserRepository) UpdateProfile(context.Context, *auth.User) error { return nil }

func (f *fakeUserRepository) UpdateRole(context.Context, string, sec.UserRole) (*auth.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserRepository) List(context.Context, auth.UserFilter, int, int) ([]*auth.User, int, error) {
	return nil, 0, errors.New("not implemented")
}

// fakeRevocationStore is an in-memory RevocationStore.
type fakeRevocationStore struct {
	revoked map[string]bool
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: map[string]bool{}}
}

func (f *fakeRevocationStore) Revoke(_ context.Context, tokenHash string, _ time.Duration) error {
	f.revoked[tokenHash] = true
	return nil
}

func (f *fakeRevocationStore) IsRevoked(_ context.Context, tokenHash string) (bool, error) {
	return f.revoked[tokenHash], nil
}

// fakeTokenProvider satisfies auth.TokenProvider with canned results.
type fakeTokenProvider struct {
	verifyClaims *sec.AuthClaims
	verifyErr    error
	renewErr     error
}

func (f *fakeTokenProvider) IssuePair(_, _ string, _ sec.UserRole) (*sec.TokenPair, error) {
	return &sec.TokenPair{
		AccessToken:     "signed-access-token",
		RefreshToken:    "signed-refresh-token",
		AccessExpiresIn: 15 * time.Minute,
	}, nil
}

func (f *fakeTokenProvider) RenewAccess(string) (string, time.Duration, error) {
	if f.renewErr != nil {
		return "", 0, f.renewErr
	}
	return "renewed-access-token", 15 * time.Minute, nil
}

func (f *fakeTokenProvider) Verify(string, sec.TokenType) (*sec.AuthClaims, error) {
	return f.verifyClaims, f.verifyErr
}

func newService(repository *fakeUserRepository, revocations *fakeRevocationStore, tokens *fakeTokenProvider) *auth.Service {
	if repository == nil {
		repository = &fakeUserRepository{}
	}
	if revocations == nil {
		revocations = newFakeRevocationStore()
	}
	if tokens == nil {
		tokens = &fakeTokenProvider{}
	}
	return auth.NewService(repository, revocations, tokens)
}

func registeredUser(t *testing.T, repository *fakeUserRepository, username, email, password string) *auth.User {
	t.Helper()

	service := newService(repository, nil, nil)
	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

/*
TestRegister verifies enrollment: hashed password, guest default role, and
duplicate identity conflicts.
*/
func TestRegister(t *testing.T) {
	repository := &fakeUserRepository{}
	service := newService(repository, nil, nil)

	// 1. A fresh registration succeeds as a guest
	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username:    "ada",
		Email:       "ada@inkwell.app",
		Password:    "correct horse battery",
		DisplayName: "Ada",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleGuest, user.Role)

	// 2. The password is stored only as a verifiable hash
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct horse battery", user.PasswordHash))

	// 3. Reusing the email conflicts
	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "ada2", Email: "ada@inkwell.app", Password: "password123",
	})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 409, appError.HTTPStatus)

	// 4. Reusing the username conflicts
	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "ada", Email: "other@inkwell.app", Password: "password123",
	})
	appError = apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 409, appError.HTTPStatus)
}

/*
TestLogin verifies credential checking and that every failure mode shares
one generic message, preventing account enumeration.
*/
func TestLogin(t *testing.T) {
	repository := &fakeUserRepository{}
	registeredUser(t, repository, "ada", "ada@inkwell.app", "correct horse battery")
	service := newService(repository, nil, nil)

	// 1. Login by email
	session, err := service.Login(context.Background(), auth.LoginInput{
		Login: "ada@inkwell.app", Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "signed-access-token", session.AccessToken)
	assert.Equal(t, "signed-refresh-token", session.RefreshToken)
	assert.Equal(t, "ada", session.User.Username)

	// 2. Login by username
	session, err = service.Login(context.Background(), auth.LoginInput{
		Login: "ada", Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotNil(t, session.User)

	// 3. Unknown account and wrong password produce the identical message
	_, unknownErr := service.Login(context.Background(), auth.LoginInput{
		Login: "nobody", Password: "whatever",
	})
	_, wrongPasswordErr := service.Login(context.Background(), auth.LoginInput{
		Login: "ada", Password: "wrong password",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongPasswordErr)
	assert.Equal(t, unknownErr.Error(), wrongPasswordErr.Error())
	assert.Equal(t, 401, apperr.As(unknownErr).HTTPStatus)
}

/*
TestRefresh verifies renewal, including the revocation check running before
any cryptographic work.
*/
func TestRefresh(t *testing.T) {
	revocations := newFakeRevocationStore()
	service := newService(nil, revocations, &fakeTokenProvider{})

	// 1. A valid refresh token yields a new access token
	renewed, err := service.Refresh(context.Background(), "signed-refresh-token")
	require.NoError(t, err)
	assert.Equal(t, "renewed-access-token", renewed.AccessToken)
	assert.Equal(t, 15*time.Minute, renewed.AccessExpiresIn)

	// 2. A revoked token is refused outright
	revocations.revoked[sec.HashToken("signed-refresh-token")] = true
	_, err = service.Refresh(context.Background(), "signed-refresh-token")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 401, appError.HTTPStatus)
	assert.Equal(t, "Refresh token has been revoked", appError.Message)

	// 3. A token the provider rejects maps to the generic 401
	service = newService(nil, newFakeRevocationStore(), &fakeTokenProvider{renewErr: sec.ErrTokenExpired})
	_, err = service.Refresh(context.Background(), "stale-token")
	appError = apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "Invalid or expired refresh token", appError.Message)
}

/*
TestLogout verifies revocation-until-natural-expiry and idempotence.
*/
func TestLogout(t *testing.T) {
	revocations := newFakeRevocationStore()
	tokens := &fakeTokenProvider{
		verifyClaims: &sec.AuthClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		},
	}
	service := newService(nil, revocations, tokens)

	// 1. A live token gets its digest revoked
	require.NoError(t, service.Logout(context.Background(), "signed-refresh-token"))
	assert.True(t, revocations.revoked[sec.HashToken("signed-refresh-token")])

	// 2. An invalid token is a successful no-op
	service = newService(nil, newFakeRevocationStore(), &fakeTokenProvider{verifyErr: sec.ErrTokenMalformed})
	assert.NoError(t, service.Logout(context.Background(), "garbage"))

	// 3. An already-expired token needs no revocation entry
	expired := newFakeRevocationStore()
	service = newService(nil, expired, &fakeTokenProvider{
		verifyClaims: &sec.AuthClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		},
	})
	assert.NoError(t, service.Logout(context.Background(), "old-token"))
	assert.Empty(t, expired.revoked)
}

/*
TestLoadPrincipal verifies the token-to-stored-account resolution used by
the authentication middleware.
*/
func TestLoadPrincipal(t *testing.T) {
	repository := &fakeUserRepository{}
	user := registeredUser(t, repository, "ada", "ada@inkwell.app", "correct horse battery")
	service := newService(repository, nil, nil)

	// 1. A stored account resolves to a principal without the hash
	principal, err := service.LoadPrincipal(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)
	assert.Equal(t, "ada", principal.Username)

	// 2. A deleted account does not
	_, err = service.LoadPrincipal(context.Background(), "user-gone")
	assert.Error(t, err)
}
