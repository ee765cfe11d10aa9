// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/users/account"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

// fakeDirectory is an in-memory auth.UserRepository for elevation tests.
type fakeDirectory struct {
	users map[string]*auth.User
}

func newFakeDirectory(users ...*auth.User) *fakeDirectory {
	directory := &fakeDirectory{users: map[string]*auth.User{}}
	for _, user := range users {
		directory.users[user.ID] = user
	}
	return directory
}

func (f *fakeDirectory) Create(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeDirectory) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeDirectory) FindByEmail(context.Context, string) (*auth.User, error) {
	return nil, dberr.ErrNotFound
}

func (f *fakeDirectory) FindByUsername(context.Context, string) (*auth.User, error) {
	return nil, dberr.ErrNotFound
}

func (f *fakeDirectory) UpdateProfile(context.Context, *auth.User) error { return nil }

func (f *fakeDirectory) UpdateRole(_ context.Context, id string, role sec.UserRole) (*auth.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	user.Role = role
	return user, nil
}

func (f *fakeDirectory) List(_ context.Context, _ auth.UserFilter, _, _ int) ([]*auth.User, int, error) {
	return nil, 0, errors.New("not implemented")
}

// recordingNotifier records role-change notices.
type recordingNotifier struct {
	userIDs []string
	roles   []sec.UserRole
}

func (r *recordingNotifier) NotifyRoleChanged(_ context.Context, userID string, newRole sec.UserRole) {
	r.userIDs = append(r.userIDs, userID)
	r.roles = append(r.roles, newRole)
}

/*
TestChangeRole verifies the strictly-upward elevation rule and the
role-change notification.
*/
func TestChangeRole(t *testing.T) {
	directory := newFakeDirectory(&auth.User{ID: "user-1", Username: "ada", Role: sec.RoleWriter})
	notifier := &recordingNotifier{}
	service := account.NewService(directory, notifier)

	// 1. A strictly higher role is accepted, persisted, and announced
	updated, err := service.ChangeRole(context.Background(), "user-1", sec.RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleEditor, updated.Role)
	require.Len(t, notifier.userIDs, 1)
	assert.Equal(t, "user-1", notifier.userIDs[0])
	assert.Equal(t, sec.RoleEditor, notifier.roles[0])

	// 2. The same role again is a rejected no-op
	_, err = service.ChangeRole(context.Background(), "user-1", sec.RoleEditor)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 400, appError.HTTPStatus)

	// 3. Demotion is impossible by construction
	_, err = service.ChangeRole(context.Background(), "user-1", sec.RoleGuest)
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, sec.RoleEditor, directory.users["user-1"].Role)

	// 4. No notification went out for the rejected attempts
	assert.Len(t, notifier.userIDs, 1)
}

/*
TestChangeRole_UnknownRole verifies role names are validated before any
lookup happens.
*/
func TestChangeRole_UnknownRole(t *testing.T) {
	service := account.NewService(newFakeDirectory(), &recordingNotifier{})

	_, err := service.ChangeRole(context.Background(), "user-1", sec.UserRole("superuser"))

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 400, appError.HTTPStatus)
}

/*
TestChangeRole_UnknownUser verifies the NotFound path.
*/
func TestChangeRole_UnknownUser(t *testing.T) {
	service := account.NewService(newFakeDirectory(), &recordingNotifier{})

	_, err := service.ChangeRole(context.Background(), "user-gone", sec.RoleAdmin)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}
