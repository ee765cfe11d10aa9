// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/users/account"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

/*
TestChangeRoleEndpoint_Validation verifies the role-change boundary: the
target must be a UUID and the role a known name, with every failure reported
in one 400 response.
*/
func TestChangeRoleEndpoint_Validation(t *testing.T) {
	handler := account.NewHandler(account.NewService(newFakeDirectory(), &recordingNotifier{}))
	router := handler.Routes()

	request := httptest.NewRequest(http.MethodPatch, "/not-a-uuid/role", strings.NewReader(`{"role": "superhero"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope struct {
		Details []apperr.FieldError `json:"details"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))

	// Both the malformed id and the unknown role are named
	fields := make([]string, 0, len(envelope.Details))
	for _, detail := range envelope.Details {
		fields = append(fields, detail.Field)
	}
	assert.Contains(t, fields, "id")
	assert.Contains(t, fields, auth.FieldRole)
}

/*
TestChangeRoleEndpoint_Success verifies a well-formed elevation flows through
to the service and returns the updated user.
*/
func TestChangeRoleEndpoint_Success(t *testing.T) {
	const targetID = "0191e3a0-0000-7000-8000-000000000001"

	directory := newFakeDirectory(&auth.User{ID: targetID, Username: "ada", Role: sec.RoleWriter})
	handler := account.NewHandler(account.NewService(directory, &recordingNotifier{}))
	router := handler.Routes()

	request := httptest.NewRequest(http.MethodPatch, "/"+targetID+"/role", strings.NewReader(`{"role": "editor"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data auth.User `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	assert.Equal(t, sec.RoleEditor, envelope.Data.Role)
}
