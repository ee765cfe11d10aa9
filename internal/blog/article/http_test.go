// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/blog/article"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

func principalContext(ctx context.Context, userID string) context.Context {
	return ctxutil.WithPrincipal(ctx, &sec.Principal{ID: userID, Username: "ada"})
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	handler := article.NewHandler(article.NewService(newFakeRepository()))

	passthrough := func(next http.Handler) http.Handler { return next }
	guards := article.Guards{Create: passthrough, Update: passthrough, Delete: passthrough}
	return handler.Routes(passthrough, guards, chi.NewRouter())
}

/*
TestGetBySlugEndpoint_MalformedSlug verifies a slug that can never match a
row is rejected at the boundary with 400 rather than reported as missing.
*/
func TestGetBySlugEndpoint_MalformedSlug(t *testing.T) {
	router := newTestRouter(t)

	request := httptest.NewRequest(http.MethodGet, "/slug/Not%20A%20Slug!", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestCreateEndpoint_ValidationAggregates verifies a draft breaking several
rules comes back as one 400 naming every broken field.
*/
func TestCreateEndpoint_ValidationAggregates(t *testing.T) {
	router := newTestRouter(t)

	// Empty title, empty body, 11 tags
	payload := `{"title": "", "body": "", "tags": ["a","b","c","d","e","f","g","h","i","j","k"]}`
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code, "no principal in context yet")

	// With a principal the payload itself is the problem
	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	request = request.WithContext(principalContext(request.Context(), "user-ada"))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope struct {
		Details []apperr.FieldError `json:"details"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))

	fields := make([]string, 0, len(envelope.Details))
	for _, detail := range envelope.Details {
		fields = append(fields, detail.Field)
	}
	assert.Contains(t, fields, article.FieldTitle)
	assert.Contains(t, fields, article.FieldBody)
	assert.Contains(t, fields, article.FieldTags)
}
