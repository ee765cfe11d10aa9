// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/ability"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/pagination"
	"github.com/taibuivan/inkwell/pkg/pointer"
)

// Handler implements the notification inbox HTTP endpoints.
//
// # Scope
//
// The inbox is strictly personal: listing always scopes to the calling
// principal, and marking a notice read goes through the authorization guard
// with [Handler.ResolveSubject] so only the recipient (or an administrator)
// can touch it.
type Handler struct {
	notifyService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{notifyService: service}
}

// Routes returns a [chi.Router] configured with notification routes. The
// markRead guard is supplied by the caller so the router wiring stays in
// one place.
//
// # Endpoints
//   - GET   /            : Lists the caller's notifications (filter + pagination).
//   - PATCH /{id}/read   : Marks one notification as read.
func (handler *Handler) Routes(markReadGuard func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.With(markReadGuard).Patch("/{id}/read", handler.markRead)

	return router
}

// ResolveSubject loads the authorization subject for a notification route.
// It satisfies the guard middleware's resolver contract.
func (handler *Handler) ResolveSubject(httpRequest *http.Request) (ability.Subject, error) {
	notification, err := handler.notifyService.Get(httpRequest.Context(), requestutil.ID(httpRequest, "id"))
	if err != nil {
		return ability.Subject{}, err
	}
	return notification.Subject(), nil
}

// list handles GET /api/v1/notifications requests.
func (handler *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	// ── 1. Principal & Query Extraction ───────────────────────────────────

	userID, err := requestutil.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	params := pagination.FromRequest(httpRequest)
	filter, err := filterFromQuery(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	notifications, total, err := handler.notifyService.ListForUser(
		httpRequest.Context(), userID, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.Paginated(writer, notifications, pagination.NewMeta(params.Page, params.Limit, total))
}

// markRead handles PATCH /api/v1/notifications/{id}/read requests.
func (handler *Handler) markRead(writer http.ResponseWriter, httpRequest *http.Request) {
	notification, err := handler.notifyService.MarkRead(httpRequest.Context(), requestutil.ID(httpRequest, "id"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, notification)
}

// filterFromQuery parses the optional kind, read, since and before query
// parameters into a [Filter], collecting every bad parameter into one
// validation error.
func filterFromQuery(httpRequest *http.Request) (Filter, error) {
	filter := Filter{}
	validator := &validate.Validator{}

	if kind := requestutil.Query(httpRequest, "kind"); kind != "" {
		validator.OneOf("kind", kind,
			string(KindComment), string(KindReply), string(KindMention),
			string(KindArticlePublished), string(KindRoleChanged))
		filter.Kind = Kind(kind)
	}

	if readParam := requestutil.Query(httpRequest, "read"); readParam != "" {
		read, err := strconv.ParseBool(readParam)
		validator.Custom("read", err != nil, "Must be true or false")
		if err == nil {
			filter.Read = pointer.To(read)
		}
	}

	if sinceParam := requestutil.Query(httpRequest, "since"); sinceParam != "" {
		since, err := time.Parse(time.RFC3339, sinceParam)
		validator.Custom("since", err != nil, "Must be an RFC 3339 timestamp")
		if err == nil {
			filter.Since = pointer.To(since)
		}
	}

	if beforeParam := requestutil.Query(httpRequest, "before"); beforeParam != "" {
		before, err := time.Parse(time.RFC3339, beforeParam)
		validator.Custom("before", err != nil, "Must be an RFC 3339 timestamp")
		if err == nil {
			filter.Before = pointer.To(before)
		}
	}

	return filter, validator.Err()
}
