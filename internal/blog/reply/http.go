// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reply

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/ability"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// Handler implements the reply HTTP endpoints.
type Handler struct {
	replyService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{replyService: service}
}

// Guards bundles the route middlewares the caller wires in: create runs
// against the type tag, update and delete resolve the concrete reply first.
type Guards struct {
	Create func(http.Handler) http.Handler
	Update func(http.Handler) http.Handler
	Delete func(http.Handler) http.Handler
}

// CommentRoutes returns a [chi.Router] that mounts beneath a comment:
// /comments/{commentID}/replies. Listing is public, posting requires an
// authenticated caller holding the create permission.
//
// # Endpoints
//   - GET  / : Lists the comment's replies (pagination).
//   - POST / : Posts a reply to the comment.
func (handler *Handler) CommentRoutes(authenticate func(http.Handler) http.Handler, createGuard func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)
		protected.With(createGuard).Post("/", handler.create)
	})

	return router
}

// Routes returns a [chi.Router] for the /replies resource: editing and
// removing individual replies.
//
// # Endpoints
//   - PATCH  /{replyID} : Edits a reply body.
//   - DELETE /{replyID} : Removes a reply.
func (handler *Handler) Routes(authenticate func(http.Handler) http.Handler, guards Guards) chi.Router {
	router := chi.NewRouter()

	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)
		protected.With(guards.Update).Patch("/{replyID}", handler.update)
		protected.With(guards.Delete).Delete("/{replyID}", handler.remove)
	})

	return router
}

// ResolveSubject loads the authorization subject for a reply route.
// It satisfies the guard middleware's resolver contract.
func (handler *Handler) ResolveSubject(httpRequest *http.Request) (ability.Subject, error) {
	reply, err := handler.replyService.Get(httpRequest.Context(), requestutil.ID(httpRequest, "replyID"))
	if err != nil {
		return ability.Subject{}, err
	}
	return reply.Subject(), nil
}

// replyRequest represents the JSON payload for posting or editing a reply.
type replyRequest struct {
	Body string `json:"body"`
}

// validateBody applies the boundary rules shared by create and update.
func validateBody(input replyRequest) error {
	validator := &validate.Validator{}
	validator.Required(FieldBody, input.Body).
		MaxLen(FieldBody, input.Body, 4000)

	return validator.Err()
}

// create handles POST /api/v1/comments/{commentID}/replies requests.
//
// # Returns
//   - Writes HTTP 201 Created with the Reply on success.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 404 Not Found if the comment does not exist.
func (handler *Handler) create(writer http.ResponseWriter, httpRequest *http.Request) {
	// ── 1. Principal & Payload Extraction ─────────────────────────────────

	author, err := requestutil.RequiredPrincipal(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	var input replyRequest
	if err := requestutil.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if err := validateBody(input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	reply, err := handler.replyService.Create(httpRequest.Context(),
		requestutil.ID(httpRequest, "commentID"), author, input.Body)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, reply)
}

// update handles PATCH /api/v1/replies/{id} requests.
func (handler *Handler) update(writer http.ResponseWriter, httpRequest *http.Request) {
	var input replyRequest
	if err := requestutil.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, validate.ErrInvalidJSON)
		return
	}

	if err := validateBody(input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	reply, err := handler.replyService.UpdateBody(httpRequest.Context(),
		requestutil.ID(httpRequest, "replyID"), input.Body)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, reply)
}

// remove handles DELETE /api/v1/replies/{id} requests.
func (handler *Handler) remove(writer http.ResponseWriter, httpRequest *http.Request) {
	if err := handler.replyService.Delete(httpRequest.Context(), requestutil.ID(httpRequest, "replyID")); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.NoContent(writer)
}

// list handles GET /api/v1/comments/{commentID}/replies requests.
func (handler *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	params := pagination.FromRequest(httpRequest)

	replies, total, err := handler.replyService.ListForComment(httpRequest.Context(),
		requestutil.ID(httpRequest, "commentID"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Paginated(writer, replies, pagination.NewMeta(params.Page, params.Limit, total))
}
