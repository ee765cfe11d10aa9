// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/ability"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// Handler implements the comment HTTP endpoints.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Guards bundles the route middlewares the caller wires in: create runs
// against the type tag, update and delete resolve the concrete comment first.
type Guards struct {
	Create func(http.Handler) http.Handler
	Update func(http.Handler) http.Handler
	Delete func(http.Handler) http.Handler
}

// ArticleRoutes returns a [chi.Router] that mounts beneath an article:
// /articles/{articleID}/comments. Listing is public, posting requires an
// authenticated caller holding the create permission.
//
// # Endpoints
//   - GET  / : Lists the article's comments (pagination).
//   - POST / : Posts a comment on the article.
func (handler *Handler) ArticleRoutes(authenticate func(http.Handler) http.Handler, createGuard func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)
		protected.With(createGuard).Post("/", handler.create)
	})

	return router
}

// Routes returns a [chi.Router] for the /comments resource: editing and
// removing individual comments, with the replies router nested beneath each
// comment.
//
// # Endpoints
//   - PATCH  /{commentID}          : Edits a comment body.
//   - DELETE /{commentID}          : Removes a comment and its replies.
//   - *      /{commentID}/replies  : Delegated to the replies router.
func (handler *Handler) Routes(authenticate func(http.Handler) http.Handler, guards Guards, replies chi.Router) chi.Router {
	router := chi.NewRouter()

	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)
		protected.With(guards.Update).Patch("/{commentID}", handler.update)
		protected.With(guards.Delete).Delete("/{commentID}", handler.remove)
	})

	router.Mount("/{commentID}/replies", replies)

	return router
}

// ResolveSubject loads the authorization subject for a comment route.
// It satisfies the guard middleware's resolver contract.
func (handler *Handler) ResolveSubject(httpRequest *http.Request) (ability.Subject, error) {
	comment, err := handler.commentService.Get(httpRequest.Context(), requestutil.ID(httpRequest, "commentID"))
	if err != nil {
		return ability.Subject{}, err
	}
	return comment.Subject(), nil
}

// commentRequest represents the JSON payload for posting or editing a comment.
type commentRequest struct {
	Body string `json:"body"`
}

// validateBody applies the boundary rules shared by create and update.
func validateBody(input commentRequest) error {
	validator := &validate.Validator{}
	validator.Required(FieldBody, input.Body).
		MaxLen(FieldBody, input.Body, 4000)

	return validator.Err()
}

// create handles POST /api/v1/articles/{articleID}/comments requests.
//
// # Returns
//   - Writes HTTP 201 Created with the Comment on success.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 404 Not Found if the article does not exist.
func (handler *Handler) create(writer http.ResponseWriter, httpRequest *http.Request) {
	// ── 1. Principal & Payload Extraction ─────────────────────────────────

	author, err := requestutil.RequiredPrincipal(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	var input commentRequest
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

	comment, err := handler.commentService.Create(httpRequest.Context(),
		requestutil.ID(httpRequest, "articleID"), author, input.Body)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, comment)
}

// update handles PATCH /api/v1/comments/{id} requests.
func (handler *Handler) update(writer http.ResponseWriter, httpRequest *http.Request) {
	var input commentRequest
	if err := requestutil.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, validate.ErrInvalidJSON)
		return
	}

	if err := validateBody(input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	comment, err := handler.commentService.UpdateBody(httpRequest.Context(),
		requestutil.ID(httpRequest, "commentID"), input.Body)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, comment)
}

// remove handles DELETE /api/v1/comments/{id} requests.
func (handler *Handler) remove(writer http.ResponseWriter, httpRequest *http.Request) {
	if err := handler.commentService.Delete(httpRequest.Context(), requestutil.ID(httpRequest, "commentID")); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.NoContent(writer)
}

// list handles GET /api/v1/articles/{articleID}/comments requests.
func (handler *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	params := pagination.FromRequest(httpRequest)

	comments, total, err := handler.commentService.ListForArticle(httpRequest.Context(),
		requestutil.ID(httpRequest, "articleID"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}
