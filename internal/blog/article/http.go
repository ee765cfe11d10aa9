// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/ability"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/pagination"
	"github.com/taibuivan/inkwell/pkg/pointer"
)

// Handler implements the article HTTP endpoints.
type Handler struct {
	articleService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{articleService: service}
}

// Guards bundles the route middlewares the caller wires in: create runs
// against the type tag, update and delete resolve the concrete article first.
type Guards struct {
	Create func(http.Handler) http.Handler
	Update func(http.Handler) http.Handler
	Delete func(http.Handler) http.Handler
}

// Routes returns a [chi.Router] with every article endpoint. Reads are
// public; mutations sit behind the authentication middleware and their
// matching guards. The comments router mounts beneath each article so
// discussion URLs nest naturally.
//
// # Endpoints
//   - GET    /                      : Lists articles (filter + pagination).
//   - GET    /{articleID}           : Returns a single article by ID.
//   - GET    /slug/{slug}           : Returns a single article by URL slug.
//   - POST   /                      : Creates an article.
//   - PUT    /{articleID}           : Rewrites an article.
//   - DELETE /{articleID}           : Removes an article and its comment tree.
//   - *      /{articleID}/comments  : Delegated to the comments router.
func (handler *Handler) Routes(authenticate func(http.Handler) http.Handler, guards Guards, comments chi.Router) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/slug/{slug}", handler.getBySlug)
	router.Get("/{articleID}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)
		protected.With(guards.Create).Post("/", handler.create)
		protected.With(guards.Update).Put("/{articleID}", handler.update)
		protected.With(guards.Delete).Delete("/{articleID}", handler.remove)
	})

	router.Mount("/{articleID}/comments", comments)

	return router
}

// ResolveSubject loads the authorization subject for an article route.
// It satisfies the guard middleware's resolver contract.
func (handler *Handler) ResolveSubject(httpRequest *http.Request) (ability.Subject, error) {
	article, err := handler.articleService.Get(httpRequest.Context(), requestutil.ID(httpRequest, "articleID"))
	if err != nil {
		return ability.Subject{}, err
	}
	return article.Subject(), nil
}

// draftRequest represents the JSON payload for creating or rewriting an article.
type draftRequest struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

// validateDraft applies the boundary rules shared by create and update.
func validateDraft(input draftRequest) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldBody, input.Body).
		MaxLen(FieldSummary, input.Summary, 500).
		Range(FieldTags, len(input.Tags), 0, 10)

	return validator.Err()
}

// create handles POST /api/v1/articles requests.
//
// # Returns
//   - Writes HTTP 201 Created with the Article on success.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 403 Forbidden when the caller lacks the create permission.
func (handler *Handler) create(writer http.ResponseWriter, httpRequest *http.Request) {
	// ── 1. Principal & Payload Extraction ─────────────────────────────────

	ownerID, err := requestutil.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	var input draftRequest
	if err := requestutil.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if err := validateDraft(input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	article, err := handler.articleService.Create(httpRequest.Context(), ownerID, DraftInput{
		Title:     input.Title,
		Summary:   input.Summary,
		Body:      input.Body,
		Tags:      input.Tags,
		Published: input.Published,
	})
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, article)
}

// update handles PUT /api/v1/articles/{id} requests.
func (handler *Handler) update(writer http.ResponseWriter, httpRequest *http.Request) {
	var input draftRequest
	if err := requestutil.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, validate.ErrInvalidJSON)
		return
	}

	if err := validateDraft(input); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	article, err := handler.articleService.Update(httpRequest.Context(), requestutil.ID(httpRequest, "articleID"), DraftInput{
		Title:     input.Title,
		Summary:   input.Summary,
		Body:      input.Body,
		Tags:      input.Tags,
		Published: input.Published,
	})
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, article)
}

// remove handles DELETE /api/v1/articles/{id} requests.
func (handler *Handler) remove(writer http.ResponseWriter, httpRequest *http.Request) {
	if err := handler.articleService.Delete(httpRequest.Context(), requestutil.ID(httpRequest, "articleID")); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.NoContent(writer)
}

// list handles GET /api/v1/articles requests.
func (handler *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	// ── 1. Query Extraction ───────────────────────────────────────────────

	params := pagination.FromRequest(httpRequest)
	filter := Filter{
		OwnerID: requestutil.Query(httpRequest, "author"),
		Tag:     requestutil.Query(httpRequest, "tag"),
		Query:   requestutil.Query(httpRequest, "q"),
	}
	if publishedParam := requestutil.Query(httpRequest, "published"); publishedParam != "" {
		published, err := strconv.ParseBool(publishedParam)
		if err != nil {
			respond.Error(writer, httpRequest, validate.RequiredError(FieldPublished, "must be true or false"))
			return
		}
		filter.Published = pointer.To(published)
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	articles, total, err := handler.articleService.List(httpRequest.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.Paginated(writer, articles, pagination.NewMeta(params.Page, params.Limit, total))
}

// get handles GET /api/v1/articles/{id} requests.
func (handler *Handler) get(writer http.ResponseWriter, httpRequest *http.Request) {
	article, err := handler.articleService.Get(httpRequest.Context(), requestutil.ID(httpRequest, "articleID"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, article)
}

// getBySlug handles GET /api/v1/articles/slug/{slug} requests.
func (handler *Handler) getBySlug(writer http.ResponseWriter, httpRequest *http.Request) {
	slugParam := requestutil.Param(httpRequest, "slug")

	// A malformed slug can never match a row, so reject it before the query.
	validator := &validate.Validator{}
	if err := validator.Slug(FieldSlug, slugParam).Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	article, err := handler.articleService.GetBySlug(httpRequest.Context(), slugParam)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, article)
}
