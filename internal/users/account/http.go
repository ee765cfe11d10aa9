// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/internal/users/auth"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// Handler implements the administrative user-management HTTP endpoints.
//
// # Scope
//
// Every route here is mounted behind the authentication middleware and an
// authorization guard requiring the manage permission on the user resource,
// so only administrators ever reach the handler methods.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with user-management routes.
//
// # Endpoints
//   - GET   /           : Lists member accounts (filter + pagination).
//   - GET   /{id}       : Returns a single member account.
//   - PATCH /{id}/role  : Raises a member's role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}/role", handler.changeRole)

	return router
}

// list handles GET /api/v1/users requests.
func (handler *Handler) list(writer http.ResponseWriter, httpRequest *http.Request) {
	// ── 1. Query Extraction ───────────────────────────────────────────────

	params := pagination.FromRequest(httpRequest)
	filter := auth.UserFilter{
		Role:  requestutil.Query(httpRequest, "role"),
		Query: requestutil.Query(httpRequest, "q"),
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	users, total, err := handler.accountService.ListUsers(httpRequest.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

// get handles GET /api/v1/users/{id} requests.
func (handler *Handler) get(writer http.ResponseWriter, httpRequest *http.Request) {
	user, err := handler.accountService.GetUser(httpRequest.Context(), requestutil.ID(httpRequest, "id"))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, user)
}

// changeRoleRequest represents the JSON payload for a role elevation.
type changeRoleRequest struct {
	Role string `json:"role"`
}

// changeRole handles PATCH /api/v1/users/{id}/role requests.
//
// # Parameters
//   - writer: The HTTP response constructor.
//   - request: The incoming HTTP request payload.
//
// # Returns
//   - Writes HTTP 200 OK with the updated User on success.
//   - Writes HTTP 400 Bad Request for unknown or non-upward roles.
//   - Writes HTTP 404 Not Found if the member does not exist.
func (handler *Handler) changeRole(writer http.ResponseWriter, httpRequest *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input changeRoleRequest
	if err := requestutil.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	targetID := requestutil.ID(httpRequest, "id")

	validator := &validate.Validator{}
	validator.UUID("id", targetID).
		Required(auth.FieldRole, input.Role).
		OneOf(auth.FieldRole, input.Role,
			string(sec.RoleGuest), string(sec.RoleWriter), string(sec.RoleEditor), string(sec.RoleAdmin))

	if err := validator.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	user, err := handler.accountService.ChangeRole(httpRequest.Context(),
		targetID, sec.UserRole(input.Role))
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, user)
}
