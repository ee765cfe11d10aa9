// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/respond"
)

// Handler implements the admin statistics HTTP endpoints.
type Handler struct {
	statsService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{statsService: service}
}

// Routes returns a [chi.Router] configured with statistics routes. The
// caller mounts it behind a guard requiring the read permission on the
// statistics resource, which only administrators hold.
//
// # Endpoints
//   - GET / : Returns the platform overview counters.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.overview)

	return router
}

// overview handles GET /api/v1/stats requests.
func (handler *Handler) overview(writer http.ResponseWriter, httpRequest *http.Request) {
	overview, err := handler.statsService.Overview(httpRequest.Context())
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, overview)
}
