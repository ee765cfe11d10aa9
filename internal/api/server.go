// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

Authorization is wired here and only here: every mutation route receives its
guard in this file, so the full permission surface of the API can be read
top to bottom in [NewServer].
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/inkwell/internal/blog/article"
	"github.com/taibuivan/inkwell/internal/blog/comment"
	"github.com/taibuivan/inkwell/internal/blog/reply"
	"github.com/taibuivan/inkwell/internal/notify"
	"github.com/taibuivan/inkwell/internal/platform/ability"
	"github.com/taibuivan/inkwell/internal/platform/config"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/middleware"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/stats"
	"github.com/taibuivan/inkwell/internal/users/account"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the session lifecycle and the self-service profile.
	Auth *auth.Handler

	// Account handles the administrative member directory and role elevation.
	Account *account.Handler

	// Article handles the publishing catalogue.
	Article *article.Handler

	// Comment handles article discussion threads.
	Comment *comment.Handler

	// Reply handles second-level discussion.
	Reply *reply.Handler

	// Notify handles the personal notification inbox.
	Notify *notify.Handler

	// Stats handles the admin dashboard counters.
	Stats *stats.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger,
	verifier middleware.TokenVerifier, loader middleware.PrincipalLoader, h Handlers) *Server {

	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// Authentication is NOT global: public reads stay anonymous, and each
	// protected route group opts in below.
	authenticate := middleware.Authenticate(verifier, loader)

	// # Authorization Guards
	// Type-level guards for creation, instance-level guards for mutation.
	articleGuards := article.Guards{
		Create: middleware.Authorize(ability.ActionCreate, ability.ResourceArticle, nil),
		Update: middleware.Authorize(ability.ActionUpdate, ability.ResourceArticle, h.Article.ResolveSubject),
		Delete: middleware.Authorize(ability.ActionDelete, ability.ResourceArticle, h.Article.ResolveSubject),
	}
	commentGuards := comment.Guards{
		Create: middleware.Authorize(ability.ActionCreate, ability.ResourceComment, nil),
		Update: middleware.Authorize(ability.ActionUpdate, ability.ResourceComment, h.Comment.ResolveSubject),
		Delete: middleware.Authorize(ability.ActionDelete, ability.ResourceComment, h.Comment.ResolveSubject),
	}
	replyGuards := reply.Guards{
		Create: middleware.Authorize(ability.ActionCreate, ability.ResourceReply, nil),
		Update: middleware.Authorize(ability.ActionUpdate, ability.ResourceReply, h.Reply.ResolveSubject),
		Delete: middleware.Authorize(ability.ActionDelete, ability.ResourceReply, h.Reply.ResolveSubject),
	}
	manageUsers := middleware.Authorize(ability.ActionManage, ability.ResourceUser, nil)
	readStats := middleware.Authorize(ability.ActionRead, ability.ResourceStatistics, nil)
	markNotificationRead := middleware.Authorize(ability.ActionUpdate, ability.ResourceNotification, h.Notify.ResolveSubject)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.PublicRoutes())

		// Nested discussion tree: /articles/{articleID}/comments/{commentID}/replies.
		replyRouter := h.Reply.CommentRoutes(authenticate, replyGuards.Create)
		commentRouter := h.Comment.ArticleRoutes(authenticate, commentGuards.Create)
		api.Mount("/articles", h.Article.Routes(authenticate, articleGuards, commentRouter))
		api.Mount("/comments", h.Comment.Routes(authenticate, commentGuards, replyRouter))
		api.Mount("/replies", h.Reply.Routes(authenticate, replyGuards))

		// Personal surface: profile and notification inbox.
		api.Group(func(protected chi.Router) {
			protected.Use(authenticate)
			protected.Mount("/me", h.Auth.ProfileRoutes())
			protected.Mount("/notifications", h.Notify.Routes(markNotificationRead))
		})

		// Administrative surface: a coarse minimum-role gate first, then the
		// fine-grained guards decide per resource.
		api.Group(func(admin chi.Router) {
			admin.Use(authenticate)
			admin.Use(middleware.RequireRole(sec.RoleAdmin))
			admin.With(manageUsers).Mount("/users", h.Account.Routes())
			admin.With(readStats).Mount("/stats", h.Stats.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
