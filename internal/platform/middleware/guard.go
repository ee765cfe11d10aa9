// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Authorization guard: the per-endpoint decision gate between the
// authentication chain and the route handler.

package middleware

import (
	"fmt"
	"net/http"

	"github.com/taibuivan/inkwell/internal/platform/ability"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/respond"
)

// SubjectResolver loads the concrete resource instance an endpoint operates
// on and normalizes it into a policy-checkable [ability.Subject].
//
// Resolvers usually perform a persistence lookup using a URL parameter.
// Returning a NotFound error is not fatal to the guard — see [Authorize].
type SubjectResolver func(request *http.Request) (ability.Subject, error)

/*
Authorize gates an endpoint on a policy decision.

Description: Resolves the concrete resource instance (when a resolver is
given), asks the request-scoped rule set whether the principal may perform
the action on it, and either proceeds to the handler or rejects with 403.

# Resolution Fallback

If the resolver reports NotFound, the guard degrades to a type-level check
against the bare resource tag instead of faulting: the policy engine can
still issue a coarse decision, and the handler keeps ownership of the 404.

# Parameters
  - action: The verb being gated (read/create/update/delete/manage).
  - resourceType: The resource tag, used when no instance can be resolved.
  - resolver: Optional instance loader; nil means a pure type-level check.

# Side Effects

None. The guard performs no mutation — it only proceeds or rejects.
*/
func Authorize(action ability.Action, resourceType ability.ResourceType, resolver SubjectResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Require an authenticated, policy-carrying context ──────────
			rules := ctxutil.GetRules(request.Context())
			if rules == nil {
				respond.Error(writer, request, apperr.Unauthorized("User not authenticated"))
				return
			}

			// ── 2. Resolve the subject ────────────────────────────────────────
			subject := ability.TypeOnly(resourceType)
			if resolver != nil {
				resolved, err := resolver(request)
				switch {
				case err == nil:
					subject = resolved
				case isNotFound(err):
					// Coarse fallback: decide on the bare type tag.
				default:
					respond.Error(writer, request, err)
					return
				}
			}

			// ── 3. Ask the policy engine ──────────────────────────────────────
			if !rules.Can(action, subject) {
				respond.Error(writer, request, forbidden(action, subject))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// isNotFound reports whether err is a 404-class application error.
func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.HTTPStatus == http.StatusNotFound
}

// forbidden builds the 403 naming the action, resource type, and instance id.
func forbidden(action ability.Action, subject ability.Subject) error {
	if subject.IsTypeOnly() {
		return apperr.Forbidden(fmt.Sprintf("You are not allowed to %s this %s", action, subject.Type))
	}
	return apperr.Forbidden(fmt.Sprintf("You are not allowed to %s %s %s", action, subject.Type, subject.ID))
}
