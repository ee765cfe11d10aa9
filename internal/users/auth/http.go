// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/constants"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user session lifecycle entry points
// (Registration, Login, Refresh, Logout) and the self-service profile.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// PublicRoutes returns a [chi.Router] with the unauthenticated endpoints.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a token pair.
//   - POST /refresh  : Exchanges a refresh token for a new access token.
//   - POST /logout   : Revokes the presented refresh token.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	return router
}

// ProfileRoutes returns a [chi.Router] with the authenticated self-service
// endpoints. The caller mounts it behind the authentication middleware.
//
// # Endpoints
//   - GET   / : Returns the caller's own profile.
//   - PATCH / : Updates the caller's display name and bio.
func (handler *Handler) ProfileRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.profile)
	router.Patch("/", handler.updateProfile)

	return router
}

// registerRequest represents the JSON payload expected for account creation.
type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// register handles POST /api/v1/auth/register requests.
//
// # Parameters
//   - writer: The HTTP response constructor.
//   - request: The incoming HTTP request payload.
//
// # Returns
//   - Writes HTTP 201 Created on success with the User profile.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict if email/username is taken.
func (handler *Handler) register(writer http.ResponseWriter, httpRequest *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input registerRequest
	if err := requestutil.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation (Explicit & Mandatory) ────────────────────

	// Prevent malformed data from reaching the service layer.
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, 60).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8).
		MaxLen(FieldDisplayName, input.DisplayName, 120)

	if err := validator.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	user, err := handler.authService.Register(httpRequest.Context(), RegisterInput{
		Username:    input.Username,
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
	})

	// Service handles uniqueness checks and Bcrypt hashing.
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, user)
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Login    string `json:"login"` // Can be Username or Email
	Password string `json:"password"`
}

// login handles POST /api/v1/auth/login requests.
//
// # Parameters
//   - writer: The HTTP response constructor.
//   - request: The incoming HTTP request payload.
//
// # Returns
//   - Writes HTTP 200 OK on success with the token pair and User profile.
//   - Writes HTTP 401 Unauthorized for bad credentials.
func (handler *Handler) login(writer http.ResponseWriter, httpRequest *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := requestutil.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	session, err := handler.authService.Login(httpRequest.Context(), LoginInput{
		Login:    input.Login,
		Password: input.Password,
	})

	if err != nil {
		// Will return HTTP 401 Unauthorized without leaking reason (e.g. wrong pass vs wrong email)
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	// The refresh token travels both in the body (for API clients) and in an
	// HttpOnly cookie scoped to the auth endpoints (for browser clients).
	setRefreshCookie(writer, session.RefreshToken)

	respond.OK(writer, map[string]any{
		FieldAccessToken:  session.AccessToken,
		FieldRefreshToken: session.RefreshToken,
		FieldExpiresIn:    int(session.AccessExpiresIn.Seconds()),
		FieldUser:         session.User,
	})
}

// refreshRequest represents the JSON payload expected for token renewal.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// refresh handles POST /api/v1/auth/refresh requests.
//
// # Parameters
//   - writer: The HTTP response constructor.
//   - request: The incoming HTTP request payload.
//
// # Returns
//   - Writes HTTP 200 OK on success with a fresh access token.
//   - Writes HTTP 401 Unauthorized for invalid, expired or revoked tokens.
func (handler *Handler) refresh(writer http.ResponseWriter, httpRequest *http.Request) {
	// ── 1. Token Extraction (Body or Cookie) ──────────────────────────────

	refreshToken := extractRefreshToken(httpRequest)
	if refreshToken == "" {
		respond.Error(writer, httpRequest, validate.RequiredError(FieldRefreshToken, "This field is required"))
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	renewed, err := handler.authService.Refresh(httpRequest.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, map[string]any{
		FieldAccessToken: renewed.AccessToken,
		FieldExpiresIn:   int(renewed.AccessExpiresIn.Seconds()),
	})
}

// logout handles POST /api/v1/auth/logout requests.
//
// # Parameters
//   - writer: The HTTP response constructor.
//   - request: The incoming HTTP request payload.
//
// # Returns
//   - Writes HTTP 204 No Content, including when the token was already invalid.
func (handler *Handler) logout(writer http.ResponseWriter, httpRequest *http.Request) {
	refreshToken := extractRefreshToken(httpRequest)

	// Logout is idempotent: a missing or invalid token still ends the session.
	if refreshToken != "" {
		if err := handler.authService.Logout(httpRequest.Context(), refreshToken); err != nil {
			respond.Error(writer, httpRequest, err)
			return
		}
	}

	clearRefreshCookie(writer)
	respond.NoContent(writer)
}

// profile handles GET /api/v1/me requests.
func (handler *Handler) profile(writer http.ResponseWriter, httpRequest *http.Request) {
	userID, err := requestutil.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	user, err := handler.authService.Profile(httpRequest.Context(), userID)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, user)
}

// profileUpdateRequest represents the JSON payload for self-service edits.
type profileUpdateRequest struct {
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

// updateProfile handles PATCH /api/v1/me requests.
func (handler *Handler) updateProfile(writer http.ResponseWriter, httpRequest *http.Request) {
	userID, err := requestutil.RequiredUserID(httpRequest)
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	var input profileUpdateRequest
	if err := requestutil.DecodeJSON(httpRequest, &input); err != nil {
		respond.Error(writer, httpRequest, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.MaxLen(FieldDisplayName, input.DisplayName, 120).
		MaxLen(FieldBio, input.Bio, 500)

	if err := validator.Err(); err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	user, err := handler.authService.UpdateProfile(httpRequest.Context(), userID, ProfileUpdateInput{
		DisplayName: input.DisplayName,
		Bio:         input.Bio,
	})
	if err != nil {
		respond.Error(writer, httpRequest, err)
		return
	}

	respond.OK(writer, user)
}

// extractRefreshToken reads the refresh token from the JSON body first and
// falls back to the scoped HttpOnly cookie.
func extractRefreshToken(httpRequest *http.Request) string {
	var input refreshRequest
	if err := requestutil.DecodeJSON(httpRequest, &input); err == nil && input.RefreshToken != "" {
		return input.RefreshToken
	}
	if cookie, err := httpRequest.Cookie(constants.RefreshTokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func setRefreshCookie(writer http.ResponseWriter, refreshToken string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    refreshToken,
		Path:     constants.RefreshTokenCookiePath,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
