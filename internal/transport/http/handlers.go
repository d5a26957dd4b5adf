// Copyright 2026 The OpenWorkshop Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/openworkshop/openworkshop/internal/audit"
	"github.com/openworkshop/openworkshop/internal/client"
	"github.com/openworkshop/openworkshop/internal/company"
	"github.com/openworkshop/openworkshop/internal/identity"
	"github.com/openworkshop/openworkshop/internal/mechanic"
	"github.com/openworkshop/openworkshop/internal/observability/logger"
	"github.com/openworkshop/openworkshop/internal/pagination"
	"github.com/openworkshop/openworkshop/internal/token"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handler holds HTTP handlers and dependencies
type Handler struct {
	identityService *identity.Service
	companyService  *company.Service
	clientService   *client.Service
	mechanicService *mechanic.Service
	tokenService    *token.Service
	auditLogger     audit.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	identityService *identity.Service,
	companyService *company.Service,
	clientService *client.Service,
	mechanicService *mechanic.Service,
	tokenService *token.Service,
	auditLogger audit.Logger,
) *Handler {
	return &Handler{
		identityService: identityService,
		companyService:  companyService,
		clientService:   clientService,
		mechanicService: mechanicService,
		tokenService:    tokenService,
		auditLogger:     auditLogger,
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Unknown routes get the same body regardless of method or path.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "route not found")
	})

	// Health check
	r.Get("/health", h.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Public
			r.Post("/login", h.Login)

			r.Group(func(r chi.Router) {
				r.Use(h.AuthMiddleware)
				r.Use(CompanyScopeMiddleware)
				r.Use(RequireRoles(identity.RoleAdmin, identity.RoleSuperAdmin))
				r.Post("/register", h.RegisterUser)
				r.Get("/", h.ListUsers)
				r.Get("/{userID}", h.GetUser)
				r.Put("/{userID}", h.UpdateUser)
				r.Delete("/{userID}", h.DeactivateUser)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)
			r.Use(CompanyScopeMiddleware)

			r.Route("/companies", func(r chi.Router) {
				r.With(RequireRoles(identity.RoleSuperAdmin)).Post("/new", h.ProvisionCompany)
				r.With(RequireRoles(identity.RoleAdmin, identity.RoleSuperAdmin)).Get("/{companyID}", h.GetCompany)
			})

			r.Route("/clients", func(r chi.Router) {
				r.Use(RequireRoles(identity.RoleAdmin, identity.RoleSuperAdmin))
				r.Post("/", h.CreateClient)
				r.Get("/", h.ListClients)
				r.Get("/{clientID}", h.GetClient)
				r.Put("/{clientID}", h.UpdateClient)
				r.Delete("/{clientID}", h.DeleteClient)
			})

			r.Route("/mechanics", func(r chi.Router) {
				r.Use(RequireRoles(identity.RoleAdmin, identity.RoleSuperAdmin))
				r.Post("/", h.CreateMechanic)
				r.Get("/", h.ListMechanics)
				r.Get("/{mechanicID}", h.GetMechanic)
				r.Put("/{mechanicID}", h.UpdateMechanic)
				r.Delete("/{mechanicID}", h.DeleteMechanic)
			})
		})
	})

	return r
}

// HealthCheck returns the health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "openworkshop",
	})
}

// listResponse is the common paginated payload shape.
type listResponse struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// respondServiceError maps domain errors onto HTTP statuses. Not-found
// covers both truly missing resources and resources owned by another
// company, so a caller cannot probe for foreign IDs.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, identity.ErrUserNotFound),
		errors.Is(err, client.ErrClientNotFound),
		errors.Is(err, mechanic.ErrMechanicNotFound),
		errors.Is(err, company.ErrCompanyNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, identity.ErrUserAlreadyExists),
		errors.Is(err, client.ErrClientExists),
		errors.Is(err, company.ErrCompanyExists),
		errors.Is(err, company.ErrAdminExists):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, identity.ErrRoleNotAllowed),
		errors.Is(err, identity.ErrAdminDeletesAdmin),
		errors.Is(err, identity.ErrCompanyChangeForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, identity.ErrMissingFields),
		errors.Is(err, identity.ErrInvalidEmail),
		errors.Is(err, identity.ErrInvalidRole),
		errors.Is(err, identity.ErrCompanyRequired),
		errors.Is(err, client.ErrMissingFields),
		errors.Is(err, client.ErrInvalidEmail),
		errors.Is(err, mechanic.ErrMissingFields),
		errors.Is(err, company.ErrMissingFields),
		errors.Is(err, company.ErrInvalidDocument),
		errors.Is(err, company.ErrInvalidPhone):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

func getIPAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
