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
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openworkshop/openworkshop/internal/identity"
	"github.com/openworkshop/openworkshop/internal/pagination"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and issues a signed token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.identityService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	signed, err := h.tokenService.Issue(user.ID, string(user.Role), user.CompanyID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token": signed,
		"user":  user,
	})
}

// RegisterRequest represents the payload for creating a user
type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CompanyID string `json:"company_id"`
}

// RegisterUser creates a user account. The acting principal constrains
// both the assignable roles and the company the new user lands in.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	principal, _ := GetPrincipal(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.identityService.Register(r.Context(), principal, identity.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      identity.Role(req.Role),
		CompanyID: req.CompanyID,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// ListUsers returns a paginated user listing. Only SUPER_ADMIN may
// filter by an arbitrary company_id; everyone else sees their own
// company regardless of the parameter.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	principal, _ := GetPrincipal(r.Context())

	params := pagination.Parse(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
	searchTerm := r.URL.Query().Get("search")
	companyFilter := r.URL.Query().Get("company_id")

	users, total, err := h.identityService.ListUsers(
		r.Context(), principal, companyFilter, searchTerm,
		params.Offset(), params.Limit,
	)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if users == nil {
		users = []*identity.User{}
	}

	respondJSON(w, http.StatusOK, listResponse{
		Data: users,
		Meta: params.MetaFor(total),
	})
}

// GetUser returns a single user within the caller's company scope
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	principal, _ := GetPrincipal(r.Context())

	user, err := h.identityService.GetUser(r.Context(), principal, chi.URLParam(r, "userID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateUserRequest represents a partial user update. Empty fields are
// left unchanged.
type UpdateUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CompanyID string `json:"company_id"`
}

// UpdateUser applies a partial update to a user
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	principal, _ := GetPrincipal(r.Context())

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.identityService.UpdateUser(r.Context(), principal, chi.URLParam(r, "userID"), identity.UpdateInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      identity.Role(req.Role),
		CompanyID: req.CompanyID,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// DeactivateUser soft-deletes a user account
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	principal, _ := GetPrincipal(r.Context())

	if err := h.identityService.DeactivateUser(r.Context(), principal, chi.URLParam(r, "userID")); err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "user deactivated",
	})
}
