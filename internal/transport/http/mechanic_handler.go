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
	"github.com/openworkshop/openworkshop/internal/mechanic"
	"github.com/openworkshop/openworkshop/internal/pagination"
)

// MechanicRequest represents mechanic attributes accepted from a caller
type MechanicRequest struct {
	Name      string `json:"name"`
	Telephone string `json:"telephone"`
	CompanyID string `json:"company_id"`
}

// CreateMechanic creates a mechanic in the caller's company
func (h *Handler) CreateMechanic(w http.ResponseWriter, r *http.Request) {
	var req MechanicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scope := scopeForWrite(r, req.CompanyID)
	if scope == "" {
		respondError(w, http.StatusBadRequest, "company_id is required")
		return
	}

	m, err := h.mechanicService.Create(r.Context(), scope, mechanic.Input{
		Name:      req.Name,
		Telephone: req.Telephone,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, m)
}

// ListMechanics returns a paginated mechanic listing
func (h *Handler) ListMechanics(w http.ResponseWriter, r *http.Request) {
	scope := GetCompanyID(r.Context())
	if scope == "" {
		scope = r.URL.Query().Get("company_id")
	}

	params := pagination.Parse(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
	searchTerm := r.URL.Query().Get("search")

	mechanics, total, err := h.mechanicService.List(r.Context(), scope, searchTerm, params.Offset(), params.Limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if mechanics == nil {
		mechanics = []*mechanic.Mechanic{}
	}

	respondJSON(w, http.StatusOK, listResponse{
		Data: mechanics,
		Meta: params.MetaFor(total),
	})
}

// GetMechanic returns a single mechanic within the caller's company scope
func (h *Handler) GetMechanic(w http.ResponseWriter, r *http.Request) {
	m, err := h.mechanicService.Get(r.Context(), GetCompanyID(r.Context()), chi.URLParam(r, "mechanicID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, m)
}

// UpdateMechanic applies a partial update to a mechanic
func (h *Handler) UpdateMechanic(w http.ResponseWriter, r *http.Request) {
	var req MechanicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.mechanicService.Update(r.Context(), GetCompanyID(r.Context()), chi.URLParam(r, "mechanicID"), mechanic.Input{
		Name:      req.Name,
		Telephone: req.Telephone,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, m)
}

// DeleteMechanic removes a mechanic within the caller's company scope
func (h *Handler) DeleteMechanic(w http.ResponseWriter, r *http.Request) {
	if err := h.mechanicService.Delete(r.Context(), GetCompanyID(r.Context()), chi.URLParam(r, "mechanicID")); err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "mechanic deleted",
	})
}
