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
	"github.com/openworkshop/openworkshop/internal/client"
	"github.com/openworkshop/openworkshop/internal/pagination"
)

// ClientRequest represents client attributes accepted from a caller.
// Any id or company_id in the payload is ignored; scope comes from the
// verified token alone.
type ClientRequest struct {
	Name           string         `json:"name"`
	DocumentNumber string         `json:"document_number"`
	Address        client.Address `json:"address"`
	Telephone      string         `json:"telephone"`
	Email          string         `json:"email"`
	CompanyID      string         `json:"company_id"`
}

func (req ClientRequest) input() client.Input {
	return client.Input{
		Name:           req.Name,
		DocumentNumber: req.DocumentNumber,
		Address:        req.Address,
		Telephone:      req.Telephone,
		Email:          req.Email,
	}
}

// scopeForWrite resolves the company a write lands in. Scoped callers
// always use their own company. A top-level caller has no scope of its
// own and must name the target company explicitly.
func scopeForWrite(r *http.Request, payloadCompanyID string) string {
	if scope := GetCompanyID(r.Context()); scope != "" {
		return scope
	}
	if payloadCompanyID != "" {
		return payloadCompanyID
	}
	return r.URL.Query().Get("company_id")
}

// CreateClient creates a client in the caller's company
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scope := scopeForWrite(r, req.CompanyID)
	if scope == "" {
		respondError(w, http.StatusBadRequest, "company_id is required")
		return
	}

	c, err := h.clientService.Create(r.Context(), scope, req.input())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

// ListClients returns a paginated client listing for the caller's
// company. Top-level callers may pass company_id to pick one, or omit
// it to list across companies.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	scope := GetCompanyID(r.Context())
	if scope == "" {
		scope = r.URL.Query().Get("company_id")
	}

	params := pagination.Parse(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
	searchTerm := r.URL.Query().Get("search")

	clients, total, err := h.clientService.List(r.Context(), scope, searchTerm, params.Offset(), params.Limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if clients == nil {
		clients = []*client.Client{}
	}

	respondJSON(w, http.StatusOK, listResponse{
		Data: clients,
		Meta: params.MetaFor(total),
	})
}

// GetClient returns a single client within the caller's company scope
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.clientService.Get(r.Context(), GetCompanyID(r.Context()), chi.URLParam(r, "clientID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// UpdateClient applies a partial update to a client
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.clientService.Update(r.Context(), GetCompanyID(r.Context()), chi.URLParam(r, "clientID"), req.input())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

// DeleteClient removes a client within the caller's company scope
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.clientService.Delete(r.Context(), GetCompanyID(r.Context()), chi.URLParam(r, "clientID")); err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "client deleted",
	})
}
