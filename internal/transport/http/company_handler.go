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
	"github.com/openworkshop/openworkshop/internal/company"
)

// ProvisionCompanyRequest represents a new company plus its first admin
type ProvisionCompanyRequest struct {
	Name          string `json:"name"`
	Document      string `json:"document"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Logo          string `json:"logo"`
	AdminName     string `json:"admin_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

// ProvisionCompany creates a company together with its first admin user
func (h *Handler) ProvisionCompany(w http.ResponseWriter, r *http.Request) {
	principal, _ := GetPrincipal(r.Context())

	var req ProvisionCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, admin, err := h.companyService.Provision(r.Context(), principal, company.ProvisionInput{
		Name:          req.Name,
		Document:      req.Document,
		Address:       req.Address,
		Phone:         req.Phone,
		Logo:          req.Logo,
		AdminName:     req.AdminName,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"company": c,
		"admin":   admin,
	})
}

// GetCompany returns a single company. Non top-level callers only ever
// see their own company; any other ID behaves like a missing one.
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	principal, _ := GetPrincipal(r.Context())
	companyID := chi.URLParam(r, "companyID")

	if !principal.Role.TopLevel() && companyID != principal.CompanyID {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	c, err := h.companyService.GetCompany(r.Context(), companyID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}
