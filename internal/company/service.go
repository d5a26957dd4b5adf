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

package company

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/openworkshop/openworkshop/internal/audit"
	"github.com/openworkshop/openworkshop/internal/id"
	"github.com/openworkshop/openworkshop/internal/identity"
)

var (
	documentRx = regexp.MustCompile(`^([A-Z]\d{8}|\d{8}[A-Z])$`)
	phoneRx    = regexp.MustCompile(`^[6789]\d{8}$`)
	emailRx    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Service provides company provisioning business logic
type Service struct {
	repo        Repository
	users       identity.Repository
	hasher      *identity.PasswordHasher
	auditLogger audit.Logger
}

// NewService creates a new company service
func NewService(repo Repository, users identity.Repository, hasher *identity.PasswordHasher, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		users:       users,
		hasher:      hasher,
		auditLogger: auditLogger,
	}
}

// ProvisionInput carries the company attributes plus its first
// administrator's account data.
type ProvisionInput struct {
	Name          string
	Document      string
	Address       string
	Phone         string
	Logo          string
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Provision creates a company and its first admin. The two inserts run in
// one transaction, so a failure while creating the admin rolls the
// company back: a tenant with zero administrators must never exist.
func (s *Service) Provision(ctx context.Context, actor identity.Principal, in ProvisionInput) (*Company, *identity.User, error) {
	if in.Name == "" || in.Document == "" || in.Address == "" || in.Phone == "" ||
		in.AdminName == "" || in.AdminEmail == "" || in.AdminPassword == "" {
		return nil, nil, ErrMissingFields
	}

	document := strings.ToUpper(strings.TrimSpace(in.Document))
	if !documentRx.MatchString(document) {
		return nil, nil, ErrInvalidDocument
	}
	if !phoneRx.MatchString(in.Phone) {
		return nil, nil, ErrInvalidPhone
	}

	adminEmail := strings.ToLower(strings.TrimSpace(in.AdminEmail))
	if !emailRx.MatchString(adminEmail) {
		return nil, nil, identity.ErrInvalidEmail
	}

	// Company documents are unique process-wide, not per tenant.
	if existing, err := s.repo.GetByDocument(ctx, document); err == nil && existing != nil {
		return nil, nil, ErrCompanyExists
	}

	// Admin emails are checked across ALL companies: user emails are
	// globally unique, unlike client or mechanic uniqueness.
	if existing, err := s.users.GetByEmail(ctx, adminEmail); err == nil && existing != nil {
		return nil, nil, ErrAdminExists
	}

	hash, err := s.hasher.Hash(in.AdminPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	c := &Company{
		ID:       id.NewUUIDv7(),
		Name:     strings.TrimSpace(in.Name),
		Document: document,
		Address:  in.Address,
		Phone:    in.Phone,
		Logo:     in.Logo,
		Active:   true,
	}

	admin := &identity.User{
		ID:           id.NewUUIDv7(),
		Name:         strings.TrimSpace(in.AdminName),
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         identity.RoleAdmin,
		CompanyID:    c.ID,
		Active:       true,
	}

	if err := s.repo.CreateWithAdmin(ctx, c, admin); err != nil {
		return nil, nil, err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:      audit.TypeCompanyProvisioned,
		CompanyID: c.ID,
		ActorID:   actor.UserID,
		Resource:  "company",
		Metadata: map[string]any{
			audit.AttrDocument: document,
			audit.AttrEmail:    adminEmail,
		},
	})

	return c, admin, nil
}

// GetCompany retrieves a company by ID.
func (s *Service) GetCompany(ctx context.Context, companyID string) (*Company, error) {
	return s.repo.GetByID(ctx, companyID)
}
