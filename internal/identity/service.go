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

package identity

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/openworkshop/openworkshop/internal/audit"
	"github.com/openworkshop/openworkshop/internal/id"
)

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service provides user management business logic. Every operation takes
// the acting Principal explicitly; there is no ambient request state.
type Service struct {
	repo        Repository
	hasher      *PasswordHasher
	auditLogger audit.Logger
}

// NewService creates a new identity service
func NewService(repo Repository, hasher *PasswordHasher, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		hasher:      hasher,
		auditLogger: auditLogger,
	}
}

// scopeFor returns the company filter applied on behalf of an actor.
// Super admins see across companies; everyone else is pinned to their own.
func scopeFor(actor Principal) string {
	if actor.Role.TopLevel() {
		return ""
	}
	return actor.CompanyID
}

// Authenticate verifies an email/password pair against an active account.
// Unknown email, inactive account and wrong password are deliberately
// indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil || !user.Active {
		s.auditLogger.Log(ctx, audit.Event{
			Type:     audit.TypeLoginFailed,
			Resource: "login",
			Metadata: map[string]any{audit.AttrReason: "user_not_found", audit.AttrEmail: email},
		})
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.auditLogger.Log(ctx, audit.Event{
			Type:      audit.TypeLoginFailed,
			CompanyID: user.CompanyID,
			ActorID:   user.ID,
			Resource:  "login",
			Metadata:  map[string]any{audit.AttrReason: "invalid_password"},
		})
		return nil, ErrInvalidCredentials
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:      audit.TypeLoginSuccess,
		CompanyID: user.CompanyID,
		ActorID:   user.ID,
		Resource:  "login",
	})

	return user, nil
}

// RegisterInput carries the fields accepted when creating a user.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Role      Role
	CompanyID string
}

// Register creates a managed user on behalf of actor.
//
// A super admin may assign any role and must name the target company
// explicitly. An admin may only assign MECHANIC or ADMINISTRATIVE and the
// new user is stamped with the admin's own company, whatever the payload
// said. Every non-super-admin user must end up owned by a company.
func (s *Service) Register(ctx context.Context, actor Principal, in RegisterInput) (*User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, ErrMissingFields
	}
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if !actor.Role.MayAssign(in.Role) {
		return nil, ErrRoleNotAllowed
	}

	email := normalizeEmail(in.Email)
	if !emailRx.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	companyID := actor.CompanyID
	if actor.Role.TopLevel() {
		companyID = in.CompanyID
	}
	if in.Role.TopLevel() {
		companyID = ""
	} else if companyID == "" {
		return nil, ErrCompanyRequired
	}

	// User emails are unique across all companies, unlike client or
	// mechanic uniqueness which is scoped per company.
	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           id.NewUUIDv7(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		CompanyID:    companyID,
		Active:       true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:      audit.TypeUserCreated,
		CompanyID: companyID,
		ActorID:   actor.UserID,
		Resource:  "user",
		Metadata:  map[string]any{audit.AttrEmail: email, audit.AttrRole: string(in.Role)},
	})

	return user, nil
}

// GetUser retrieves a user within the actor's company scope. A user that
// exists under a different company is reported as not found.
func (s *Service) GetUser(ctx context.Context, actor Principal, userID string) (*User, error) {
	return s.repo.GetByID(ctx, scopeFor(actor), userID)
}

// ListUsers returns a page of users. A super admin may narrow the listing
// to one company via companyFilter (or see all companies when it is
// empty); every other actor is restricted to their own company no matter
// what filter was supplied.
func (s *Service) ListUsers(ctx context.Context, actor Principal, companyFilter, searchTerm string, offset, limit int) ([]*User, int, error) {
	q := ListQuery{
		CompanyID: companyFilter,
		Search:    searchTerm,
		Offset:    offset,
		Limit:     limit,
	}
	if !actor.Role.TopLevel() {
		q.CompanyID = actor.CompanyID
	}
	return s.repo.List(ctx, q)
}

// UpdateInput carries the optional fields accepted when updating a user.
// Empty fields are left unchanged. ID and company are never taken from
// the payload; moving a user between companies requires CompanyID here
// and a super admin actor.
type UpdateInput struct {
	Name      string
	Email     string
	Password  string
	Role      Role
	CompanyID string
}

// UpdateUser applies in to the user identified by userID within the
// actor's scope.
func (s *Service) UpdateUser(ctx context.Context, actor Principal, userID string, in UpdateInput) (*User, error) {
	user, err := s.repo.GetByID(ctx, scopeFor(actor), userID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = strings.TrimSpace(in.Name)
	}

	if in.Email != "" {
		email := normalizeEmail(in.Email)
		if !emailRx.MatchString(email) {
			return nil, ErrInvalidEmail
		}
		if email != user.Email {
			if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
				return nil, ErrUserAlreadyExists
			}
			user.Email = email
		}
	}

	if in.Role != "" {
		if !in.Role.Valid() {
			return nil, ErrInvalidRole
		}
		if !actor.Role.MayAssign(in.Role) {
			return nil, ErrRoleNotAllowed
		}
		user.Role = in.Role
	}

	if in.CompanyID != "" && in.CompanyID != user.CompanyID {
		if !actor.Role.TopLevel() {
			return nil, ErrCompanyChangeForbidden
		}
		user.CompanyID = in.CompanyID
	}

	// The ownership invariant is re-checked on every update, not only at
	// creation time.
	if !user.Role.TopLevel() && user.CompanyID == "" {
		return nil, ErrCompanyRequired
	}

	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, scopeFor(actor), user); err != nil {
		return nil, err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:      audit.TypeUserUpdated,
		CompanyID: user.CompanyID,
		ActorID:   actor.UserID,
		Resource:  "user",
		Metadata:  map[string]any{audit.AttrEmail: user.Email},
	})

	return user, nil
}

// DeactivateUser soft-deletes a user within the actor's scope. An admin
// may deactivate anyone in their company except another admin.
// Deactivating an already inactive user succeeds and leaves it inactive.
func (s *Service) DeactivateUser(ctx context.Context, actor Principal, userID string) error {
	user, err := s.repo.GetByID(ctx, scopeFor(actor), userID)
	if err != nil {
		return err
	}

	if actor.Role == RoleAdmin && user.Role == RoleAdmin {
		s.auditLogger.Log(ctx, audit.Event{
			Type:      audit.TypeForbiddenAction,
			CompanyID: actor.CompanyID,
			ActorID:   actor.UserID,
			Resource:  "user",
			Metadata:  map[string]any{audit.AttrReason: "admin_deletes_admin"},
		})
		return ErrAdminDeletesAdmin
	}

	if err := s.repo.Deactivate(ctx, scopeFor(actor), userID); err != nil {
		return err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:      audit.TypeUserDeactivated,
		CompanyID: user.CompanyID,
		ActorID:   actor.UserID,
		Resource:  "user",
		Metadata:  map[string]any{audit.AttrEmail: user.Email},
	})

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
