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
	"testing"

	"github.com/openworkshop/openworkshop/internal/audit"
)

// MockRepository is a simple in-memory implementation of Repository
type MockRepository struct {
	users map[string]*User
}

func NewMockRepository() *MockRepository {
	return &MockRepository{users: make(map[string]*User)}
}

func (m *MockRepository) Create(ctx context.Context, user *User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrUserAlreadyExists
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, companyID, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok || (companyID != "" && u.CompanyID != companyID) {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockRepository) Update(ctx context.Context, companyID string, user *User) error {
	u, ok := m.users[user.ID]
	if !ok || (companyID != "" && u.CompanyID != companyID) {
		return ErrUserNotFound
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockRepository) Deactivate(ctx context.Context, companyID, id string) error {
	u, ok := m.users[id]
	if !ok || (companyID != "" && u.CompanyID != companyID) {
		return ErrUserNotFound
	}
	u.Active = false
	return nil
}

func (m *MockRepository) List(ctx context.Context, q ListQuery) ([]*User, int, error) {
	var matched []*User
	for _, u := range m.users {
		if q.CompanyID != "" && u.CompanyID != q.CompanyID {
			continue
		}
		cp := *u
		matched = append(matched, &cp)
	}
	total := len(matched)
	if q.Offset >= total {
		return nil, total, nil
	}
	end := q.Offset + q.Limit
	if end > total {
		end = total
	}
	return matched[q.Offset:end], total, nil
}

func newTestService() (*Service, *MockRepository) {
	repo := NewMockRepository()
	hasher := NewPasswordHasher(4)
	return NewService(repo, hasher, audit.NewSlogLogger()), repo
}

var (
	superAdmin = Principal{UserID: "sa-1", Role: RoleSuperAdmin}
	adminOne   = Principal{UserID: "adm-1", Role: RoleAdmin, CompanyID: "company-1"}
	adminTwo   = Principal{UserID: "adm-2", Role: RoleAdmin, CompanyID: "company-2"}
)

// TestPurpose: Validates the authentication flow, including success, wrong
// password and deactivated accounts, all of which must be indistinguishable
// to the caller on failure.
// Scope: Unit Test
// Security: Authentication and account enumeration resistance
func TestIdentity_Service_Authenticate(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	user, err := s.Register(ctx, superAdmin, RegisterInput{
		Name:      "Ana Garcia",
		Email:     "Ana@Example.com",
		Password:  "SecurePassword123",
		Role:      RoleAdmin,
		CompanyID: "company-1",
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("expected normalized email, got %s", user.Email)
	}

	authed, err := s.Authenticate(ctx, "ana@example.com", "SecurePassword123")
	if err != nil {
		t.Fatalf("expected success, got err: %v", err)
	}
	if authed.ID != user.ID {
		t.Errorf("expected user ID %s, got %s", user.ID, authed.ID)
	}

	_, err = s.Authenticate(ctx, "ana@example.com", "WrongPassword")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = s.Authenticate(ctx, "nobody@example.com", "SecurePassword123")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	// Deactivated accounts fail with the same error as bad credentials
	if err := s.DeactivateUser(ctx, superAdmin, user.ID); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}
	_, err = s.Authenticate(ctx, "ana@example.com", "SecurePassword123")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for inactive account, got %v", err)
	}
}

// TestPurpose: Validates the role assignment matrix. Admins may only create
// MECHANIC and ADMINISTRATIVE users inside their own company; super admins
// may create anyone anywhere.
// Scope: Unit Test
// Security: Privilege escalation prevention
func TestIdentity_Service_Register_RoleRules(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	// Admin cannot create another admin
	_, err := s.Register(ctx, adminOne, RegisterInput{
		Name: "Eve", Email: "eve@example.com", Password: "pw12345678", Role: RoleAdmin,
	})
	if err != ErrRoleNotAllowed {
		t.Errorf("expected ErrRoleNotAllowed, got %v", err)
	}

	// Admin cannot create a super admin
	_, err = s.Register(ctx, adminOne, RegisterInput{
		Name: "Eve", Email: "eve@example.com", Password: "pw12345678", Role: RoleSuperAdmin,
	})
	if err != ErrRoleNotAllowed {
		t.Errorf("expected ErrRoleNotAllowed, got %v", err)
	}

	// Admin-created users land in the admin's company, payload ignored
	mech, err := s.Register(ctx, adminOne, RegisterInput{
		Name: "Luis", Email: "luis@example.com", Password: "pw12345678",
		Role: RoleMechanic, CompanyID: "company-2",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if mech.CompanyID != "company-1" {
		t.Errorf("expected company-1, got %s", mech.CompanyID)
	}

	// Super admin must name a company for company-bound roles
	_, err = s.Register(ctx, superAdmin, RegisterInput{
		Name: "Pepe", Email: "pepe@example.com", Password: "pw12345678", Role: RoleMechanic,
	})
	if err != ErrCompanyRequired {
		t.Errorf("expected ErrCompanyRequired, got %v", err)
	}

	// A new super admin carries no company even when one is supplied
	sa, err := s.Register(ctx, superAdmin, RegisterInput{
		Name: "Root", Email: "root@example.com", Password: "pw12345678",
		Role: RoleSuperAdmin, CompanyID: "company-1",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if sa.CompanyID != "" {
		t.Errorf("expected empty company for super admin, got %s", sa.CompanyID)
	}

	// Unknown role
	_, err = s.Register(ctx, superAdmin, RegisterInput{
		Name: "X", Email: "x@example.com", Password: "pw12345678", Role: Role("OWNER"),
	})
	if err != ErrInvalidRole {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

// TestPurpose: Validates that user emails are unique across all companies,
// not merely within one.
func TestIdentity_Service_Register_GlobalEmailConflict(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, adminOne, RegisterInput{
		Name: "Luis", Email: "luis@example.com", Password: "pw12345678", Role: RoleMechanic,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	// Same email under a different company still conflicts
	_, err = s.Register(ctx, adminTwo, RegisterInput{
		Name: "Other Luis", Email: "luis@example.com", Password: "pw12345678", Role: RoleMechanic,
	})
	if err != ErrUserAlreadyExists {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

// TestPurpose: Validates cross-company opacity: a user owned by another
// company reads, updates and deactivates as if it did not exist.
// Scope: Unit Test
// Security: Multi-tenant boundary enforcement
func TestIdentity_Service_CrossCompanyOpacity(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	mech, err := s.Register(ctx, adminOne, RegisterInput{
		Name: "Luis", Email: "luis@example.com", Password: "pw12345678", Role: RoleMechanic,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if _, err := s.GetUser(ctx, adminTwo, mech.ID); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := s.UpdateUser(ctx, adminTwo, mech.ID, UpdateInput{Name: "Hacked"}); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if err := s.DeactivateUser(ctx, adminTwo, mech.ID); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	// The owning admin and the super admin both see it
	if _, err := s.GetUser(ctx, adminOne, mech.ID); err != nil {
		t.Errorf("expected success for owning admin, got %v", err)
	}
	if _, err := s.GetUser(ctx, superAdmin, mech.ID); err != nil {
		t.Errorf("expected success for super admin, got %v", err)
	}
}

// TestPurpose: Validates that non-super-admin listings are pinned to the
// actor's company even when a filter names another company.
func TestIdentity_Service_ListUsers_ForcedScope(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	s.Register(ctx, adminOne, RegisterInput{
		Name: "Luis", Email: "luis@example.com", Password: "pw12345678", Role: RoleMechanic,
	})
	s.Register(ctx, adminTwo, RegisterInput{
		Name: "Marta", Email: "marta@example.com", Password: "pw12345678", Role: RoleMechanic,
	})

	users, total, err := s.ListUsers(ctx, adminOne, "company-2", "", 0, 10)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 user, got %d", total)
	}
	if users[0].CompanyID != "company-1" {
		t.Errorf("expected company-1 user, got %s", users[0].CompanyID)
	}

	// Super admin sees both when unfiltered
	_, total, err = s.ListUsers(ctx, superAdmin, "", "", 0, 10)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 users, got %d", total)
	}

	// and exactly one when filtering
	_, total, _ = s.ListUsers(ctx, superAdmin, "company-2", "", 0, 10)
	if total != 1 {
		t.Errorf("expected 1 user, got %d", total)
	}
}

// TestPurpose: Validates update restrictions: admins cannot move users
// between companies and cannot escalate roles beyond their grant.
func TestIdentity_Service_UpdateUser_Restrictions(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	mech, err := s.Register(ctx, adminOne, RegisterInput{
		Name: "Luis", Email: "luis@example.com", Password: "pw12345678", Role: RoleMechanic,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	_, err = s.UpdateUser(ctx, adminOne, mech.ID, UpdateInput{CompanyID: "company-2"})
	if err != ErrCompanyChangeForbidden {
		t.Errorf("expected ErrCompanyChangeForbidden, got %v", err)
	}

	_, err = s.UpdateUser(ctx, adminOne, mech.ID, UpdateInput{Role: RoleAdmin})
	if err != ErrRoleNotAllowed {
		t.Errorf("expected ErrRoleNotAllowed, got %v", err)
	}

	// Super admin may move the user
	moved, err := s.UpdateUser(ctx, superAdmin, mech.ID, UpdateInput{CompanyID: "company-2"})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if moved.CompanyID != "company-2" {
		t.Errorf("expected company-2, got %s", moved.CompanyID)
	}

	// Partial update leaves untouched fields alone
	renamed, err := s.UpdateUser(ctx, superAdmin, mech.ID, UpdateInput{Name: "Luis M."})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if renamed.Email != "luis@example.com" || renamed.Role != RoleMechanic {
		t.Errorf("unexpected field change: %+v", renamed)
	}
}

// TestPurpose: Validates deactivation rules: admins cannot deactivate
// other admins, and repeating a deactivation succeeds.
func TestIdentity_Service_DeactivateUser(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	other, err := s.Register(ctx, superAdmin, RegisterInput{
		Name: "Bea", Email: "bea@example.com", Password: "pw12345678",
		Role: RoleAdmin, CompanyID: "company-1",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if err := s.DeactivateUser(ctx, adminOne, other.ID); err != ErrAdminDeletesAdmin {
		t.Errorf("expected ErrAdminDeletesAdmin, got %v", err)
	}

	// Super admin may deactivate an admin, and a second call is a no-op
	if err := s.DeactivateUser(ctx, superAdmin, other.ID); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if err := s.DeactivateUser(ctx, superAdmin, other.ID); err != nil {
		t.Errorf("expected idempotent success, got %v", err)
	}

	if repo.users[other.ID].Active {
		t.Error("expected user to be inactive")
	}
}
