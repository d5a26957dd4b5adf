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
	"errors"
	"testing"

	"github.com/openworkshop/openworkshop/internal/audit"
	"github.com/openworkshop/openworkshop/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockRepo implements Repository for testing
type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Company), args.Error(1)
}

func (m *mockRepo) GetByDocument(ctx context.Context, document string) (*Company, error) {
	args := m.Called(ctx, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Company), args.Error(1)
}

func (m *mockRepo) CreateWithAdmin(ctx context.Context, c *Company, admin *identity.User) error {
	args := m.Called(ctx, c, admin)
	return args.Error(0)
}

// mockUserRepo implements identity.Repository for testing
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, companyID, id string) (*identity.User, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, companyID string, user *identity.User) error {
	args := m.Called(ctx, companyID, user)
	return args.Error(0)
}

func (m *mockUserRepo) Deactivate(ctx context.Context, companyID, id string) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, q identity.ListQuery) ([]*identity.User, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*identity.User), args.Int(1), args.Error(2)
}

func newTestService(repo *mockRepo, users *mockUserRepo) *Service {
	return NewService(repo, users, identity.NewPasswordHasher(4), audit.NewSlogLogger())
}

func validInput() ProvisionInput {
	return ProvisionInput{
		Name:          "Taller Central",
		Document:      "B12345678",
		Address:       "Calle Mayor 1",
		Phone:         "612345678",
		AdminName:     "Ana Garcia",
		AdminEmail:    "ana@taller.es",
		AdminPassword: "SecurePassword123",
	}
}

var actor = identity.Principal{UserID: "sa-1", Role: identity.RoleSuperAdmin}

// TestPurpose: Validates field-level provisioning rules: required fields,
// document format (with uppercase normalization) and phone format.
// Scope: Unit Test
func TestCompany_Service_Provision_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		s := newTestService(new(mockRepo), new(mockUserRepo))
		in := validInput()
		in.AdminEmail = ""
		_, _, err := s.Provision(ctx, actor, in)
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("malformed document", func(t *testing.T) {
		s := newTestService(new(mockRepo), new(mockUserRepo))
		in := validInput()
		in.Document = "1234"
		_, _, err := s.Provision(ctx, actor, in)
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("document is uppercased before validation", func(t *testing.T) {
		repo := new(mockRepo)
		users := new(mockUserRepo)
		s := newTestService(repo, users)

		repo.On("GetByDocument", ctx, "B12345678").Return(nil, ErrCompanyNotFound)
		users.On("GetByEmail", ctx, "ana@taller.es").Return(nil, identity.ErrUserNotFound)
		repo.On("CreateWithAdmin", ctx, mock.Anything, mock.Anything).Return(nil)

		in := validInput()
		in.Document = "b12345678"
		c, _, err := s.Provision(ctx, actor, in)
		require.NoError(t, err)
		assert.Equal(t, "B12345678", c.Document)
	})

	t.Run("malformed phone", func(t *testing.T) {
		s := newTestService(new(mockRepo), new(mockUserRepo))
		in := validInput()
		in.Phone = "512345678"
		_, _, err := s.Provision(ctx, actor, in)
		assert.ErrorIs(t, err, ErrInvalidPhone)
	})

	t.Run("malformed admin email", func(t *testing.T) {
		s := newTestService(new(mockRepo), new(mockUserRepo))
		in := validInput()
		in.AdminEmail = "not-an-email"
		_, _, err := s.Provision(ctx, actor, in)
		assert.ErrorIs(t, err, identity.ErrInvalidEmail)
	})
}

// TestPurpose: Validates duplicate detection for both the company document
// and the admin email before anything is written.
// Scope: Unit Test
func TestCompany_Service_Provision_Conflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate document", func(t *testing.T) {
		repo := new(mockRepo)
		users := new(mockUserRepo)
		s := newTestService(repo, users)

		repo.On("GetByDocument", ctx, "B12345678").Return(&Company{ID: "c-1"}, nil)

		_, _, err := s.Provision(ctx, actor, validInput())
		assert.ErrorIs(t, err, ErrCompanyExists)
		repo.AssertNotCalled(t, "CreateWithAdmin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate admin email", func(t *testing.T) {
		repo := new(mockRepo)
		users := new(mockUserRepo)
		s := newTestService(repo, users)

		repo.On("GetByDocument", ctx, "B12345678").Return(nil, ErrCompanyNotFound)
		users.On("GetByEmail", ctx, "ana@taller.es").Return(&identity.User{ID: "u-1"}, nil)

		_, _, err := s.Provision(ctx, actor, validInput())
		assert.ErrorIs(t, err, ErrAdminExists)
		repo.AssertNotCalled(t, "CreateWithAdmin", mock.Anything, mock.Anything, mock.Anything)
	})
}

// TestPurpose: Validates the happy path: the admin is an ADMIN of the new
// company and the pair is created through the single transactional call.
// Scope: Unit Test
func TestCompany_Service_Provision_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	users := new(mockUserRepo)
	s := newTestService(repo, users)

	repo.On("GetByDocument", ctx, "B12345678").Return(nil, ErrCompanyNotFound)
	users.On("GetByEmail", ctx, "ana@taller.es").Return(nil, identity.ErrUserNotFound)
	repo.On("CreateWithAdmin", ctx, mock.Anything, mock.Anything).Return(nil)

	c, admin, err := s.Provision(ctx, actor, validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.True(t, c.Active)
	assert.Equal(t, identity.RoleAdmin, admin.Role)
	assert.Equal(t, c.ID, admin.CompanyID)
	assert.NotEqual(t, "SecurePassword123", admin.PasswordHash)
	repo.AssertExpectations(t)
}

// TestPurpose: Validates that a storage failure during the transactional
// create surfaces to the caller with no partial company returned.
// Scope: Unit Test
func TestCompany_Service_Provision_StoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	users := new(mockUserRepo)
	s := newTestService(repo, users)

	repo.On("GetByDocument", ctx, "B12345678").Return(nil, ErrCompanyNotFound)
	users.On("GetByEmail", ctx, "ana@taller.es").Return(nil, identity.ErrUserNotFound)
	repo.On("CreateWithAdmin", ctx, mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	c, admin, err := s.Provision(ctx, actor, validInput())
	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Nil(t, admin)
}
