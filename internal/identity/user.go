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
	"errors"
	"time"
)

// Domain errors
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrMissingFields          = errors.New("missing required fields")
	ErrInvalidEmail           = errors.New("invalid email address")
	ErrInvalidRole            = errors.New("invalid role")
	ErrRoleNotAllowed         = errors.New("role assignment not allowed for this actor")
	ErrCompanyRequired        = errors.New("company is required for this role")
	ErrCompanyChangeForbidden = errors.New("only a super admin may change a user's company")
	ErrAdminDeletesAdmin      = errors.New("admin cannot delete another admin")
)

// User represents a principal account. PasswordHash is never serialized;
// "deleting" a user flips Active to false, the row is never removed.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CompanyID    string    `json:"company_id,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListQuery selects a page of users. An empty CompanyID means no company
// filter and is only ever produced for SUPER_ADMIN callers; the service
// forces every other caller's own company into it.
type ListQuery struct {
	CompanyID string
	Search    string
	Offset    int
	Limit     int
}

// Repository defines the interface for user persistence. Operations that
// take a companyID treat the empty string as "any company"; with a
// non-empty companyID a foreign-company row must be indistinguishable
// from a missing one.
type Repository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID within the given company scope.
	GetByID(ctx context.Context, companyID, id string) (*User, error)

	// GetByEmail retrieves a user by email across all companies.
	// Principal emails are globally unique.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update persists changes to name, email, password hash, role and
	// company within the given scope.
	Update(ctx context.Context, companyID string, user *User) error

	// Deactivate flips the active flag to false within the given scope.
	// Deactivating an already inactive user is not an error.
	Deactivate(ctx context.Context, companyID, id string) error

	// List returns a page of users plus the total match count.
	List(ctx context.Context, q ListQuery) ([]*User, int, error)
}
