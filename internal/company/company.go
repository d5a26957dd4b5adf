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
	"time"

	"github.com/openworkshop/openworkshop/internal/identity"
)

// Domain errors
var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrCompanyExists   = errors.New("company already exists")
	ErrAdminExists     = errors.New("admin user already exists")
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidDocument = errors.New("document must be a valid NIF or CIF")
	ErrInvalidPhone    = errors.New("phone must be a valid 9-digit number")
)

// Company represents a tenant: an isolated workshop business owning its
// own users, clients and mechanics. Companies are never hard-deleted;
// Active is the only lifecycle flag.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Logo      string    `json:"logo,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines the interface for company persistence.
type Repository interface {
	// GetByID retrieves a company by ID.
	GetByID(ctx context.Context, id string) (*Company, error)

	// GetByDocument retrieves a company by its document number.
	// Document numbers are unique process-wide.
	GetByDocument(ctx context.Context, document string) (*Company, error)

	// CreateWithAdmin inserts the company and its first administrator in
	// a single transaction. Either both rows exist afterwards or neither
	// does; a company must never exist without an admin.
	CreateWithAdmin(ctx context.Context, c *Company, admin *identity.User) error
}
