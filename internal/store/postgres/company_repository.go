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

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/openworkshop/openworkshop/internal/company"
	"github.com/openworkshop/openworkshop/internal/identity"
)

// CompanyRepository implements company.Repository
type CompanyRepository struct {
	db *DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*company.Company, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT id, name, document, address, phone, logo, active, created_at, updated_at
		FROM companies
		WHERE id = $1
	`, id)

	return scanCompany(row)
}

// GetByDocument retrieves a company by its document identifier
func (r *CompanyRepository) GetByDocument(ctx context.Context, document string) (*company.Company, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT id, name, document, address, phone, logo, active, created_at, updated_at
		FROM companies
		WHERE document = $1
	`, document)

	return scanCompany(row)
}

// CreateWithAdmin inserts a company together with its first admin user
// in a single transaction. If either insert fails neither row persists,
// so a company without an administrator can never exist.
func (r *CompanyRepository) CreateWithAdmin(ctx context.Context, c *company.Company, admin *identity.User) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	_, err = tx.Exec(ctx, `
		INSERT INTO companies (id, name, document, address, phone, logo, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		c.ID, c.Name, c.Document, c.Address, c.Phone, c.Logo, c.Active,
		now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return company.ErrCompanyExists
		}
		return fmt.Errorf("failed to insert company: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, company_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		admin.ID, admin.Name, admin.Email, admin.PasswordHash,
		string(admin.Role), admin.CompanyID, admin.Active,
		now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return company.ErrAdminExists
		}
		return fmt.Errorf("failed to insert company admin: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit company provisioning: %w", err)
	}

	c.CreatedAt = now
	c.UpdatedAt = now
	admin.CreatedAt = now
	admin.UpdatedAt = now

	return nil
}

func scanCompany(row pgx.Row) (*company.Company, error) {
	var c company.Company

	err := row.Scan(
		&c.ID, &c.Name, &c.Document, &c.Address, &c.Phone, &c.Logo,
		&c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, company.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &c, nil
}
