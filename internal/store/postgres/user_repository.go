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
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/openworkshop/openworkshop/internal/identity"
	"github.com/openworkshop/openworkshop/internal/search"
)

// UserRepository implements identity.Repository
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user account
func (r *UserRepository) Create(ctx context.Context, user *identity.User) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, company_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
	`,
		user.ID, user.Name, user.Email, user.PasswordHash,
		string(user.Role), user.CompanyID, user.Active,
		now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return identity.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now

	return nil
}

// GetByID retrieves a user by ID within the given company scope. An
// empty companyID matches any company.
func (r *UserRepository) GetByID(ctx context.Context, companyID, id string) (*identity.User, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, company_id, active, created_at, updated_at
		FROM users
		WHERE id = $1 AND ($2 = '' OR company_id = $2)
	`, id, companyID)

	return scanUser(row)
}

// GetByEmail retrieves a user by email. Emails are globally unique, so
// the lookup is deliberately unscoped.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, company_id, active, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)

	return scanUser(row)
}

// Update updates user information within the given company scope
func (r *UserRepository) Update(ctx context.Context, companyID string, user *identity.User) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE users SET
			name = $3,
			email = $4,
			password_hash = $5,
			role = $6,
			company_id = NULLIF($7, ''),
			active = $8,
			updated_at = $9
		WHERE id = $1 AND ($2 = '' OR company_id = $2)
	`,
		user.ID, companyID,
		user.Name, user.Email, user.PasswordHash, string(user.Role),
		user.CompanyID, user.Active, time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return identity.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return identity.ErrUserNotFound
	}

	return nil
}

// Deactivate marks a user inactive. Deactivating an already inactive
// user succeeds.
func (r *UserRepository) Deactivate(ctx context.Context, companyID, id string) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE users SET active = FALSE, updated_at = $3
		WHERE id = $1 AND ($2 = '' OR company_id = $2)
	`, id, companyID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return identity.ErrUserNotFound
	}

	return nil
}

// List returns a page of users plus the total match count. An empty
// CompanyID matches every company.
func (r *UserRepository) List(ctx context.Context, q identity.ListQuery) ([]*identity.User, int, error) {
	pattern := ""
	if q.Search != "" {
		pattern = search.LikePattern(q.Search)
	}

	var total int
	err := r.db.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM users
		WHERE ($1 = '' OR company_id = $1)
		AND ($2 = '' OR name ILIKE $2 OR email ILIKE $2)
	`, q.CompanyID, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, email, password_hash, role, company_id, active, created_at, updated_at
		FROM users
		WHERE ($1 = '' OR company_id = $1)
		AND ($2 = '' OR name ILIKE $2 OR email ILIKE $2)
		ORDER BY name COLLATE es_ci, id
		OFFSET $3 LIMIT $4
	`, q.CompanyID, pattern, q.Offset, q.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*identity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

func scanUser(row pgx.Row) (*identity.User, error) {
	var user identity.User
	var role string
	var companyID sql.NullString

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&role, &companyID, &user.Active,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, identity.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Role = identity.Role(role)
	user.CompanyID = companyID.String

	return &user, nil
}
