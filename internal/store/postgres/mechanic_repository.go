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
	"github.com/openworkshop/openworkshop/internal/mechanic"
	"github.com/openworkshop/openworkshop/internal/search"
)

// MechanicRepository implements mechanic.Repository
type MechanicRepository struct {
	db *DB
}

// NewMechanicRepository creates a new mechanic repository
func NewMechanicRepository(db *DB) *MechanicRepository {
	return &MechanicRepository{db: db}
}

// Create creates a new mechanic
func (r *MechanicRepository) Create(ctx context.Context, m *mechanic.Mechanic) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO mechanics (id, name, telephone, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID, m.Name, m.Telephone, m.CompanyID, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert mechanic: %w", err)
	}

	m.CreatedAt = now
	m.UpdatedAt = now

	return nil
}

// GetByID retrieves a mechanic by ID within the company scope
func (r *MechanicRepository) GetByID(ctx context.Context, companyID, id string) (*mechanic.Mechanic, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT id, name, telephone, company_id, created_at, updated_at
		FROM mechanics
		WHERE id = $1 AND ($2 = '' OR company_id = $2)
	`, id, companyID)

	return scanMechanic(row)
}

// Update updates a mechanic within the company scope
func (r *MechanicRepository) Update(ctx context.Context, companyID string, m *mechanic.Mechanic) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE mechanics SET name = $3, telephone = $4, updated_at = $5
		WHERE id = $1 AND ($2 = '' OR company_id = $2)
	`, m.ID, companyID, m.Name, m.Telephone, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update mechanic: %w", err)
	}

	if result.RowsAffected() == 0 {
		return mechanic.ErrMechanicNotFound
	}

	return nil
}

// Delete removes a mechanic within the company scope
func (r *MechanicRepository) Delete(ctx context.Context, companyID, id string) error {
	result, err := r.db.pool.Exec(ctx, `
		DELETE FROM mechanics
		WHERE id = $1 AND ($2 = '' OR company_id = $2)
	`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete mechanic: %w", err)
	}

	if result.RowsAffected() == 0 {
		return mechanic.ErrMechanicNotFound
	}

	return nil
}

// List returns a page of mechanics plus the total match count
func (r *MechanicRepository) List(ctx context.Context, q mechanic.ListQuery) ([]*mechanic.Mechanic, int, error) {
	pattern := ""
	if q.Search != "" {
		pattern = search.LikePattern(q.Search)
	}

	var total int
	err := r.db.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM mechanics
		WHERE ($1 = '' OR company_id = $1)
		AND ($2 = '' OR name ILIKE $2 OR telephone ILIKE $2)
	`, q.CompanyID, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count mechanics: %w", err)
	}

	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, telephone, company_id, created_at, updated_at
		FROM mechanics
		WHERE ($1 = '' OR company_id = $1)
		AND ($2 = '' OR name ILIKE $2 OR telephone ILIKE $2)
		ORDER BY name COLLATE es_ci, id
		OFFSET $3 LIMIT $4
	`, q.CompanyID, pattern, q.Offset, q.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list mechanics: %w", err)
	}
	defer rows.Close()

	var mechanics []*mechanic.Mechanic
	for rows.Next() {
		m, err := scanMechanic(rows)
		if err != nil {
			return nil, 0, err
		}
		mechanics = append(mechanics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list mechanics: %w", err)
	}

	return mechanics, total, nil
}

func scanMechanic(row pgx.Row) (*mechanic.Mechanic, error) {
	var m mechanic.Mechanic

	err := row.Scan(&m.ID, &m.Name, &m.Telephone, &m.CompanyID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, mechanic.ErrMechanicNotFound
		}
		return nil, fmt.Errorf("failed to get mechanic: %w", err)
	}

	return &m, nil
}
