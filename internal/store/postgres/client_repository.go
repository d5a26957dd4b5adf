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
	"github.com/openworkshop/openworkshop/internal/client"
	"github.com/openworkshop/openworkshop/internal/search"
)

// ClientRepository implements client.Repository
type ClientRepository struct {
	db *DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO clients (
			id, name, document_number, street, city, zip_code, country,
			telephone, email, company_id, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		c.ID, c.Name, c.DocumentNumber,
		c.Address.Street, c.Address.City, c.Address.ZipCode, c.Address.Country,
		c.Telephone, c.Email, c.CompanyID, c.Active,
		now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return client.ErrClientExists
		}
		return fmt.Errorf("failed to insert client: %w", err)
	}

	c.CreatedAt = now
	c.UpdatedAt = now

	return nil
}

// GetByID retrieves a client by ID within the company scope. A client
// owned by another company behaves exactly like a missing one.
func (r *ClientRepository) GetByID(ctx context.Context, companyID, id string) (*client.Client, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT id, name, document_number, street, city, zip_code, country,
			telephone, email, company_id, active, created_at, updated_at
		FROM clients
		WHERE id = $1 AND ($2 = '' OR company_id = $2)
	`, id, companyID)

	c, err := scanClient(row)
	if err != nil {
		return nil, err
	}

	if err := r.loadVehicles(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Update updates a client within the company scope
func (r *ClientRepository) Update(ctx context.Context, companyID string, c *client.Client) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE clients SET
			name = $3,
			document_number = $4,
			street = $5,
			city = $6,
			zip_code = $7,
			country = $8,
			telephone = $9,
			email = $10,
			active = $11,
			updated_at = $12
		WHERE id = $1 AND ($2 = '' OR company_id = $2)
	`,
		c.ID, companyID,
		c.Name, c.DocumentNumber,
		c.Address.Street, c.Address.City, c.Address.ZipCode, c.Address.Country,
		c.Telephone, c.Email, c.Active, time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return client.ErrClientExists
		}
		return fmt.Errorf("failed to update client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}

	return nil
}

// Delete removes a client within the company scope
func (r *ClientRepository) Delete(ctx context.Context, companyID, id string) error {
	result, err := r.db.pool.Exec(ctx, `
		DELETE FROM clients
		WHERE id = $1 AND ($2 = '' OR company_id = $2)
	`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}

	return nil
}

// List returns a page of clients plus the total match count
func (r *ClientRepository) List(ctx context.Context, q client.ListQuery) ([]*client.Client, int, error) {
	pattern := ""
	if q.Search != "" {
		pattern = search.LikePattern(q.Search)
	}

	var total int
	err := r.db.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM clients
		WHERE ($1 = '' OR company_id = $1)
		AND ($2 = '' OR name ILIKE $2 OR document_number ILIKE $2 OR telephone ILIKE $2 OR email ILIKE $2)
	`, q.CompanyID, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, document_number, street, city, zip_code, country,
			telephone, email, company_id, active, created_at, updated_at
		FROM clients
		WHERE ($1 = '' OR company_id = $1)
		AND ($2 = '' OR name ILIKE $2 OR document_number ILIKE $2 OR telephone ILIKE $2 OR email ILIKE $2)
		ORDER BY name COLLATE es_ci, id
		OFFSET $3 LIMIT $4
	`, q.CompanyID, pattern, q.Offset, q.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	for _, c := range clients {
		if err := r.loadVehicles(ctx, c); err != nil {
			return nil, 0, err
		}
	}

	return clients, total, nil
}

func (r *ClientRepository) loadVehicles(ctx context.Context, c *client.Client) error {
	rows, err := r.db.pool.Query(ctx, `
		SELECT vehicle_id FROM client_vehicles WHERE client_id = $1 ORDER BY vehicle_id
	`, c.ID)
	if err != nil {
		return fmt.Errorf("failed to load client vehicles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var vehicleID string
		if err := rows.Scan(&vehicleID); err != nil {
			return fmt.Errorf("failed to load client vehicles: %w", err)
		}
		c.VehicleIDs = append(c.VehicleIDs, vehicleID)
	}

	return rows.Err()
}

func scanClient(row pgx.Row) (*client.Client, error) {
	var c client.Client

	err := row.Scan(
		&c.ID, &c.Name, &c.DocumentNumber,
		&c.Address.Street, &c.Address.City, &c.Address.ZipCode, &c.Address.Country,
		&c.Telephone, &c.Email, &c.CompanyID, &c.Active,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, client.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &c, nil
}
