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

package client

import (
	"context"
	"errors"
	"time"
)

// Domain errors
var (
	ErrClientNotFound = errors.New("client not found")
	ErrClientExists   = errors.New("client document or email already exists in this company")
	ErrMissingFields  = errors.New("missing required client fields")
	ErrInvalidEmail   = errors.New("invalid email address")
)

// Address is a client's postal address.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

// Client represents a workshop customer. CompanyID is stamped at creation
// from the request scope and is immutable afterwards. Document number and
// email are unique within a company, not globally: two companies may both
// have a client with the same document.
type Client struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DocumentNumber string    `json:"document_number"`
	Address        Address   `json:"address"`
	Telephone      string    `json:"telephone"`
	Email          string    `json:"email,omitempty"`
	CompanyID      string    `json:"company_id"`
	Active         bool      `json:"active"`
	VehicleIDs     []string  `json:"vehicles,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListQuery selects a page of clients within one company. Search matches
// name, document number, telephone or email, case- and
// diacritic-insensitively.
type ListQuery struct {
	CompanyID string
	Search    string
	Offset    int
	Limit     int
}

// Repository defines the interface for client persistence. Every
// operation is company-scoped: an ID owned by another company behaves
// exactly like a missing one.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, companyID, id string) (*Client, error)
	Update(ctx context.Context, companyID string, c *Client) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, q ListQuery) ([]*Client, int, error)
}
