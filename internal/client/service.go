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
	"regexp"
	"strings"
	"time"

	"github.com/openworkshop/openworkshop/internal/id"
)

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service provides client management business logic. The companyID on
// every method is the already-resolved request scope; the service trusts
// it and never reads a company from the payload.
type Service struct {
	repo Repository
}

// NewService creates a new client service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Input carries the client fields accepted from a caller. Any company or
// ID present in the original payload has been discarded before this point.
type Input struct {
	Name           string
	DocumentNumber string
	Address        Address
	Telephone      string
	Email          string
}

// Create stamps a new client with the request's company scope.
func (s *Service) Create(ctx context.Context, companyID string, in Input) (*Client, error) {
	if in.Name == "" || in.DocumentNumber == "" || in.Telephone == "" {
		return nil, ErrMissingFields
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != "" && !emailRx.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	c := &Client{
		ID:             id.NewUUIDv7(),
		Name:           strings.TrimSpace(in.Name),
		DocumentNumber: strings.TrimSpace(in.DocumentNumber),
		Address:        in.Address,
		Telephone:      strings.TrimSpace(in.Telephone),
		Email:          email,
		CompanyID:      companyID,
		Active:         true,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get retrieves a client by ID within the company scope.
func (s *Service) Get(ctx context.Context, companyID, clientID string) (*Client, error) {
	return s.repo.GetByID(ctx, companyID, clientID)
}

// List returns a page of clients plus the total match count.
func (s *Service) List(ctx context.Context, companyID, searchTerm string, offset, limit int) ([]*Client, int, error) {
	return s.repo.List(ctx, ListQuery{
		CompanyID: companyID,
		Search:    searchTerm,
		Offset:    offset,
		Limit:     limit,
	})
}

// Update applies non-empty fields of in to an existing client. The
// client's ID and company are untouchable through this path.
func (s *Service) Update(ctx context.Context, companyID, clientID string, in Input) (*Client, error) {
	c, err := s.repo.GetByID(ctx, companyID, clientID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		c.Name = strings.TrimSpace(in.Name)
	}
	if in.DocumentNumber != "" {
		c.DocumentNumber = strings.TrimSpace(in.DocumentNumber)
	}
	if in.Telephone != "" {
		c.Telephone = strings.TrimSpace(in.Telephone)
	}
	if in.Email != "" {
		email := strings.ToLower(strings.TrimSpace(in.Email))
		if !emailRx.MatchString(email) {
			return nil, ErrInvalidEmail
		}
		c.Email = email
	}
	if in.Address != (Address{}) {
		c.Address = in.Address
	}

	c.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, companyID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a client within the company scope.
func (s *Service) Delete(ctx context.Context, companyID, clientID string) error {
	return s.repo.Delete(ctx, companyID, clientID)
}
