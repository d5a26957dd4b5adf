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

package mechanic

import (
	"context"
	"strings"
	"time"

	"github.com/openworkshop/openworkshop/internal/id"
)

// Service provides mechanic management business logic.
type Service struct {
	repo Repository
}

// NewService creates a new mechanic service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Input carries the mechanic fields accepted from a caller.
type Input struct {
	Name      string
	Telephone string
}

// Create stamps a new mechanic with the request's company scope.
func (s *Service) Create(ctx context.Context, companyID string, in Input) (*Mechanic, error) {
	if in.Name == "" || in.Telephone == "" {
		return nil, ErrMissingFields
	}

	m := &Mechanic{
		ID:        id.NewUUIDv7(),
		Name:      strings.TrimSpace(in.Name),
		Telephone: strings.TrimSpace(in.Telephone),
		CompanyID: companyID,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get retrieves a mechanic by ID within the company scope.
func (s *Service) Get(ctx context.Context, companyID, mechanicID string) (*Mechanic, error) {
	return s.repo.GetByID(ctx, companyID, mechanicID)
}

// List returns a page of mechanics plus the total match count.
func (s *Service) List(ctx context.Context, companyID, searchTerm string, offset, limit int) ([]*Mechanic, int, error) {
	return s.repo.List(ctx, ListQuery{
		CompanyID: companyID,
		Search:    searchTerm,
		Offset:    offset,
		Limit:     limit,
	})
}

// Update applies non-empty fields of in to an existing mechanic.
func (s *Service) Update(ctx context.Context, companyID, mechanicID string, in Input) (*Mechanic, error) {
	m, err := s.repo.GetByID(ctx, companyID, mechanicID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		m.Name = strings.TrimSpace(in.Name)
	}
	if in.Telephone != "" {
		m.Telephone = strings.TrimSpace(in.Telephone)
	}

	m.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, companyID, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a mechanic within the company scope.
func (s *Service) Delete(ctx context.Context, companyID, mechanicID string) error {
	return s.repo.Delete(ctx, companyID, mechanicID)
}
