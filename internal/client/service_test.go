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
	"testing"
)

// MockRepository is a simple in-memory implementation of Repository
type MockRepository struct {
	clients map[string]*Client
}

func NewMockRepository() *MockRepository {
	return &MockRepository{clients: make(map[string]*Client)}
}

func (m *MockRepository) Create(ctx context.Context, c *Client) error {
	for _, existing := range m.clients {
		if existing.CompanyID != c.CompanyID {
			continue
		}
		if existing.DocumentNumber == c.DocumentNumber || (c.Email != "" && existing.Email == c.Email) {
			return ErrClientExists
		}
	}
	cp := *c
	m.clients[c.ID] = &cp
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, companyID, id string) (*Client, error) {
	c, ok := m.clients[id]
	if !ok || (companyID != "" && c.CompanyID != companyID) {
		return nil, ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MockRepository) Update(ctx context.Context, companyID string, c *Client) error {
	existing, ok := m.clients[c.ID]
	if !ok || (companyID != "" && existing.CompanyID != companyID) {
		return ErrClientNotFound
	}
	cp := *c
	m.clients[c.ID] = &cp
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, companyID, id string) error {
	c, ok := m.clients[id]
	if !ok || (companyID != "" && c.CompanyID != companyID) {
		return ErrClientNotFound
	}
	delete(m.clients, id)
	return nil
}

func (m *MockRepository) List(ctx context.Context, q ListQuery) ([]*Client, int, error) {
	var matched []*Client
	for _, c := range m.clients {
		if q.CompanyID != "" && c.CompanyID != q.CompanyID {
			continue
		}
		cp := *c
		matched = append(matched, &cp)
	}
	return matched, len(matched), nil
}

func validInput() Input {
	return Input{
		Name:           "Pedro Peña",
		DocumentNumber: "12345678Z",
		Address:        Address{Street: "Calle Sol 3", City: "Madrid", ZipCode: "28001", Country: "ES"},
		Telephone:      "612345678",
		Email:          "Pedro@Example.com",
	}
}

// TestPurpose: Validates creation rules: required fields, optional email
// validation and company stamping from the resolved scope rather than the
// payload.
func TestClient_Service_Create(t *testing.T) {
	s := NewService(NewMockRepository())
	ctx := context.Background()

	c, err := s.Create(ctx, "company-1", validInput())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if c.CompanyID != "company-1" {
		t.Errorf("expected company-1, got %s", c.CompanyID)
	}
	if !c.Active {
		t.Error("expected new client to be active")
	}
	if c.Email != "pedro@example.com" {
		t.Errorf("expected normalized email, got %s", c.Email)
	}

	in := validInput()
	in.Telephone = ""
	if _, err := s.Create(ctx, "company-1", in); err != ErrMissingFields {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}

	in = validInput()
	in.Email = "not-an-email"
	if _, err := s.Create(ctx, "company-1", in); err != ErrInvalidEmail {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}

	// Email is optional
	in = validInput()
	in.DocumentNumber = "87654321X"
	in.Email = ""
	if _, err := s.Create(ctx, "company-1", in); err != nil {
		t.Errorf("expected success without email, got %v", err)
	}
}

// TestPurpose: Validates per-company uniqueness: the same document number
// is a conflict inside one company but fine across two.
func TestClient_Service_Create_PerCompanyUniqueness(t *testing.T) {
	s := NewService(NewMockRepository())
	ctx := context.Background()

	if _, err := s.Create(ctx, "company-1", validInput()); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if _, err := s.Create(ctx, "company-1", validInput()); err != ErrClientExists {
		t.Errorf("expected ErrClientExists, got %v", err)
	}
	if _, err := s.Create(ctx, "company-2", validInput()); err != nil {
		t.Errorf("expected success in another company, got %v", err)
	}
}

// TestPurpose: Validates cross-company opacity on reads, updates and
// deletes.
func TestClient_Service_CrossCompanyOpacity(t *testing.T) {
	s := NewService(NewMockRepository())
	ctx := context.Background()

	c, err := s.Create(ctx, "company-1", validInput())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if _, err := s.Get(ctx, "company-2", c.ID); err != ErrClientNotFound {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}
	if _, err := s.Update(ctx, "company-2", c.ID, Input{Name: "Hacked"}); err != ErrClientNotFound {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "company-2", c.ID); err != ErrClientNotFound {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}

	// Unscoped access reaches it
	if _, err := s.Get(ctx, "", c.ID); err != nil {
		t.Errorf("expected success for unscoped read, got %v", err)
	}
}

// TestPurpose: Validates partial updates: empty fields stay untouched and
// the company never changes through this path.
func TestClient_Service_Update_Partial(t *testing.T) {
	s := NewService(NewMockRepository())
	ctx := context.Background()

	c, err := s.Create(ctx, "company-1", validInput())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	updated, err := s.Update(ctx, "company-1", c.ID, Input{Telephone: "698765432"})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if updated.Telephone != "698765432" {
		t.Errorf("expected new telephone, got %s", updated.Telephone)
	}
	if updated.Name != c.Name || updated.DocumentNumber != c.DocumentNumber {
		t.Errorf("unexpected field change: %+v", updated)
	}
	if updated.CompanyID != "company-1" {
		t.Errorf("company must not change, got %s", updated.CompanyID)
	}
	if updated.Address != c.Address {
		t.Errorf("address must stay when payload address is empty: %+v", updated.Address)
	}

	updated, err = s.Update(ctx, "company-1", c.ID, Input{Address: Address{Street: "Otra 5", City: "Sevilla"}})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if updated.Address.City != "Sevilla" {
		t.Errorf("expected replaced address, got %+v", updated.Address)
	}
}
