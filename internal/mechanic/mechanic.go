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
	"errors"
	"time"
)

var (
	ErrMechanicNotFound = errors.New("mechanic not found")
	ErrMissingFields    = errors.New("missing required mechanic fields")
)

// Mechanic is a workshop mechanic record owned by a company.
type Mechanic struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Telephone string    `json:"telephone"`
	CompanyID string    `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListQuery selects a page of mechanics within one company. Search
// matches name or telephone.
type ListQuery struct {
	CompanyID string
	Search    string
	Offset    int
	Limit     int
}

// Repository defines the interface for mechanic persistence. All
// operations are company-scoped with cross-company opacity.
type Repository interface {
	Create(ctx context.Context, m *Mechanic) error
	GetByID(ctx context.Context, companyID, id string) (*Mechanic, error)
	Update(ctx context.Context, companyID string, m *Mechanic) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, q ListQuery) ([]*Mechanic, int, error)
}
