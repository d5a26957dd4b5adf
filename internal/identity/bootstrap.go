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

package identity

import (
	"context"
	"fmt"

	"github.com/openworkshop/openworkshop/internal/audit"
	"github.com/openworkshop/openworkshop/internal/id"
)

// BootstrapService seeds the initial super admin account so a fresh
// deployment has a principal able to provision the first company.
type BootstrapService struct {
	repo        Repository
	hasher      *PasswordHasher
	auditLogger audit.Logger
}

// NewBootstrapService creates a new bootstrap service
func NewBootstrapService(repo Repository, hasher *PasswordHasher, auditLogger audit.Logger) *BootstrapService {
	return &BootstrapService{
		repo:        repo,
		hasher:      hasher,
		auditLogger: auditLogger,
	}
}

// Bootstrap creates the super admin identified by email if it does not
// exist yet. Empty credentials skip the seed silently; an existing
// account makes it a no-op, so running at every startup is safe.
func (s *BootstrapService) Bootstrap(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	email = normalizeEmail(email)
	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash super admin password: %w", err)
	}

	user := &User{
		ID:           id.NewUUIDv7(),
		Name:         "Super Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         RoleSuperAdmin,
		Active:       true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to seed super admin: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeSuperAdminSeeded,
		ActorID:  audit.ActorSystemSeed,
		Resource: "user",
		Metadata: map[string]any{audit.AttrEmail: email},
	})

	return nil
}
