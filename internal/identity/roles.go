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

// Role is the closed set of principal roles. Authorization decisions are
// driven by this enum and the assignment table below, never by ad-hoc
// string comparisons in handlers.
type Role string

const (
	// RoleSuperAdmin operates across all companies and is the only role
	// without a fixed company scope.
	RoleSuperAdmin Role = "SUPER_ADMIN"

	// RoleAdmin administers a single company: its users, clients and
	// mechanics.
	RoleAdmin Role = "ADMIN"

	// RoleMechanic is a workshop mechanic account.
	RoleMechanic Role = "MECHANIC"

	// RoleAdministrative is office staff within a company.
	RoleAdministrative Role = "ADMINISTRATIVE"
)

// Valid reports whether r is a defined role.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleMechanic, RoleAdministrative:
		return true
	}
	return false
}

// TopLevel reports whether r operates without a company scope.
func (r Role) TopLevel() bool {
	return r == RoleSuperAdmin
}

// assignableRoles maps an actor role to the set of roles it may assign
// when creating or updating a user.
var assignableRoles = map[Role][]Role{
	RoleSuperAdmin: {RoleSuperAdmin, RoleAdmin, RoleMechanic, RoleAdministrative},
	RoleAdmin:      {RoleMechanic, RoleAdministrative},
}

// MayAssign reports whether an actor with role r may assign target to a
// managed user.
func (r Role) MayAssign(target Role) bool {
	for _, allowed := range assignableRoles[r] {
		if target == allowed {
			return true
		}
	}
	return false
}

// Principal is the authenticated actor attached to a request. It is built
// once from verified token claims and never re-fetched from storage for
// the lifetime of the request.
type Principal struct {
	UserID    string
	Role      Role
	CompanyID string
}
