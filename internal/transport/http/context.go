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

package http

import (
	"context"

	"github.com/openworkshop/openworkshop/internal/identity"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	companyIDKey contextKey = "company_id"
)

// GetPrincipal retrieves the authenticated principal from context. The
// second return is false on unauthenticated requests.
func GetPrincipal(ctx context.Context) (identity.Principal, bool) {
	val, ok := ctx.Value(principalKey).(identity.Principal)
	return val, ok
}

// GetCompanyID retrieves the resolved company scope from context. Empty
// means unscoped, which only ever happens for top-level principals.
func GetCompanyID(ctx context.Context) string {
	if val, ok := ctx.Value(companyIDKey).(string); ok {
		return val
	}
	return ""
}
