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

package pagination

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params is a normalized page request. Use Parse to build one; a zero
// Params is not valid.
type Params struct {
	Page  int
	Limit int
}

// Parse normalizes raw page/limit query values. Anything that is not a
// positive integer falls back to the default instead of erroring.
func Parse(pageRaw, limitRaw string) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}
	if v, err := strconv.Atoi(pageRaw); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(limitRaw); err == nil && v > 0 {
		p.Limit = v
	}
	return p
}

// Offset returns the row offset for the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata returned alongside every listing.
type Meta struct {
	TotalData   int `json:"total_data"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	Limit       int `json:"limit"`
}

// MetaFor computes listing metadata for a total row count.
func (p Params) MetaFor(total int) Meta {
	pages := total / p.Limit
	if total%p.Limit != 0 {
		pages++
	}
	return Meta{
		TotalData:   total,
		TotalPages:  pages,
		CurrentPage: p.Page,
		Limit:       p.Limit,
	}
}
