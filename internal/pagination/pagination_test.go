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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Bad paging input falls back to defaults instead of erroring; the
// listing endpoints never reject a request over page/limit.
func TestParse_Fallbacks(t *testing.T) {
	cases := []struct {
		page, limit string
		want        Params
	}{
		{"", "", Params{Page: 1, Limit: 10}},
		{"3", "25", Params{Page: 3, Limit: 25}},
		{"0", "0", Params{Page: 1, Limit: 10}},
		{"-2", "-5", Params{Page: 1, Limit: 10}},
		{"abc", "xyz", Params{Page: 1, Limit: 10}},
		{"2", "bogus", Params{Page: 2, Limit: 10}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Parse(tc.page, tc.limit), "page=%q limit=%q", tc.page, tc.limit)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Params{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 50, Params{Page: 11, Limit: 5}.Offset())
}

func TestMetaFor(t *testing.T) {
	meta := Params{Page: 2, Limit: 10}.MetaFor(25)
	assert.Equal(t, Meta{TotalData: 25, TotalPages: 3, CurrentPage: 2, Limit: 10}, meta)

	// Exact multiples do not add a trailing empty page
	meta = Params{Page: 1, Limit: 10}.MetaFor(30)
	assert.Equal(t, 3, meta.TotalPages)

	// An empty result set has zero pages
	meta = Params{Page: 1, Limit: 10}.MetaFor(0)
	assert.Equal(t, 0, meta.TotalPages)
}
