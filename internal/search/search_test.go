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

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Peña":       "Pena",
		"José María": "Jose Maria",
		"garçon":     "garcon",
		"plain":      "plain",
		"":           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in))
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%Pena%", LikePattern("Peña"))

	// LIKE metacharacters must not widen the match
	assert.Equal(t, `%100\%%`, LikePattern("100%"))
	assert.Equal(t, `%a\_b%`, LikePattern("a_b"))
	assert.Equal(t, `%a\\b%`, LikePattern(`a\b`))
}

// Spanish collation orders by base letter, so accented names interleave
// with unaccented ones instead of sorting after 'z'.
func TestCollator_SortStrings(t *testing.T) {
	co := NewCollator()

	names := []string{"Zoe", "Ángela", "ana", "Ana"}
	co.SortStrings(names)

	assert.Equal(t, "Zoe", names[3])
	assert.True(t, co.Less("Ángela", "Zoe"))
	assert.True(t, co.Less("ana", "Ángela"))
	assert.False(t, co.Less("Zoe", "Ángela"))
}
