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

// Package search holds the string normalization and collation rules shared
// by every listing endpoint. Search terms are stripped of diacritics before
// being turned into case-insensitive patterns, and name ordering follows
// Spanish collation at base-letter strength.
package search

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var unaccenter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize strips combining diacritical marks from s ("Peña" -> "Pena").
func Normalize(s string) string {
	out, _, err := transform.String(unaccenter, s)
	if err != nil {
		return s
	}
	return out
}

// LikePattern builds a substring pattern for ILIKE matching from a raw
// search term. The term is unaccented and LIKE metacharacters are escaped
// so user input cannot widen the match.
func LikePattern(term string) string {
	t := Normalize(term)
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(t) + "%"
}

// Collator compares strings under Spanish collation, ignoring case and
// accents (base letters only). It is not safe for concurrent use; callers
// create one per sort.
type Collator struct {
	c *collate.Collator
}

// NewCollator returns a base-letter-strength Spanish collator.
func NewCollator() *Collator {
	return &Collator{c: collate.New(language.Spanish, collate.Loose)}
}

// Less reports whether a sorts before b.
func (co *Collator) Less(a, b string) bool {
	return co.c.CompareString(a, b) < 0
}

// SortStrings sorts ss in place under the collator's ordering.
func (co *Collator) SortStrings(ss []string) {
	sort.Slice(ss, func(i, j int) bool { return co.Less(ss[i], ss[j]) })
}
