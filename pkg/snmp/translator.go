/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package snmp

import (
	"sort"
	"strings"
)

// Translator resolves numeric OIDs to their symbolic module form through
// a longest-prefix table loaded from the rules file.
type Translator struct {
	entries []translationEntry
}

type translationEntry struct {
	prefix string
	symbol string
}

// NewTranslator builds a translator from a numeric-prefix to symbol map.
func NewTranslator(table map[string]string) *Translator {
	entries := make([]translationEntry, 0, len(table))

	for prefix, symbol := range table {
		entries = append(entries, translationEntry{
			prefix: normalizeOID(prefix),
			symbol: symbol,
		})
	}

	// Longest prefix first so the most specific entry wins.
	sort.Slice(entries, func(i, j int) bool {
		return len(entries[i].prefix) > len(entries[j].prefix)
	})

	return &Translator{entries: entries}
}

// Translate renders oid in symbolic form. The untranslated remainder is
// appended as numeric sub-identifiers, matching module-translated agent
// output. The second return reports whether any table entry applied.
func (t *Translator) Translate(oid string) (string, bool) {
	oid = normalizeOID(oid)

	for _, e := range t.entries {
		if oid == e.prefix {
			return e.symbol, true
		}

		if strings.HasPrefix(oid, e.prefix+".") {
			return e.symbol + oid[len(e.prefix):], true
		}
	}

	return oid, false
}

// normalizeOID ensures the canonical leading-dot form used throughout.
func normalizeOID(oid string) string {
	if oid != "" && oid[0] != '.' {
		return "." + oid
	}

	return oid
}
