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

package discovery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/opsgrid/snmp-discovery/pkg/models"
)

// Named capture groups recognized by contact patterns.
const (
	contactGroupName  = "friendlyname"
	contactGroupEmail = "email"
	contactGroupPhone = "phone"
	contactGroupOrg   = "org"
)

// ContactExtractor parses free-text sysContact values into structured
// contact candidates through cascading pattern rules.
type ContactExtractor struct {
	patterns []*regexp.Regexp
}

// NewContactExtractor compiles the pattern rules, rejecting bad patterns
// at load time.
func NewContactExtractor(patterns []string) (*ContactExtractor, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for i, p := range patterns {
		pattern, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrInvalidContactPattern, i, err)
		}

		compiled = append(compiled, pattern)
	}

	return &ContactExtractor{patterns: compiled}, nil
}

// Extract applies every rule in order with global matching; each
// occurrence becomes a separate candidate, and overlapping rules may
// legitimately produce overlapping candidates (downstream resolution
// deduplicates). When no rule matched and the text is non-empty, one
// fallback candidate carries the raw text as a display name.
func (e *ContactExtractor) Extract(text string) []models.ContactCandidate {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var candidates []models.ContactCandidate

	for _, pattern := range e.patterns {
		names := pattern.SubexpNames()

		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			candidate := models.ContactCandidate{}
			captured := false

			for i, name := range names {
				if i == 0 || name == "" || match[i] == "" {
					continue
				}

				captured = true
				value := strings.TrimSpace(match[i])

				switch name {
				case contactGroupName:
					candidate.FriendlyName = value
				case contactGroupEmail:
					candidate.Email = value
				case contactGroupPhone:
					candidate.Phone = value
				case contactGroupOrg:
					candidate.Organization = value
				}
			}

			if captured {
				candidates = append(candidates, candidate)
			}
		}
	}

	if len(candidates) == 0 {
		candidates = append(candidates, models.ContactCandidate{FriendlyName: trimmed})
	}

	return candidates
}
