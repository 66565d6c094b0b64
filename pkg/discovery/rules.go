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

// Package discovery implements the SNMP device discovery and
// classification engine: the per-address credential-trial prober, the
// serial-detection rules, the brand/model/version classifier, contact
// extraction and interface enumeration.
package discovery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/opsgrid/snmp-discovery/pkg/config"
)

// SerialMethod selects how a serial-detection rule probes the device.
type SerialMethod string

const (
	SerialMethodGet             SerialMethod = "get"
	SerialMethodGetNextNonEmpty SerialMethod = "getNextNonEmpty"
	SerialMethodGetNextValidMAC SerialMethod = "getNextValidMAC"
)

// SerialRule is one compiled serial-detection rule.
type SerialRule struct {
	Method            SerialMethod
	SerialOID         string
	UseAsSerialNumber bool
	UseAsPrimaryKey   bool

	// Exactly one of pattern and prefix is set.
	pattern *regexp.Regexp
	prefix  string
}

// Applies reports whether the rule matches the device's identity OID.
func (r *SerialRule) Applies(sysObjectID string) bool {
	if r.pattern != nil {
		return r.pattern.MatchString(sysObjectID)
	}

	return strings.HasPrefix(sysObjectID, r.prefix)
}

// MappingRule is one compiled mapping-table row.
type MappingRule struct {
	pattern *regexp.Regexp
	value   string
}

// MappingTable is an ordered mapping table; the first matching row wins.
type MappingTable []MappingRule

// Lookup returns the value of the first row matching text, or "".
func (t MappingTable) Lookup(text string) string {
	if text == "" {
		return ""
	}

	for _, rule := range t {
		if rule.pattern.MatchString(text) {
			return rule.value
		}
	}

	return ""
}

// RuleSet is the compiled form of the rules file, owned by the run
// context and read-only afterward.
type RuleSet struct {
	Serial     []SerialRule
	Classifier *Classifier
	Contacts   *ContactExtractor

	// Translation feeds the OID translator of the session factory.
	Translation map[string]string
}

// Compile turns the raw rules file into executable rule sets, rejecting
// any rule that does not compile.
func Compile(raw *config.Rules) (*RuleSet, error) {
	serial, err := compileSerialRules(raw.SerialDetection)
	if err != nil {
		return nil, err
	}

	classifier, err := compileClassifier(raw)
	if err != nil {
		return nil, err
	}

	contacts, err := NewContactExtractor(raw.ContactPatterns)
	if err != nil {
		return nil, err
	}

	return &RuleSet{
		Serial:      serial,
		Classifier:  classifier,
		Contacts:    contacts,
		Translation: raw.OIDTranslation,
	}, nil
}

func compileSerialRules(defs []config.SerialRuleDef) ([]SerialRule, error) {
	rules := make([]SerialRule, 0, len(defs))

	for i, def := range defs {
		rule := SerialRule{
			Method:            SerialMethod(def.Method),
			SerialOID:         def.SerialOID,
			UseAsSerialNumber: def.UseAsSerialNumber,
			UseAsPrimaryKey:   def.UseAsSerialNumber,
		}

		if def.UseAsPrimaryKey != nil {
			rule.UseAsPrimaryKey = *def.UseAsPrimaryKey
		}

		// A /.../-delimited match is a pattern, anything else a literal
		// prefix of the identity OID.
		if match := def.SystemIDMatch; len(match) > 1 && match[0] == '/' && match[len(match)-1] == '/' {
			pattern, err := regexp.Compile(match[1 : len(match)-1])
			if err != nil {
				return nil, fmt.Errorf("%w %d: %w", ErrInvalidSerialRule, i, err)
			}

			rule.pattern = pattern
		} else {
			rule.prefix = match
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

func compileClassifier(raw *config.Rules) (*Classifier, error) {
	tables := make([]MappingTable, 0, 5)

	for _, defs := range [][]config.MappingRuleDef{
		raw.BrandBySysObjectID,
		raw.BrandBySysDescr,
		raw.ModelBySysObjectID,
		raw.ModelBySysDescr,
		raw.VersionBySysDescr,
	} {
		table, err := compileMappingTable(defs)
		if err != nil {
			return nil, err
		}

		tables = append(tables, table)
	}

	return &Classifier{
		brandBySysObjectID: tables[0],
		brandBySysDescr:    tables[1],
		modelBySysObjectID: tables[2],
		modelBySysDescr:    tables[3],
		versionBySysDescr:  tables[4],
	}, nil
}

func compileMappingTable(defs []config.MappingRuleDef) (MappingTable, error) {
	table := make(MappingTable, 0, len(defs))

	for i, def := range defs {
		pattern, err := regexp.Compile(def.Match)
		if err != nil {
			return nil, fmt.Errorf("%w %d (%s): %w", ErrInvalidMappingRule, i, def.Match, err)
		}

		table = append(table, MappingRule{pattern: pattern, value: def.Value})
	}

	return table, nil
}
