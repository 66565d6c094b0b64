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

package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SerialRuleDef is one raw serial-detection rule. Rules are evaluated in
// file order; the first applying rule whose probe succeeds wins.
type SerialRuleDef struct {
	// SystemIDMatch is a literal sysObjectID prefix, or a /.../ pattern.
	SystemIDMatch string `yaml:"system_oid_match" validate:"required"`
	Method        string `yaml:"method" validate:"required,oneof=get getNextNonEmpty getNextValidMAC"`
	SerialOID     string `yaml:"serial_oid" validate:"required"`

	UseAsSerialNumber bool `yaml:"use_as_serialnumber"`
	// UseAsPrimaryKey defaults to UseAsSerialNumber when unset.
	UseAsPrimaryKey *bool `yaml:"use_as_primary_key"`
}

// MappingRuleDef is one raw brand/model/version mapping row. Match is a
// regular expression; the first matching row's value wins.
type MappingRuleDef struct {
	Match string `yaml:"match" validate:"required"`
	Value string `yaml:"value" validate:"required"`
}

// Rules is the raw rules file. The discovery package compiles it into
// executable rule sets; compilation failures (bad patterns) also reject
// the file at load time.
type Rules struct {
	SerialDetection []SerialRuleDef `yaml:"serial_detection" validate:"dive"`

	BrandBySysObjectID []MappingRuleDef `yaml:"brand_by_sysobjectid" validate:"dive"`
	BrandBySysDescr    []MappingRuleDef `yaml:"brand_by_sysdescr" validate:"dive"`
	ModelBySysObjectID []MappingRuleDef `yaml:"model_by_sysobjectid" validate:"dive"`
	ModelBySysDescr    []MappingRuleDef `yaml:"model_by_sysdescr" validate:"dive"`
	VersionBySysDescr  []MappingRuleDef `yaml:"version_by_sysdescr" validate:"dive"`

	// ContactPatterns are regular expressions with named capture groups
	// (friendlyname, email, phone, org).
	ContactPatterns []string `yaml:"contact_patterns"`

	// OIDTranslation maps numeric OID prefixes to symbolic module names.
	OIDTranslation map[string]string `yaml:"oid_translation"`
}

// LoadRules reads and validates the YAML rules file.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules %s: %w", path, err)
	}

	rules := &Rules{}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parsing rules %s: %w", path, err)
	}

	if err := validator.New().Struct(rules); err != nil {
		return nil, fmt.Errorf("invalid rules %s: %w", path, err)
	}

	return rules, nil
}
