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
	"github.com/opsgrid/snmp-discovery/pkg/models"
)

// Classifier maps the translated sysObjectID and free-text sysDescr to
// brand, model and firmware version through ordered mapping tables.
type Classifier struct {
	brandBySysObjectID MappingTable
	brandBySysDescr    MappingTable
	modelBySysObjectID MappingTable
	modelBySysDescr    MappingTable
	versionBySysDescr  MappingTable
}

// Classify resolves brand, model and version. Brand and model run two
// stages: the translated-OID table first, then the sysDescr table, with
// a non-empty sysDescr result overriding the OID stage. Version has only
// the sysDescr stage. Model and version are brand-scoped in practice, so
// an unresolved brand forces both to unknown regardless of their own
// matches. Pass translatedID as "" when OID translation failed; the OID
// stage is then skipped.
func (c *Classifier) Classify(translatedID, sysDescr string) (brand, model, version string) {
	brand = twoStage(c.brandBySysObjectID, c.brandBySysDescr, translatedID, sysDescr)
	if brand == "" {
		return models.UnknownValue, models.UnknownValue, models.UnknownValue
	}

	model = twoStage(c.modelBySysObjectID, c.modelBySysDescr, translatedID, sysDescr)
	if model == "" {
		model = models.UnknownValue
	}

	version = c.versionBySysDescr.Lookup(sysDescr)
	if version == "" {
		version = models.UnknownValue
	}

	return brand, model, version
}

// twoStage consults the translated-OID table and then the sysDescr
// table; sysDescr is the more authoritative source when both resolve.
func twoStage(byObjectID, byDescr MappingTable, translatedID, sysDescr string) string {
	result := byObjectID.Lookup(translatedID)

	if override := byDescr.Lookup(sysDescr); override != "" {
		result = override
	}

	return result
}
