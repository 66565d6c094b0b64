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

// PlannedTarget is one address to probe with its computed defaults and
// candidate credential order.
type PlannedTarget struct {
	Target        models.DiscoveryTarget
	Defaults      models.ProbeDefaults
	CredentialIDs []int
}

// BuildPlan combines targets with subnet defaults and known-device
// hints. A hint's credential goes to position 0 of the candidate list
// and its org id overrides the subnet default.
func BuildPlan(
	targets []models.DiscoveryTarget,
	subnets map[string]models.SubnetDefaults,
	hints []models.KnownDeviceHint,
	defaultStatus string,
) []PlannedTarget {
	hintByIPKey := make(map[int]models.KnownDeviceHint, len(hints))
	for _, hint := range hints {
		hintByIPKey[hint.ManagementIPKey] = hint
	}

	plan := make([]PlannedTarget, 0, len(targets))

	for _, target := range targets {
		subnet := subnets[target.SubnetKey]

		planned := PlannedTarget{
			Target: target,
			Defaults: models.ProbeDefaults{
				OrgID:        subnet.OrgID,
				DeviceTypeID: subnet.DeviceTypeID,
				Status:       defaultStatus,
			},
			CredentialIDs: subnet.CredentialIDs,
		}

		if hint, ok := hintByIPKey[target.IPKey]; ok {
			planned.Defaults.OrgID = hint.OrgID
			planned.CredentialIDs = append([]int{hint.CredentialID}, subnet.CredentialIDs...)
		}

		plan = append(plan, planned)
	}

	return plan
}

// dedupeCredentials removes repeated candidate ids preserving order.
func dedupeCredentials(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	deduped := make([]int, 0, len(ids))

	for _, id := range ids {
		if !seen[id] {
			seen[id] = true

			deduped = append(deduped, id)
		}
	}

	return deduped
}
