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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsgrid/snmp-discovery/pkg/models"
)

func TestBuildPlan(t *testing.T) {
	t.Parallel()

	targets := []models.DiscoveryTarget{
		{IPKey: 1, IPAddress: "10.0.0.1", SubnetKey: "lan"},
		{IPKey: 2, IPAddress: "10.0.0.2", SubnetKey: "lan"},
		{IPKey: 3, IPAddress: "172.16.0.1", SubnetKey: "dmz"},
	}

	subnets := map[string]models.SubnetDefaults{
		"lan": {OrgID: 10, DeviceTypeID: 5, CredentialIDs: []int{1, 2}},
		"dmz": {OrgID: 20, DeviceTypeID: 5, CredentialIDs: []int{3}},
	}

	hints := []models.KnownDeviceHint{
		{ManagementIPKey: 2, OrgID: 99, CredentialID: 7},
	}

	plan := BuildPlan(targets, subnets, hints, "implementation")
	require.Len(t, plan, 3)

	assert.Equal(t, models.ProbeDefaults{OrgID: 10, DeviceTypeID: 5, Status: "implementation"}, plan[0].Defaults)
	assert.Equal(t, []int{1, 2}, plan[0].CredentialIDs)

	// The known device's credential is tried first and its org wins.
	assert.Equal(t, 99, plan[1].Defaults.OrgID)
	assert.Equal(t, 5, plan[1].Defaults.DeviceTypeID)
	assert.Equal(t, []int{7, 1, 2}, plan[1].CredentialIDs)

	assert.Equal(t, 20, plan[2].Defaults.OrgID)
	assert.Equal(t, []int{3}, plan[2].CredentialIDs)
}

func TestBuildPlan_UnknownSubnet(t *testing.T) {
	t.Parallel()

	plan := BuildPlan(
		[]models.DiscoveryTarget{{IPKey: 1, IPAddress: "10.0.0.1", SubnetKey: "missing"}},
		map[string]models.SubnetDefaults{},
		nil,
		"implementation",
	)

	require.Len(t, plan, 1)
	assert.Zero(t, plan[0].Defaults.OrgID)
	assert.Equal(t, "implementation", plan[0].Defaults.Status)
	assert.Empty(t, plan[0].CredentialIDs)
}
