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

	"github.com/opsgrid/snmp-discovery/pkg/logger"
	"github.com/opsgrid/snmp-discovery/pkg/models"
	"github.com/opsgrid/snmp-discovery/pkg/snmp"
)

func interfaceFixture() *fakeSession {
	return &fakeSession{
		tables: map[string]map[int]snmp.Value{
			oidIfType: {
				1: snmp.IntValue(6),
				2: snmp.IntValue(161),
				3: snmp.IntValue(24),
			},
			oidIfDescr: {
				1: snmp.StringValue("GigabitEthernet0/1"),
				2: snmp.StringValue("Port-channel1"),
				3: snmp.StringValue("Loopback0"),
			},
			oidIfName: {
				1: snmp.StringValue("Gi0/1"),
				2: snmp.StringValue("Po1"),
			},
			oidIfAlias: {
				1: snmp.StringValue("uplink to core"),
			},
			oidIfPhysAddress: {
				1: snmp.OctetsValue([]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0xAA}),
				3: snmp.OctetsValue(nil),
			},
			oidIfHighSpeed: {
				1: snmp.IntValue(1000),
			},
			oidIfSpeed: {
				1: snmp.IntValue(4294967295),
				3: snmp.IntValue(8000000),
			},
			oidIfMtu: {
				1: snmp.IntValue(1500),
				2: snmp.IntValue(1500),
				3: snmp.IntValue(65536),
			},
			oidIfAdminStatus: {
				1: snmp.IntValue(1),
				2: snmp.IntValue(1),
				3: snmp.IntValue(2),
			},
		},
	}
}

func TestEnumerate_PartitionsByType(t *testing.T) {
	t.Parallel()

	enumerator := NewInterfaceEnumerator(true, logger.NewTestLogger())

	groups := enumerator.Enumerate(interfaceFixture())

	require.Len(t, groups.Physical, 1)
	require.Len(t, groups.Aggregate, 1)
	require.Len(t, groups.Virtual, 1)
	assert.Equal(t, 3, groups.Total())

	physical := groups.Physical[0]
	assert.Equal(t, 1, physical.LocalIndex)
	assert.Equal(t, models.InterfacePhysical, physical.Class)
	assert.Equal(t, "Ethernet", physical.Layer2Protocol)

	aggregate := groups.Aggregate[0]
	assert.Equal(t, 2, aggregate.LocalIndex)
	assert.Equal(t, models.InterfaceAggregate, aggregate.Class)
	assert.Empty(t, aggregate.Layer2Protocol)

	virtual := groups.Virtual[0]
	assert.Equal(t, 3, virtual.LocalIndex)
	assert.Equal(t, models.InterfaceVirtual, virtual.Class)
}

func TestEnumerate_NameAndComment(t *testing.T) {
	t.Parallel()

	enumerator := NewInterfaceEnumerator(true, logger.NewTestLogger())

	groups := enumerator.Enumerate(interfaceFixture())

	physical := groups.Physical[0]
	assert.Equal(t, "Gi0/1", physical.Name, "short name preferred over the description")
	assert.Equal(t, "GigabitEthernet0/1\nuplink to core", physical.Comment)

	// Index 3 has no short name; the description takes its place and the
	// comment holds only the (absent) alias.
	virtual := groups.Virtual[0]
	assert.Equal(t, "Loopback0", virtual.Name)
	assert.Empty(t, virtual.Comment)
}

func TestEnumerate_SpeedAndMAC(t *testing.T) {
	t.Parallel()

	enumerator := NewInterfaceEnumerator(true, logger.NewTestLogger())

	groups := enumerator.Enumerate(interfaceFixture())

	physical := groups.Physical[0]
	assert.Equal(t, uint64(1_000_000_000), physical.SpeedBps, "high-speed column wins over the saturated 32-bit gauge")
	assert.Equal(t, "00:11:22:33:44:aa", physical.MACAddress)
	assert.Equal(t, 1500, physical.MTU)
	assert.Equal(t, 1, physical.AdminStatus)

	virtual := groups.Virtual[0]
	assert.Equal(t, uint64(8000000), virtual.SpeedBps, "legacy gauge used when the extended table is absent")
	assert.Empty(t, virtual.MACAddress, "short physical address is not a MAC")
}

func TestEnumerate_Disabled(t *testing.T) {
	t.Parallel()

	enumerator := NewInterfaceEnumerator(false, logger.NewTestLogger())

	groups := enumerator.Enumerate(nil)

	assert.Zero(t, groups.Total())
}

func TestEnumerate_TypeWalkFailure(t *testing.T) {
	t.Parallel()

	enumerator := NewInterfaceEnumerator(true, logger.NewTestLogger())

	groups := enumerator.Enumerate(&fakeSession{tables: map[string]map[int]snmp.Value{}})

	assert.Zero(t, groups.Total())
}

func TestNormalizeText_Latin1(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain ascii", normalizeText("plain ascii"))
	assert.Equal(t, "Zürich", normalizeText("Z\xfcrich"))
}
