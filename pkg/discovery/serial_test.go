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

	"github.com/opsgrid/snmp-discovery/pkg/snmp"
)

const (
	testEntSerialOID = ".1.3.6.1.2.1.47.1.1.1.1.11"
	testCiscoOID     = ".1.3.6.1.4.1.9.1.1"
)

func TestDetectSerial_GetMethod(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{
		values: map[string]snmp.Value{
			testEntSerialOID + ".1": snmp.StringValue("  FOC12345678  "),
		},
	}

	rules := []SerialRule{
		{
			Method:            SerialMethodGet,
			SerialOID:         testEntSerialOID + ".1",
			UseAsSerialNumber: true,
			UseAsPrimaryKey:   true,
			prefix:            ".1.3.6.1.4.1.9.",
		},
	}

	result := DetectSerial(sess, testCiscoOID, rules)

	require.NotNil(t, result)
	assert.Equal(t, "FOC12345678", result.Serial)
	assert.True(t, result.UseAsSerialNumber)
	assert.True(t, result.UseAsPrimaryKey)
}

func TestDetectSerial_FirstApplyingSuccessWins(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{
		values: map[string]snmp.Value{
			".1.1.1.0": snmp.StringValue("FIRST"),
			".2.2.2.0": snmp.StringValue("SECOND"),
		},
	}

	rules := []SerialRule{
		// Does not apply to the device's identity OID.
		{Method: SerialMethodGet, SerialOID: ".9.9.9.0", prefix: ".1.3.6.1.4.1.2636."},
		// Applies but the attribute is absent.
		{Method: SerialMethodGet, SerialOID: ".3.3.3.0", prefix: ".1.3.6.1.4.1.9."},
		// Applies and succeeds; later rules are never consulted.
		{Method: SerialMethodGet, SerialOID: ".1.1.1.0", UseAsSerialNumber: true, prefix: ".1.3.6.1.4.1.9."},
		{Method: SerialMethodGet, SerialOID: ".2.2.2.0", prefix: ".1.3.6.1.4.1.9."},
	}

	result := DetectSerial(sess, testCiscoOID, rules)

	require.NotNil(t, result)
	assert.Equal(t, "FIRST", result.Serial)
	assert.True(t, result.UseAsSerialNumber)
}

func TestDetectSerial_PatternMatch(t *testing.T) {
	t.Parallel()

	rules, err := compileSerialRules(serialDefs(t, `
serial_detection:
  - system_oid_match: "/^\\.1\\.3\\.6\\.1\\.4\\.1\\.2636\\./"
    method: get
    serial_oid: ".1.1.1.0"
    use_as_serialnumber: true
`))
	require.NoError(t, err)

	sess := &fakeSession{
		values: map[string]snmp.Value{".1.1.1.0": snmp.StringValue("JN123")},
	}

	assert.Nil(t, DetectSerial(sess, testCiscoOID, rules))

	result := DetectSerial(sess, ".1.3.6.1.4.1.2636.1.1.1.2", rules)
	require.NotNil(t, result)
	assert.Equal(t, "JN123", result.Serial)
}

func TestDetectSerial_GetNextNonEmpty(t *testing.T) {
	t.Parallel()

	base := ".1.4.7"
	sess := &fakeSession{
		next: map[string]nextEntry{
			base:          {oid: base + ".1.1", value: snmp.StringValue("")},
			base + ".1.1": {oid: base + ".1.2", value: snmp.StringValue("SER-42")},
		},
	}

	rules := []SerialRule{
		{Method: SerialMethodGetNextNonEmpty, SerialOID: base, UseAsSerialNumber: true, prefix: "."},
	}

	result := DetectSerial(sess, testCiscoOID, rules)

	require.NotNil(t, result)
	assert.Equal(t, "SER-42", result.Serial)
	assert.True(t, result.UseAsSerialNumber)
}

func TestDetectSerial_GetNextNonEmptyLeavesSubtree(t *testing.T) {
	t.Parallel()

	base := ".1.4.7"
	sess := &fakeSession{
		next: map[string]nextEntry{
			base:          {oid: base + ".1.1", value: snmp.StringValue("")},
			base + ".1.1": {oid: ".1.4.8.1", value: snmp.StringValue("OUTSIDE")},
		},
	}

	rules := []SerialRule{
		{Method: SerialMethodGetNextNonEmpty, SerialOID: base, prefix: "."},
	}

	assert.Nil(t, DetectSerial(sess, testCiscoOID, rules))
}

func TestDetectSerial_GetNextValidMAC(t *testing.T) {
	t.Parallel()

	base := ".1.2.840.10036.1.1.1.1"
	sess := &fakeSession{
		next: map[string]nextEntry{
			base:        {oid: base + ".1", value: snmp.OctetsValue([]byte{0, 0, 0, 0, 0, 0})},
			base + ".1": {oid: base + ".2", value: snmp.OctetsValue([]byte{0x00, 0x11, 0x22})},
			base + ".2": {oid: base + ".3", value: snmp.OctetsValue([]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0xAA})},
		},
	}

	rules := []SerialRule{
		{Method: SerialMethodGetNextValidMAC, SerialOID: base, UseAsSerialNumber: true, UseAsPrimaryKey: true, prefix: "."},
	}

	result := DetectSerial(sess, testCiscoOID, rules)

	require.NotNil(t, result)
	assert.Equal(t, "00:11:22:33:44:aa", result.Serial)
}

func TestDetectSerial_NoRuleSucceeds(t *testing.T) {
	t.Parallel()

	sess := &fakeSession{}

	rules := []SerialRule{
		{Method: SerialMethodGet, SerialOID: ".1.1.1.0", prefix: ".1.3.6.1.4.1.9."},
		{Method: SerialMethodGetNextNonEmpty, SerialOID: ".1.4.7", prefix: "."},
	}

	assert.Nil(t, DetectSerial(sess, testCiscoOID, rules))
}

func TestValidMAC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		bytes []byte
		want  string
		ok    bool
	}{
		{name: "valid", bytes: []byte{0xAA, 0xBB, 0xCC, 0x00, 0x11, 0x22}, want: "aa:bb:cc:00:11:22", ok: true},
		{name: "all zero", bytes: []byte{0, 0, 0, 0, 0, 0}},
		{name: "too short", bytes: []byte{0xAA, 0xBB, 0xCC}},
		{name: "too long", bytes: []byte{1, 2, 3, 4, 5, 6, 7}},
		{name: "empty", bytes: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mac, ok := validMAC(tt.bytes)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, mac)
		})
	}
}
