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

// Package models defines the data model shared by the discovery engines,
// the dispatch layer, and the inventory contracts.
package models

// Credential holds the SNMP authentication parameters resolved from an
// inventory credential id. A credential with an empty SecurityLevel is a
// v2c community credential; otherwise it is a v3 USM credential.
type Credential struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Community       string `json:"community"`
	SecurityLevel   string `json:"security_level"`
	SecurityName    string `json:"security_name"`
	AuthProtocol    string `json:"auth_protocol"`
	AuthPassphrase  string `json:"auth_passphrase"`
	PrivProtocol    string `json:"priv_protocol"`
	PrivPassphrase  string `json:"priv_passphrase"`
	ContextName     string `json:"context_name"`
}

// IsV3 reports whether the credential selects SNMPv3 USM security.
func (c *Credential) IsV3() bool {
	return c.SecurityLevel != ""
}

// DiscoveryTarget is one IP address to probe, keyed by its inventory id.
type DiscoveryTarget struct {
	IPKey     int    `json:"ip_key"`
	IPAddress string `json:"ip_address"`
	SubnetKey string `json:"subnet_key"`
}

// SubnetDefaults supplies fallback values for devices discovered on a
// subnet that has no known device record yet.
type SubnetDefaults struct {
	OrgID         int   `json:"org_id"`
	DeviceTypeID  int   `json:"device_type_id"`
	CredentialIDs []int `json:"credential_ids"`
}

// KnownDeviceHint is a previously established binding between a
// management IP and a working credential. Its credential is tried first
// and its org id overrides the subnet default.
type KnownDeviceHint struct {
	OrgID           int `json:"org_id"`
	ManagementIPKey int `json:"management_ip_key"`
	CredentialID    int `json:"credential_id"`
}

// ProbeDefaults are the relational fallback values applied to a device
// record when an IP is probed.
type ProbeDefaults struct {
	OrgID        int    `json:"org_id"`
	DeviceTypeID int    `json:"device_type_id"`
	Status       string `json:"status"`
}
