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

package models

import "fmt"

// InterfaceClass partitions discovered interfaces by IANA interface type.
// The partition is closed: every type code maps to exactly one class.
type InterfaceClass string

const (
	InterfacePhysical  InterfaceClass = "physical"
	InterfaceAggregate InterfaceClass = "aggregate"
	InterfaceVirtual   InterfaceClass = "virtual"
)

// InterfaceRecord is one row of a device's interface table. LocalIndex is
// the SNMP ifIndex and is only unique within one device's scan.
type InterfaceRecord struct {
	LocalIndex     int            `json:"local_index"`
	Name           string         `json:"name"`
	Comment        string         `json:"comment"`
	MACAddress     string         `json:"mac_address,omitempty"`
	SpeedBps       uint64         `json:"speed_bps"`
	Layer2Protocol string         `json:"layer2_protocol,omitempty"`
	AdminStatus    int            `json:"admin_status"`
	MTU            int            `json:"mtu"`
	Class          InterfaceClass `json:"class"`
}

// InterfaceGroups holds a device's interfaces grouped by classification.
type InterfaceGroups struct {
	Physical  []InterfaceRecord `json:"physical"`
	Aggregate []InterfaceRecord `json:"aggregate"`
	Virtual   []InterfaceRecord `json:"virtual"`
}

// Total returns the number of interfaces across all groups.
func (g *InterfaceGroups) Total() int {
	return len(g.Physical) + len(g.Aggregate) + len(g.Virtual)
}

// ContactCandidate is one structured contact parsed from sysContact.
// Fields left empty were not captured by the matching pattern.
type ContactCandidate struct {
	FriendlyName string `json:"friendly_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// DeviceRecord is the result of a successful probe of one IP address.
type DeviceRecord struct {
	PrimaryKey      string `json:"primary_key"`
	Name            string `json:"name"`
	OrgID           int    `json:"org_id"`
	DeviceTypeID    int    `json:"device_type_id"`
	ManagementIPKey int    `json:"management_ip_key"`
	CredentialID    int    `json:"credential_id"`
	Status          string `json:"status"`

	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Version      string `json:"version"`
	SerialNumber string `json:"serial_number,omitempty"`

	RespondsToSNMP bool   `json:"responds_to_snmp"`
	LastDiscovery  string `json:"last_discovery"`

	SysName     string `json:"sys_name"`
	SysDescr    string `json:"sys_descr"`
	SysContact  string `json:"sys_contact"`
	SysLocation string `json:"sys_location"`
	SysUptime   int64  `json:"sys_uptime"`

	Contacts   []ContactCandidate `json:"contacts,omitempty"`
	Interfaces InterfaceGroups    `json:"interfaces"`
}

// ModelRecord is the brand-scoped model sub-record fanned out to the
// downstream model collector.
type ModelRecord struct {
	PrimaryKey string `json:"primary_key"`
	Brand      string `json:"brand"`
	Name       string `json:"name"`
}

// VersionRecord is the brand-scoped firmware version sub-record fanned
// out to the downstream version collector.
type VersionRecord struct {
	PrimaryKey string `json:"primary_key"`
	Brand      string `json:"brand"`
	Name       string `json:"name"`
}

// ModelRecord derives the model sub-record, or nil when the model is
// unresolved.
func (d *DeviceRecord) ModelRecord() *ModelRecord {
	if d.Model == "" || d.Model == UnknownValue {
		return nil
	}

	return &ModelRecord{
		PrimaryKey: fmt.Sprintf("%s - %s", d.Brand, d.Model),
		Brand:      d.Brand,
		Name:       d.Model,
	}
}

// VersionRecord derives the firmware version sub-record, or nil when the
// version is unresolved.
func (d *DeviceRecord) VersionRecord() *VersionRecord {
	if d.Version == "" || d.Version == UnknownValue {
		return nil
	}

	return &VersionRecord{
		PrimaryKey: fmt.Sprintf("%s - %s", d.Brand, d.Version),
		Brand:      d.Brand,
		Name:       d.Version,
	}
}

// UnknownValue is the degraded value used when a classification lookup
// resolves nothing.
const UnknownValue = "unknown"
