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
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/opsgrid/snmp-discovery/pkg/logger"
	"github.com/opsgrid/snmp-discovery/pkg/models"
	"github.com/opsgrid/snmp-discovery/pkg/snmp"
)

// Interface table OIDs.
const (
	oidIfDescr       = ".1.3.6.1.2.1.2.2.1.2"
	oidIfType        = ".1.3.6.1.2.1.2.2.1.3"
	oidIfMtu         = ".1.3.6.1.2.1.2.2.1.4"
	oidIfSpeed       = ".1.3.6.1.2.1.2.2.1.5"
	oidIfPhysAddress = ".1.3.6.1.2.1.2.2.1.6"
	oidIfAdminStatus = ".1.3.6.1.2.1.2.2.1.7"

	// Extended interface table (ifXTable).
	oidIfName      = ".1.3.6.1.2.1.31.1.1.1.1"
	oidIfHighSpeed = ".1.3.6.1.2.1.31.1.1.1.15"
	oidIfAlias     = ".1.3.6.1.2.1.31.1.1.1.18"
)

// IANA interface type codes that select the classification.
const (
	ifTypeEthernetCsmacd = 6
	ifTypeIeee8023adLag  = 161

	megabit = 1_000_000
)

// InterfaceEnumerator walks the interface tables of a probed device and
// classifies each interface by its IANA type code.
type InterfaceEnumerator struct {
	enabled bool
	log     logger.Logger
}

// NewInterfaceEnumerator builds an enumerator; when enabled is false,
// Enumerate returns three empty groups without touching the session.
func NewInterfaceEnumerator(enabled bool, log logger.Logger) *InterfaceEnumerator {
	return &InterfaceEnumerator{enabled: enabled, log: log}
}

// Enumerate builds the per-interface records grouped by classification.
// Walk failures degrade to missing columns; only the driving ifType walk
// failing yields an empty result, and none of this fails the probe.
func (e *InterfaceEnumerator) Enumerate(sess snmp.Session) models.InterfaceGroups {
	groups := models.InterfaceGroups{}

	if !e.enabled {
		return groups
	}

	ifType, err := sess.Walk(oidIfType)
	if err != nil {
		e.log.Debug().Err(err).Msg("Interface table walk failed")
		return groups
	}

	ifDescr := walkColumn(sess, oidIfDescr)
	ifMtu := walkColumn(sess, oidIfMtu)
	ifSpeed := walkColumn(sess, oidIfSpeed)
	ifPhysAddress := walkColumn(sess, oidIfPhysAddress)
	ifAdminStatus := walkColumn(sess, oidIfAdminStatus)

	ifName := walkColumn(sess, oidIfName)
	ifHighSpeed := walkColumn(sess, oidIfHighSpeed)
	ifAlias := walkColumn(sess, oidIfAlias)

	for _, index := range sortedIndexes(ifType) {
		record := models.InterfaceRecord{LocalIndex: index}

		descr := ifDescr[index].String()
		name := ifName[index].String()
		comment := ""

		if name != "" {
			record.Name = name

			if descr != "" && descr != name {
				comment = descr + "\n"
			}
		} else {
			record.Name = descr
		}

		comment += ifAlias[index].String()
		record.Comment = normalizeText(strings.TrimSpace(comment))

		if mac := ifPhysAddress[index].Bytes(); len(mac) == 6 {
			record.MACAddress = formatMAC(mac)
		}

		if high, ok := ifHighSpeed[index]; ok && !high.Missing() {
			record.SpeedBps = uint64(high.Int()) * megabit
		} else if speed, ok := ifSpeed[index]; ok && !speed.Missing() {
			record.SpeedBps = uint64(speed.Int())
		}

		record.AdminStatus = int(ifAdminStatus[index].Int())
		record.MTU = int(ifMtu[index].Int())

		switch ifType[index].Int() {
		case ifTypeEthernetCsmacd:
			record.Class = models.InterfacePhysical
			record.Layer2Protocol = "Ethernet"
			groups.Physical = append(groups.Physical, record)
		case ifTypeIeee8023adLag:
			record.Class = models.InterfaceAggregate
			groups.Aggregate = append(groups.Aggregate, record)
		default:
			record.Class = models.InterfaceVirtual
			groups.Virtual = append(groups.Virtual, record)
		}
	}

	e.log.Debug().Int("interfaces", groups.Total()).Msg("Interfaces collected")

	return groups
}

// walkColumn tolerates per-column walk failures; many devices lack the
// extended table.
func walkColumn(sess snmp.Session, oid string) map[int]snmp.Value {
	rows, err := sess.Walk(oid)
	if err != nil {
		return map[int]snmp.Value{}
	}

	return rows
}

func sortedIndexes(rows map[int]snmp.Value) []int {
	indexes := make([]int, 0, len(rows))

	for index := range rows {
		indexes = append(indexes, index)
	}

	sort.Ints(indexes)

	return indexes
}

// normalizeText ensures valid UTF-8, re-decoding legacy Latin-1 device
// output when needed.
func normalizeText(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return strings.ToValidUTF8(s, "")
	}

	return decoded
}

func formatMAC(b []byte) string {
	parts := make([]string, len(b))

	for i, octet := range b {
		parts[i] = fmt.Sprintf("%02x", octet)
	}

	return strings.Join(parts, ":")
}
