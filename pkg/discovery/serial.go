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
	"strings"

	"github.com/opsgrid/snmp-discovery/pkg/snmp"
)

// SerialResult is the outcome of a successful serial-detection rule.
type SerialResult struct {
	Serial            string
	UseAsSerialNumber bool
	UseAsPrimaryKey   bool
}

// DetectSerial evaluates the rules in configured order against the
// device's identity OID. The first applying rule whose probe succeeds
// wins; rules are never combined. Returns nil when no rule succeeds,
// which is a normal outcome, not an error.
func DetectSerial(sess snmp.Session, sysObjectID string, rules []SerialRule) *SerialResult {
	for i := range rules {
		rule := &rules[i]

		if !rule.Applies(sysObjectID) {
			continue
		}

		serial, found := probeSerial(sess, rule)
		if !found {
			continue
		}

		return &SerialResult{
			Serial:            serial,
			UseAsSerialNumber: rule.UseAsSerialNumber,
			UseAsPrimaryKey:   rule.UseAsPrimaryKey,
		}
	}

	return nil
}

func probeSerial(sess snmp.Session, rule *SerialRule) (string, bool) {
	if rule.Method == SerialMethodGet {
		values, err := sess.Get(rule.SerialOID)
		if err != nil {
			return "", false
		}

		value := values[rule.SerialOID]
		if value.Missing() {
			return "", false
		}

		return strings.TrimSpace(value.String()), true
	}

	return walkSerial(sess, rule)
}

// walkSerial issues GET-NEXT requests forward from the rule's base OID,
// bounded by leaving the base subtree.
func walkSerial(sess snmp.Session, rule *SerialRule) (string, bool) {
	oid := rule.SerialOID

	for {
		nextOID, value, err := sess.GetNext(oid)
		if err != nil || value.Missing() {
			return "", false
		}

		if !inSubtree(nextOID, rule.SerialOID) || nextOID == oid {
			return "", false
		}

		switch rule.Method {
		case SerialMethodGetNextNonEmpty:
			if value.String() != "" {
				return strings.TrimSpace(value.String()), true
			}
		case SerialMethodGetNextValidMAC:
			if mac, ok := validMAC(value.Bytes()); ok {
				return mac, true
			}
		}

		oid = nextOID
	}
}

// validMAC accepts exactly six non-zero bytes and renders them as
// colon-separated lowercase hex.
func validMAC(b []byte) (string, bool) {
	const macLen = 6

	if len(b) != macLen {
		return "", false
	}

	zero := true

	for _, octet := range b {
		if octet != 0 {
			zero = false
			break
		}
	}

	if zero {
		return "", false
	}

	return formatMAC(b), true
}

func inSubtree(oid, base string) bool {
	return oid == base || strings.HasPrefix(oid, base+".")
}
