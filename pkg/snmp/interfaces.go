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

// Package snmp wraps the gosnmp client behind a small session contract so
// the discovery engines can be exercised against fixture sessions.
package snmp

import (
	"github.com/opsgrid/snmp-discovery/pkg/models"
)

// OutputMode selects how a session renders OBJECT IDENTIFIER values.
type OutputMode int

const (
	// OutputNumeric renders OIDs in dotted numeric form.
	OutputNumeric OutputMode = iota
	// OutputTranslated renders OIDs through the module translation table.
	OutputTranslated
)

// Session is one authenticated SNMP conversation with a host.
type Session interface {
	// Get issues a single GET request for the given OIDs and returns the
	// values keyed by request OID.
	Get(oids ...string) (map[string]Value, error)

	// GetNext issues a GET-NEXT request starting at oid and returns the
	// responding OID with its value.
	GetNext(oid string) (string, Value, error)

	// Walk retrieves the subtree under baseOID, keyed by the table index
	// that follows the base.
	Walk(baseOID string) (map[int]Value, error)

	Close() error
}

// Factory opens sessions for a host from resolved credentials.
type Factory interface {
	Open(host string, cred *models.Credential, mode OutputMode) (Session, error)
}
