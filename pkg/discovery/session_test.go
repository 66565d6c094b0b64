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
	"errors"

	"github.com/opsgrid/snmp-discovery/pkg/snmp"
)

var errFakeRequest = errors.New("request failed")

type nextEntry struct {
	oid   string
	value snmp.Value
}

// fakeSession scripts agent behavior for the engine tests: Get answers
// from values, GetNext follows the next chain, Walk answers from tables.
type fakeSession struct {
	values map[string]snmp.Value
	next   map[string]nextEntry
	tables map[string]map[int]snmp.Value

	// errOIDs makes Get fail when any requested OID is listed.
	errOIDs map[string]bool

	closed bool
}

func (s *fakeSession) Get(oids ...string) (map[string]snmp.Value, error) {
	result := make(map[string]snmp.Value, len(oids))

	for _, oid := range oids {
		if s.errOIDs[oid] {
			return nil, errFakeRequest
		}

		if value, ok := s.values[oid]; ok {
			result[oid] = value
		} else {
			result[oid] = snmp.MissingValue()
		}
	}

	return result, nil
}

func (s *fakeSession) GetNext(oid string) (string, snmp.Value, error) {
	entry, ok := s.next[oid]
	if !ok {
		return "", snmp.MissingValue(), nil
	}

	return entry.oid, entry.value, nil
}

func (s *fakeSession) Walk(baseOID string) (map[int]snmp.Value, error) {
	rows, ok := s.tables[baseOID]
	if !ok {
		return nil, errFakeRequest
	}

	return rows, nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}
