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

package snmp

import "strconv"

// Kind identifies the decoded type of a retrieved value.
type Kind int

const (
	KindNull Kind = iota
	// KindMissing covers noSuchObject, noSuchInstance and endOfMibView.
	KindMissing
	KindOctets
	KindObjectID
	KindInt
	KindTimeTicks
)

// Value is one decoded varbind value.
type Value struct {
	kind  Kind
	bytes []byte
	n     int64
	s     string
}

// OctetsValue builds an octet-string value.
func OctetsValue(b []byte) Value { return Value{kind: KindOctets, bytes: b} }

// StringValue builds an octet-string value from a string.
func StringValue(s string) Value { return Value{kind: KindOctets, bytes: []byte(s)} }

// ObjectIDValue builds an OBJECT IDENTIFIER value.
func ObjectIDValue(oid string) Value { return Value{kind: KindObjectID, s: oid} }

// IntValue builds an integer value.
func IntValue(n int64) Value { return Value{kind: KindInt, n: n} }

// TimeTicksValue builds a TimeTicks value in hundredths of a second.
func TimeTicksValue(n int64) Value { return Value{kind: KindTimeTicks, n: n} }

// MissingValue builds a noSuchObject-style failure sentinel.
func MissingValue() Value { return Value{kind: KindMissing} }

// Kind returns the decoded type of the value.
func (v Value) Kind() Kind { return v.kind }

// Missing reports whether the agent answered with an explicit failure
// sentinel instead of a value.
func (v Value) Missing() bool { return v.kind == KindMissing || v.kind == KindNull }

// String renders the value as text.
func (v Value) String() string {
	switch v.kind {
	case KindOctets:
		return string(v.bytes)
	case KindObjectID:
		return v.s
	case KindInt, KindTimeTicks:
		return strconv.FormatInt(v.n, 10)
	default:
		return ""
	}
}

// Bytes returns the raw octets of an octet-string value.
func (v Value) Bytes() []byte { return v.bytes }

// Int returns the numeric value of integer-like kinds.
func (v Value) Int() int64 { return v.n }

// Empty reports whether the value is missing or renders as empty text.
func (v Value) Empty() bool { return v.Missing() || v.String() == "" }
