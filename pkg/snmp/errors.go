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

import "errors"

var (
	// ErrRequestFailed occurs when a request gets no usable response.
	ErrRequestFailed = errors.New("SNMP request failed")
	// ErrAgentError occurs when the agent answers with a protocol error.
	ErrAgentError = errors.New("SNMP agent returned error")
	// ErrUnsupportedSecurityLevel occurs for a v3 credential with a
	// security level outside noAuthNoPriv/authNoPriv/authPriv.
	ErrUnsupportedSecurityLevel = errors.New("unsupported security level")
)
