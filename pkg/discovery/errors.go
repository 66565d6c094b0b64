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

import "errors"

var (
	// ErrUnreachable is the normal outcome for an IP that answered no
	// candidate credential, or failed its mandatory attribute read.
	ErrUnreachable = errors.New("device unreachable")

	// ErrInvalidSerialRule occurs when a serial-detection rule fails to
	// compile at load time.
	ErrInvalidSerialRule = errors.New("invalid serial detection rule")

	// ErrInvalidMappingRule occurs when a mapping-table row fails to
	// compile at load time.
	ErrInvalidMappingRule = errors.New("invalid mapping rule")

	// ErrInvalidContactPattern occurs when a contact pattern fails to
	// compile at load time.
	ErrInvalidContactPattern = errors.New("invalid contact pattern")
)
