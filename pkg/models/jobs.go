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

import "strconv"

// ProbeJob is the payload published to the work queue for one target.
// The correlation id of the queue message is CorrelationID().
type ProbeJob struct {
	Target        DiscoveryTarget `json:"target"`
	Defaults      ProbeDefaults   `json:"defaults"`
	CredentialIDs []int           `json:"credential_ids"`
}

// CorrelationID keys the job to its originating target.
func (j *ProbeJob) CorrelationID() string {
	return strconv.Itoa(j.Target.IPKey)
}

// ProbeReply is the payload published back on the reply subject. A nil
// Device signals the target was unreachable.
type ProbeReply struct {
	IPKey  int           `json:"ip_key"`
	Device *DeviceRecord `json:"device"`
}

// CorrelationID keys the reply back to its pending target.
func (r *ProbeReply) CorrelationID() string {
	return strconv.Itoa(r.IPKey)
}
