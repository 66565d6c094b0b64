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

package inventory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/opsgrid/snmp-discovery/pkg/models"
)

type inventoryFile struct {
	Subnets      map[string]models.SubnetDefaults `json:"subnets"`
	Targets      []models.DiscoveryTarget         `json:"targets"`
	KnownDevices []models.KnownDeviceHint         `json:"known_devices"`
	Credentials  []models.Credential              `json:"credentials"`
}

// LoadFixture reads a JSON inventory export into an in-memory Service.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory %s: %w", path, err)
	}

	var file inventoryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing inventory %s: %w", path, err)
	}

	creds := make(map[int]*models.Credential, len(file.Credentials))
	for i := range file.Credentials {
		cred := file.Credentials[i]
		creds[cred.ID] = &cred
	}

	return &Fixture{
		SubnetDefaults: file.Subnets,
		TargetList:     file.Targets,
		Hints:          file.KnownDevices,
		Credentials:    creds,
	}, nil
}
