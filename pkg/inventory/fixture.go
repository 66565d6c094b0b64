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
	"context"
	"errors"
	"fmt"

	"github.com/opsgrid/snmp-discovery/pkg/models"
)

// ErrCredentialNotFound occurs when a credential id has no bundle.
var ErrCredentialNotFound = errors.New("credential not found")

// Fixture is an in-memory Service used by local runs and tests.
type Fixture struct {
	SubnetDefaults map[string]models.SubnetDefaults
	TargetList     []models.DiscoveryTarget
	Hints          []models.KnownDeviceHint
	Credentials    map[int]*models.Credential
}

func (f *Fixture) Subnets(_ context.Context) (map[string]models.SubnetDefaults, error) {
	return f.SubnetDefaults, nil
}

func (f *Fixture) Targets(_ context.Context) ([]models.DiscoveryTarget, error) {
	return f.TargetList, nil
}

func (f *Fixture) KnownDevices(_ context.Context) ([]models.KnownDeviceHint, error) {
	return f.Hints, nil
}

func (f *Fixture) Credential(_ context.Context, id int) (*models.Credential, error) {
	cred, ok := f.Credentials[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrCredentialNotFound, id)
	}

	return cred, nil
}
