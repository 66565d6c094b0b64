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

// Package inventory defines the contracts of the upstream inventory
// service that supplies discovery input, plus the per-process credential
// cache layered on top of it.
package inventory

import (
	"context"

	"github.com/opsgrid/snmp-discovery/pkg/models"
)

// Service is the upstream inventory query contract. Implementations that
// have no results for a query return empty sets, not errors; any error is
// fatal for the discovery run.
type Service interface {
	// Subnets returns per-subnet defaults keyed by subnet identifier.
	Subnets(ctx context.Context) (map[string]models.SubnetDefaults, error)

	// Targets returns the addresses to probe.
	Targets(ctx context.Context) ([]models.DiscoveryTarget, error)

	// KnownDevices returns previously established IP/credential bindings.
	KnownDevices(ctx context.Context) ([]models.KnownDeviceHint, error)

	// Credential resolves a credential id to its full secret bundle.
	Credential(ctx context.Context, id int) (*models.Credential, error)
}
