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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsgrid/snmp-discovery/pkg/models"
)

// countingService wraps a Fixture and counts credential resolutions.
type countingService struct {
	Fixture
	calls int
}

func (s *countingService) Credential(ctx context.Context, id int) (*models.Credential, error) {
	s.calls++

	return s.Fixture.Credential(ctx, id)
}

func TestCredentialStore_CachesResolutions(t *testing.T) {
	t.Parallel()

	service := &countingService{
		Fixture: Fixture{
			Credentials: map[int]*models.Credential{
				1: {ID: 1, Name: "public", Community: "public"},
			},
		},
	}

	store := NewCredentialStore(service)

	first, err := store.Get(context.Background(), 1)
	require.NoError(t, err)

	second, err := store.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, service.calls, "second lookup served from cache")
}

func TestCredentialStore_UnknownID(t *testing.T) {
	t.Parallel()

	store := NewCredentialStore(&Fixture{})

	_, err := store.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCredentialNotFound)
}
