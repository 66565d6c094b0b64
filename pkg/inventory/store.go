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
	"fmt"
	"sync"

	"github.com/opsgrid/snmp-discovery/pkg/models"
)

// CredentialStore resolves credential ids through the inventory service
// and caches the result for the lifetime of the process. Entries are
// never invalidated mid-run; the cache is safe for concurrent readers.
type CredentialStore struct {
	service Service

	mu    sync.RWMutex
	cache map[int]*models.Credential
}

// NewCredentialStore builds a store backed by the given service.
func NewCredentialStore(service Service) *CredentialStore {
	return &CredentialStore{
		service: service,
		cache:   make(map[int]*models.Credential),
	}
}

// Get resolves a credential id. A missing credential is a fatal
// configuration error for the run.
func (s *CredentialStore) Get(ctx context.Context, id int) (*models.Credential, error) {
	s.mu.RLock()
	cred, ok := s.cache[id]
	s.mu.RUnlock()

	if ok {
		return cred, nil
	}

	cred, err := s.service.Credential(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolving credential %d: %w", id, err)
	}

	s.mu.Lock()
	s.cache[id] = cred
	s.mu.Unlock()

	return cred, nil
}
