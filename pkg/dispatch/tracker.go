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

package dispatch

import "sync"

// Tracker correlates outstanding requests by id: register pending ids,
// resolve them on matching replies, ignore ids that are not awaited.
// Correctness of distributed collection depends solely on this matching,
// never on reply arrival order.
type Tracker struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{pending: make(map[string]struct{})}
}

// Add registers a pending correlation id.
func (t *Tracker) Add(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending[id] = struct{}{}
}

// Resolve removes a pending id, reporting whether it was awaited. An
// unknown id leaves the tracker untouched.
func (t *Tracker) Resolve(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.pending[id]; !ok {
		return false
	}

	delete(t.pending, id)

	return true
}

// Len returns the number of pending ids.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.pending)
}

// Remaining returns the ids still pending.
func (t *Tracker) Remaining() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, 0, len(t.pending))
	for id := range t.pending {
		ids = append(ids, id)
	}

	return ids
}
