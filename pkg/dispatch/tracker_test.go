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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	assert.Zero(t, tracker.Len())

	tracker.Add("1")
	tracker.Add("2")
	tracker.Add("3")
	assert.Equal(t, 3, tracker.Len())

	assert.True(t, tracker.Resolve("2"))
	assert.False(t, tracker.Resolve("2"), "resolving twice is not awaited the second time")
	assert.False(t, tracker.Resolve("99"), "unknown ids leave the tracker untouched")
	assert.Equal(t, 2, tracker.Len())

	assert.ElementsMatch(t, []string{"1", "3"}, tracker.Remaining())
}
