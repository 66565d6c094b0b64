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

import "errors"

var (
	// ErrWaitTimeout occurs when a bounded queue wait elapses without a
	// message.
	ErrWaitTimeout = errors.New("queue wait timed out")

	// ErrQueueClosed occurs when the transport was released while a
	// wait was outstanding.
	ErrQueueClosed = errors.New("queue connection closed")
)
