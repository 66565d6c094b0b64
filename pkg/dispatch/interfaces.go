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

// Package dispatch distributes probe work over a request/response queue:
// the coordinator publishes per-IP jobs and correlates asynchronous
// replies back to pending targets; the worker loop consumes jobs and
// publishes correlated replies until its running-time budget elapses.
package dispatch

import (
	"context"
	"time"
)

// Delivery is one received queue message.
type Delivery struct {
	CorrelationID string
	ReplyTo       string
	Payload       []byte
}

// AckFunc acknowledges a consumed job.
type AckFunc func()

// Queue is the transport contract the dispatch layer runs on.
type Queue interface {
	// Publish places a job on the work queue, asking for reply delivery
	// to the given subject.
	Publish(ctx context.Context, correlationID, replyTo string, payload []byte) error

	// PublishReply delivers a correlated reply to a job's reply subject.
	PublishReply(ctx context.Context, replyTo, correlationID string, payload []byte) error

	// NextJob blocks up to wait for one job from the work queue. A nil
	// delivery with nil error means the wait elapsed without a job.
	NextJob(ctx context.Context, wait time.Duration) (*Delivery, AckFunc, error)

	// OpenInbox creates a dedicated per-run reply destination.
	OpenInbox() (Inbox, error)

	// Purge drops any unconsumed jobs from the work queue.
	Purge(ctx context.Context) error

	Close()
}

// Inbox is a per-run reply destination.
type Inbox interface {
	// Subject is the reply destination jobs should be answered to.
	Subject() string

	// Next blocks up to timeout for the next reply; ErrWaitTimeout
	// signals the bounded wait elapsed.
	Next(timeout time.Duration) (*Delivery, error)

	Close() error
}
