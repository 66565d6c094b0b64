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
	"context"
	"time"
)

// fakeInbox serves scripted deliveries, then times out.
type fakeInbox struct {
	deliveries []*Delivery
	closed     bool
}

func (i *fakeInbox) Subject() string { return "replies.test" }

func (i *fakeInbox) Next(_ time.Duration) (*Delivery, error) {
	if len(i.deliveries) == 0 {
		return nil, ErrWaitTimeout
	}

	next := i.deliveries[0]
	i.deliveries = i.deliveries[1:]

	return next, nil
}

func (i *fakeInbox) Close() error {
	i.closed = true
	return nil
}

type publishedJob struct {
	correlationID string
	replyTo       string
	payload       []byte
}

type publishedReply struct {
	replyTo       string
	correlationID string
	payload       []byte
}

// fakeQueue records publishes and serves scripted job deliveries.
type fakeQueue struct {
	inbox *fakeInbox

	published []publishedJob
	replies   []publishedReply

	jobs    []*Delivery
	nextErr error

	acked  []string
	purged bool
	closed bool
}

func (q *fakeQueue) Publish(_ context.Context, correlationID, replyTo string, payload []byte) error {
	q.published = append(q.published, publishedJob{
		correlationID: correlationID,
		replyTo:       replyTo,
		payload:       payload,
	})

	return nil
}

func (q *fakeQueue) PublishReply(_ context.Context, replyTo, correlationID string, payload []byte) error {
	q.replies = append(q.replies, publishedReply{
		replyTo:       replyTo,
		correlationID: correlationID,
		payload:       payload,
	})

	return nil
}

func (q *fakeQueue) NextJob(_ context.Context, _ time.Duration) (*Delivery, AckFunc, error) {
	if len(q.jobs) == 0 {
		return nil, nil, q.nextErr
	}

	next := q.jobs[0]
	q.jobs = q.jobs[1:]

	ack := func() { q.acked = append(q.acked, next.CorrelationID) }

	return next, ack, nil
}

func (q *fakeQueue) OpenInbox() (Inbox, error) {
	if q.inbox == nil {
		q.inbox = &fakeInbox{}
	}

	return q.inbox, nil
}

func (q *fakeQueue) Purge(_ context.Context) error {
	q.purged = true
	return nil
}

func (q *fakeQueue) Close() {
	q.closed = true
}
