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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/opsgrid/snmp-discovery/pkg/discovery"
	"github.com/opsgrid/snmp-discovery/pkg/logger"
	"github.com/opsgrid/snmp-discovery/pkg/models"
)

const defaultReplyWait = 30 * time.Second

// ProbeFunc probes one address synchronously. discovery.ErrUnreachable
// is the normal failure outcome; any other error is fatal for the run.
type ProbeFunc func(
	ctx context.Context,
	target models.DiscoveryTarget,
	defaults models.ProbeDefaults,
	credentialIDs []int,
) (*models.DeviceRecord, error)

// Result is the outcome of one discovery run. FailedIPs counts targets
// that answered no credential; it is process-local and aggregated by the
// external driver in multi-worker deployments.
type Result struct {
	Records   []*models.DeviceRecord
	FailedIPs int
}

// Coordinator decides per run whether probing executes locally or is
// distributed over the queue, and correlates asynchronous replies back
// to pending targets.
type Coordinator struct {
	queue     Queue
	probe     ProbeFunc
	replyWait time.Duration
	log       logger.Logger
}

// NewCoordinator builds a coordinator. A nil queue forces synchronous
// probing.
func NewCoordinator(queue Queue, probe ProbeFunc, replyWait time.Duration, log logger.Logger) *Coordinator {
	if replyWait <= 0 {
		replyWait = defaultReplyWait
	}

	return &Coordinator{
		queue:     queue,
		probe:     probe,
		replyWait: replyWait,
		log:       log,
	}
}

// Run probes every planned target and collects the produced records.
// Distributed collection that times out falls back to synchronous
// probing of whatever remains; the timeout is not fatal to the run.
func (c *Coordinator) Run(ctx context.Context, plan []discovery.PlannedTarget) (*Result, error) {
	result := &Result{}

	remaining := plan

	if c.queue != nil {
		var err error

		remaining, err = c.runDistributed(ctx, plan, result)
		if err != nil {
			return nil, err
		}
	}

	if err := c.runSynchronous(ctx, remaining, result); err != nil {
		return nil, err
	}

	return result, nil
}

// runSynchronous probes targets one at a time in-process.
func (c *Coordinator) runSynchronous(ctx context.Context, plan []discovery.PlannedTarget, result *Result) error {
	for _, planned := range plan {
		record, err := c.probe(ctx, planned.Target, planned.Defaults, planned.CredentialIDs)

		switch {
		case err == nil:
			result.Records = append(result.Records, record)
		case errors.Is(err, discovery.ErrUnreachable):
			result.FailedIPs++
		default:
			return err
		}
	}

	return nil
}

// runDistributed publishes one job per target and collects correlated
// replies until the pending set is empty or the bounded wait elapses.
// It returns the targets still unresolved after draining.
func (c *Coordinator) runDistributed(
	ctx context.Context,
	plan []discovery.PlannedTarget,
	result *Result,
) ([]discovery.PlannedTarget, error) {
	inbox, err := c.queue.OpenInbox()
	if err != nil {
		return nil, fmt.Errorf("opening reply inbox: %w", err)
	}
	defer func() { _ = inbox.Close() }()

	tracker := NewTracker()
	pendingTargets := make(map[string]discovery.PlannedTarget, len(plan))

	c.log.Debug().Int("targets", len(plan)).Str("state", "dispatching").Msg("Publishing probe jobs")

	for _, planned := range plan {
		job := models.ProbeJob{
			Target:        planned.Target,
			Defaults:      planned.Defaults,
			CredentialIDs: planned.CredentialIDs,
		}

		payload, err := json.Marshal(&job)
		if err != nil {
			return nil, fmt.Errorf("encoding job %s: %w", job.CorrelationID(), err)
		}

		if err := c.queue.Publish(ctx, job.CorrelationID(), inbox.Subject(), payload); err != nil {
			return nil, fmt.Errorf("publishing job %s: %w", job.CorrelationID(), err)
		}

		tracker.Add(job.CorrelationID())
		pendingTargets[job.CorrelationID()] = planned
	}

	c.log.Debug().Str("state", "awaiting_replies").Msg("Awaiting probe replies")

	for tracker.Len() > 0 {
		delivery, err := inbox.Next(c.replyWait)
		if errors.Is(err, ErrWaitTimeout) {
			c.log.Warn().
				Int("pending", tracker.Len()).
				Str("state", "draining").
				Msg("Reply wait timed out, falling back to synchronous probing")

			if err := c.queue.Purge(ctx); err != nil {
				c.log.Warn().Err(err).Msg("Work queue purge failed")
			}

			break
		}

		if err != nil {
			return nil, fmt.Errorf("waiting for reply: %w", err)
		}

		if !tracker.Resolve(delivery.CorrelationID) {
			c.log.Debug().Str("correlation_id", delivery.CorrelationID).Msg("Ignoring unawaited reply")

			continue
		}

		var reply models.ProbeReply
		if err := json.Unmarshal(delivery.Payload, &reply); err != nil {
			c.log.Warn().Err(err).Str("correlation_id", delivery.CorrelationID).Msg("Discarding undecodable reply")
			result.FailedIPs++

			continue
		}

		if reply.Device == nil {
			result.FailedIPs++
		} else {
			result.Records = append(result.Records, reply.Device)
		}

		delete(pendingTargets, delivery.CorrelationID)
	}

	remaining := make([]discovery.PlannedTarget, 0, len(pendingTargets))
	for _, id := range tracker.Remaining() {
		remaining = append(remaining, pendingTargets[id])
	}

	c.log.Debug().Int("remaining", len(remaining)).Str("state", "done").Msg("Distributed collection finished")

	return remaining, nil
}
