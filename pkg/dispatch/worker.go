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

const defaultFetchWait = 5 * time.Second

// Worker consumes probe jobs from the queue, runs the prober
// synchronously and publishes correlated replies until its running-time
// budget elapses. The deadline is only checked between jobs; a job in
// flight is always finished and answered.
type Worker struct {
	queue       Queue
	probe       ProbeFunc
	maxDuration time.Duration
	fetchWait   time.Duration
	now         func() time.Time
	log         logger.Logger
}

// NewWorker builds a worker with the given running-time budget.
func NewWorker(queue Queue, probe ProbeFunc, maxDuration time.Duration, log logger.Logger) *Worker {
	return &Worker{
		queue:       queue,
		probe:       probe,
		maxDuration: maxDuration,
		fetchWait:   defaultFetchWait,
		now:         time.Now,
		log:         log,
	}
}

// Run processes jobs until the deadline is reached or the context is
// canceled. Transport and configuration errors are fatal and bubble up.
func (w *Worker) Run(ctx context.Context) error {
	deadline := w.now().Add(w.maxDuration)

	w.log.Info().Time("deadline", deadline).Msg("Worker started")

	for {
		if !w.now().Before(deadline) {
			w.log.Info().Msg("Running-time budget elapsed, worker exiting")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		delivery, ack, err := w.queue.NextJob(ctx, w.fetchWait)
		if err != nil {
			return fmt.Errorf("fetching job: %w", err)
		}

		if delivery == nil {
			continue
		}

		if err := w.handle(ctx, delivery); err != nil {
			return err
		}

		ack()
	}
}

// handle probes the job's target and publishes the correlated reply. A
// nil device in the reply signals the target was unreachable.
func (w *Worker) handle(ctx context.Context, delivery *Delivery) error {
	var job models.ProbeJob
	if err := json.Unmarshal(delivery.Payload, &job); err != nil {
		w.log.Warn().Err(err).Str("correlation_id", delivery.CorrelationID).Msg("Discarding undecodable job")
		return nil
	}

	record, err := w.probe(ctx, job.Target, job.Defaults, job.CredentialIDs)
	if err != nil && !errors.Is(err, discovery.ErrUnreachable) {
		return err
	}

	reply := models.ProbeReply{IPKey: job.Target.IPKey, Device: record}

	payload, err := json.Marshal(&reply)
	if err != nil {
		return fmt.Errorf("encoding reply %s: %w", delivery.CorrelationID, err)
	}

	if err := w.queue.PublishReply(ctx, delivery.ReplyTo, delivery.CorrelationID, payload); err != nil {
		return fmt.Errorf("publishing reply %s: %w", delivery.CorrelationID, err)
	}

	return nil
}
