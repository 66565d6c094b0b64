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

// Package natsqueue backs the dispatch queue contract with NATS: jobs
// travel through a JetStream work queue consumed by a durable pull
// consumer, replies travel over plain per-run inbox subjects.
package natsqueue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/opsgrid/snmp-discovery/pkg/config"
	"github.com/opsgrid/snmp-discovery/pkg/dispatch"
	"github.com/opsgrid/snmp-discovery/pkg/logger"
)

const (
	headerCorrelationID = "Correlation-Id"
	headerReplyTo       = "Reply-To"
)

// Queue is the NATS-backed dispatch transport.
type Queue struct {
	nc          *nats.Conn
	js          nats.JetStreamContext
	stream      string
	subject     string
	durable     string
	replyPrefix string
	sub         *nats.Subscription
	log         logger.Logger
}

var _ dispatch.Queue = (*Queue)(nil)

// Connect dials NATS and ensures the work-queue stream exists. The
// stream retains each job until exactly one worker acknowledges it.
func Connect(ctx context.Context, cfg *config.NATSConfig, log logger.Logger) (*Queue, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Warn().Err(err).Msg("NATS async error")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS %s: %w", cfg.URL, err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()

		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	if _, err := js.StreamInfo(cfg.Stream); err != nil {
		if !errors.Is(err, nats.ErrStreamNotFound) {
			nc.Close()

			return nil, fmt.Errorf("looking up stream %s: %w", cfg.Stream, err)
		}

		_, err = js.AddStream(&nats.StreamConfig{
			Name:      cfg.Stream,
			Subjects:  []string{cfg.Subject},
			Retention: nats.WorkQueuePolicy,
		})
		if err != nil {
			nc.Close()

			return nil, fmt.Errorf("creating stream %s: %w", cfg.Stream, err)
		}

		log.Info().Str("stream", cfg.Stream).Msg("Created work-queue stream")
	}

	return &Queue{
		nc:          nc,
		js:          js,
		stream:      cfg.Stream,
		subject:     cfg.Subject,
		durable:     cfg.Durable,
		replyPrefix: cfg.ReplyPrefix,
		log:         log,
	}, nil
}

// Publish places one job on the work queue.
func (q *Queue) Publish(ctx context.Context, correlationID, replyTo string, payload []byte) error {
	msg := nats.NewMsg(q.subject)
	msg.Header.Set(headerCorrelationID, correlationID)
	msg.Header.Set(headerReplyTo, replyTo)
	msg.Data = payload

	if _, err := q.js.PublishMsg(msg, nats.Context(ctx)); err != nil {
		return fmt.Errorf("publishing to %s: %w", q.subject, err)
	}

	return nil
}

// PublishReply sends a correlated reply straight to the requester's
// inbox subject; replies bypass the stream.
func (q *Queue) PublishReply(_ context.Context, replyTo, correlationID string, payload []byte) error {
	msg := nats.NewMsg(replyTo)
	msg.Header.Set(headerCorrelationID, correlationID)
	msg.Data = payload

	if err := q.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publishing reply to %s: %w", replyTo, err)
	}

	return nil
}

// NextJob fetches one job from the durable pull consumer, blocking up
// to wait. The returned ack removes the job from the work queue; an
// unacked job is redelivered to another worker.
func (q *Queue) NextJob(ctx context.Context, wait time.Duration) (*dispatch.Delivery, dispatch.AckFunc, error) {
	if q.sub == nil {
		sub, err := q.js.PullSubscribe(q.subject, q.durable, nats.BindStream(q.stream))
		if err != nil {
			return nil, nil, fmt.Errorf("subscribing to %s: %w", q.subject, err)
		}

		q.sub = sub
	}

	msgs, err := q.sub.Fetch(1, nats.MaxWait(wait))
	if err != nil {
		if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, nil
		}

		if errors.Is(err, nats.ErrConnectionClosed) {
			return nil, nil, dispatch.ErrQueueClosed
		}

		return nil, nil, fmt.Errorf("fetching from %s: %w", q.durable, err)
	}

	msg := msgs[0]

	delivery := &dispatch.Delivery{
		CorrelationID: msg.Header.Get(headerCorrelationID),
		ReplyTo:       msg.Header.Get(headerReplyTo),
		Payload:       msg.Data,
	}

	ack := func() {
		if err := msg.Ack(); err != nil {
			q.log.Warn().Err(err).Str("correlation_id", delivery.CorrelationID).Msg("Job ack failed")
		}
	}

	return delivery, ack, nil
}

// OpenInbox subscribes a unique per-run reply subject.
func (q *Queue) OpenInbox() (dispatch.Inbox, error) {
	subject := fmt.Sprintf("%s.%s", q.replyPrefix, uuid.New().String())

	sub, err := q.nc.SubscribeSync(subject)
	if err != nil {
		return nil, fmt.Errorf("subscribing inbox %s: %w", subject, err)
	}

	return &inbox{subject: subject, sub: sub}, nil
}

// Purge drops every unconsumed job from the work queue.
func (q *Queue) Purge(_ context.Context) error {
	if err := q.js.PurgeStream(q.stream); err != nil {
		return fmt.Errorf("purging stream %s: %w", q.stream, err)
	}

	return nil
}

// Close releases the connection. Any outstanding wait returns
// ErrQueueClosed.
func (q *Queue) Close() {
	q.nc.Close()
}

type inbox struct {
	subject string
	sub     *nats.Subscription
}

func (i *inbox) Subject() string {
	return i.subject
}

func (i *inbox) Next(timeout time.Duration) (*dispatch.Delivery, error) {
	msg, err := i.sub.NextMsg(timeout)
	if err != nil {
		switch {
		case errors.Is(err, nats.ErrTimeout):
			return nil, dispatch.ErrWaitTimeout
		case errors.Is(err, nats.ErrConnectionClosed), errors.Is(err, nats.ErrBadSubscription):
			return nil, dispatch.ErrQueueClosed
		default:
			return nil, fmt.Errorf("reading inbox %s: %w", i.subject, err)
		}
	}

	return &dispatch.Delivery{
		CorrelationID: msg.Header.Get(headerCorrelationID),
		Payload:       msg.Data,
	}, nil
}

func (i *inbox) Close() error {
	return i.sub.Unsubscribe()
}
