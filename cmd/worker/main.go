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

// The worker command consumes probe jobs from the queue and answers
// them until its running-time budget elapses. It is meant to run under
// a scheduler that starts a fresh worker per interval.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/opsgrid/snmp-discovery/pkg/config"
	"github.com/opsgrid/snmp-discovery/pkg/discovery"
	"github.com/opsgrid/snmp-discovery/pkg/dispatch"
	"github.com/opsgrid/snmp-discovery/pkg/inventory"
	"github.com/opsgrid/snmp-discovery/pkg/logger"
	"github.com/opsgrid/snmp-discovery/pkg/natsqueue"
	"github.com/opsgrid/snmp-discovery/pkg/snmp"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configFile := flag.String("config", "/etc/snmp-discovery/config.json", "Path to config file")
	inventoryFile := flag.String("inventory", "/etc/snmp-discovery/inventory.json", "Path to inventory export")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}

	if cfg.NATS == nil {
		return config.ErrQueueConfigMissing
	}

	logr, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	rawRules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		return err
	}

	rules, err := discovery.Compile(rawRules)
	if err != nil {
		return err
	}

	source, err := inventory.LoadFixture(*inventoryFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := snmp.NewClientFactory(cfg.SNMPTimeout(), cfg.SNMP.Retries, snmp.NewTranslator(rules.Translation))
	store := inventory.NewCredentialStore(source)

	prober := discovery.NewProber(factory, store, rules, discovery.ProberConfig{
		CollectInterfaces: cfg.CollectInterfaces,
		DateFormat:        cfg.DateFormat,
	}, logr)

	queue, err := natsqueue.Connect(ctx, cfg.NATS, logr)
	if err != nil {
		return err
	}
	defer queue.Close()

	worker := dispatch.NewWorker(queue, prober.Probe, cfg.MaxDuration(), logr)

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
