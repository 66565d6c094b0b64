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

// The discovery command runs one collection pass: it plans the targets
// from the inventory export, probes them locally or through the worker
// queue, and writes the discovered device records as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
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
	outputFile := flag.String("output", "-", "Destination for discovered records, - for stdout")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
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

	var queue dispatch.Queue

	if cfg.Distributed {
		natsQueue, err := natsqueue.Connect(ctx, cfg.NATS, logr)
		if err != nil {
			return err
		}
		defer natsQueue.Close()

		queue = natsQueue
	}

	plan, err := buildPlan(ctx, source, cfg.DefaultStatus)
	if err != nil {
		return err
	}

	coordinator := dispatch.NewCoordinator(queue, prober.Probe, cfg.ReplyWait(), logr)

	result, err := coordinator.Run(ctx, plan)
	if err != nil {
		return err
	}

	logr.Info().
		Int("discovered", len(result.Records)).
		Int("failed", result.FailedIPs).
		Msg("Discovery run finished")

	return writeRecords(*outputFile, result)
}

func buildPlan(ctx context.Context, source inventory.Service, defaultStatus string) ([]discovery.PlannedTarget, error) {
	subnets, err := source.Subnets(ctx)
	if err != nil {
		return nil, err
	}

	targets, err := source.Targets(ctx)
	if err != nil {
		return nil, err
	}

	hints, err := source.KnownDevices(ctx)
	if err != nil {
		return nil, err
	}

	return discovery.BuildPlan(targets, subnets, hints, defaultStatus), nil
}

func writeRecords(path string, result *dispatch.Result) error {
	out := os.Stdout

	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()

		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(result.Records)
}
