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

// Package config loads the collector configuration: a JSON application
// config plus a YAML rules file. Both are validated at load time so an
// invalid or incomplete rule is rejected before any probe runs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/opsgrid/snmp-discovery/pkg/logger"
)

const (
	defaultStatus      = "implementation"
	defaultDateFormat  = "2006-01-02 15:04:05"
	defaultReplyWait   = 30
	defaultMaxDuration = 14400
	defaultSNMPTimeout = 5
	defaultSNMPRetries = 1
)

// NATSConfig holds the queue connection parameters.
type NATSConfig struct {
	URL         string `json:"url" validate:"required"`
	Stream      string `json:"stream"`
	Subject     string `json:"subject"`
	Durable     string `json:"durable"`
	ReplyPrefix string `json:"reply_prefix"`
}

// SNMPConfig holds the per-request session settings.
type SNMPConfig struct {
	TimeoutSeconds int `json:"timeout_seconds" validate:"gte=0"`
	Retries        int `json:"retries" validate:"gte=0"`
}

// Config is the application configuration for both the discovery runner
// and the worker process.
type Config struct {
	Logging *logger.Config `json:"logging"`

	// Distributed hands probing off to remote workers over the queue.
	Distributed bool        `json:"distributed"`
	NATS        *NATSConfig `json:"nats"`

	CollectInterfaces bool   `json:"collect_interfaces"`
	DefaultStatus     string `json:"default_status"`
	DateFormat        string `json:"date_format"`

	ReplyWaitSeconds   int `json:"reply_wait_seconds" validate:"gte=0"`
	MaxDurationSeconds int `json:"max_duration_seconds" validate:"gte=0"`

	SNMP SNMPConfig `json:"snmp"`

	RulesFile string `json:"rules_file" validate:"required"`
}

// Load reads, defaults and validates the application config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}

	if c.DefaultStatus == "" {
		c.DefaultStatus = defaultStatus
	}

	if c.DateFormat == "" {
		c.DateFormat = defaultDateFormat
	}

	if c.ReplyWaitSeconds == 0 {
		c.ReplyWaitSeconds = defaultReplyWait
	}

	if c.MaxDurationSeconds == 0 {
		c.MaxDurationSeconds = defaultMaxDuration
	}

	if c.SNMP.TimeoutSeconds == 0 {
		c.SNMP.TimeoutSeconds = defaultSNMPTimeout
	}

	if c.SNMP.Retries == 0 {
		c.SNMP.Retries = defaultSNMPRetries
	}

	if c.NATS != nil {
		c.NATS.applyDefaults()
	}
}

func (n *NATSConfig) applyDefaults() {
	if n.Stream == "" {
		n.Stream = "DISCOVERY_JOBS"
	}

	if n.Subject == "" {
		n.Subject = "discovery.jobs"
	}

	if n.Durable == "" {
		n.Durable = "discovery-workers"
	}

	if n.ReplyPrefix == "" {
		n.ReplyPrefix = "discovery.replies"
	}
}

// Validate checks the configuration, including the cross-field rule that
// distributed mode needs queue parameters.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Distributed && c.NATS == nil {
		return ErrQueueConfigMissing
	}

	return nil
}

// ReplyWait returns the bounded reply wait as a duration.
func (c *Config) ReplyWait() time.Duration {
	return time.Duration(c.ReplyWaitSeconds) * time.Second
}

// MaxDuration returns the worker running-time budget as a duration.
func (c *Config) MaxDuration() time.Duration {
	return time.Duration(c.MaxDurationSeconds) * time.Second
}

// SNMPTimeout returns the per-request session timeout as a duration.
func (c *Config) SNMPTimeout() time.Duration {
	return time.Duration(c.SNMP.TimeoutSeconds) * time.Second
}
