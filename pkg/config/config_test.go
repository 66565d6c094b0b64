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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "config.json", `{
		"rules_file": "/etc/snmp-discovery/rules.yaml"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "implementation", cfg.DefaultStatus)
	assert.Equal(t, "2006-01-02 15:04:05", cfg.DateFormat)
	assert.Equal(t, 30*time.Second, cfg.ReplyWait())
	assert.Equal(t, 4*time.Hour, cfg.MaxDuration())
	assert.Equal(t, 5*time.Second, cfg.SNMPTimeout())
	assert.Equal(t, 1, cfg.SNMP.Retries)
	assert.False(t, cfg.Distributed)
	assert.False(t, cfg.CollectInterfaces)
	assert.NotNil(t, cfg.Logging)
}

func TestLoad_DistributedQueueDefaults(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "config.json", `{
		"rules_file": "/etc/snmp-discovery/rules.yaml",
		"distributed": true,
		"collect_interfaces": true,
		"reply_wait_seconds": 60,
		"max_duration_seconds": 600,
		"nats": {"url": "nats://127.0.0.1:4222"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Distributed)
	assert.True(t, cfg.CollectInterfaces)
	assert.Equal(t, time.Minute, cfg.ReplyWait())
	assert.Equal(t, 10*time.Minute, cfg.MaxDuration())

	require.NotNil(t, cfg.NATS)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	assert.Equal(t, "DISCOVERY_JOBS", cfg.NATS.Stream)
	assert.Equal(t, "discovery.jobs", cfg.NATS.Subject)
	assert.Equal(t, "discovery-workers", cfg.NATS.Durable)
	assert.Equal(t, "discovery.replies", cfg.NATS.ReplyPrefix)
}

func TestLoad_DistributedWithoutQueue(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "config.json", `{
		"rules_file": "/etc/snmp-discovery/rules.yaml",
		"distributed": true
	}`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrQueueConfigMissing)
}

func TestLoad_MissingRulesFile(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "config.json", `{}`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_BadJSON(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "config.json", `{not json`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
