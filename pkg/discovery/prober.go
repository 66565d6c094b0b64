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

package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opsgrid/snmp-discovery/pkg/inventory"
	"github.com/opsgrid/snmp-discovery/pkg/logger"
	"github.com/opsgrid/snmp-discovery/pkg/models"
	"github.com/opsgrid/snmp-discovery/pkg/snmp"
)

// System table OIDs.
const (
	oidSysDescr    = ".1.3.6.1.2.1.1.1.0"
	oidSysObjectID = ".1.3.6.1.2.1.1.2.0"
	oidSysUptime   = ".1.3.6.1.2.1.1.3.0"
	oidSysContact  = ".1.3.6.1.2.1.1.4.0"
	oidSysName     = ".1.3.6.1.2.1.1.5.0"
	oidSysLocation = ".1.3.6.1.2.1.1.6.0"
)

// ProberConfig carries the per-run probe settings.
type ProberConfig struct {
	CollectInterfaces bool
	DateFormat        string
}

// Prober finds the first candidate credential a device answers to and
// assembles the full device record.
type Prober struct {
	factory     snmp.Factory
	credentials *inventory.CredentialStore
	rules       *RuleSet
	enumerator  *InterfaceEnumerator
	dateFormat  string
	now         func() time.Time
	log         logger.Logger
}

// NewProber builds a prober over the given session factory, credential
// store and compiled rule set.
func NewProber(
	factory snmp.Factory,
	credentials *inventory.CredentialStore,
	rules *RuleSet,
	cfg ProberConfig,
	log logger.Logger,
) *Prober {
	dateFormat := cfg.DateFormat
	if dateFormat == "" {
		dateFormat = "2006-01-02 15:04:05"
	}

	return &Prober{
		factory:     factory,
		credentials: credentials,
		rules:       rules,
		enumerator:  NewInterfaceEnumerator(cfg.CollectInterfaces, log),
		dateFormat:  dateFormat,
		now:         time.Now,
		log:         log,
	}
}

// Probe tries each candidate credential in order and returns the device
// record of the first one that yields a live session. ErrUnreachable is
// the normal outcome when every candidate fails; any other error is a
// fatal configuration problem.
func (p *Prober) Probe(
	ctx context.Context,
	target models.DiscoveryTarget,
	defaults models.ProbeDefaults,
	credentialIDs []int,
) (*models.DeviceRecord, error) {
	p.log.Debug().Str("ip", target.IPAddress).Msg("Discovering IP")

	for _, id := range dedupeCredentials(credentialIDs) {
		cred, err := p.credentials.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		record, err := p.tryCredential(target, defaults, cred)
		if err != nil {
			// The identity read answered but the mandatory attribute
			// read failed; a partial-identity device is never emitted.
			p.log.Warn().Err(err).Str("ip", target.IPAddress).Msg("Probe abandoned after identity succeeded")

			return nil, fmt.Errorf("%w: %s", ErrUnreachable, target.IPAddress)
		}

		if record == nil {
			p.log.Debug().Str("ip", target.IPAddress).Str("credential", cred.Name).Msg("No response for credential")

			continue
		}

		p.log.Info().Str("ip", target.IPAddress).Str("credential", cred.Name).Msg("IP responds")

		return record, nil
	}

	p.log.Info().Str("ip", target.IPAddress).Msg("IP does not respond")

	return nil, fmt.Errorf("%w: %s", ErrUnreachable, target.IPAddress)
}

// tryCredential attempts one credential. A nil record with nil error
// means the credential got no answer and the next one should be tried; a
// non-nil error means the identity read succeeded but the probe must be
// abandoned.
func (p *Prober) tryCredential(
	target models.DiscoveryTarget,
	defaults models.ProbeDefaults,
	cred *models.Credential,
) (*models.DeviceRecord, error) {
	sess, err := p.factory.Open(target.IPAddress, cred, snmp.OutputNumeric)
	if err != nil {
		p.log.Debug().Err(err).Str("ip", target.IPAddress).Msg("Session open failed")
		return nil, nil
	}
	defer func() { _ = sess.Close() }()

	values, err := sess.Get(oidSysObjectID)
	if err != nil || values[oidSysObjectID].Missing() {
		return nil, nil
	}

	sysObjectID := values[oidSysObjectID].String()
	p.log.Debug().Str("ip", target.IPAddress).Str("sysObjectID", sysObjectID).Msg("Device identity read")

	return p.collect(sess, target, defaults, cred, sysObjectID)
}

// collect assembles the device record once a credential answered the
// identity read.
func (p *Prober) collect(
	sess snmp.Session,
	target models.DiscoveryTarget,
	defaults models.ProbeDefaults,
	cred *models.Credential,
	sysObjectID string,
) (*models.DeviceRecord, error) {
	serial := DetectSerial(sess, sysObjectID, p.rules.Serial)

	// The key carries the identity OID without the leading dot, matching
	// how downstream systems reference it.
	primaryKey := strings.TrimPrefix(sysObjectID, ".") + " - "
	if serial != nil && serial.UseAsPrimaryKey && serial.Serial != "" {
		primaryKey += serial.Serial
	} else {
		primaryKey += target.IPAddress
	}

	values, err := sess.Get(oidSysDescr, oidSysUptime, oidSysContact, oidSysName, oidSysLocation)
	if err != nil {
		return nil, fmt.Errorf("reading system table: %w", err)
	}

	sysDescr := strings.TrimSpace(values[oidSysDescr].String())
	sysContact := values[oidSysContact].String()

	translatedID := p.translateSysObjectID(target.IPAddress, cred)
	brand, model, version := p.rules.Classifier.Classify(translatedID, sysDescr)

	record := &models.DeviceRecord{
		PrimaryKey:      primaryKey,
		Name:            values[oidSysName].String(),
		OrgID:           defaults.OrgID,
		DeviceTypeID:    defaults.DeviceTypeID,
		ManagementIPKey: target.IPKey,
		CredentialID:    cred.ID,
		Status:          defaults.Status,
		Brand:           brand,
		Model:           model,
		Version:         version,
		RespondsToSNMP:  true,
		LastDiscovery:   p.now().Format(p.dateFormat),
		SysName:         values[oidSysName].String(),
		SysDescr:        sysDescr,
		SysContact:      sysContact,
		SysLocation:     values[oidSysLocation].String(),
		SysUptime:       values[oidSysUptime].Int(),
		Contacts:        p.rules.Contacts.Extract(sysContact),
		Interfaces:      p.enumerator.Enumerate(sess),
	}

	if serial != nil && serial.UseAsSerialNumber {
		record.SerialNumber = serial.Serial
	}

	return record, nil
}

// translateSysObjectID opens a second session in translated output mode
// solely to resolve the identity OID to its symbolic form. Failure is
// soft: brand/model fall back to the sysDescr stage.
func (p *Prober) translateSysObjectID(host string, cred *models.Credential) string {
	sess, err := p.factory.Open(host, cred, snmp.OutputTranslated)
	if err != nil {
		return ""
	}
	defer func() { _ = sess.Close() }()

	values, err := sess.Get(oidSysObjectID)
	if err != nil || values[oidSysObjectID].Missing() {
		return ""
	}

	return values[oidSysObjectID].String()
}
