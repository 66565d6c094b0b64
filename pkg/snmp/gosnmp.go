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

package snmp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/opsgrid/snmp-discovery/pkg/models"
)

const (
	defaultPort           = 161
	defaultTimeout        = 5 * time.Second
	defaultRetries        = 1
	defaultMaxRepetitions = 10
)

// ClientFactory builds gosnmp-backed sessions.
type ClientFactory struct {
	Port       uint16
	Timeout    time.Duration
	Retries    int
	Translator *Translator
}

// NewClientFactory returns a factory with defaults filled in.
func NewClientFactory(timeout time.Duration, retries int, translator *Translator) *ClientFactory {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if retries < 0 {
		retries = defaultRetries
	}

	if translator == nil {
		translator = NewTranslator(nil)
	}

	return &ClientFactory{
		Port:       defaultPort,
		Timeout:    timeout,
		Retries:    retries,
		Translator: translator,
	}
}

// Open connects an authenticated session to the host. The credential's
// security level selects v3 USM; otherwise the community selects v2c.
func (f *ClientFactory) Open(host string, cred *models.Credential, mode OutputMode) (Session, error) {
	client := &gosnmp.GoSNMP{
		Target:             host,
		Port:               f.Port,
		Timeout:            f.Timeout,
		Retries:            f.Retries,
		MaxOids:            gosnmp.MaxOids,
		MaxRepetitions:     defaultMaxRepetitions,
		ExponentialTimeout: true,
	}

	if err := configureSecurity(client, cred); err != nil {
		return nil, err
	}

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", host, err)
	}

	return &clientSession{
		client:     client,
		mode:       mode,
		translator: f.Translator,
	}, nil
}

// configureSecurity sets version and authentication parameters from the
// credential bundle.
func configureSecurity(client *gosnmp.GoSNMP, cred *models.Credential) error {
	if !cred.IsV3() {
		client.Version = gosnmp.Version2c
		client.Community = cred.Community

		return nil
	}

	client.Version = gosnmp.Version3
	client.SecurityModel = gosnmp.UserSecurityModel
	client.ContextName = cred.ContextName

	usm := &gosnmp.UsmSecurityParameters{UserName: cred.SecurityName}

	switch strings.ToLower(cred.SecurityLevel) {
	case "noauthnopriv":
		client.MsgFlags = gosnmp.NoAuthNoPriv
	case "authnopriv":
		client.MsgFlags = gosnmp.AuthNoPriv
		configureAuthentication(usm, cred)
	case "authpriv":
		client.MsgFlags = gosnmp.AuthPriv
		configureAuthentication(usm, cred)
		configurePrivacy(usm, cred)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedSecurityLevel, cred.SecurityLevel)
	}

	client.SecurityParameters = usm

	return nil
}

// configureAuthentication sets up the v3 authentication protocol.
func configureAuthentication(usm *gosnmp.UsmSecurityParameters, cred *models.Credential) {
	switch strings.ToUpper(cred.AuthProtocol) {
	case "MD5":
		usm.AuthenticationProtocol = gosnmp.MD5
	case "SHA":
		usm.AuthenticationProtocol = gosnmp.SHA
	case "SHA224":
		usm.AuthenticationProtocol = gosnmp.SHA224
	case "SHA256":
		usm.AuthenticationProtocol = gosnmp.SHA256
	case "SHA384":
		usm.AuthenticationProtocol = gosnmp.SHA384
	case "SHA512":
		usm.AuthenticationProtocol = gosnmp.SHA512
	default:
		usm.AuthenticationProtocol = gosnmp.NoAuth
	}

	usm.AuthenticationPassphrase = cred.AuthPassphrase
}

// configurePrivacy sets up the v3 privacy protocol.
func configurePrivacy(usm *gosnmp.UsmSecurityParameters, cred *models.Credential) {
	switch strings.ToUpper(cred.PrivProtocol) {
	case "DES":
		usm.PrivacyProtocol = gosnmp.DES
	case "AES":
		usm.PrivacyProtocol = gosnmp.AES
	case "AES192":
		usm.PrivacyProtocol = gosnmp.AES192
	case "AES256":
		usm.PrivacyProtocol = gosnmp.AES256
	default:
		usm.PrivacyProtocol = gosnmp.NoPriv
	}

	usm.PrivacyPassphrase = cred.PrivPassphrase
}

type clientSession struct {
	client     *gosnmp.GoSNMP
	mode       OutputMode
	translator *Translator
}

func (s *clientSession) Get(oids ...string) (map[string]Value, error) {
	result, err := s.client.Get(oids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	if result.Error != gosnmp.NoError {
		return nil, fmt.Errorf("%w: %s", ErrAgentError, result.Error)
	}

	values := make(map[string]Value, len(result.Variables))

	for i, pdu := range result.Variables {
		// Responses preserve request order; key by the request OID so
		// callers can address values without normalizing names.
		if i < len(oids) {
			values[oids[i]] = s.valueFromPDU(pdu)
		}
	}

	return values, nil
}

func (s *clientSession) GetNext(oid string) (string, Value, error) {
	result, err := s.client.GetNext([]string{oid})
	if err != nil {
		return "", Value{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	if result.Error != gosnmp.NoError || len(result.Variables) == 0 {
		return "", Value{}, fmt.Errorf("%w: %s", ErrAgentError, result.Error)
	}

	pdu := result.Variables[0]

	return normalizeOID(pdu.Name), s.valueFromPDU(pdu), nil
}

func (s *clientSession) Walk(baseOID string) (map[int]Value, error) {
	rows := make(map[int]Value)

	err := s.client.BulkWalk(baseOID, func(pdu gosnmp.SnmpPDU) error {
		index, ok := tableIndex(pdu.Name)
		if !ok {
			return nil
		}

		rows[index] = s.valueFromPDU(pdu)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	return rows, nil
}

func (s *clientSession) Close() error {
	if s.client.Conn != nil {
		return s.client.Conn.Close()
	}

	return nil
}

// valueFromPDU decodes one varbind, rendering OID values through the
// translation table when the session runs in translated mode.
func (s *clientSession) valueFromPDU(pdu gosnmp.SnmpPDU) Value {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView:
		return MissingValue()
	case gosnmp.OctetString:
		if b, ok := pdu.Value.([]byte); ok {
			return OctetsValue(b)
		}

		return MissingValue()
	case gosnmp.ObjectIdentifier:
		oid, ok := pdu.Value.(string)
		if !ok {
			return MissingValue()
		}

		oid = normalizeOID(oid)

		if s.mode == OutputTranslated {
			translated, _ := s.translator.Translate(oid)
			return ObjectIDValue(translated)
		}

		return ObjectIDValue(oid)
	case gosnmp.TimeTicks:
		return TimeTicksValue(gosnmp.ToBigInt(pdu.Value).Int64())
	case gosnmp.Null:
		return Value{}
	default:
		return IntValue(gosnmp.ToBigInt(pdu.Value).Int64())
	}
}

// tableIndex extracts the trailing sub-identifier of a table row OID.
func tableIndex(oid string) (int, bool) {
	dot := strings.LastIndex(oid, ".")
	if dot < 0 {
		return 0, false
	}

	index, err := strconv.Atoi(oid[dot+1:])
	if err != nil {
		return 0, false
	}

	return index, true
}
