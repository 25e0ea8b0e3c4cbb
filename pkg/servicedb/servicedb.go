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

// Package servicedb holds the five process-wide, single-assignment
// reference tables the detector and port scanners consume: well-known
// TCP/UDP service names, the port-to-probe map, the probe-to-payload
// map, response-signature rules, and the TLS OID map. Each is installed
// exactly once (an explicit "already set" check at the call site, plus
// a second independent guard that turns a genuine double-install into
// an error), mirroring the original's OnceLock discipline.
package servicedb

import (
	"embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/netreconio/netpulse/pkg/models"
)

//go:embed resources/tcp-services.json resources/udp-services.json resources/port-probes.json resources/service-probes.json resources/response-signatures.json resources/tls-oid-map.json
var resourceFS embed.FS

// ErrAlreadySet is returned by an Init* function when the corresponding
// database has already been installed.
var ErrAlreadySet = errors.New("servicedb: database already set")

// singleSlot is a generic single-assignment slot: set once wins, every
// subsequent Set returns ErrAlreadySet without mutating value.
type singleSlot[T any] struct {
	mu    sync.Mutex
	value T
	set   bool
}

func (s *singleSlot[T]) Set(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.set {
		return ErrAlreadySet
	}

	s.value = v
	s.set = true

	return nil
}

func (s *singleSlot[T]) IsSet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.set
}

func (s *singleSlot[T]) Get() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.value, s.set
}

var (
	tcpServiceDB         singleSlot[map[uint16]string]
	udpServiceDB         singleSlot[map[uint16]string]
	portProbeDB          singleSlot[map[models.Port][]models.ServiceProbe]
	serviceProbeDB       singleSlot[map[models.ServiceProbe]models.ProbePayload]
	responseSignaturesDB singleSlot[[]models.ResponseSignature]
	tlsOIDMap            singleSlot[map[string]string]
)

type portProbeResource struct {
	Map map[string][]string `json:"map"`
}

type servicePayload struct {
	ID           string   `json:"id"`
	Payload      string   `json:"payload"` // base64
	MatchesRules []string `json:"matches_rules,omitempty"`
}

type serviceProbeResource struct {
	Probes []servicePayload `json:"probes"`
}

type responseSignatureResource struct {
	Signatures []models.ResponseSignature `json:"signatures"`
}

// InitAll installs all five databases from the bundled resources.
// Idempotent at the call site: returns nil immediately if every
// database is already set. A partial prior initialization still
// attempts to install whatever remains.
func InitAll() error {
	if AllSet() {
		return nil
	}

	inits := []func() error{
		InitTCPServiceDB,
		InitUDPServiceDB,
		InitPortProbeDB,
		InitServiceProbeDB,
		InitResponseSignaturesDB,
		InitTLSOIDMap,
	}

	for _, initFn := range inits {
		if err := initFn(); err != nil && !errors.Is(err, ErrAlreadySet) {
			return err
		}
	}

	return nil
}

// AllSet reports whether every database has been installed.
func AllSet() bool {
	return tcpServiceDB.IsSet() && udpServiceDB.IsSet() && portProbeDB.IsSet() &&
		serviceProbeDB.IsSet() && responseSignaturesDB.IsSet() && tlsOIDMap.IsSet()
}

func readJSON(name string, dst interface{}) error {
	data, err := resourceFS.ReadFile("resources/" + name)
	if err != nil {
		return fmt.Errorf("servicedb: reading %s: %w", name, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("servicedb: parsing %s: %w", name, err)
	}

	return nil
}

// InitTCPServiceDB installs the well-known TCP service table.
func InitTCPServiceDB() error {
	if tcpServiceDB.IsSet() {
		return nil
	}

	var raw map[string]string
	if err := readJSON("tcp-services.json", &raw); err != nil {
		return err
	}

	return tcpServiceDB.Set(stringKeysToPorts(raw))
}

// InitUDPServiceDB installs the well-known UDP service table.
func InitUDPServiceDB() error {
	if udpServiceDB.IsSet() {
		return nil
	}

	var raw map[string]string
	if err := readJSON("udp-services.json", &raw); err != nil {
		return err
	}

	return udpServiceDB.Set(stringKeysToPorts(raw))
}

// InitPortProbeDB installs the port-number+transport -> probe-ID map.
// Every probe in the map is treated as TCP; QUIC/UDP probes are matched
// by the caller through the UDP service DB instead, matching the
// original's transport-tagged ServiceProbe identifiers.
func InitPortProbeDB() error {
	if portProbeDB.IsSet() {
		return nil
	}

	var raw portProbeResource
	if err := readJSON("port-probes.json", &raw); err != nil {
		return err
	}

	out := make(map[models.Port][]models.ServiceProbe, len(raw.Map))

	for portStr, probes := range raw.Map {
		var num int
		if _, err := fmt.Sscanf(portStr, "%d", &num); err != nil {
			return fmt.Errorf("servicedb: invalid port key %q: %w", portStr, err)
		}

		key := models.NewPort(uint16(num), models.TransportTCP)

		ids := make([]models.ServiceProbe, 0, len(probes))
		for _, p := range probes {
			ids = append(ids, models.ServiceProbe(p))
		}

		out[key] = ids
	}

	return portProbeDB.Set(out)
}

// InitServiceProbeDB installs the probe-ID -> payload map.
func InitServiceProbeDB() error {
	if serviceProbeDB.IsSet() {
		return nil
	}

	var raw serviceProbeResource
	if err := readJSON("service-probes.json", &raw); err != nil {
		return err
	}

	out := make(map[models.ServiceProbe]models.ProbePayload, len(raw.Probes))

	for _, p := range raw.Probes {
		payload, err := decodeBase64(p.Payload)
		if err != nil {
			return fmt.Errorf("servicedb: decoding payload for %s: %w", p.ID, err)
		}

		out[models.ServiceProbe(p.ID)] = models.ProbePayload{
			Probe:        models.ServiceProbe(p.ID),
			Payload:      payload,
			MatchesRules: p.MatchesRules,
		}
	}

	return serviceProbeDB.Set(out)
}

// InitResponseSignaturesDB installs the ordered response-signature rules.
func InitResponseSignaturesDB() error {
	if responseSignaturesDB.IsSet() {
		return nil
	}

	var raw responseSignatureResource
	if err := readJSON("response-signatures.json", &raw); err != nil {
		return err
	}

	return responseSignaturesDB.Set(raw.Signatures)
}

// InitTLSOIDMap installs the ASN.1 OID -> algorithm/attribute name map.
func InitTLSOIDMap() error {
	if tlsOIDMap.IsSet() {
		return nil
	}

	var raw map[string]string
	if err := readJSON("tls-oid-map.json", &raw); err != nil {
		return err
	}

	return tlsOIDMap.Set(raw)
}

// TCPServiceName looks up a well-known TCP service name by port.
func TCPServiceName(port uint16) (string, bool) {
	db, ok := tcpServiceDB.Get()
	if !ok {
		return "", false
	}

	name, found := db[port]

	return name, found
}

// UDPServiceName looks up a well-known UDP service name by port.
func UDPServiceName(port uint16) (string, bool) {
	db, ok := udpServiceDB.Get()
	if !ok {
		return "", false
	}

	name, found := db[port]

	return name, found
}

// ProbesForPort returns the ordered ServiceProbe identifiers registered
// for a port.
func ProbesForPort(port models.Port) []models.ServiceProbe {
	db, ok := portProbeDB.Get()
	if !ok {
		return nil
	}

	return db[port]
}

// PayloadForProbe returns the payload/match rules for a ServiceProbe.
func PayloadForProbe(probe models.ServiceProbe) (models.ProbePayload, bool) {
	db, ok := serviceProbeDB.Get()
	if !ok {
		return models.ProbePayload{}, false
	}

	payload, found := db[probe]

	return payload, found
}

// ResponseSignatures returns the ordered response-signature rules.
func ResponseSignatures() []models.ResponseSignature {
	db, _ := responseSignaturesDB.Get()
	return db
}

// TLSOIDName resolves an ASN.1 OID dotted string to a human-readable name.
func TLSOIDName(oid string) (string, bool) {
	db, ok := tlsOIDMap.Get()
	if !ok {
		return "", false
	}

	name, found := db[oid]

	return name, found
}

func decodeBase64(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	return base64.StdEncoding.DecodeString(s)
}

func stringKeysToPorts(raw map[string]string) map[uint16]string {
	out := make(map[uint16]string, len(raw))

	for k, v := range raw {
		var num int
		if _, err := fmt.Sscanf(k, "%d", &num); err != nil {
			continue
		}

		out[uint16(num)] = v
	}

	return out
}
