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

package servicedb

import (
	"testing"

	"github.com/netreconio/netpulse/pkg/models"
)

func TestInitAllIdempotent(t *testing.T) {
	if err := InitAll(); err != nil {
		t.Fatalf("first InitAll: %v", err)
	}

	if !AllSet() {
		t.Fatal("expected all databases set after InitAll")
	}

	if err := InitAll(); err != nil {
		t.Fatalf("second InitAll should be a no-op, got: %v", err)
	}
}

func TestDoubleSetIsError(t *testing.T) {
	_ = InitTCPServiceDB()

	var s singleSlot[int]

	if err := s.Set(1); err != nil {
		t.Fatalf("first set: %v", err)
	}

	if err := s.Set(2); err == nil {
		t.Fatal("expected error on second set")
	}

	v, ok := s.Get()
	if !ok || v != 1 {
		t.Fatalf("value should remain from first set, got %d (ok=%v)", v, ok)
	}
}

func TestTCPServiceNameLookup(t *testing.T) {
	_ = InitTCPServiceDB()

	name, ok := TCPServiceName(22)
	if !ok || name != "ssh" {
		t.Fatalf("expected ssh for port 22, got %q (ok=%v)", name, ok)
	}

	if _, ok := TCPServiceName(65000); ok {
		t.Fatal("expected no service name for port 65000")
	}
}

func TestProbesForPortAndPayloadForProbe(t *testing.T) {
	if err := InitPortProbeDB(); err != nil {
		t.Fatalf("InitPortProbeDB: %v", err)
	}

	if err := InitServiceProbeDB(); err != nil {
		t.Fatalf("InitServiceProbeDB: %v", err)
	}

	probes := ProbesForPort(models.NewPort(22, models.TransportTCP))
	if len(probes) != 1 || probes[0] != "tcp/ssh-banner" {
		t.Fatalf("expected [tcp/ssh-banner] for port 22, got %v", probes)
	}

	if got := ProbesForPort(models.NewPort(65000, models.TransportTCP)); got != nil {
		t.Fatalf("expected no probes for port 65000, got %v", got)
	}

	payload, ok := PayloadForProbe("tcp/ssh-banner")
	if !ok {
		t.Fatal("expected tcp/ssh-banner to have a registered payload")
	}

	if len(payload.MatchesRules) != 1 || payload.MatchesRules[0] != "ssh-banner" {
		t.Fatalf("unexpected match rules for tcp/ssh-banner: %v", payload.MatchesRules)
	}

	if _, ok := PayloadForProbe("tcp/does-not-exist"); ok {
		t.Fatal("expected no payload for unknown probe id")
	}
}
