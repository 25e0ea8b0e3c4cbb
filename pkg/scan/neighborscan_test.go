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

package scan

import (
	"context"
	"net"
	"testing"

	"github.com/netreconio/netpulse/pkg/events"
	"github.com/netreconio/netpulse/pkg/models"
)

type fakeRouter struct {
	gateway net.IP
	err     error
}

func (f fakeRouter) DefaultRoute(string) (net.IP, []net.IP, error) {
	return f.gateway, nil, f.err
}

type fakeHostScanner struct {
	report models.HostScanReport
	err    error

	gotTargets []string
}

func (f *fakeHostScanner) Scan(_ context.Context, runID string, setting models.HostScanSetting, _ events.Emitter) (models.HostScanReport, error) {
	f.gotTargets = setting.Targets
	f.report.RunID = runID

	return f.report, f.err
}

func TestNeighborScanRestrictsToGatewaySlash24(t *testing.T) {
	router := fakeRouter{gateway: net.ParseIP("192.168.1.1")}

	hs := &fakeHostScanner{
		report: models.HostScanReport{
			Alive: []models.HostScanProgress{
				{IP: net.ParseIP("192.168.1.42"), RTTMillis: floatPtr(1.2)},
			},
			Total: 254,
		},
	}

	s := GatewayNeighborScanner{Router: router, HostScanner: hs}

	report, err := s.Scan(context.Background(), "run-n", "eth0", events.NoopEmitter{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if report.Gateway != "192.168.1.1" {
		t.Fatalf("gateway = %q, want 192.168.1.1", report.Gateway)
	}

	if len(report.Neighbors) != 1 || report.Neighbors[0].IP.String() != "192.168.1.42" {
		t.Fatalf("neighbors = %+v", report.Neighbors)
	}

	if len(hs.gotTargets) != 254 {
		t.Fatalf("got %d /24 targets, want 254", len(hs.gotTargets))
	}
}

func floatPtr(v float64) *float64 { return &v }
