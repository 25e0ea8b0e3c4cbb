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
	"time"

	"github.com/netreconio/netpulse/pkg/events"
	"github.com/netreconio/netpulse/pkg/models"
	"github.com/netreconio/netpulse/pkg/servicedb"
)

type fakeDetector struct {
	calls int
}

func (f *fakeDetector) Detect(_ context.Context, endpoint models.Endpoint, _ DetectionConfig) ([]DetectedService, error) {
	f.calls++

	var out []DetectedService
	for _, p := range endpoint.Ports {
		out = append(out, DetectedService{Port: p, Service: models.ServiceInfo{Name: "fake"}})
	}

	return out, nil
}

func TestRunPortScanAgainstLoopbackListener(t *testing.T) {
	if err := servicedb.InitAll(); err != nil {
		t.Fatalf("InitAll: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		for {
			conn, acceptErr := ln.Accept()
			if acceptErr != nil {
				return
			}
			conn.Close()
		}
	}()

	openPort := uint16(ln.Addr().(*net.TCPAddr).Port)

	detector := &fakeDetector{}

	setting := models.PortScanSetting{
		IP:               net.ParseIP("127.0.0.1"),
		Protocol:         models.ProtocolTCP,
		Preset:           models.PresetCustom,
		UserPorts:        []uint16{openPort},
		Timeout:          500 * time.Millisecond,
		Ordered:          true,
		ServiceDetection: true,
		Concurrency:      4,
	}

	report, err := runPortScan(context.Background(), "run-1", setting, events.NoopEmitter{}, detector, portDialerTCP)
	if err != nil {
		t.Fatalf("runPortScan: %v", err)
	}

	if len(report.Open) != 1 {
		t.Fatalf("got %d open ports, want 1", len(report.Open))
	}

	if report.Open[0].Port != openPort {
		t.Fatalf("open port = %d, want %d", report.Open[0].Port, openPort)
	}

	if report.Open[0].Service == nil || report.Open[0].Service.Name != "fake" {
		t.Fatalf("expected fake detector service info, got %+v", report.Open[0].Service)
	}

	if detector.calls != 1 {
		t.Fatalf("detector called %d times, want 1", detector.calls)
	}
}

func TestRunPortScanClosedPort(t *testing.T) {
	if err := servicedb.InitAll(); err != nil {
		t.Fatalf("InitAll: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	closedPort := uint16(ln.Addr().(*net.TCPAddr).Port)
	ln.Close() // free the port so the connect is refused

	setting := models.PortScanSetting{
		IP:        net.ParseIP("127.0.0.1"),
		Protocol:  models.ProtocolTCP,
		Preset:    models.PresetCustom,
		UserPorts: []uint16{closedPort},
		Timeout:   500 * time.Millisecond,
		Ordered:   true,
	}

	report, err := runPortScan(context.Background(), "run-2", setting, events.NoopEmitter{}, nil, portDialerTCP)
	if err != nil {
		t.Fatalf("runPortScan: %v", err)
	}

	if len(report.Open) != 0 {
		t.Fatalf("got %d open ports, want 0 for a closed port", len(report.Open))
	}
}
