//go:build icmp_integration_test

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
	"os"
	"testing"
	"time"

	"github.com/netreconio/netpulse/pkg/events"
	"github.com/netreconio/netpulse/pkg/models"
)

func skipIfNotIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test - set INTEGRATION_TESTS=1 to run")
	}
}

func TestICMPHostScannerIntegrationLocalhost(t *testing.T) {
	skipIfNotIntegration(t)

	setting := models.HostScanSetting{
		Targets: []string{"127.0.0.1"},
		Timeout: time.Second,
		Retries: 2,
		HopLimit: 64,
		Payload:  "np:test",
		Ordered:  true,
	}

	report, err := ICMPHostScanner{}.Scan(context.Background(), "it-run", setting, events.NoopEmitter{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(report.Alive) != 1 {
		t.Fatalf("expected localhost alive, got alive=%v unreachable=%v", report.Alive, report.Unreachable)
	}
}
