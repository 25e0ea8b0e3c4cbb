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

// Package scan is the dispatcher: bounded-concurrency host, TCP-port,
// QUIC-port, and neighbor scanners that correlate asynchronous replies,
// throttle progress events, and assemble terminal reports.
package scan

import (
	"context"
	"time"

	"github.com/netreconio/netpulse/pkg/events"
	"github.com/netreconio/netpulse/pkg/models"
)

//go:generate mockgen -destination=mock_detector.go -package=scan github.com/netreconio/netpulse/pkg/scan ServiceDetector

// ServiceDetector is the external collaborator that turns an Endpoint's
// open ports into ServiceInfo fingerprints. The core never implements
// the detection algorithm itself — only this contract and its inputs.
type ServiceDetector interface {
	Detect(ctx context.Context, endpoint models.Endpoint, cfg DetectionConfig) ([]DetectedService, error)
}

// DetectionConfig carries the fixed parameters for active service
// detection.
type DetectionConfig struct {
	Timeout        time.Duration
	MaxConcurrency int
	MaxReadBytes   int64
	SNI            bool
	SkipCertVerify bool
}

// DetectedService associates a single port with the ServiceInfo the
// detector produced for it.
type DetectedService struct {
	Port    models.Port
	Service models.ServiceInfo
}

// HostScanner runs the ICMP liveness probe pipeline.
type HostScanner interface {
	Scan(ctx context.Context, runID string, setting models.HostScanSetting, emitter events.Emitter) (models.HostScanReport, error)
}

// PortScanner runs either the TCP-connect or QUIC-handshake pipeline,
// selected by models.PortScanSetting.Protocol.
type PortScanner interface {
	Scan(ctx context.Context, runID string, setting models.PortScanSetting, emitter events.Emitter) (models.PortScanReport, error)
}

// NeighborScanner runs the gateway/24 restricted host scan.
type NeighborScanner interface {
	Scan(ctx context.Context, runID string, ifaceName string, emitter events.Emitter) (models.NeighborScanReport, error)
}
