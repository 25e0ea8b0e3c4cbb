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
	"fmt"
	"net"
	"time"

	"github.com/netreconio/netpulse/pkg/events"
	"github.com/netreconio/netpulse/pkg/models"
	"github.com/netreconio/netpulse/pkg/netiface"
)

const (
	neighborHopLimit    = 64
	neighborTimeout     = 1000 * time.Millisecond
	neighborCount       = 1
	neighborPayload     = "np:neigh"
	neighborConcurrency = 100
)

// GatewayNeighborScanner implements NeighborScanner: derive the
// default gateway's /24, expand it, and restrict the host scanner to
// that set.
type GatewayNeighborScanner struct {
	Router      netiface.Router
	HostScanner HostScanner
}

var _ NeighborScanner = GatewayNeighborScanner{}

// Scan runs the neighbor-discovery pipeline.
func (s GatewayNeighborScanner) Scan(ctx context.Context, runID string, ifaceName string, emitter events.Emitter) (models.NeighborScanReport, error) {
	emitter.Emit(events.NeighborScanStart, map[string]string{"run_id": runID})

	gateway, _, err := s.Router.DefaultRoute(ifaceName)
	if err != nil {
		return models.NeighborScanReport{}, fmt.Errorf("scan: resolving default route: %w", err)
	}

	cidr, err := subnet24(gateway)
	if err != nil {
		return models.NeighborScanReport{}, fmt.Errorf("scan: deriving /24 for gateway %s: %w", gateway, err)
	}

	// A /24 is always small enough to expand in full; no cap needed.
	ips, err := GenerateIPsFromCIDR(cidr, 0)
	if err != nil {
		return models.NeighborScanReport{}, fmt.Errorf("scan: expanding %s: %w", cidr, err)
	}

	targets := make([]string, 0, len(ips))
	for _, ip := range ips {
		targets = append(targets, ip.String())
	}

	setting := models.HostScanSetting{
		Targets:     targets,
		Timeout:     neighborTimeout,
		Retries:     neighborCount,
		HopLimit:    neighborHopLimit,
		Payload:     neighborPayload,
		Ordered:     true,
		Concurrency: neighborConcurrency,
	}

	hostReport, err := s.HostScanner.Scan(ctx, runID, setting, events.NoopEmitter{})
	if err != nil {
		return models.NeighborScanReport{}, fmt.Errorf("scan: neighbor host scan: %w", err)
	}

	neighbors := make([]models.NeighborHost, 0, len(hostReport.Alive))

	for _, alive := range hostReport.Alive {
		neighbors = append(neighbors, models.NeighborHost{
			IP:        alive.IP,
			RTTMillis: alive.RTTMillis,
		})

		done := len(neighbors)
		emitter.Emit(events.NeighborScanProgress, [2]int{done, hostReport.Total})
	}

	report := models.NeighborScanReport{
		RunID:     runID,
		Interface: ifaceName,
		Gateway:   gateway.String(),
		Neighbors: neighbors,
		Total:     hostReport.Total,
	}

	emitter.Emit(events.NeighborScanDone, report)

	return report, nil
}

func subnet24(ip net.IP) (string, error) {
	v4 := ip.To4()
	if v4 == nil {
		return "", fmt.Errorf("neighbor scan requires an IPv4 gateway, got %s", ip)
	}

	return fmt.Sprintf("%d.%d.%d.0/24", v4[0], v4[1], v4[2]), nil
}
