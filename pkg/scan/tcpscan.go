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
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/netreconio/netpulse/pkg/events"
	"github.com/netreconio/netpulse/pkg/models"
	"github.com/netreconio/netpulse/pkg/progress"
	"github.com/netreconio/netpulse/pkg/servicedb"
	"github.com/netreconio/netpulse/pkg/servicedb/portset"
	"github.com/netreconio/netpulse/pkg/socket"
	"github.com/netreconio/netpulse/pkg/tuner"
)

const (
	serviceDetectionTimeout     = 2 * time.Second
	serviceDetectionConcurrency = 100
	serviceDetectionMaxRead     = 1 << 20 // 1 MiB
)

// TCPPortScanner implements PortScanner for the connect-based classifier
//.
type TCPPortScanner struct {
	Detector ServiceDetector
}

var _ PortScanner = TCPPortScanner{}

// Scan runs the TCP-connect port scan pipeline.
func (s TCPPortScanner) Scan(ctx context.Context, runID string, setting models.PortScanSetting, emitter events.Emitter) (models.PortScanReport, error) {
	return runPortScan(ctx, runID, setting, emitter, s.Detector, portDialerTCP)
}

// QUICPortScanner implements PortScanner for the handshake-based
// classifier.
type QUICPortScanner struct {
	Detector ServiceDetector
}

var _ PortScanner = QUICPortScanner{}

// Scan runs the QUIC-handshake port scan pipeline.
func (s QUICPortScanner) Scan(ctx context.Context, runID string, setting models.PortScanSetting, emitter events.Emitter) (models.PortScanReport, error) {
	return runPortScan(ctx, runID, setting, emitter, s.Detector, portDialerQUIC)
}

func runPortScan(
	ctx context.Context,
	runID string,
	setting models.PortScanSetting,
	emitter events.Emitter,
	detector ServiceDetector,
	dial func(ctx context.Context, setting models.PortScanSetting, port uint16, timeout time.Duration) (models.PortState, *float64, string),
) (models.PortScanReport, error) {
	emitter.Emit(events.PortScanStart, map[string]string{"run_id": runID})

	ports := portset.Expand(setting.Preset, setting.UserPorts)
	if !setting.Ordered {
		shuffleUint16(ports)
	}

	total := len(ports)
	th := progress.New(maxInt(total, 1))

	concurrency := setting.Concurrency
	if concurrency <= 0 {
		concurrency = tuner.Get().Ports
	}

	samples := make([]models.PortScanSample, total)

	sem := make(chan struct{}, maxInt(concurrency, 1))

	var wg sync.WaitGroup

	for i, port := range ports {
		wg.Add(1)

		go func(idx int, p uint16) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			state, rtt, diag := dial(ctx, setting, p, setting.Timeout)

			sample := models.PortScanSample{
				IP:         setting.IP,
				Port:       p,
				Protocol:   setting.Protocol,
				State:      state,
				RTTMillis:  rtt,
				Diagnostic: diag,
			}

			done, shouldEmit := th.Advance()
			sample.Done, sample.Total = done, total

			if sample.State == models.PortOpen {
				emitter.Emit(events.PortScanOpen, sample)
			}

			if shouldEmit {
				emitter.Emit(events.PortScanProgress, [2]int{done, total})
			}

			samples[idx] = sample
		}(i, port)
	}

	wg.Wait()

	open := make([]models.PortScanSample, 0, total)

	for _, s := range samples {
		if s.State != models.PortOpen {
			continue
		}

		s.ServiceName = lookupServiceName(setting.Protocol, s.Port)
		open = append(open, s)
	}

	sort.Slice(open, func(i, j int) bool { return open[i].Port < open[j].Port })

	if setting.ServiceDetection && len(open) > 0 && detector != nil {
		open = runServiceDetection(ctx, runID, setting, open, emitter, detector)
	}

	report := models.PortScanReport{
		RunID:   runID,
		IP:      setting.IP.String(),
		Setting: setting,
		Open:    open,
		Total:   total,
	}

	emitter.Emit(events.PortScanDone, report)

	return report, nil
}

func lookupServiceName(protocol models.PortScanProtocol, port uint16) string {
	if protocol == models.ProtocolQUIC {
		name, _ := servicedb.UDPServiceName(port)
		return name
	}

	name, _ := servicedb.TCPServiceName(port)

	return name
}

func runServiceDetection(
	ctx context.Context,
	runID string,
	setting models.PortScanSetting,
	open []models.PortScanSample,
	emitter events.Emitter,
	detector ServiceDetector,
) []models.PortScanSample {
	emitter.Emit(events.PortScanServiceDetectStart, runID)

	endpoint := models.NewEndpoint(setting.IP)
	endpoint.Hostname = setting.Hostname

	transport := models.TransportTCP
	if setting.Protocol == models.ProtocolQUIC {
		transport = models.TransportQUIC
	}

	for _, s := range open {
		endpoint.UpsertPort(models.NewPort(s.Port, transport))
	}

	cfg := DetectionConfig{
		Timeout:        serviceDetectionTimeout,
		MaxConcurrency: serviceDetectionConcurrency,
		MaxReadBytes:   serviceDetectionMaxRead,
		SNI:            true,
		SkipCertVerify: true,
	}

	detected, err := detector.Detect(ctx, endpoint, cfg)

	defer emitter.Emit(events.PortScanServiceDetectDone, runID)

	if err != nil {
		return open
	}

	byPort := make(map[uint16]models.ServiceInfo, len(detected))
	for _, d := range detected {
		byPort[d.Port.Number] = d.Service
	}

	for i := range open {
		if svc, ok := byPort[open[i].Port]; ok {
			svcCopy := svc
			open[i].Service = &svcCopy
		}
	}

	return open
}

func portDialerTCP(ctx context.Context, setting models.PortScanSetting, port uint16, timeout time.Duration) (models.PortState, *float64, string) {
	outcome, elapsed, diag := socket.DialTCP(ctx, setting.IP, port, timeout)
	return stateFromOutcome(outcome, elapsed, diag)
}

func portDialerQUIC(ctx context.Context, setting models.PortScanSetting, port uint16, timeout time.Duration) (models.PortState, *float64, string) {
	outcome, elapsed, diag := socket.DialQUIC(ctx, setting.IP, port, timeout)
	return stateFromOutcome(outcome, elapsed, diag)
}

func stateFromOutcome(outcome socket.ConnectOutcome, elapsed time.Duration, diag string) (models.PortState, *float64, string) {
	switch outcome {
	case socket.ConnectOpen:
		ms := float64(elapsed.Microseconds()) / 1000.0
		return models.PortOpen, &ms, ""
	case socket.ConnectFiltered:
		return models.PortFiltered, nil, diag
	default:
		return models.PortClosed, nil, diag
	}
}

func shuffleUint16(ports []uint16) {
	rand.Shuffle(len(ports), func(i, j int) { ports[i], ports[j] = ports[j], ports[i] })
}
