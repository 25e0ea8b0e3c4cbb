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

// Package events defines the named-event sink contract the scan
// pipeline reports through and a couple of concrete sinks:
// a no-op/logging sink and a fan-out MultiEmitter. The GUI-host event
// transport itself stays an external collaborator; pkg/api supplies the
// HTTP+WebSocket realization of this contract.
package events

import "log"

//go:generate mockgen -destination=mock_emitter.go -package=events github.com/netreconio/netpulse/pkg/events Emitter

// Emitter accepts a named event and a JSON-serializable payload.
// Emission is best-effort: implementations must not let a delivery
// failure propagate back into the scan pipeline.
type Emitter interface {
	Emit(name string, payload interface{})
}

// Canonical event names.
const (
	HostScanStart              = "hostscan:start"
	HostScanAlive              = "hostscan:alive"
	HostScanProgress           = "hostscan:progress"
	HostScanDone               = "hostscan:done"
	PortScanStart              = "portscan:start"
	PortScanOpen               = "portscan:open"
	PortScanProgress           = "portscan:progress"
	PortScanServiceDetectStart = "portscan:service_detection_start"
	PortScanServiceDetectDone  = "portscan:service_detection_done"
	PortScanDone               = "portscan:done"
	NeighborScanStart          = "neighborscan:start"
	NeighborScanProgress       = "neighborscan:progress"
	NeighborScanDone           = "neighborscan:done"
)

// LogEmitter logs every event at debug granularity via log.Printf.
// Useful for CLI runs and tests where no live UI client is attached.
type LogEmitter struct{}

func (LogEmitter) Emit(name string, payload interface{}) {
	log.Printf("event %s: %+v", name, payload)
}

// NoopEmitter discards every event.
type NoopEmitter struct{}

func (NoopEmitter) Emit(string, interface{}) {}

// MultiEmitter fans a single event out to every wrapped Emitter.
type MultiEmitter struct {
	Emitters []Emitter
}

func (m MultiEmitter) Emit(name string, payload interface{}) {
	for _, e := range m.Emitters {
		e.Emit(name, payload)
	}
}
