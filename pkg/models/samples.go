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

package models

import "net"

// PortScanSample is the per-port result of a single probe. RTT is only
// meaningful (non-nil) when State == PortOpen.
type PortScanSample struct {
	IP          net.IP           `json:"ip"`
	Port        uint16           `json:"port"`
	Protocol    PortScanProtocol `json:"protocol"`
	State       PortState        `json:"state"`
	RTTMillis   *float64         `json:"rtt_ms,omitempty"`
	Diagnostic  string           `json:"diagnostic,omitempty"`
	ServiceName string           `json:"service_name,omitempty"`
	Service     *ServiceInfo     `json:"service,omitempty"`
	Done        int              `json:"done"`
	Total       int              `json:"total"`
}

// HostScanProgress is the per-target result of a single host probe.
type HostScanProgress struct {
	IP         net.IP    `json:"ip"`
	Hostname   string    `json:"hostname,omitempty"`
	State      HostState `json:"state"`
	RTTMillis  *float64  `json:"rtt_ms,omitempty"`
	Diagnostic string    `json:"diagnostic,omitempty"`
	Done       int       `json:"done"`
	Total      int       `json:"total"`
}

// NeighborHost is an alive host discovered by the neighbor scanner,
// enriched with link-layer details the core treats as external: MAC and
// vendor lookups happen outside this package.
type NeighborHost struct {
	IP        net.IP   `json:"ip"`
	RTTMillis *float64 `json:"rtt_ms,omitempty"`
	MAC       string   `json:"mac,omitempty"`
	Vendor    string   `json:"vendor,omitempty"`
}
