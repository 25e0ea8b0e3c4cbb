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

import (
	"net"
	"time"
)

// PortScanSetting is the input to a port scan command (TCP or QUIC,
// selected by Protocol).
type PortScanSetting struct {
	IP                net.IP           `json:"ip"`
	Protocol          PortScanProtocol `json:"protocol"`
	Preset            TargetPortsPreset `json:"preset"`
	UserPorts         []uint16         `json:"user_ports,omitempty"`
	Timeout           time.Duration    `json:"timeout"`
	Ordered           bool             `json:"ordered"`
	ServiceDetection  bool             `json:"service_detection"`
	Hostname          string           `json:"hostname,omitempty"`
	Concurrency       int              `json:"concurrency,omitempty"`
}

// PortScanReport is the terminal aggregate of a port scan. Only Open
// samples are retained, sorted by port ascending.
type PortScanReport struct {
	RunID   string           `json:"run_id"`
	IP      string           `json:"ip"`
	Setting PortScanSetting  `json:"setting"`
	Open    []PortScanSample `json:"open"`
	Total   int              `json:"total"`
}

// HostScanSetting is the input to a host scan command.
type HostScanSetting struct {
	SrcIPv4     string        `json:"src_ipv4,omitempty"`
	SrcIPv6     string        `json:"src_ipv6,omitempty"`
	Targets     []string      `json:"targets"`
	Timeout     time.Duration `json:"timeout"`
	Retries     int           `json:"retries"`
	HopLimit    int           `json:"hop_limit"`
	Payload     string        `json:"payload,omitempty"`
	Ordered     bool          `json:"ordered"`
	Concurrency int           `json:"concurrency,omitempty"`
}

// HostScanRequest wraps a HostScanSetting as received at the command
// boundary (host_scan(request) in spec terms).
type HostScanRequest struct {
	Setting HostScanSetting `json:"setting"`
}

// HostScanReport is the terminal aggregate of a host scan.
type HostScanReport struct {
	RunID       string             `json:"run_id"`
	Setting     HostScanSetting    `json:"setting"`
	Alive       []HostScanProgress `json:"alive"`
	Unreachable []HostScanProgress `json:"unreachable"`
	Total       int                `json:"total"`
}

// NeighborScanReport is the terminal aggregate of a neighbor scan.
type NeighborScanReport struct {
	RunID     string         `json:"run_id"`
	Interface string         `json:"interface,omitempty"`
	Gateway   string         `json:"gateway"`
	Neighbors []NeighborHost `json:"neighbors"`
	Total     int            `json:"total"`
}
