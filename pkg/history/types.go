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

// Package history is the SQLite-backed run-history store: every
// completed host/port/neighbor scan is recorded keyed by its run ID,
// with retention-based cleanup running as a background Service.
package history

import "time"

// RunKind names which pipeline produced a run's rows.
type RunKind string

const (
	RunKindHostScan     RunKind = "host_scan"
	RunKindPortScan     RunKind = "port_scan"
	RunKindNeighborScan RunKind = "neighbor_scan"
)

// RunSummary is one row of the top-level runs table.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	Kind       RunKind   `json:"kind"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
}

// HostResultRow is one recorded host-scan probe outcome.
type HostResultRow struct {
	RunID      string    `json:"run_id"`
	IP         string    `json:"ip"`
	State      string    `json:"state"`
	RTTMillis  *float64  `json:"rtt_ms,omitempty"`
	Diagnostic string    `json:"diagnostic,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// PortResultRow is one recorded open-port outcome.
type PortResultRow struct {
	RunID       string    `json:"run_id"`
	IP          string    `json:"ip"`
	Port        uint16    `json:"port"`
	Protocol    string    `json:"protocol"`
	State       string    `json:"state"`
	RTTMillis   *float64  `json:"rtt_ms,omitempty"`
	ServiceName string    `json:"service_name,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NeighborResultRow is one recorded neighbor-discovery outcome.
type NeighborResultRow struct {
	RunID     string    `json:"run_id"`
	IP        string    `json:"ip"`
	RTTMillis *float64  `json:"rtt_ms,omitempty"`
	MAC       string    `json:"mac,omitempty"`
	Vendor    string    `json:"vendor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
