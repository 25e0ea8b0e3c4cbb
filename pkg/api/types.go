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

// Package api is the HTTP + WebSocket realization of the Emitter
// contract and the run-trigger surface for a live client: gorilla/mux
// handlers to start scans and read history, gorilla/websocket to
// stream live progress events.
package api

import "time"

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// TriggerHostScanRequest is the POST /api/scan/hosts request body.
type TriggerHostScanRequest struct {
	Targets     []string `json:"targets"`
	TimeoutMS   int64    `json:"timeout_ms"`
	Retries     int      `json:"retries"`
	HopLimit    int      `json:"hop_limit"`
	Payload     string   `json:"payload,omitempty"`
	Ordered     bool     `json:"ordered"`
	Concurrency int      `json:"concurrency,omitempty"`
}

// TriggerPortScanRequest is the POST /api/scan/ports request body.
type TriggerPortScanRequest struct {
	IP               string   `json:"ip"`
	Protocol         string   `json:"protocol"` // "tcp" or "quic"
	Preset           string   `json:"preset,omitempty"`
	UserPorts        []uint16 `json:"user_ports,omitempty"`
	TimeoutMS        int64    `json:"timeout_ms"`
	Ordered          bool     `json:"ordered"`
	ServiceDetection bool     `json:"service_detection"`
	Hostname         string   `json:"hostname,omitempty"`
	Concurrency      int      `json:"concurrency,omitempty"`
}

// TriggerNeighborScanRequest is the POST /api/scan/neighbors request body.
type TriggerNeighborScanRequest struct {
	Interface string `json:"interface,omitempty"`
}

// TriggerResponse acknowledges an async scan trigger.
type TriggerResponse struct {
	RunID string `json:"run_id"`
}
