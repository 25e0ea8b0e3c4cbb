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

// Package models holds the data shapes shared by every scan pipeline:
// targets, ports, reports, and the service-fingerprint types produced by
// the detector. Nothing here talks to a socket or a database.
package models

import "net"

// TransportProtocol names the wire transport a Port was observed on.
type TransportProtocol string

const (
	TransportTCP  TransportProtocol = "tcp"
	TransportUDP  TransportProtocol = "udp"
	TransportQUIC TransportProtocol = "quic"
)

// Port is a (number, transport) pair; it is also the key type for the
// port-probe database.
type Port struct {
	Number    uint16            `json:"number"`
	Transport TransportProtocol `json:"transport"`
}

// NewPort builds a Port.
func NewPort(number uint16, transport TransportProtocol) Port {
	return Port{Number: number, Transport: transport}
}

// MaybeHost is the input-stage variant of Host: either the IP or the
// hostname is known, never both. It is resolved to zero or more concrete
// Hosts by the target resolver before scanning begins.
type MaybeHost struct {
	IP       net.IP `json:"ip,omitempty"`
	Hostname string `json:"hostname,omitempty"`
}

// Host is an (IP, optional hostname) pair. Once constructed it is treated
// as immutable by every scan pipeline.
type Host struct {
	IP       net.IP `json:"ip"`
	Hostname string `json:"hostname,omitempty"`
}

// Endpoint is built after a port scan completes and drives service
// detection: a host plus the set of ports found open on it.
type Endpoint struct {
	IP       net.IP `json:"ip"`
	Hostname string `json:"hostname,omitempty"`
	Ports    []Port `json:"ports"`
}

// NewEndpoint creates an Endpoint with no ports yet.
func NewEndpoint(ip net.IP) Endpoint {
	return Endpoint{IP: ip}
}

// UpsertPort adds p if its (number, transport) pair isn't already present.
func (e *Endpoint) UpsertPort(p Port) {
	for _, existing := range e.Ports {
		if existing == p {
			return
		}
	}

	e.Ports = append(e.Ports, p)
}
