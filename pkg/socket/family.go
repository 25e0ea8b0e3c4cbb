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

// Package socket wraps the three concrete transports the scan pipeline
// drives: ICMP echo (golang.org/x/net/icmp, ipv4, ipv6), TCP connect
// (net.Dialer), and QUIC handshake (quic-go). It owns the shared ICMP
// socket lifetime — multiple senders plus one receiver hold a reference,
// the last release closes the underlying conn.
package socket

import "net"

// Family identifies which IP family a destination belongs to.
type Family int

const (
	FamilyV4 Family = iota
	FamilyV6
)

// FamilyOf classifies an IP address by family.
func FamilyOf(ip net.IP) Family {
	if ip.To4() != nil {
		return FamilyV4
	}

	return FamilyV6
}
