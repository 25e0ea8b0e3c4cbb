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

package socket

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// ICMPSocket is a shared ICMP echo socket for one IP family. Senders and
// a single receiver each hold a reference via Acquire/Release; the last
// Release closes the underlying conn, which causes a blocked ReadFrom
// to return an error so the receiver loop can exit.
type ICMPSocket struct {
	family Family
	conn   *icmp.PacketConn

	refs    int64
	closeMu sync.Mutex
	closed  bool
}

// NewICMPSocket opens a non-privileged ICMP listener ("udp4:icmp" /
// "udp6:ipv6-icmp" when available, falling back to the raw "ip4:icmp" /
// "ip6:ipv6-icmp" network) for family and configures the outbound
// TTL (v4) or hop limit (v6). Start with one reference held by the
// caller (conventionally the receiver).
func NewICMPSocket(family Family, ttlOrHopLimit int) (*ICMPSocket, error) {
	if ttlOrHopLimit < 1 {
		ttlOrHopLimit = 1
	}

	var (
		conn *icmp.PacketConn
		err  error
	)

	switch family {
	case FamilyV4:
		conn, err = listenICMP("udp4:icmp", "ip4:icmp", "0.0.0.0")
		if err == nil {
			if pc := conn.IPv4PacketConn(); pc != nil {
				_ = pc.SetTTL(ttlOrHopLimit)
			}
		}
	case FamilyV6:
		conn, err = listenICMP("udp6:ipv6-icmp", "ip6:ipv6-icmp", "::")
		if err == nil {
			if pc := conn.IPv6PacketConn(); pc != nil {
				_ = pc.SetHopLimit(ttlOrHopLimit)
			}
		}
	}

	if err != nil {
		return nil, fmt.Errorf("socket: opening icmp listener: %w", err)
	}

	return &ICMPSocket{family: family, conn: conn, refs: 1}, nil
}

func listenICMP(unprivileged, raw, addr string) (*icmp.PacketConn, error) {
	conn, err := icmp.ListenPacket(unprivileged, addr)
	if err == nil {
		return conn, nil
	}

	return icmp.ListenPacket(raw, addr)
}

// Acquire adds one reference to the socket.
func (s *ICMPSocket) Acquire() {
	atomic.AddInt64(&s.refs, 1)
}

// Release drops one reference; the holder of the last reference closes
// the underlying conn.
func (s *ICMPSocket) Release() error {
	if atomic.AddInt64(&s.refs, -1) > 0 {
		return nil
	}

	s.closeMu.Lock()
	defer s.closeMu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	return s.conn.Close()
}

// SendEcho marshals and sends an ICMP Echo Request to dst.
func (s *ICMPSocket) SendEcho(dst net.IP, id, seq int, payload []byte) error {
	msgType := icmp.Type(ipv4.ICMPTypeEcho)
	if s.family == FamilyV6 {
		msgType = icmp.Type(ipv6.ICMPTypeEchoRequest)
	}

	msg := icmp.Message{
		Type: msgType,
		Code: 0,
		Body: &icmp.Echo{ID: id, Seq: seq, Data: payload},
	}

	b, err := msg.Marshal(nil)
	if err != nil {
		return fmt.Errorf("socket: marshaling icmp echo: %w", err)
	}

	_, err = s.conn.WriteTo(b, &net.UDPAddr{IP: dst})
	if err != nil {
		return fmt.Errorf("socket: sending icmp echo: %w", err)
	}

	return nil
}

// EchoReply is a successfully parsed and identified echo reply.
type EchoReply struct {
	Source net.IP
	ID     int
	Seq    int
}

// RecvEcho blocks for the next datagram and, if it parses as an echo
// reply for this family, returns it. Non-echo-reply or unparseable
// datagrams return (nil, nil): the caller's loop should simply continue.
func (s *ICMPSocket) RecvEcho(buf []byte) (*EchoReply, error) {
	n, peer, err := s.conn.ReadFrom(buf)
	if err != nil {
		return nil, err
	}

	proto := 1 // ICMPv4
	wantType := icmp.Type(ipv4.ICMPTypeEchoReply)

	if s.family == FamilyV6 {
		proto = 58 // ICMPv6
		wantType = icmp.Type(ipv6.ICMPTypeEchoReply)
	}

	msg, err := icmp.ParseMessage(proto, buf[:n])
	if err != nil {
		return nil, nil //nolint:nilnil // unparseable datagrams are discarded, not errors
	}

	if msg.Type != wantType {
		return nil, nil //nolint:nilnil // not an echo reply, discard
	}

	echo, ok := msg.Body.(*icmp.Echo)
	if !ok {
		return nil, nil //nolint:nilnil
	}

	ip := addrIP(peer)
	if ip == nil {
		return nil, nil //nolint:nilnil
	}

	return &EchoReply{Source: ip, ID: echo.ID, Seq: echo.Seq}, nil
}

func addrIP(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.UDPAddr:
		return a.IP
	case *net.IPAddr:
		return a.IP
	default:
		return nil
	}
}
