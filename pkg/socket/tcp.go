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
	"context"
	"errors"
	"net"
	"strconv"
	"syscall"
	"time"
)

// ConnectOutcome classifies a TCP connect attempt the way the port
// scanner needs it classified; it is independent of models.PortState so
// this package stays free of the models import.
type ConnectOutcome int

const (
	ConnectOpen ConnectOutcome = iota
	ConnectClosed
	ConnectFiltered
)

// DialTCP attempts a TCP connect to addr:port with the given timeout and
// classifies the outcome as open, filtered, or closed. On ConnectOpen
// the connection is closed before returning, since only reachability
// (not semantics) is measured.
func DialTCP(ctx context.Context, ip net.IP, port uint16, timeout time.Duration) (outcome ConnectOutcome, elapsed time.Duration, diagnostic string) {
	dialer := &net.Dialer{Timeout: timeout}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	addr := net.JoinHostPort(ip.String(), strconv.Itoa(int(port)))

	conn, err := dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return classifyConnectError(err), 0, err.Error()
	}

	elapsed = time.Since(start)

	_ = conn.Close()

	return ConnectOpen, elapsed, ""
}

func classifyConnectError(err error) ConnectOutcome {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ConnectFiltered
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET), errors.Is(err, syscall.ENOTCONN):
		return ConnectClosed
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.EADDRNOTAVAIL):
		return ConnectFiltered
	default:
		return ConnectClosed
	}
}

