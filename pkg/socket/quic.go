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
	"crypto/tls"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/quic-go/quic-go"
)

// QUICALPNs are the protocol identifiers the QUIC port scanner offers
// during the handshake, matching the original's probe set.
var QUICALPNs = []string{"h3", "hq-29", "hq-interop"}

// DialQUIC attempts a QUIC handshake to addr:port within timeout,
// classifying the outcome: Open on a completed handshake (closed
// immediately with application error 0), Filtered on timeout, Closed
// on any other handshake error.
func DialQUIC(ctx context.Context, ip net.IP, port uint16, timeout time.Duration) (outcome ConnectOutcome, elapsed time.Duration, diagnostic string) {
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tlsConf := &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // active probing, not a trust decision
		NextProtos:         QUICALPNs,
	}

	addr := net.JoinHostPort(ip.String(), strconv.Itoa(int(port)))

	start := time.Now()

	conn, err := quic.DialAddr(dialCtx, addr, tlsConf, nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ConnectFiltered, 0, err.Error()
		}

		return ConnectClosed, 0, err.Error()
	}

	elapsed = time.Since(start)

	_ = conn.CloseWithError(0, "")

	return ConnectOpen, elapsed, ""
}
