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

// Package detector is a concrete, in-tree ServiceDetector: it grabs a
// banner (optionally through a TLS handshake), matches it against the
// bundled response signatures, and fills TlsInfo from the negotiated
// certificate. scan.ServiceDetector is treated as an external
// collaborator contract — this package is one implementation of it,
// not part of the dispatcher core.
package detector

import (
	"bufio"
	"context"
	"crypto/tls"
	"io"
	"net"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/netreconio/netpulse/pkg/models"
	"github.com/netreconio/netpulse/pkg/scan"
	"github.com/netreconio/netpulse/pkg/servicedb"
)

// Detector is the default scan.ServiceDetector implementation.
type Detector struct{}

var _ scan.ServiceDetector = Detector{}

// Detect probes every port on endpoint concurrently (bounded by
// cfg.MaxConcurrency) and returns one result per port that produced a
// recognizable fingerprint.
func (Detector) Detect(ctx context.Context, endpoint models.Endpoint, cfg scan.DetectionConfig) ([]scan.DetectedService, error) {
	concurrency := cfg.MaxConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup

	var mu sync.Mutex

	var results []scan.DetectedService

	for _, port := range endpoint.Ports {
		wg.Add(1)

		go func(p models.Port) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			info, ok := probePort(ctx, endpoint, p, cfg)
			if !ok {
				return
			}

			mu.Lock()
			results = append(results, scan.DetectedService{Port: p, Service: info})
			mu.Unlock()
		}(port)
	}

	wg.Wait()

	return results, nil
}

func probePort(ctx context.Context, endpoint models.Endpoint, port models.Port, cfg scan.DetectionConfig) (models.ServiceInfo, bool) {
	addr := net.JoinHostPort(endpoint.IP.String(), strconv.Itoa(int(port.Number)))

	dialCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	dialer := &net.Dialer{}

	conn, err := dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return models.ServiceInfo{}, false
	}
	defer conn.Close()

	var tlsInfo *models.TlsInfo

	_ = conn.SetReadDeadline(time.Now().Add(cfg.Timeout))

	banner := readBanner(conn, cfg.MaxReadBytes)

	if banner == "" {
		if tlsState, ok := tryTLSHandshake(conn, endpoint.Hostname, cfg); ok {
			tlsInfo = tlsInfoFromState(tlsState)

			_ = tlsState.conn.SetReadDeadline(time.Now().Add(cfg.Timeout))

			banner = readBanner(tlsState.conn, cfg.MaxReadBytes)
		}
	}

	sig, matched := matchResponseSignature(banner)
	if !matched && tlsInfo == nil {
		return models.ServiceInfo{}, false
	}

	info := models.ServiceInfo{Banner: banner, Tls: tlsInfo}

	if matched {
		info.Name = sig.Service
		info.Product = sig.Product
	} else if tlsInfo != nil {
		info.Name = "tls"
	}

	return info, true
}

type tlsHandshakeResult struct {
	conn  *tls.Conn
	state tls.ConnectionState
}

func tryTLSHandshake(conn net.Conn, hostname string, cfg scan.DetectionConfig) (tlsHandshakeResult, bool) {
	tlsConf := &tls.Config{
		InsecureSkipVerify: cfg.SkipCertVerify, //nolint:gosec // active probing, not a trust decision
	}

	if cfg.SNI && hostname != "" {
		tlsConf.ServerName = hostname
	}

	tlsConn := tls.Client(conn, tlsConf)

	_ = tlsConn.SetDeadline(time.Now().Add(cfg.Timeout))

	if err := tlsConn.Handshake(); err != nil {
		return tlsHandshakeResult{}, false
	}

	return tlsHandshakeResult{conn: tlsConn, state: tlsConn.ConnectionState()}, true
}

func tlsInfoFromState(h tlsHandshakeResult) *models.TlsInfo {
	if len(h.state.PeerCertificates) == 0 {
		return &models.TlsInfo{NegotiatedALPN: h.state.NegotiatedProtocol}
	}

	cert := h.state.PeerCertificates[0]

	info := &models.TlsInfo{
		Subject:            cert.Subject.String(),
		Issuer:             cert.Issuer.String(),
		NotBefore:          cert.NotBefore.UTC().Format(time.RFC3339),
		NotAfter:           cert.NotAfter.UTC().Format(time.RFC3339),
		SubjectAltNames:    cert.DNSNames,
		SignatureAlgorithm: resolveOID(cert.SignatureAlgorithm.String()),
		PublicKeyAlgorithm: resolveOID(cert.PublicKeyAlgorithm.String()),
		NegotiatedALPN:     h.state.NegotiatedProtocol,
	}

	return info
}

// resolveOID returns the bundled TLS OID map's name for token when the
// map has one, otherwise token unchanged. The map is keyed by dotted
// OIDs, while the tokens tlsInfoFromState passes are crypto/x509's
// algorithm names (or a decimal number for an algorithm it does not
// know), so those tokens come back unchanged.
func resolveOID(token string) string {
	if name, ok := servicedb.TLSOIDName(token); ok {
		return name
	}

	return token
}

func readBanner(r io.Reader, maxBytes int64) string {
	if maxBytes <= 0 {
		maxBytes = 1 << 20
	}

	limited := io.LimitReader(r, maxBytes)

	buf := make([]byte, 4096)

	br := bufio.NewReader(limited)

	n, _ := br.Read(buf)

	return string(buf[:n])
}

type compiledSignature struct {
	models.ResponseSignature

	re *regexp.Regexp
}

var (
	signaturesOnce sync.Once
	compiled       []compiledSignature
)

func matchResponseSignature(banner string) (models.ResponseSignature, bool) {
	signaturesOnce.Do(func() {
		for _, sig := range servicedb.ResponseSignatures() {
			if sig.Pattern == "" {
				continue
			}

			re, err := regexp.Compile(sig.Pattern)
			if err != nil {
				continue
			}

			compiled = append(compiled, compiledSignature{ResponseSignature: sig, re: re})
		}
	})

	trimmed := strings.TrimSpace(banner)

	for _, c := range compiled {
		if c.re.MatchString(trimmed) {
			return c.ResponseSignature, true
		}
	}

	return models.ResponseSignature{}, false
}
