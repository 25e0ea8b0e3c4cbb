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

package scan

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/netreconio/netpulse/pkg/events"
	"github.com/netreconio/netpulse/pkg/models"
	"github.com/netreconio/netpulse/pkg/progress"
	"github.com/netreconio/netpulse/pkg/socket"
	"github.com/netreconio/netpulse/pkg/tuner"
)

const (
	defaultHostScanPayload = "np:hs"

	// sendsPerWorkerPerSecond scales the one send-rate limiter the whole
	// scan shares: echo requests go out at no more than concurrency times
	// this many per second overall, however they fall across slots. It
	// replaces manual ticker-batching.
	sendsPerWorkerPerSecond = 50
)

// ICMPHostScanner implements HostScanner: one receiver goroutine per
// socket family, a mutex-guarded pending map keyed by destination IP,
// and a bounded-concurrency sender pool.
type ICMPHostScanner struct{}

var _ HostScanner = ICMPHostScanner{}

type pendingEntry struct {
	sentAt time.Time
	reply  chan float64
}

type pendingMap struct {
	mu      sync.Mutex
	entries map[string]pendingEntry
}

func newPendingMap() *pendingMap {
	return &pendingMap{entries: make(map[string]pendingEntry)}
}

func (m *pendingMap) install(ip string) chan float64 {
	ch := make(chan float64, 1)

	m.mu.Lock()
	m.entries[ip] = pendingEntry{sentAt: time.Now(), reply: ch}
	m.mu.Unlock()

	return ch
}

func (m *pendingMap) remove(ip string) {
	m.mu.Lock()
	delete(m.entries, ip)
	m.mu.Unlock()
}

// complete removes ip's pending entry (if present) and signals its reply
// channel with the elapsed RTT since registration. Returns false if no
// entry was pending (a late reply, or a reply for a target we never
// sent to), in which case the caller silently discards the datagram.
func (m *pendingMap) complete(ip string) bool {
	m.mu.Lock()
	entry, ok := m.entries[ip]
	if ok {
		delete(m.entries, ip)
	}
	m.mu.Unlock()

	if !ok {
		return false
	}

	entry.reply <- float64(time.Since(entry.sentAt).Microseconds()) / 1000.0

	return true
}

// Scan runs the ICMP liveness probe pipeline.
func (ICMPHostScanner) Scan(ctx context.Context, runID string, setting models.HostScanSetting, emitter events.Emitter) (models.HostScanReport, error) {
	emitter.Emit(events.HostScanStart, map[string]string{"run_id": runID})

	targets := normalizeHostTargets(setting.Targets)
	if !setting.Ordered {
		shuffleStrings(targets)
	}

	total := len(targets)
	th := progress.New(maxInt(total, 1))

	concurrency := setting.Concurrency
	if concurrency <= 0 {
		concurrency = tuner.Get().Hosts
	}

	hopLimit := setting.HopLimit
	if hopLimit < 1 {
		hopLimit = 1
	}

	payload := setting.Payload
	if payload == "" {
		payload = defaultHostScanPayload
	}

	hasV4, hasV6 := classifyFamilies(targets)

	var sockV4, sockV6 *socket.ICMPSocket

	var err error

	if hasV4 {
		sockV4, err = socket.NewICMPSocket(socket.FamilyV4, hopLimit)
		if err != nil {
			return models.HostScanReport{}, fmt.Errorf("scan: opening ipv4 icmp socket: %w", err)
		}
	}

	if hasV6 {
		sockV6, err = socket.NewICMPSocket(socket.FamilyV6, hopLimit)
		if err != nil {
			if sockV4 != nil {
				_ = sockV4.Release()
			}

			return models.HostScanReport{}, fmt.Errorf("scan: opening ipv6 icmp socket: %w", err)
		}
	}

	pendingV4 := newPendingMap()
	pendingV6 := newPendingMap()

	var wg sync.WaitGroup

	if sockV4 != nil {
		wg.Add(1)

		go func() {
			defer wg.Done()
			runReceiver(sockV4, pendingV4)
		}()
	}

	if sockV6 != nil {
		wg.Add(1)

		go func() {
			defer wg.Done()
			runReceiver(sockV6, pendingV6)
		}()
	}

	limiter := rate.NewLimiter(rate.Limit(concurrency*sendsPerWorkerPerSecond), maxInt(concurrency, 1))

	results := dispatchHostProbes(ctx, hostProbeInput{
		targets:     targets,
		total:       total,
		concurrency: concurrency,
		retries:     maxInt(setting.Retries, 1),
		timeout:     setting.Timeout,
		payload:     []byte(payload),
		sockV4:      sockV4,
		sockV6:      sockV6,
		pendingV4:   pendingV4,
		pendingV6:   pendingV6,
		throttle:    th,
		emitter:     emitter,
		limiter:     limiter,
	})

	if sockV4 != nil {
		_ = sockV4.Release()
	}

	if sockV6 != nil {
		_ = sockV6.Release()
	}

	wg.Wait()

	report := models.HostScanReport{
		RunID:   runID,
		Setting: setting,
		Total:   total,
	}

	for _, r := range results {
		if r.State == models.HostAlive {
			report.Alive = append(report.Alive, r)
		} else {
			report.Unreachable = append(report.Unreachable, r)
		}
	}

	emitter.Emit(events.HostScanDone, report)

	return report, nil
}

type hostProbeInput struct {
	targets     []string
	total       int
	concurrency int
	retries     int
	timeout     time.Duration
	payload     []byte
	sockV4      *socket.ICMPSocket
	sockV6      *socket.ICMPSocket
	pendingV4   *pendingMap
	pendingV6   *pendingMap
	throttle    *progress.Throttle
	emitter     events.Emitter
	limiter     *rate.Limiter
}

func dispatchHostProbes(ctx context.Context, in hostProbeInput) []models.HostScanProgress {
	results := make([]models.HostScanProgress, len(in.targets))

	sem := make(chan struct{}, maxInt(in.concurrency, 1))

	var wg sync.WaitGroup

	for i, t := range in.targets {
		wg.Add(1)

		go func(idx int, target string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx] = probeOneHost(ctx, target, in)

			done, shouldEmit := in.throttle.Advance()

			if results[idx].State == models.HostAlive {
				results[idx].Done, results[idx].Total = done, in.total
				in.emitter.Emit(events.HostScanAlive, results[idx])
			}

			if shouldEmit {
				in.emitter.Emit(events.HostScanProgress, [2]int{done, in.total})
			}
		}(i, t)
	}

	wg.Wait()

	return results
}

func probeOneHost(ctx context.Context, target string, in hostProbeInput) models.HostScanProgress {
	ip := net.ParseIP(target)

	result := models.HostScanProgress{IP: ip, State: models.HostUnreachable}

	family := socket.FamilyOf(ip)

	sock, pending := in.sockV4, in.pendingV4
	if family == socket.FamilyV6 {
		sock, pending = in.sockV6, in.pendingV6
	}

	if sock == nil {
		result.Diagnostic = "no suitable socket for address family"
		return result
	}

	var bestRTT *float64

	var lastErr string

	key := ip.String()

	for seq := 1; seq <= in.retries; seq++ {
		if in.limiter != nil {
			if err := in.limiter.Wait(ctx); err != nil {
				lastErr = "canceled"
				break
			}
		}

		replyCh := pending.install(key)

		id := rand.Intn(1 << 16) //nolint:gosec // wire-compatibility identifier only, not security-sensitive

		if err := sock.SendEcho(ip, id, seq, in.payload); err != nil {
			pending.remove(key)
			lastErr = fmt.Sprintf("send error: %v", err)

			continue
		}

		select {
		case rtt := <-replyCh:
			v := rtt
			if bestRTT == nil || v < *bestRTT {
				bestRTT = &v
			}
		case <-time.After(in.timeout):
			pending.remove(key)
			lastErr = "timeout"
		case <-ctx.Done():
			pending.remove(key)
			lastErr = "canceled"
		}

		if bestRTT != nil {
			break
		}
	}

	if bestRTT != nil {
		result.State = models.HostAlive
		result.RTTMillis = bestRTT
	} else {
		result.Diagnostic = lastErr
	}

	return result
}

func runReceiver(sock *socket.ICMPSocket, pending *pendingMap) {
	buf := make([]byte, 2048)

	for {
		reply, err := sock.RecvEcho(buf)
		if err != nil {
			return // conn closed: every owner released, time to exit
		}

		if reply == nil {
			continue // unparseable or not an echo reply; discard
		}

		pending.complete(reply.Source.String())
	}
}

func normalizeHostTargets(targets []string) []string {
	out := make([]string, 0, len(targets))

	for _, t := range targets {
		if net.ParseIP(t) != nil {
			out = append(out, t)
		}
	}

	return out
}

func classifyFamilies(targets []string) (hasV4, hasV6 bool) {
	for _, t := range targets {
		ip := net.ParseIP(t)
		if ip == nil {
			continue
		}

		if socket.FamilyOf(ip) == socket.FamilyV4 {
			hasV4 = true
		} else {
			hasV6 = true
		}
	}

	return hasV4, hasV6
}

func shuffleStrings(s []string) {
	rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
