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

// Package resolve normalizes mixed IP-literal/hostname input into a
// deduplicated set of models.Host, resolving hostnames concurrently with
// a bounded worker pool. DNS resolver construction itself is an external
// collaborator (spec Non-goals); this package only drives net.Resolver's
// LookupIPAddr with a concurrency cap and a per-lookup timeout.
package resolve

import (
	"context"
	"log"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/netreconio/netpulse/pkg/models"
)

const (
	defaultConcurrency = 64
	defaultTimeout     = 1000 * time.Millisecond
)

// Resolver turns mixed input strings into a Host set.
type Resolver struct {
	Concurrency int
	Timeout     time.Duration
	LookupIP    func(ctx context.Context, network, host string) ([]net.IPAddr, error)
}

// New builds a Resolver with the default concurrency cap and
// per-lookup timeout.
func New() *Resolver {
	return &Resolver{
		Concurrency: defaultConcurrency,
		Timeout:     defaultTimeout,
		LookupIP: func(ctx context.Context, _, host string) ([]net.IPAddr, error) {
			return net.DefaultResolver.LookupIPAddr(ctx, host)
		},
	}
}

// Resolve accepts a list of input strings (IP literals or hostnames),
// drops empty/whitespace entries, and returns the deduplicated Host set.
// IP literals are deduplicated in input order (first occurrence wins);
// each hostname's resolved addresses are appended with the hostname
// attached. Failed resolutions are silently dropped.
func (r *Resolver) Resolve(ctx context.Context, inputs []string) []models.Host {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var literals []string

	var hostnames []string

	for _, raw := range inputs {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}

		if ip := net.ParseIP(entry); ip != nil {
			literals = append(literals, entry)
			continue
		}

		hostnames = append(hostnames, entry)
	}

	seen := make(map[string]struct{})

	hosts := make([]models.Host, 0, len(literals)+len(hostnames))

	for _, lit := range literals {
		ip := net.ParseIP(lit)

		key := ip.String()
		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}

		hosts = append(hosts, models.Host{IP: ip})
	}

	resolved := r.resolveHostnames(ctx, hostnames, concurrency, timeout)

	for _, h := range resolved {
		key := h.IP.String()
		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}

		hosts = append(hosts, h)
	}

	return hosts
}

type hostnameLookup struct {
	hostname string
	addrs    []net.IPAddr
}

func (r *Resolver) resolveHostnames(ctx context.Context, hostnames []string, concurrency int, timeout time.Duration) []models.Host {
	if len(hostnames) == 0 {
		return nil
	}

	sem := make(chan struct{}, concurrency)

	results := make(chan hostnameLookup, len(hostnames))

	var wg sync.WaitGroup

	for _, name := range hostnames {
		wg.Add(1)

		go func(hostname string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			lookupCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			addrs, err := r.LookupIP(lookupCtx, "ip", hostname)
			if err != nil {
				log.Printf("resolve: dropping unresolvable host %q: %v", hostname, err)
				return
			}

			results <- hostnameLookup{hostname: hostname, addrs: addrs}
		}(name)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var hosts []models.Host

	for res := range results {
		for _, addr := range res.addrs {
			hosts = append(hosts, models.Host{IP: addr.IP, Hostname: res.hostname})
		}
	}

	return hosts
}
