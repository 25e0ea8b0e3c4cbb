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

package resolve

import (
	"context"
	"net"
	"testing"
)

func TestResolveLiteralsAndBlankDropped(t *testing.T) {
	r := New()
	r.LookupIP = func(context.Context, string, string) ([]net.IPAddr, error) {
		t.Fatal("no hostnames expected in this input")
		return nil, nil
	}

	hosts := r.Resolve(context.Background(), []string{"127.0.0.1", "   ", ""})

	if len(hosts) != 1 {
		t.Fatalf("expected 1 host, got %d: %+v", len(hosts), hosts)
	}

	if hosts[0].IP.String() != "127.0.0.1" {
		t.Fatalf("unexpected host: %+v", hosts[0])
	}
}

func TestResolveMixedInputDedup(t *testing.T) {
	r := New()
	r.LookupIP = func(_ context.Context, _ string, host string) ([]net.IPAddr, error) {
		if host == "localhost" {
			return []net.IPAddr{
				{IP: net.ParseIP("127.0.0.1")},
				{IP: net.ParseIP("::1")},
			}, nil
		}

		return nil, net.UnknownNetworkError("no such host")
	}

	hosts := r.Resolve(context.Background(), []string{"127.0.0.1", "localhost", "   "})

	seen := map[string]bool{}
	for _, h := range hosts {
		seen[h.IP.String()] = true
	}

	if !seen["127.0.0.1"] || !seen["::1"] {
		t.Fatalf("expected both 127.0.0.1 and ::1 present, got %+v", hosts)
	}

	count := 0
	for _, h := range hosts {
		if h.IP.String() == "127.0.0.1" {
			count++
		}
	}

	if count != 1 {
		t.Fatalf("127.0.0.1 should be deduplicated, appeared %d times", count)
	}
}

func TestResolveFailedLookupDropped(t *testing.T) {
	r := New()
	r.LookupIP = func(context.Context, string, string) ([]net.IPAddr, error) {
		return nil, net.UnknownNetworkError("nxdomain")
	}

	hosts := r.Resolve(context.Background(), []string{"does-not-resolve.invalid"})

	if len(hosts) != 0 {
		t.Fatalf("expected no hosts, got %+v", hosts)
	}
}
