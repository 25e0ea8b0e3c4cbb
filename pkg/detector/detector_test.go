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

package detector

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/netreconio/netpulse/pkg/models"
	"github.com/netreconio/netpulse/pkg/scan"
	"github.com/netreconio/netpulse/pkg/servicedb"
)

func TestMatchResponseSignatureSSH(t *testing.T) {
	if err := servicedb.InitAll(); err != nil {
		t.Fatalf("InitAll: %v", err)
	}

	sig, ok := matchResponseSignature("SSH-2.0-OpenSSH_9.6\r\n")
	if !ok {
		t.Fatal("expected a match for an OpenSSH banner")
	}

	if sig.Service != "ssh" || sig.Product != "OpenSSH" {
		t.Fatalf("got service=%q product=%q", sig.Service, sig.Product)
	}
}

func TestMatchResponseSignatureNoMatch(t *testing.T) {
	if err := servicedb.InitAll(); err != nil {
		t.Fatalf("InitAll: %v", err)
	}

	if _, ok := matchResponseSignature("not a recognizable banner at all"); ok {
		t.Fatal("expected no match for gibberish input")
	}
}

func TestDetectAgainstLoopbackBanner(t *testing.T) {
	if err := servicedb.InitAll(); err != nil {
		t.Fatalf("InitAll: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, acceptErr := ln.Accept()
		if acceptErr != nil {
			return
		}
		defer conn.Close()

		_, _ = conn.Write([]byte("SSH-2.0-OpenSSH_9.6\r\n"))
	}()

	addr := ln.Addr().(*net.TCPAddr)

	endpoint := models.NewEndpoint(net.ParseIP("127.0.0.1"))
	endpoint.UpsertPort(models.NewPort(uint16(addr.Port), models.TransportTCP))

	d := Detector{}

	results, err := d.Detect(context.Background(), endpoint, scan.DetectionConfig{
		Timeout:        2 * time.Second,
		MaxConcurrency: 4,
		MaxReadBytes:   4096,
	})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	if results[0].Service.Name != "ssh" {
		t.Fatalf("service name = %q, want ssh", results[0].Service.Name)
	}
}
