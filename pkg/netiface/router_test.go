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

package netiface

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleRouteTable = "Iface\tDestination\tGateway \tFlags\tRefCnt\tUse\tMetric\tMask\n" +
	"eth0\t00000000\t0101A8C0\t0003\t0\t0\t100\t00000000\n" +
	"eth0\t0001A8C0\t00000000\t0001\t0\t0\t100\t00FFFFFF\n"

func TestDefaultInterfaceFromRouteTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "route")

	if err := os.WriteFile(path, []byte(sampleRouteTable), 0o644); err != nil {
		t.Fatal(err)
	}

	r := LinuxRouter{RouteFile: path}

	iface, gw, err := r.defaultInterfaceFromRouteTable()
	if err != nil {
		t.Fatalf("defaultInterfaceFromRouteTable: %v", err)
	}

	if iface != "eth0" {
		t.Fatalf("iface = %q, want eth0", iface)
	}

	if gw.String() != "192.168.1.1" {
		t.Fatalf("gateway = %s, want 192.168.1.1", gw.String())
	}
}

func TestHexLittleEndianToIP(t *testing.T) {
	ip, err := hexLittleEndianToIP("0101A8C0")
	if err != nil {
		t.Fatal(err)
	}

	if ip.String() != "192.168.1.1" {
		t.Fatalf("got %s, want 192.168.1.1", ip.String())
	}
}
