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

// Package netiface is the narrow default-interface/gateway-lookup
// boundary the neighbor scanner depends on (the "netdev crate" in the
// original). The core only ever talks to the Router interface; the real
// implementation here reads /proc/net/route plus net.Interfaces(), in
// the general idiom of CIDR/interface parsing used across the pack.
package netiface

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Router resolves the default gateway and the local addresses of a
// named interface (empty name means "the default interface").
type Router interface {
	// DefaultRoute returns the gateway IP and every local address bound
	// to the interface that owns the default route. No choice is made
	// among those addresses, and a more specific route is not
	// considered.
	DefaultRoute(ifaceName string) (gateway net.IP, localAddrs []net.IP, err error)
}

// LinuxRouter reads /proc/net/route (present on any Linux-shaped
// system) to find the default route, then net.Interfaces() for the
// matching interface's bound addresses.
type LinuxRouter struct {
	RouteFile string
}

var _ Router = LinuxRouter{}

// NewLinuxRouter builds a LinuxRouter reading the standard
// /proc/net/route location.
func NewLinuxRouter() LinuxRouter {
	return LinuxRouter{RouteFile: "/proc/net/route"}
}

// DefaultRoute implements Router.
func (r LinuxRouter) DefaultRoute(ifaceName string) (net.IP, []net.IP, error) {
	name := ifaceName

	var gateway net.IP

	if name == "" {
		var err error

		name, gateway, err = r.defaultInterfaceFromRouteTable()
		if err != nil {
			return nil, nil, err
		}
	} else {
		var err error

		gateway, err = r.gatewayFor(name)
		if err != nil {
			return nil, nil, err
		}
	}

	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, nil, fmt.Errorf("netiface: looking up interface %q: %w", name, err)
	}

	addrs, err := iface.Addrs()
	if err != nil {
		return nil, nil, fmt.Errorf("netiface: reading addresses for %q: %w", name, err)
	}

	var locals []net.IP

	for _, a := range addrs {
		if ipNet, ok := a.(*net.IPNet); ok {
			locals = append(locals, ipNet.IP)
		}
	}

	return gateway, locals, nil
}

// defaultInterfaceFromRouteTable finds the interface name and gateway
// for the 0.0.0.0/0 route.
func (r LinuxRouter) defaultInterfaceFromRouteTable() (string, net.IP, error) {
	f, err := os.Open(r.RouteFile)
	if err != nil {
		return "", nil, fmt.Errorf("netiface: opening %s: %w", r.RouteFile, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Scan() // header line

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}

		iface, destHex, gatewayHex := fields[0], fields[1], fields[2]
		if destHex != "00000000" {
			continue // not the default route
		}

		gw, err := hexLittleEndianToIP(gatewayHex)
		if err != nil {
			continue
		}

		return iface, gw, nil
	}

	return "", nil, fmt.Errorf("netiface: no default route found in %s", r.RouteFile)
}

func (r LinuxRouter) gatewayFor(ifaceName string) (net.IP, error) {
	f, err := os.Open(r.RouteFile)
	if err != nil {
		return nil, fmt.Errorf("netiface: opening %s: %w", r.RouteFile, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Scan()

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}

		if fields[0] != ifaceName || fields[1] != "00000000" {
			continue
		}

		return hexLittleEndianToIP(fields[2])
	}

	return nil, fmt.Errorf("netiface: no default route on interface %q", ifaceName)
}

func hexLittleEndianToIP(hexStr string) (net.IP, error) {
	v, err := strconv.ParseUint(hexStr, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("netiface: parsing route hex %q: %w", hexStr, err)
	}

	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))

	return net.IPv4(b[0], b[1], b[2], b[3]), nil
}
