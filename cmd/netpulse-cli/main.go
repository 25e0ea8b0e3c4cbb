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

// Command netpulse-cli runs a single host, port, or neighbor scan
// from the terminal and prints the resulting report as JSON — no
// daemon, no history store, just the scan pipelines in pkg/scan.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/netreconio/netpulse/pkg/detector"
	"github.com/netreconio/netpulse/pkg/models"
	"github.com/netreconio/netpulse/pkg/netiface"
	"github.com/netreconio/netpulse/pkg/scan"
	"github.com/netreconio/netpulse/pkg/servicedb"
)

// consoleEmitter logs each event to stderr so stdout stays clean for
// the final JSON report.
type consoleEmitter struct{}

func (consoleEmitter) Emit(name string, payload interface{}) {
	log.Printf("%s %+v", name, payload)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error

	switch os.Args[1] {
	case "hosts":
		err = runHostScan(os.Args[2:])
	case "ports":
		err = runPortScan(os.Args[2:])
	case "neighbors":
		err = runNeighborScan(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("netpulse-cli: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: netpulse-cli <hosts|ports|neighbors> [flags]")
}

func runHostScan(args []string) error {
	fs := flag.NewFlagSet("hosts", flag.ExitOnError)

	targets := fs.String("targets", "", "comma-separated IP addresses (entries that are not IP literals, such as CIDRs or hostnames, are skipped)")
	timeout := fs.Duration("timeout", 2*time.Second, "per-probe timeout")
	retries := fs.Int("retries", 1, "retries per host")
	hopLimit := fs.Int("hop-limit", 64, "IP TTL / hop limit")
	concurrency := fs.Int("concurrency", 256, "max in-flight probes")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *targets == "" {
		return errMissingTargets
	}

	setting := models.HostScanSetting{
		Targets:     strings.Split(*targets, ","),
		Timeout:     *timeout,
		Retries:     *retries,
		HopLimit:    *hopLimit,
		Concurrency: *concurrency,
	}

	report, err := scan.ICMPHostScanner{}.Scan(context.Background(), uuid.NewString(), setting, consoleEmitter{})
	if err != nil {
		return err
	}

	return printJSON(report)
}

func runPortScan(args []string) error {
	fs := flag.NewFlagSet("ports", flag.ExitOnError)

	ip := fs.String("ip", "", "target IP address")
	protocol := fs.String("protocol", "tcp", "tcp or quic")
	preset := fs.String("preset", string(models.PresetCommon), "port preset: Common, WellKnown, Top1000, Full, Custom")
	userPorts := fs.String("user-ports", "", "comma-separated ports, used when preset=Custom")
	timeout := fs.Duration("timeout", 2*time.Second, "per-port timeout")
	concurrency := fs.Int("concurrency", 256, "max in-flight probes")
	detect := fs.Bool("detect", true, "run active service detection against open ports")

	if err := fs.Parse(args); err != nil {
		return err
	}

	parsedIP := net.ParseIP(*ip)
	if parsedIP == nil {
		return errInvalidIP
	}

	if err := servicedb.InitAll(); err != nil {
		return err
	}

	setting := models.PortScanSetting{
		IP:               parsedIP,
		Protocol:         models.PortScanProtocol(*protocol),
		Preset:           models.TargetPortsPreset(*preset),
		UserPorts:        parseUserPorts(*userPorts),
		Timeout:          *timeout,
		ServiceDetection: *detect,
		Concurrency:      *concurrency,
	}

	det := detector.Detector{}

	var scanner scan.PortScanner
	if setting.Protocol == models.ProtocolQUIC {
		scanner = scan.QUICPortScanner{Detector: det}
	} else {
		scanner = scan.TCPPortScanner{Detector: det}
	}

	report, err := scanner.Scan(context.Background(), uuid.NewString(), setting, consoleEmitter{})
	if err != nil {
		return err
	}

	return printJSON(report)
}

func runNeighborScan(args []string) error {
	fs := flag.NewFlagSet("neighbors", flag.ExitOnError)

	iface := fs.String("interface", "", "source interface; empty selects the default route")

	if err := fs.Parse(args); err != nil {
		return err
	}

	scanner := scan.GatewayNeighborScanner{
		Router:      netiface.NewLinuxRouter(),
		HostScanner: scan.ICMPHostScanner{},
	}

	report, err := scanner.Scan(context.Background(), uuid.NewString(), *iface, consoleEmitter{})
	if err != nil {
		return err
	}

	return printJSON(report)
}

func parseUserPorts(csv string) []uint16 {
	if csv == "" {
		return nil
	}

	parts := strings.Split(csv, ",")
	ports := make([]uint16, 0, len(parts))

	for _, p := range parts {
		var port uint16
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &port); err == nil {
			ports = append(ports, port)
		}
	}

	return ports
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
