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

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/netreconio/netpulse/pkg/api"
	"github.com/netreconio/netpulse/pkg/config"
	"github.com/netreconio/netpulse/pkg/detector"
	"github.com/netreconio/netpulse/pkg/history"
	"github.com/netreconio/netpulse/pkg/lifecycle"
	"github.com/netreconio/netpulse/pkg/netiface"
	"github.com/netreconio/netpulse/pkg/scan"
	"github.com/netreconio/netpulse/pkg/servicedb"
	"github.com/netreconio/netpulse/pkg/tuner"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/netpulse/netpulsed.json", "Path to daemon config file")
	flag.Parse()

	var cfg config.NetpulseConfig
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		return err
	}

	if cfg.ScanProfile != "" {
		if err := os.Setenv(tuner.ProfileEnvVar, cfg.ScanProfile); err != nil {
			return err
		}
	}

	if err := servicedb.InitAll(); err != nil {
		return err
	}

	store, err := history.Open(cfg.HistoryDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	retention := &history.RetentionService{
		Store:  store,
		Retain: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
	}

	svc := detector.Detector{}
	hostScanner := scan.ICMPHostScanner{}

	srv := api.NewServer(
		store,
		hostScanner,
		scan.TCPPortScanner{Detector: svc},
		scan.QUICPortScanner{Detector: svc},
		scan.GatewayNeighborScanner{Router: netiface.NewLinuxRouter(), HostScanner: hostScanner},
	)

	opts := &lifecycle.ServerOptions{
		ListenAddr:  cfg.ListenAddr,
		ServiceName: "netpulsed",
		Service:     retention,
		Handler:     srv.Handler(),
	}

	return lifecycle.RunServer(context.Background(), opts)
}
