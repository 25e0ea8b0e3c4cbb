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

package api

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/netreconio/netpulse/pkg/history"
	"github.com/netreconio/netpulse/pkg/models"
	"github.com/netreconio/netpulse/pkg/scan"
)

// Server wires the scan dispatchers and the run-history store to an
// HTTP surface a GUI or CLI client can drive: trigger a scan, list
// past runs, and watch progress events over a WebSocket.
type Server struct {
	router *mux.Router
	hub    *WebSocketHub

	store       history.RunStore
	hostScanner scan.HostScanner
	tcpScanner  scan.PortScanner
	quicScanner scan.PortScanner
	neighbor    scan.NeighborScanner
}

// NewServer builds a Server with routes registered and ready to serve.
func NewServer(
	store history.RunStore,
	hostScanner scan.HostScanner,
	tcpScanner, quicScanner scan.PortScanner,
	neighbor scan.NeighborScanner,
) *Server {
	s := &Server{
		router:      mux.NewRouter(),
		hub:         NewWebSocketHub(),
		store:       store,
		hostScanner: hostScanner,
		tcpScanner:  tcpScanner,
		quicScanner: quicScanner,
		neighbor:    neighbor,
	}

	s.setupRoutes()

	return s
}

// Handler returns the root http.Handler, ready to be passed to
// lifecycle.ServerOptions.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	apiRouter := s.router.PathPrefix("/api").Subrouter()

	apiRouter.HandleFunc("/runs", s.handleListRuns).Methods(http.MethodGet)
	apiRouter.HandleFunc("/runs/{id}", s.handleGetRun).Methods(http.MethodGet)
	apiRouter.HandleFunc("/runs/{id}/ports", s.handleGetRunPorts).Methods(http.MethodGet)

	apiRouter.HandleFunc("/scan/hosts", s.handleTriggerHostScan).Methods(http.MethodPost)
	apiRouter.HandleFunc("/scan/ports", s.handleTriggerPortScan).Methods(http.MethodPost)
	apiRouter.HandleFunc("/scan/neighbors", s.handleTriggerNeighborScan).Methods(http.MethodPost)

	s.router.HandleFunc("/ws/events", s.hub.ServeHTTP)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	const defaultListLimit = 50

	runs, err := s.store.ListRuns(defaultListLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	run, err := s.store.GetRun(runID)
	if err != nil {
		if err == history.ErrRunNotFound {
			writeError(w, http.StatusNotFound, err)
			return
		}

		writeError(w, http.StatusInternalServerError, err)

		return
	}

	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleGetRunPorts(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	rows, err := s.store.GetPortResults(runID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleTriggerHostScan(w http.ResponseWriter, r *http.Request) {
	var req TriggerHostScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if len(req.Targets) == 0 {
		writeError(w, http.StatusBadRequest, errNoTargets)
		return
	}

	runID := uuid.NewString()

	setting := models.HostScanSetting{
		Targets:     req.Targets,
		Timeout:     time.Duration(req.TimeoutMS) * time.Millisecond,
		Retries:     req.Retries,
		HopLimit:    req.HopLimit,
		Payload:     req.Payload,
		Ordered:     req.Ordered,
		Concurrency: req.Concurrency,
	}

	go s.runHostScan(runID, setting)

	writeJSON(w, http.StatusAccepted, TriggerResponse{RunID: runID})
}

func (s *Server) runHostScan(runID string, setting models.HostScanSetting) {
	report, err := s.hostScanner.Scan(context.Background(), runID, setting, s.hub)
	if err != nil {
		log.Printf("api: host scan %s failed: %v", runID, err)
		return
	}

	if err := s.store.SaveHostScanReport(runID, report); err != nil {
		log.Printf("api: host scan %s: failed to save report: %v", runID, err)
	}
}

func (s *Server) handleTriggerPortScan(w http.ResponseWriter, r *http.Request) {
	var req TriggerPortScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ip := net.ParseIP(req.IP)
	if ip == nil {
		writeError(w, http.StatusBadRequest, errInvalidIP)
		return
	}

	scanner, protocol, err := s.selectPortScanner(req.Protocol)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	runID := uuid.NewString()

	setting := models.PortScanSetting{
		IP:               ip,
		Protocol:         protocol,
		Preset:           models.TargetPortsPreset(req.Preset),
		UserPorts:        req.UserPorts,
		Timeout:          time.Duration(req.TimeoutMS) * time.Millisecond,
		Ordered:          req.Ordered,
		ServiceDetection: req.ServiceDetection,
		Hostname:         req.Hostname,
		Concurrency:      req.Concurrency,
	}

	go s.runPortScan(runID, scanner, setting)

	writeJSON(w, http.StatusAccepted, TriggerResponse{RunID: runID})
}

func (s *Server) selectPortScanner(protocol string) (scan.PortScanner, models.PortScanProtocol, error) {
	switch models.PortScanProtocol(protocol) {
	case models.ProtocolQUIC:
		return s.quicScanner, models.ProtocolQUIC, nil
	case models.ProtocolTCP, "":
		return s.tcpScanner, models.ProtocolTCP, nil
	default:
		return nil, "", errUnknownProtocol
	}
}

func (s *Server) runPortScan(runID string, scanner scan.PortScanner, setting models.PortScanSetting) {
	report, err := scanner.Scan(context.Background(), runID, setting, s.hub)
	if err != nil {
		log.Printf("api: port scan %s failed: %v", runID, err)
		return
	}

	if err := s.store.SavePortScanReport(report); err != nil {
		log.Printf("api: port scan %s: failed to save report: %v", runID, err)
	}
}

func (s *Server) handleTriggerNeighborScan(w http.ResponseWriter, r *http.Request) {
	var req TriggerNeighborScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	runID := uuid.NewString()

	go s.runNeighborScan(runID, req.Interface)

	writeJSON(w, http.StatusAccepted, TriggerResponse{RunID: runID})
}

func (s *Server) runNeighborScan(runID, ifaceName string) {
	report, err := s.neighbor.Scan(context.Background(), runID, ifaceName, s.hub)
	if err != nil {
		log.Printf("api: neighbor scan %s failed: %v", runID, err)
		return
	}

	if err := s.store.SaveNeighborScanReport(report); err != nil {
		log.Printf("api: neighbor scan %s: failed to save report: %v", runID, err)
	}
}
