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
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/netreconio/netpulse/pkg/events"
	"github.com/netreconio/netpulse/pkg/history"
	"github.com/netreconio/netpulse/pkg/models"
)

type fakeHostScanner struct {
	report models.HostScanReport
	err    error
}

func (f fakeHostScanner) Scan(context.Context, string, models.HostScanSetting, events.Emitter) (models.HostScanReport, error) {
	return f.report, f.err
}

type fakePortScanner struct {
	report models.PortScanReport
	err    error
}

func (f fakePortScanner) Scan(context.Context, string, models.PortScanSetting, events.Emitter) (models.PortScanReport, error) {
	return f.report, f.err
}

type fakeNeighborScanner struct {
	report models.NeighborScanReport
	err    error
}

func (f fakeNeighborScanner) Scan(context.Context, string, string, events.Emitter) (models.NeighborScanReport, error) {
	return f.report, f.err
}

// syncMockRunStore wraps MockRunStore with a done channel so the test
// goroutine can wait for the server's background save to land.
type syncMockRunStore struct {
	*history.MockRunStore
	saved chan struct{}
}

func newSyncMockRunStore(ctrl *gomock.Controller) *syncMockRunStore {
	return &syncMockRunStore{MockRunStore: history.NewMockRunStore(ctrl), saved: make(chan struct{}, 8)}
}

func TestHandleListRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := newSyncMockRunStore(ctrl)

	want := []history.RunSummary{{RunID: "a", Kind: history.RunKindPortScan, Total: 3}}
	store.EXPECT().ListRuns(50).Return(want, nil)

	srv := NewServer(store, fakeHostScanner{}, fakePortScanner{}, fakePortScanner{}, fakeNeighborScanner{})

	req := httptest.NewRequest("GET", "/api/runs", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}

	var got []history.RunSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(got) != 1 || got[0].RunID != "a" {
		t.Fatalf("got %+v", got)
	}
}

func TestHandleGetRunNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := newSyncMockRunStore(ctrl)

	store.EXPECT().GetRun("missing").Return(history.RunSummary{}, history.ErrRunNotFound)

	srv := NewServer(store, fakeHostScanner{}, fakePortScanner{}, fakePortScanner{}, fakeNeighborScanner{})

	req := httptest.NewRequest("GET", "/api/runs/missing", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleTriggerHostScanRejectsEmptyTargets(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := newSyncMockRunStore(ctrl)

	srv := NewServer(store, fakeHostScanner{}, fakePortScanner{}, fakePortScanner{}, fakeNeighborScanner{})

	body, _ := json.Marshal(TriggerHostScanRequest{})
	req := httptest.NewRequest("POST", "/api/scan/hosts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleTriggerHostScanAcceptsAndSaves(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := newSyncMockRunStore(ctrl)

	var mu sync.Mutex
	var savedRunID string

	store.EXPECT().SaveHostScanReport(gomock.Any(), gomock.Any()).DoAndReturn(
		func(runID string, _ models.HostScanReport) error {
			mu.Lock()
			savedRunID = runID
			mu.Unlock()
			store.saved <- struct{}{}
			return nil
		})

	scanner := fakeHostScanner{report: models.HostScanReport{Total: 1}}
	srv := NewServer(store, scanner, fakePortScanner{}, fakePortScanner{}, fakeNeighborScanner{})

	body, _ := json.Marshal(TriggerHostScanRequest{Targets: []string{"127.0.0.1"}, TimeoutMS: 100})
	req := httptest.NewRequest("POST", "/api/scan/hosts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != 202 {
		t.Fatalf("status = %d, want 202", rec.Code)
	}

	var resp TriggerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.RunID == "" {
		t.Fatal("expected non-empty run id")
	}

	select {
	case <-store.saved:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for background save")
	}

	mu.Lock()
	defer mu.Unlock()

	if savedRunID != resp.RunID {
		t.Fatalf("savedRunID = %q, want %q", savedRunID, resp.RunID)
	}
}

func TestHandleTriggerPortScanRejectsInvalidIP(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := newSyncMockRunStore(ctrl)

	srv := NewServer(store, fakeHostScanner{}, fakePortScanner{}, fakePortScanner{}, fakeNeighborScanner{})

	body, _ := json.Marshal(TriggerPortScanRequest{IP: "not-an-ip"})
	req := httptest.NewRequest("POST", "/api/scan/ports", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleTriggerPortScanRejectsUnknownProtocol(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := newSyncMockRunStore(ctrl)

	srv := NewServer(store, fakeHostScanner{}, fakePortScanner{}, fakePortScanner{}, fakeNeighborScanner{})

	body, _ := json.Marshal(TriggerPortScanRequest{IP: "127.0.0.1", Protocol: "sctp"})
	req := httptest.NewRequest("POST", "/api/scan/ports", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
