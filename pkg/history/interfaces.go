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

package history

import (
	"time"

	"github.com/netreconio/netpulse/pkg/models"
)

//go:generate mockgen -destination=mock_history.go -package=history github.com/netreconio/netpulse/pkg/history RunStore

// RunStore is the persistence contract pkg/api depends on; *Store is
// the concrete SQLite-backed implementation.
type RunStore interface {
	SaveHostScanReport(runID string, report models.HostScanReport) error
	SavePortScanReport(report models.PortScanReport) error
	SaveNeighborScanReport(report models.NeighborScanReport) error
	GetRun(runID string) (RunSummary, error)
	ListRuns(limit int) ([]RunSummary, error)
	GetPortResults(runID string) ([]PortResultRow, error)
	CleanOldData(retentionPeriod time.Duration) error
	Close() error
}

var _ RunStore = (*Store)(nil)
