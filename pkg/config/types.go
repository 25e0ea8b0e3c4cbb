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

package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration accepts either a numeric nanosecond count or a Go duration
// string ("500ms", "2s") when unmarshalled from JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

// AsDuration returns the stdlib time.Duration value.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// NetpulseConfig is the daemon's top-level configuration file shape.
type NetpulseConfig struct {
	ListenAddr    string   `json:"listen_addr"`              // e.g., :8080
	HistoryDBPath string   `json:"history_db_path"`          // e.g., /var/lib/netpulse/history.db
	RetentionDays int      `json:"retention_days"`           // run history retention window
	ScanProfile   string   `json:"scan_profile,omitempty"`   // overrides NETPULSE_SCAN_PROFILE
	Interface     string   `json:"interface,omitempty"`      // not read by netpulsed; neighbor scans take the interface from each request
	ServiceDBDir  string   `json:"service_db_dir,omitempty"` // not read by netpulsed; the bundled resources are always used
	ShutdownGrace Duration `json:"shutdown_grace,omitempty"`
}

const defaultRetentionDays = 30

// Validate implements config.Validator.
func (c *NetpulseConfig) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: listen_addr is required", errInvalidConfig)
	}

	if c.HistoryDBPath == "" {
		return fmt.Errorf("%w: history_db_path is required", errInvalidConfig)
	}

	if c.RetentionDays <= 0 {
		c.RetentionDays = defaultRetentionDays
	}

	return nil
}
