/*-
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
	"context"
	"fmt"
	"log"
	"time"
)

// CleanOldData deletes every run (and its cascaded result rows) whose
// started_at predates retentionPeriod.
func (s *Store) CleanOldData(retentionPeriod time.Duration) (err error) {
	cutoff := time.Now().Add(-retentionPeriod)

	tx, err := s.beginTx()
	if err != nil {
		return err
	}
	defer rollbackOnError(tx, &err)

	if _, execErr := tx.Exec("DELETE FROM runs WHERE started_at < ?", cutoff); execErr != nil {
		err = fmt.Errorf("%w runs: %w", ErrFailedToClean, execErr)
		return err
	}

	err = tx.Commit()

	return err
}

// RetentionService periodically runs CleanOldData against the retention
// window; it implements lifecycle.Service so the daemon can start and
// stop it alongside the HTTP server.
type RetentionService struct {
	Store    *Store
	Interval time.Duration
	Retain   time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

const defaultCleanupInterval = time.Hour

// Start launches the periodic cleanup loop. It returns once the loop
// goroutine has been spawned; Stop blocks until it exits.
func (r *RetentionService) Start(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = defaultCleanupInterval
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				if err := r.Store.CleanOldData(r.Retain); err != nil {
					log.Printf("history: retention cleanup failed: %v", err)
				}
			}
		}
	}()

	return nil
}

// Stop cancels the cleanup loop and waits for it to exit or ctx to expire.
func (r *RetentionService) Stop(ctx context.Context) error {
	if r.cancel == nil {
		return nil
	}

	r.cancel()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
