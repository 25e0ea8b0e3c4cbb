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

// Package progress coalesces fine-grained per-item completions into a
// bounded number of UI-facing progress events.
package progress

import (
	"sync"
	"sync/atomic"
	"time"
)

const minEmitInterval = 80 * time.Millisecond

// Throttle wraps a fixed total and decides, on each completion, whether
// the caller should emit a progress event. Safe for concurrent use.
type Throttle struct {
	total int64
	step  int64

	done int64 // atomic

	mu           sync.Mutex
	lastEmitted  int64
	lastEmitTime time.Time
}

// New builds a Throttle for total items. total must be >= 0; a total of
// zero always emits immediately (done == total trivially holds).
func New(total int) *Throttle {
	step := total / 100
	if step < 1 {
		step = 1
	}

	return &Throttle{
		total:        int64(total),
		step:         int64(step),
		lastEmitTime: time.Now(),
	}
}

// Advance records one more completion and reports the new done count
// plus whether the caller should emit a progress event now.
func (t *Throttle) Advance() (done int, shouldEmit bool) {
	d := atomic.AddInt64(&t.done, 1)

	if d == t.total {
		t.mu.Lock()
		t.lastEmitted = d
		t.lastEmitTime = time.Now()
		t.mu.Unlock()

		return int(d), true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	since := time.Since(t.lastEmitTime)
	if d-t.lastEmitted >= t.step || since >= minEmitInterval {
		t.lastEmitted = d
		t.lastEmitTime = time.Now()

		return int(d), true
	}

	return int(d), false
}

// Done returns the current completion count.
func (t *Throttle) Done() int {
	return int(atomic.LoadInt64(&t.done))
}

// Total returns the fixed total passed to New.
func (t *Throttle) Total() int {
	return int(t.total)
}
