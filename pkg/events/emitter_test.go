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

package events

import "testing"

type recordingEmitter struct {
	names []string
}

func (r *recordingEmitter) Emit(name string, _ interface{}) {
	r.names = append(r.names, name)
}

func TestMultiEmitterFansOutToEveryChild(t *testing.T) {
	a, b := &recordingEmitter{}, &recordingEmitter{}

	m := MultiEmitter{Emitters: []Emitter{a, b, NoopEmitter{}}}

	m.Emit(HostScanStart, nil)
	m.Emit(HostScanDone, nil)

	for _, r := range []*recordingEmitter{a, b} {
		if len(r.names) != 2 || r.names[0] != HostScanStart || r.names[1] != HostScanDone {
			t.Fatalf("got %v, want [%s %s]", r.names, HostScanStart, HostScanDone)
		}
	}
}

func TestNoopEmitterDoesNotPanic(t *testing.T) {
	NoopEmitter{}.Emit("anything", 42)
}
