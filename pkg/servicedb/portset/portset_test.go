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

package portset

import (
	"reflect"
	"testing"

	"github.com/netreconio/netpulse/pkg/models"
)

func TestExpandCustomDedupedSorted(t *testing.T) {
	got := Expand(models.PresetCustom, []uint16{65000, 1, 22, 1, 22})
	want := []uint16{1, 22, 65000}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Expand(Custom) = %v, want %v", got, want)
	}
}

func TestExpandUnknownPresetFallsBackToCommon(t *testing.T) {
	got := Expand(models.TargetPortsPreset("bogus"), nil)
	want := Expand(models.PresetCommon, nil)

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unknown preset should fall back to Common")
	}
}

func TestExpandWellKnownRange(t *testing.T) {
	got := Expand(models.PresetWellKnown, nil)

	if len(got) != 1023 {
		t.Fatalf("expected 1023 well-known ports, got %d", len(got))
	}

	if got[0] != 1 || got[len(got)-1] != 1023 {
		t.Fatalf("expected range [1,1023], got [%d,%d]", got[0], got[len(got)-1])
	}
}

func TestExpandFullRange(t *testing.T) {
	got := Expand(models.PresetFull, nil)

	if len(got) != 65535 {
		t.Fatalf("expected 65535 ports, got %d", len(got))
	}
}
