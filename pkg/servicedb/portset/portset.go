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

// Package portset expands a TargetPortsPreset (optionally unioned with a
// user-supplied list) into a concrete port number slice. This is the
// get_target_ports / expand_ports operation the original exposes as a
// standalone, directly callable command independent of a running scan.
package portset

import "github.com/netreconio/netpulse/pkg/models"

// commonPorts are the handful of ports an operator almost always cares
// about first.
var commonPorts = []uint16{
	21, 22, 23, 25, 53, 80, 110, 111, 135, 139, 143, 443, 445, 465, 587,
	631, 993, 995, 1433, 1521, 2049, 3306, 3389, 5432, 5900, 5984, 6379,
	6443, 8080, 8443, 9200, 11211, 27017,
}

// Expand turns a preset plus an optional user-supplied port list into a
// concrete, deduplicated, ascending-sorted slice of port numbers.
// Unknown preset strings fall back to PresetCommon.
func Expand(preset models.TargetPortsPreset, userPorts []uint16) []uint16 {
	switch preset {
	case models.PresetCustom:
		return dedupSorted(userPorts)
	case models.PresetWellKnown:
		return rangePorts(1, 1023)
	case models.PresetTop1000:
		return rangePorts(1, 1000)
	case models.PresetFull:
		return rangePorts(1, 65535)
	case models.PresetCommon:
		return dedupSorted(commonPorts)
	default:
		return dedupSorted(commonPorts)
	}
}

func rangePorts(lo, hi int) []uint16 {
	out := make([]uint16, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		out = append(out, uint16(p))
	}

	return out
}

func dedupSorted(ports []uint16) []uint16 {
	seen := make(map[uint16]struct{}, len(ports))

	out := make([]uint16, 0, len(ports))

	for _, p := range ports {
		if _, ok := seen[p]; ok {
			continue
		}

		seen[p] = struct{}{}

		out = append(out, p)
	}

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}

	return out
}
