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

package models

// PortState is the classification outcome of a single port probe.
type PortState string

const (
	PortOpen     PortState = "open"
	PortClosed   PortState = "closed"
	PortFiltered PortState = "filtered"
)

// HostState is the classification outcome of a single host probe.
type HostState string

const (
	HostAlive       HostState = "alive"
	HostUnreachable HostState = "unreachable"
)

// PortScanProtocol selects which transport a port scan probes with.
type PortScanProtocol string

const (
	ProtocolTCP  PortScanProtocol = "tcp"
	ProtocolQUIC PortScanProtocol = "quic"
)

// TargetPortsPreset names a canned port set. Unknown strings fall back to
// PresetCommon (see pkg/servicedb/portset).
type TargetPortsPreset string

const (
	PresetCustom    TargetPortsPreset = "Custom"
	PresetCommon    TargetPortsPreset = "Common"
	PresetWellKnown TargetPortsPreset = "WellKnown"
	PresetTop1000   TargetPortsPreset = "Top1000"
	PresetFull      TargetPortsPreset = "Full"
)
