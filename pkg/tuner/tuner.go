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

// Package tuner computes the process-wide host- and port-scan
// concurrency caps from CPU count, OS, and an operator-selectable
// aggressiveness profile. The value is computed once per process and is
// read-only thereafter; callers may still override it per request.
package tuner

import (
	"os"
	"runtime"
	"strings"
	"sync"
)

// Profile is an operator-selectable aggressiveness tier.
type Profile string

const (
	ProfileConservative Profile = "conservative"
	ProfileBalanced     Profile = "balanced"
	ProfileAggressive   Profile = "aggressive"
)

// ProfileEnvVar is the environment variable consulted when no explicit
// profile override is supplied.
const ProfileEnvVar = "NETPULSE_SCAN_PROFILE"

// Concurrency is the tuner's output: caps for host and port scan
// dispatchers.
type Concurrency struct {
	Hosts int
	Ports int
}

const (
	hostBase        = 64
	portBase        = 200
	hostClampMin    = 128
	hostClampMax    = 2048
	portClampMin    = 300
	portClampMax    = 3000
	osFactorHostWin = 0.8
	osFactorHostLin = 1.0
	osFactorHostMac = 1.2
	osFactorPortWin = 0.6
	osFactorPortLin = 1.0
	osFactorPortMac = 1.3
	profileFactorConservative = 0.6
	profileFactorBalanced     = 1.0
	profileFactorAggressive   = 1.4
)

var (
	once      sync.Once
	singleton Concurrency
)

// Get returns the process-wide Concurrency value, computing it on first
// call and memoizing it for the lifetime of the process.
func Get() Concurrency {
	once.Do(func() {
		singleton = compute(runtime.NumCPU(), runtime.GOOS, ParseProfile(os.Getenv(ProfileEnvVar)))
	})

	return singleton
}

// ParseProfile maps an operator-supplied string (case-insensitive,
// including the original's synonyms) to a Profile; unrecognized input
// falls back to ProfileBalanced.
func ParseProfile(s string) Profile {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "conservative", "slow", "low":
		return ProfileConservative
	case "aggressive", "fast", "turbo":
		return ProfileAggressive
	default:
		return ProfileBalanced
	}
}

func profileFactor(p Profile) float64 {
	switch p {
	case ProfileConservative:
		return profileFactorConservative
	case ProfileAggressive:
		return profileFactorAggressive
	default:
		return profileFactorBalanced
	}
}

func osFactorHost(goos string) float64 {
	switch goos {
	case "windows":
		return osFactorHostWin
	case "darwin":
		return osFactorHostMac
	default:
		return osFactorHostLin
	}
}

func osFactorPort(goos string) float64 {
	switch goos {
	case "windows":
		return osFactorPortWin
	case "darwin":
		return osFactorPortMac
	default:
		return osFactorPortLin
	}
}

func compute(cpus int, goos string, profile Profile) Concurrency {
	pf := profileFactor(profile)

	hosts := int(hostBase * float64(cpus) * osFactorHost(goos) * pf)
	ports := int(portBase * float64(cpus) * osFactorPort(goos) * pf)

	return Concurrency{
		Hosts: clamp(hosts, hostClampMin, hostClampMax),
		Ports: clamp(ports, portClampMin, portClampMax),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
