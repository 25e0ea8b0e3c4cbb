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

package tuner

import "testing"

func TestParseProfile(t *testing.T) {
	cases := map[string]Profile{
		"conservative": ProfileConservative,
		"SLOW":         ProfileConservative,
		"low":          ProfileConservative,
		"aggressive":   ProfileAggressive,
		"turbo":        ProfileAggressive,
		"":             ProfileBalanced,
		"unknown":      ProfileBalanced,
	}

	for in, want := range cases {
		if got := ParseProfile(in); got != want {
			t.Errorf("ParseProfile(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestComputeWithinClamps(t *testing.T) {
	for _, goos := range []string{"windows", "linux", "darwin", "freebsd"} {
		for _, profile := range []Profile{ProfileConservative, ProfileBalanced, ProfileAggressive} {
			for _, cpus := range []int{1, 4, 64, 256} {
				c := compute(cpus, goos, profile)

				if c.Hosts < hostClampMin || c.Hosts > hostClampMax {
					t.Errorf("hosts out of clamp: goos=%s profile=%s cpus=%d hosts=%d", goos, profile, cpus, c.Hosts)
				}

				if c.Ports < portClampMin || c.Ports > portClampMax {
					t.Errorf("ports out of clamp: goos=%s profile=%s cpus=%d ports=%d", goos, profile, cpus, c.Ports)
				}
			}
		}
	}
}

func TestComputeProfileOrdering(t *testing.T) {
	const cpus = 4
	const goos = "linux"

	conservative := compute(cpus, goos, ProfileConservative)
	balanced := compute(cpus, goos, ProfileBalanced)
	aggressive := compute(cpus, goos, ProfileAggressive)

	if !(aggressive.Hosts >= balanced.Hosts && balanced.Hosts >= conservative.Hosts) {
		t.Errorf("expected aggressive >= balanced >= conservative for hosts, got %d/%d/%d",
			aggressive.Hosts, balanced.Hosts, conservative.Hosts)
	}

	if !(aggressive.Ports >= balanced.Ports && balanced.Ports >= conservative.Ports) {
		t.Errorf("expected aggressive >= balanced >= conservative for ports, got %d/%d/%d",
			aggressive.Ports, balanced.Ports, conservative.Ports)
	}
}

func TestGetMemoizes(t *testing.T) {
	first := Get()
	second := Get()

	if first != second {
		t.Errorf("Get() should be memoized, got %+v then %+v", first, second)
	}
}
