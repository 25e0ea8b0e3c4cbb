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

// ServiceInfo is the fingerprint the external detector produces for an
// open port. The core never interprets these fields; it only attaches
// them to the matching sample.
type ServiceInfo struct {
	Name      string  `json:"name"`
	Product   string  `json:"product,omitempty"`
	Version   string  `json:"version,omitempty"`
	ExtraInfo string  `json:"extra_info,omitempty"`
	Banner    string  `json:"banner,omitempty"`
	Tls       *TlsInfo `json:"tls,omitempty"`
}

// TlsInfo carries the details an opportunistic TLS handshake surfaced
// while detecting a service; algorithm names are as crypto/x509 reports
// them.
type TlsInfo struct {
	Subject            string   `json:"subject,omitempty"`
	Issuer              string   `json:"issuer,omitempty"`
	NotBefore           string   `json:"not_before,omitempty"`
	NotAfter            string   `json:"not_after,omitempty"`
	SubjectAltNames     []string `json:"subject_alt_names,omitempty"`
	SignatureAlgorithm  string   `json:"signature_algorithm,omitempty"`
	PublicKeyAlgorithm  string   `json:"public_key_algorithm,omitempty"`
	NegotiatedALPN      string   `json:"negotiated_alpn,omitempty"`
}

// ServiceProbe identifies a (payload, matcher) pair bundled in the probe
// database. The detector, not the core, interprets the payload/match
// rules — the core only routes probes by this identifier.
type ServiceProbe string

// ProbePayload is the raw bytes sent for a ServiceProbe plus the
// signature rule names that may match its response.
type ProbePayload struct {
	Probe         ServiceProbe `json:"probe"`
	Payload       []byte       `json:"payload"`
	MatchesRules  []string     `json:"matches_rules,omitempty"`
}

// ResponseSignature maps a response fragment to a named service.
type ResponseSignature struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Service string `json:"service"`
	Product string `json:"product,omitempty"`
}
