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

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestWebSocketHubBroadcastsToConnectedClient(t *testing.T) {
	hub := NewWebSocketHub()

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeHTTP))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Give ServeHTTP a moment to register the client before emitting.
	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.Lock()
		n := len(hub.clients)
		hub.mu.Unlock()

		if n > 0 {
			break
		}

		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for client registration")
		}

		time.Sleep(time.Millisecond)
	}

	hub.Emit("hostscan:start", map[string]int{"total": 4})

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))

	var got wsEvent
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if got.Name != "hostscan:start" {
		t.Fatalf("got %+v", got)
	}
}

func TestWebSocketHubEmitWithNoClientsDoesNotBlock(t *testing.T) {
	hub := NewWebSocketHub()
	hub.Emit("noop", nil)
}
