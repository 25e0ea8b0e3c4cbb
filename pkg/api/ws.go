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
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/netreconio/netpulse/pkg/events"
)

var _ events.Emitter = (*WebSocketHub)(nil)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// wsEvent is the wire shape broadcast to every connected client.
type wsEvent struct {
	Name    string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// WebSocketHub implements events.Emitter by fanning every emitted event
// out to all currently-connected WebSocket clients as JSON.
type WebSocketHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan wsEvent
}

// NewWebSocketHub builds an empty hub.
func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{clients: make(map[*websocket.Conn]chan wsEvent)}
}

// Emit fans name/payload out to every connected client's send queue.
// A client whose queue is full is dropped rather than blocking the
// scan pipeline.
func (h *WebSocketHub) Emit(name string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ev := wsEvent{Name: name, Payload: payload}

	for conn, ch := range h.clients {
		select {
		case ch <- ev:
		default:
			log.Printf("api: dropping slow websocket client %s", conn.RemoteAddr())
			delete(h.clients, conn)
			close(ch)
		}
	}
}

// ServeHTTP upgrades the request to a WebSocket and streams every
// emitted event to it until the client disconnects.
func (h *WebSocketHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("api: websocket upgrade failed: %v", err)
		return
	}

	ch := make(chan wsEvent, 64)

	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()

	defer h.removeClient(conn)

	go h.discardIncoming(conn)

	for ev := range ch {
		if err := conn.WriteJSON(ev); err != nil {
			return
		}
	}
}

// discardIncoming drains client->server frames so the connection's
// read deadline logic notices a disconnect; this hub is broadcast-only.
func (h *WebSocketHub) discardIncoming(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.removeClient(conn)
			return
		}
	}
}

func (h *WebSocketHub) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	ch, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
		close(ch)
	}
	h.mu.Unlock()

	_ = conn.Close()
}
