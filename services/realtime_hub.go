package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// WSClient is one connected app instance for a patient.
type WSClient struct {
	PatientID int
	Conn      *websocket.Conn
}

// RealtimeHub pushes small JSON events (meal logged, goals updated) to the
// patient's connected clients so screens can refresh without polling.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[int]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[int]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.PatientID] == nil {
		h.clients[c.PatientID] = make(map[*WSClient]struct{})
	}
	h.clients[c.PatientID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.PatientID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.PatientID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Broadcast sends a payload to every client of the patient. Write failures
// are ignored; a dead connection is cleaned up by its read loop.
func (h *RealtimeHub) Broadcast(patientID int, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[patientID] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
