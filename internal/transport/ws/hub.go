package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgAssessmentSaved MessageType = "assessment_saved"
	MsgAssessmentReset MessageType = "assessment_reset"
	MsgReportReady     MessageType = "report_ready"
	MsgError           MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket subscriptions per project. Any number of open
// sessions may watch one project's save/progress events.
type Hub struct {
	conns map[string]map[*Connection]bool // projectID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one subscribed WebSocket session
type Connection struct {
	ProjectID string
	AnalystID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast to a project's watchers
type BroadcastMessage struct {
	ProjectID string
	Message   *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.ProjectID] == nil {
				h.conns[conn.ProjectID] = make(map[*Connection]bool)
			}
			h.conns[conn.ProjectID][conn] = true
			log.Printf("Analyst %s watching project %s", conn.AnalystID, conn.ProjectID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if watchers, ok := h.conns[conn.ProjectID]; ok {
				if watchers[conn] {
					delete(watchers, conn)
					close(conn.Send)
					log.Printf("Analyst %s stopped watching project %s", conn.AnalystID, conn.ProjectID)
				}
				if len(watchers) == 0 {
					delete(h.conns, conn.ProjectID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.ProjectID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToProject sends a message to every session watching the
// project (implements service.Broadcaster)
func (h *Hub) BroadcastToProject(projectID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		ProjectID: projectID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectProject drops all sessions watching a project (implements
// service.Broadcaster)
func (h *Hub) DisconnectProject(projectID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[projectID] {
		close(conn.Send)
		delete(h.conns[projectID], conn)
	}
	delete(h.conns, projectID)
}
