// Package chathub broadcasts the engine's event stream to connected
// WebSocket clients, so a web UI can watch a session progress live. It is
// grounded on the teacher's ChatManager/websocket broadcast pattern in
// chat_websocket.go, generalized from chat messages to protocol events
// and given its own client registry keyed by a uuid.UUID per connection
// instead of a session ID threaded in from elsewhere.
package chathub

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Philippe-Colt/ft8chat/chatproto"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WireEvent is the JSON shape a connected client receives for every
// engine event, flattened from chatproto.Event into field names stable
// enough to be a public wire contract.
type WireEvent struct {
	Kind      string    `json:"kind"`
	Time      time.Time `json:"time"`
	State     string    `json:"state,omitempty"`
	StatusKey string    `json:"status_key,omitempty"`
	Current   int       `json:"current,omitempty"`
	Total     int       `json:"total,omitempty"`
	Sender    string    `json:"sender,omitempty"`
	Target    string    `json:"target,omitempty"`
	Text      string    `json:"text,omitempty"`
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan WireEvent
}

// Hub fans engine events out to every connected WebSocket client. It
// implements chatproto.Observer, so subscribing it to an Engine is enough
// to make every session visible live.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*client
	now     func() time.Time
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{clients: make(map[uuid.UUID]*client), now: time.Now}
}

// ServeHTTP upgrades the connection to a WebSocket and registers the
// client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("chathub: upgrade: %v", err)
		return
	}

	c := &client{id: uuid.New(), conn: conn, send: make(chan WireEvent, 32)}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c.id)
		h.mu.Unlock()
		conn.Close()
	}()

	go h.readLoop(c)
	h.writeLoop(c)
}

// readLoop discards inbound frames and closes the connection as soon as a
// read fails. No read deadline is set, so a peer that vanishes without
// closing is noticed only when the connection itself reports an error.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			c.conn.Close()
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	for ev := range c.send {
		if err := c.conn.WriteJSON(ev); err != nil {
			return
		}
	}
}

// OnEvent implements chatproto.Observer.
func (h *Hub) OnEvent(e chatproto.Event) {
	wire := toWireEvent(e, h.now())

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- wire:
		default:
			log.Printf("chathub: dropping event for slow client %s", c.id)
		}
	}
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func toWireEvent(e chatproto.Event, now time.Time) WireEvent {
	w := WireEvent{Time: now}
	switch e.Kind {
	case chatproto.EventStateChanged:
		w.Kind = "state_changed"
		w.State = e.NewState.String()
	case chatproto.EventStatusMessage:
		w.Kind = "status"
		w.StatusKey = string(e.StatusKey)
	case chatproto.EventFragmentProgress:
		w.Kind = "fragment_progress"
		w.Current, w.Total = e.FragCurrent, e.FragTotal
	case chatproto.EventMessageReceived:
		w.Kind = "message_received"
		w.Sender, w.Text = e.RxSenderID, e.RxFullText
	case chatproto.EventMessageSentOk:
		w.Kind = "message_sent_ok"
		w.Target = e.TargetID
	case chatproto.EventDirectTxReady:
		w.Kind = "direct_tx_ready"
		w.Total = e.NumFragments
	case chatproto.EventDirectTxComplete:
		w.Kind = "direct_tx_complete"
	case chatproto.EventDirectFragmentStarted:
		w.Kind = "direct_fragment_started"
		w.Current, w.Total = e.DFCurrent, e.DFTotal
		w.Text = e.DFCurrentText
	}
	return w
}

// marshalForTest exposes JSON encoding for tests without requiring a live
// WebSocket round trip.
func marshalForTest(e chatproto.Event) ([]byte, error) {
	return json.Marshal(toWireEvent(e, time.Now()))
}
