package services

import (
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const sendBufferSize = 256

// Client is one admitted websocket connection.
type Client struct {
	Conn         *websocket.Conn
	Send         chan []byte
	UserID       string
	ConnectionID string
	closeOnce    sync.Once
}

func NewClient(conn *websocket.Conn, userID string) *Client {
	return &Client{
		Conn:         conn,
		Send:         make(chan []byte, sendBufferSize),
		UserID:       userID,
		ConnectionID: uuid.NewString(),
	}
}

// SendEvent queues an event for delivery to this client. A full send
// buffer drops the frame rather than blocking the caller. Only the
// client's own read loop calls this, and the loop unregisters the client
// after it returns, so the send cannot race the channel close.
func (c *Client) SendEvent(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s payload: %v", event, err)
		return
	}
	msg, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("Failed to marshal %s envelope: %v", event, err)
		return
	}
	select {
	case c.Send <- msg:
	default:
		log.Printf("Send buffer full, skipping client: %s", c.ConnectionID)
	}
}

// WritePump drains the send channel onto the socket.
func (c *Client) WritePump() {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// CloseSend closes the send channel exactly once.
func (c *Client) CloseSend() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// PairwiseRoom names the one-on-one chat room for two users. Sorting makes
// the name identical no matter which side computes it.
func PairwiseRoom(userA, userB string) string {
	ids := []string{userA, userB}
	sort.Strings(ids)
	return strings.Join(ids, "-")
}

// Hub owns the room membership table. Rooms exist only in memory; a
// restart drops them all and clients re-join on reconnect.
type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*Client]struct{}
	clientRooms map[*Client]map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:       make(map[string]map[*Client]struct{}),
		clientRooms: make(map[*Client]map[string]struct{}),
	}
}

// Register admits a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if _, ok := h.clientRooms[c]; !ok {
		h.clientRooms[c] = make(map[string]struct{})
	}
	h.mu.Unlock()
	log.Printf("User connected: %s (connection %s)", c.UserID, c.ConnectionID)
}

// Join adds the client to a room.
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	if h.clientRooms[c] == nil {
		h.clientRooms[c] = make(map[string]struct{})
	}
	h.clientRooms[c][room] = struct{}{}
}

// Leave removes the client from a room.
func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromRoom(c, room)
	delete(h.clientRooms[c], room)
}

// Unregister removes the client from every room and closes its send
// channel. Called on disconnect. The close happens inside the write-lock
// critical section so it cannot interleave with Broadcast's sends.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	for room := range h.clientRooms[c] {
		h.removeFromRoom(c, room)
	}
	delete(h.clientRooms, c)
	c.CloseSend()
	h.mu.Unlock()
	log.Printf("User disconnected: %s (connection %s)", c.UserID, c.ConnectionID)
}

// caller must hold h.mu
func (h *Hub) removeFromRoom(c *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Broadcast sends one event to every client joined to any of the rooms.
// A client in several target rooms still receives the event exactly once.
func (h *Hub) Broadcast(rooms []string, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s payload: %v", event, err)
		return
	}
	msg, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("Failed to marshal %s envelope: %v", event, err)
		return
	}

	// sends stay under the read lock: Unregister closes a send channel
	// only while holding the write lock, so no channel can be closed
	// between membership lookup and the send. The sends never block.
	h.mu.RLock()
	defer h.mu.RUnlock()

	targets := make(map[*Client]struct{})
	for _, room := range rooms {
		for c := range h.rooms[room] {
			targets[c] = struct{}{}
		}
	}
	for c := range targets {
		select {
		case c.Send <- msg:
		default:
			log.Printf("Send buffer full, skipping client: %s", c.ConnectionID)
		}
	}
}
