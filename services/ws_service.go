package services

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"unichat/config"
)

// WSService owns the websocket endpoint: upgrade, gatekeeping, event
// dispatch and disconnect cleanup.
type WSService struct {
	hub        *Hub
	relay      *Relay
	gatekeeper *Gatekeeper
	upgrader   websocket.Upgrader
}

func NewWSService(cfg config.Config, hub *Hub, relay *Relay, gatekeeper *Gatekeeper) *WSService {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	allowAll := false
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return &WSService{
		hub:        hub,
		relay:      relay,
		gatekeeper: gatekeeper,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// non-browser clients send no Origin header
				return origin == "" || allowAll || allowed[origin]
			},
		},
	}
}

// HandleWebSocket upgrades the connection, runs the gatekeeper, auto-joins
// the personal room and enters the read loop.
func (s *WSService) HandleWebSocket(ctx *gin.Context) {
	conn, err := s.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	userID, err := s.gatekeeper.Admit(conn)
	if err != nil {
		log.Printf("Authentication error: %v", err)
		s.rejectConnection(conn, err)
		return
	}

	client := NewClient(conn, userID)
	s.hub.Register(client)
	// every connection listens on its own personal room for posts
	s.hub.Join(client, userID)

	go client.WritePump()
	s.readLoop(client)
}

// rejectConnection reports the handshake failure and closes the socket.
// The connection is never admitted; no event handler runs.
func (s *WSService) rejectConnection(conn *websocket.Conn, err error) {
	payload, merr := json.Marshal(ErrorPayload{Message: "Authentication error: " + err.Error()})
	if merr == nil {
		frame, merr := json.Marshal(Envelope{Event: EventConnectError, Data: payload})
		if merr == nil {
			_ = conn.WriteMessage(websocket.TextMessage, frame)
		}
	}
	conn.Close()
}

func (s *WSService) readLoop(client *Client) {
	defer func() {
		s.hub.Unregister(client)
		client.Conn.Close()
	}()
	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			break
		}
		s.dispatch(client, raw)
	}
}

// dispatch parses one inbound frame and runs the matching handler. Every
// failure is reported back on the "error" event; nothing here closes the
// connection or leaks into other clients.
func (s *WSService) dispatch(client *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		client.SendEvent(EventError, ErrorPayload{Message: "Invalid message format"})
		return
	}

	switch env.Event {
	case EventJoinChat:
		var p JoinChatPayload
		if err := decodePayload(env.Data, &p); err != nil {
			client.SendEvent(EventError, errorPayload(err, "Failed to join chat"))
			return
		}
		room := PairwiseRoom(client.UserID, p.RecipientID)
		s.hub.Join(client, room)
		client.SendEvent(EventJoinedRoom, JoinedRoomPayload{RoomID: room})
		log.Printf("User %s joined room %s", client.UserID, room)

	case EventJoinGroup:
		var p JoinGroupPayload
		if err := decodePayload(env.Data, &p); err != nil {
			client.SendEvent(EventError, errorPayload(err, "Failed to join group"))
			return
		}
		s.hub.Join(client, p.GroupID)
		client.SendEvent(EventJoinedGroup, JoinedGroupPayload{GroupID: p.GroupID})
		log.Printf("User %s joined group %s", client.UserID, p.GroupID)

	case EventSendMessage:
		var p SendMessagePayload
		err := decodePayload(env.Data, &p)
		if err == nil {
			err = s.relay.SendMessage(client.UserID, p)
		}
		if err != nil {
			client.SendEvent(EventError, errorPayload(err, "Failed to send message"))
		}

	case EventSendGroupMessage:
		var p SendGroupMessagePayload
		err := decodePayload(env.Data, &p)
		if err == nil {
			err = s.relay.SendGroupMessage(client.UserID, p)
		}
		if err != nil {
			client.SendEvent(EventError, errorPayload(err, "Failed to send group message"))
		}

	case EventSendGroupPost:
		var p SendGroupPostPayload
		err := decodePayload(env.Data, &p)
		if err == nil {
			err = s.relay.SendGroupPost(client.UserID, p)
		}
		if err != nil {
			client.SendEvent(EventError, errorPayload(err, "Failed to send group post"))
		}

	case EventSendPost:
		var p SendPostPayload
		err := decodePayload(env.Data, &p)
		if err == nil {
			err = s.relay.SendPost(client.UserID, p)
		}
		if err != nil {
			client.SendEvent(EventError, errorPayload(err, "Failed to send post"))
		}

	default:
		log.Printf("Unknown event %q from user %s", env.Event, client.UserID)
	}
}
