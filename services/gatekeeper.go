package services

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"unichat/repository"
)

const handshakeTimeout = 10 * time.Second

// handshakeFrame is the first frame a client must send after the upgrade,
// carrying the claimed identity: {"auth":{"userId":"..."}}.
type handshakeFrame struct {
	Auth struct {
		UserID any `json:"userId"`
	} `json:"auth"`
}

// Gatekeeper authenticates new connections before any event handler runs.
type Gatekeeper struct {
	repo repository.Repository
}

func NewGatekeeper(repo repository.Repository) *Gatekeeper {
	return &Gatekeeper{repo: repo}
}

// Admit reads the handshake frame, validates the claimed user id against
// the store and returns the verified id. Any failure is terminal for the
// connection attempt.
func (g *Gatekeeper) Admit(conn *websocket.Conn) (string, error) {
	if err := conn.SetReadDeadline(time.Now().Add(handshakeTimeout)); err != nil {
		return "", &AuthError{Message: "User ID required"}
	}
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return "", &AuthError{Message: "User ID required"}
	}
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return "", &AuthError{Message: "User ID required"}
	}

	var frame handshakeFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return "", &AuthError{Message: "User ID required"}
	}
	if frame.Auth.UserID == nil {
		return "", &AuthError{Message: "User ID required"}
	}
	userID, ok := frame.Auth.UserID.(string)
	if !ok {
		return "", &AuthError{Message: "User ID must be a string"}
	}
	if userID == "" {
		return "", &AuthError{Message: "User ID required"}
	}

	user, err := g.repo.FindUserByID(userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("Authentication lookup failed for %s: %v", userID, err)
		}
		return "", &AuthError{Message: "User not found or not verified"}
	}
	if !user.IsVerified {
		return "", &AuthError{Message: "User not found or not verified"}
	}

	return user.ID, nil
}
