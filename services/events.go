package services

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

// Client -> server events.
const (
	EventJoinChat         = "joinChat"
	EventJoinGroup        = "joinGroup"
	EventSendMessage      = "sendMessage"
	EventSendGroupMessage = "sendGroupMessage"
	EventSendGroupPost    = "sendGroupPost"
	EventSendPost         = "sendPost"
)

// Server -> client events.
const (
	EventJoinedRoom   = "joinedRoom"
	EventJoinedGroup  = "joinedGroup"
	EventMessage      = "message"
	EventGroupMessage = "groupMessage"
	EventGroupPost    = "groupPost"
	EventPost         = "post"
	EventError        = "error"
	EventConnectError = "connect_error"
)

// Envelope frames every message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type JoinChatPayload struct {
	RecipientID string `json:"recipientId" validate:"required"`
}

type JoinGroupPayload struct {
	GroupID string `json:"groupId" validate:"required"`
}

type SendMessagePayload struct {
	RecipientID string `json:"recipientId" validate:"required"`
	Content     string `json:"content" validate:"required,max=2000"`
}

type SendGroupMessagePayload struct {
	GroupID string `json:"groupId" validate:"required"`
	Content string `json:"content" validate:"required,max=2000"`
}

type SendGroupPostPayload struct {
	GroupID string `json:"groupId" validate:"required"`
	Content string `json:"content" validate:"required,max=2000"`
	Image   string `json:"image,omitempty"`
}

type SendPostPayload struct {
	Content string `json:"content" validate:"required,max=2000"`
	Image   string `json:"image,omitempty"`
}

type JoinedRoomPayload struct {
	RoomID string `json:"roomId"`
}

type JoinedGroupPayload struct {
	GroupID string `json:"groupId"`
}

type MessagePayload struct {
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

type GroupMessagePayload struct {
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Content    string `json:"content"`
	CreatedAt  string `json:"createdAt"`
}

// CreatorSummary is the author snapshot embedded in post events.
type CreatorSummary struct {
	ID             string `json:"_id"`
	UserName       string `json:"userName"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type GroupPostPayload struct {
	ID        string         `json:"_id"`
	GroupID   string         `json:"groupId"`
	Creator   CreatorSummary `json:"creator"`
	Content   string         `json:"content"`
	Image     string         `json:"image,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

type PostPayload struct {
	ID        string         `json:"_id"`
	Type      string         `json:"type"`
	Creator   CreatorSummary `json:"creator"`
	Content   string         `json:"content"`
	Image     string         `json:"image,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

var validate = validator.New()

// decodePayload parses the event data into a typed payload and validates
// it, so malformed input never reaches the persistence layer.
func decodePayload(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return &ValidationError{Message: "Missing event payload"}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ValidationError{Message: "Invalid event payload"}
	}
	if err := validate.Struct(v); err != nil {
		return &ValidationError{Message: "Invalid event payload: " + err.Error()}
	}
	return nil
}
