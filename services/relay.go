package services

import (
	"errors"
	"time"

	"unichat/models"
	"unichat/repository"
)

// Broadcaster is the room fan-out surface the relays depend on.
type Broadcaster interface {
	Broadcast(rooms []string, event string, payload any)
}

// Relay validates a send, persists it, then broadcasts the stored result.
// A document is never broadcast before it is durably persisted.
type Relay struct {
	repo repository.Repository
	hub  Broadcaster
}

func NewRelay(repo repository.Repository, hub Broadcaster) *Relay {
	return &Relay{repo: repo, hub: hub}
}

// SendMessage delivers a one-on-one chat message to the pairwise room.
func (r *Relay) SendMessage(senderID string, p SendMessagePayload) error {
	_, err := r.repo.FindUserByID(senderID)
	if err != nil {
		return userLookupError(err)
	}
	recipient, err := r.repo.FindUserByID(p.RecipientID)
	if err != nil {
		return userLookupError(err)
	}

	connected, err := r.repo.IsConnected(senderID, recipient.ID)
	if err != nil {
		return err
	}
	if !connected {
		return &ForbiddenError{
			Message:     "Recipient is not in your friend list. Please send a friend request first.",
			Action:      "sendFriendRequest",
			RecipientID: p.RecipientID,
		}
	}

	msg := &models.Message{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Content:     p.Content,
	}
	if err := r.repo.CreateMessage(msg); err != nil {
		return err
	}

	room := PairwiseRoom(senderID, recipient.ID)
	r.hub.Broadcast([]string{room}, EventMessage, MessagePayload{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Content:     msg.Content,
		CreatedAt:   msg.CreatedAt,
	})
	return nil
}

// SendGroupMessage delivers a chat message to the group room. Membership
// is re-checked on every send.
func (r *Relay) SendGroupMessage(senderID string, p SendGroupMessagePayload) error {
	sender, group, err := r.resolveGroupSend(senderID, p.GroupID)
	if err != nil {
		return err
	}

	msg := &models.GroupMessage{
		GroupID:  group.ID,
		SenderID: senderID,
		Content:  p.Content,
	}
	if err := r.repo.CreateGroupMessage(msg); err != nil {
		return err
	}

	r.hub.Broadcast([]string{group.ID}, EventGroupMessage, GroupMessagePayload{
		SenderID:   senderID,
		SenderName: sender.UserName,
		Content:    msg.Content,
		CreatedAt:  msg.CreatedAt.Format(time.RFC3339),
	})
	return nil
}

// SendGroupPost publishes a post on the group wall and fans it out to the
// group room.
func (r *Relay) SendGroupPost(senderID string, p SendGroupPostPayload) error {
	sender, group, err := r.resolveGroupSend(senderID, p.GroupID)
	if err != nil {
		return err
	}

	post := &models.GroupPost{
		GroupID:   group.ID,
		CreatorID: senderID,
		Content:   p.Content,
		Image:     p.Image,
	}
	if err := r.repo.CreateGroupPost(post); err != nil {
		return err
	}

	r.hub.Broadcast([]string{group.ID}, EventGroupPost, GroupPostPayload{
		ID:      post.ID,
		GroupID: group.ID,
		Creator: CreatorSummary{
			ID:             sender.ID,
			UserName:       sender.UserName,
			ProfilePicture: sender.ProfilePicture,
		},
		Content:   post.Content,
		Image:     post.Image,
		CreatedAt: post.CreatedAt,
	})
	return nil
}

// SendPost publishes a personal post and fans it out to the author's own
// personal room and each friend's personal room. Delivery is best-effort
// real-time; offline followers catch up through the feed read path.
func (r *Relay) SendPost(senderID string, p SendPostPayload) error {
	sender, err := r.repo.FindUserByID(senderID)
	if err != nil {
		return userLookupError(err)
	}

	post := &models.Post{
		CreatorID: senderID,
		Content:   p.Content,
		Image:     p.Image,
	}
	if err := r.repo.CreatePost(post); err != nil {
		return err
	}

	connectionIDs, err := r.repo.ConnectionIDs(senderID)
	if err != nil {
		return err
	}
	rooms := append([]string{senderID}, connectionIDs...)

	r.hub.Broadcast(rooms, EventPost, PostPayload{
		ID:   post.ID,
		Type: "personal",
		Creator: CreatorSummary{
			ID:             sender.ID,
			UserName:       sender.UserName,
			ProfilePicture: sender.ProfilePicture,
		},
		Content:   post.Content,
		Image:     post.Image,
		CreatedAt: post.CreatedAt,
	})
	return nil
}

func (r *Relay) resolveGroupSend(senderID, groupID string) (*models.User, *models.Group, error) {
	sender, err := r.repo.FindUserByID(senderID)
	if err != nil {
		return nil, nil, groupLookupError(err)
	}
	group, err := r.repo.FindGroupByID(groupID)
	if err != nil {
		return nil, nil, groupLookupError(err)
	}
	member, err := r.repo.IsGroupMember(group.ID, senderID)
	if err != nil {
		return nil, nil, err
	}
	if !member {
		return nil, nil, &ForbiddenError{Message: "You are not a member of this group"}
	}
	return sender, group, nil
}

func userLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Message: "User not found"}
	}
	return err
}

func groupLookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Message: "User or group not found"}
	}
	return err
}
