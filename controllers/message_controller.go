package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"unichat/models"
	"unichat/repository"
)

// MessageController serves the pull-based history endpoints clients use to
// catch up on anything missed while disconnected.
type MessageController struct {
	repo repository.Repository
}

func NewMessageController(repo repository.Repository) *MessageController {
	return &MessageController{repo: repo}
}

// History returns the one-on-one conversation between two connected users.
// GET /api/messages/history?userId=&recipientId=
func (mc *MessageController) History(ctx *gin.Context) {
	userID := ctx.Query("userId")
	recipientID := ctx.Query("recipientId")
	if userID == "" || recipientID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "userId and recipientId are required"})
		return
	}

	user, err := mc.verifiedUser(ctx, userID)
	if err != nil {
		return
	}
	if _, err := mc.repo.FindUserByID(recipientID); err != nil {
		mc.lookupError(ctx, err, "User not found")
		return
	}

	connected, err := mc.repo.IsConnected(user.ID, recipientID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	if !connected {
		ctx.JSON(http.StatusForbidden, gin.H{
			"error":       "Recipient is not in your friend list. Please send a friend request first.",
			"action":      "sendFriendRequest",
			"recipientId": recipientID,
		})
		return
	}

	messages, err := mc.repo.MessagesBetween(user.ID, recipientID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GroupHistory returns a group's chat history to a current member.
// GET /api/groups/messages?groupId=&userId=
func (mc *MessageController) GroupHistory(ctx *gin.Context) {
	groupID := ctx.Query("groupId")
	userID := ctx.Query("userId")
	if groupID == "" || userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "groupId and userId are required"})
		return
	}

	user, err := mc.verifiedUser(ctx, userID)
	if err != nil {
		return
	}
	group, err := mc.repo.FindGroupByID(groupID)
	if err != nil {
		mc.lookupError(ctx, err, "User or group not found")
		return
	}

	member, err := mc.repo.IsGroupMember(group.ID, user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	if !member {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	messages, err := mc.repo.GroupMessages(group.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}

// verifiedUser resolves the caller and enforces the same verified check as
// the socket gatekeeper. Writes the response itself on failure.
func (mc *MessageController) verifiedUser(ctx *gin.Context, userID string) (*models.User, error) {
	user, err := mc.repo.FindUserByID(userID)
	if err != nil {
		mc.lookupError(ctx, err, "User not found")
		return nil, err
	}
	if !user.IsVerified {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or not verified"})
		return nil, errors.New("user not verified")
	}
	return user, nil
}

func (mc *MessageController) lookupError(ctx *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, repository.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
}
