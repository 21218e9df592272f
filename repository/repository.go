package repository

import (
	"errors"

	"gorm.io/gorm"

	"unichat/models"
)

// ErrNotFound is returned when a referenced user or group does not exist.
var ErrNotFound = errors.New("record not found")

// Repository is the durable-store surface the relay depends on. Everything
// is a simple find or insert; atomicity is the database's problem.
type Repository interface {
	FindUserByID(id string) (*models.User, error)
	FindGroupByID(id string) (*models.Group, error)
	ConnectionIDs(userID string) ([]string, error)
	IsConnected(userID, otherID string) (bool, error)
	IsGroupMember(groupID, userID string) (bool, error)

	CreateMessage(m *models.Message) error
	CreateGroupMessage(m *models.GroupMessage) error
	CreatePost(p *models.Post) error
	CreateGroupPost(p *models.GroupPost) error

	MessagesBetween(userID, otherID string) ([]models.Message, error)
	GroupMessages(groupID string) ([]models.GroupMessage, error)
}

type gormRepository struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindUserByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) FindGroupByID(id string) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *gormRepository) ConnectionIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.UserConnection{}).
		Where("user_id = ?", userID).
		Pluck("connection_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *gormRepository) IsConnected(userID, otherID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserConnection{}).
		Where("user_id = ? AND connection_id = ?", userID, otherID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) IsGroupMember(groupID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) CreateMessage(m *models.Message) error {
	return r.db.Create(m).Error
}

func (r *gormRepository) CreateGroupMessage(m *models.GroupMessage) error {
	return r.db.Create(m).Error
}

func (r *gormRepository) CreatePost(p *models.Post) error {
	return r.db.Create(p).Error
}

func (r *gormRepository) CreateGroupPost(p *models.GroupPost) error {
	return r.db.Create(p).Error
}

func (r *gormRepository) MessagesBetween(userID, otherID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *gormRepository) GroupMessages(groupID string) ([]models.GroupMessage, error) {
	var messages []models.GroupMessage
	err := r.db.
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
