package repository

import (
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"unichat/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserConnection{},
		&models.Group{},
		&models.GroupMember{},
		&models.Message{},
		&models.GroupMessage{},
		&models.Post{},
		&models.GroupPost{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, verified bool) *models.User {
	t.Helper()
	user := &models.User{UserName: name, IsVerified: verified}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", name, err)
	}
	return user
}

func connectUsers(t *testing.T, db *gorm.DB, a, b string) {
	t.Helper()
	rows := []models.UserConnection{
		{UserID: a, ConnectionID: b},
		{UserID: b, ConnectionID: a},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("failed to connect users: %v", err)
	}
}

func TestFindUserByID(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)

	user := seedUser(t, db, "alice", true)

	found, err := repo.FindUserByID(user.ID)
	if err != nil {
		t.Fatalf("FindUserByID() error = %v", err)
	}
	if found.UserName != "alice" || !found.IsVerified {
		t.Errorf("unexpected user: %+v", found)
	}

	if _, err := repo.FindUserByID("no-such-id"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFindGroupByID(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)

	group := &models.Group{Name: "study group"}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to seed group: %v", err)
	}

	found, err := repo.FindGroupByID(group.ID)
	if err != nil {
		t.Fatalf("FindGroupByID() error = %v", err)
	}
	if found.Name != "study group" {
		t.Errorf("unexpected group: %+v", found)
	}

	if _, err := repo.FindGroupByID("missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestConnections(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)

	alice := seedUser(t, db, "alice", true)
	bob := seedUser(t, db, "bob", true)
	carol := seedUser(t, db, "carol", true)
	connectUsers(t, db, alice.ID, bob.ID)

	ids, err := repo.ConnectionIDs(alice.ID)
	if err != nil {
		t.Fatalf("ConnectionIDs() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != bob.ID {
		t.Errorf("expected [%s], got %v", bob.ID, ids)
	}

	connected, err := repo.IsConnected(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("IsConnected() error = %v", err)
	}
	if !connected {
		t.Error("alice and bob should be connected")
	}

	connected, err = repo.IsConnected(alice.ID, carol.ID)
	if err != nil {
		t.Fatalf("IsConnected() error = %v", err)
	}
	if connected {
		t.Error("alice and carol should not be connected")
	}
}

func TestIsGroupMember(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)

	alice := seedUser(t, db, "alice", true)
	group := &models.Group{Name: "g"}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to seed group: %v", err)
	}
	if err := db.Create(&models.GroupMember{GroupID: group.ID, UserID: alice.ID}).Error; err != nil {
		t.Fatalf("failed to seed membership: %v", err)
	}

	member, err := repo.IsGroupMember(group.ID, alice.ID)
	if err != nil {
		t.Fatalf("IsGroupMember() error = %v", err)
	}
	if !member {
		t.Error("alice should be a member")
	}

	member, err = repo.IsGroupMember(group.ID, "someone-else")
	if err != nil {
		t.Fatalf("IsGroupMember() error = %v", err)
	}
	if member {
		t.Error("unknown user should not be a member")
	}
}

func TestCreateMessageRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)

	alice := seedUser(t, db, "alice", true)
	bob := seedUser(t, db, "bob", true)

	msg := &models.Message{SenderID: alice.ID, RecipientID: bob.ID, Content: "  hi there  "}
	if err := repo.CreateMessage(msg); err != nil {
		t.Fatalf("CreateMessage() error = %v", err)
	}
	if msg.ID == "" {
		t.Error("expected server-assigned message id")
	}
	if msg.CreatedAt.IsZero() {
		t.Error("expected server-assigned timestamp")
	}

	got, err := repo.MessagesBetween(bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("MessagesBetween() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got))
	}
	if got[0].SenderID != alice.ID || got[0].RecipientID != bob.ID {
		t.Errorf("round trip lost participants: %+v", got[0])
	}
	if got[0].Content != "hi there" {
		t.Errorf("expected trimmed content %q, got %q", "hi there", got[0].Content)
	}
	if _, err := time.Parse(time.RFC3339, got[0].CreatedAt.Format(time.RFC3339)); err != nil {
		t.Errorf("timestamp not parseable: %v", err)
	}
}

func TestCreateMessageRejectsInvalidContent(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)

	alice := seedUser(t, db, "alice", true)
	bob := seedUser(t, db, "bob", true)

	if err := repo.CreateMessage(&models.Message{SenderID: alice.ID, RecipientID: bob.ID, Content: "   "}); err == nil {
		t.Error("expected error for empty content")
	}
	long := strings.Repeat("x", 2001)
	if err := repo.CreateMessage(&models.Message{SenderID: alice.ID, RecipientID: bob.ID, Content: long}); err == nil {
		t.Error("expected error for oversized content")
	}

	var count int64
	db.Model(&models.Message{}).Count(&count)
	if count != 0 {
		t.Errorf("invalid messages must not persist, found %d rows", count)
	}
}

func TestGroupMessagesOrdered(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)

	alice := seedUser(t, db, "alice", true)
	group := &models.Group{Name: "g"}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to seed group: %v", err)
	}

	for _, content := range []string{"first", "second"} {
		msg := &models.GroupMessage{GroupID: group.ID, SenderID: alice.ID, Content: content}
		if err := repo.CreateGroupMessage(msg); err != nil {
			t.Fatalf("CreateGroupMessage(%q) error = %v", content, err)
		}
	}

	got, err := repo.GroupMessages(group.ID)
	if err != nil {
		t.Fatalf("GroupMessages() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Content != "first" || got[1].Content != "second" {
		t.Errorf("messages out of order: %q, %q", got[0].Content, got[1].Content)
	}
}

func TestCreatePosts(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)

	alice := seedUser(t, db, "alice", true)
	group := &models.Group{Name: "g"}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to seed group: %v", err)
	}

	post := &models.Post{CreatorID: alice.ID, Content: "my post", Image: " http://img "}
	if err := repo.CreatePost(post); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if post.ID == "" || post.Image != "http://img" {
		t.Errorf("unexpected post after create: %+v", post)
	}

	groupPost := &models.GroupPost{GroupID: group.ID, CreatorID: alice.ID, Content: "group post"}
	if err := repo.CreateGroupPost(groupPost); err != nil {
		t.Fatalf("CreateGroupPost() error = %v", err)
	}
	if groupPost.ID == "" {
		t.Error("expected server-assigned group post id")
	}
}
