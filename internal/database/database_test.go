package database

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/thereayou/chat-lite/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB создает шлюз на временной sqlite-базе
func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "chat-*.db")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tmpfile.Close()

	db, err := gorm.Open(sqlite.Open(tmpfile.Name()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.PublicMessage{},
		&models.PrivateMessage{},
		&models.FriendRequest{},
		&models.PresenceRecord{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	cleanup := func() {
		os.Remove(tmpfile.Name())
	}

	return NewDatabase(db), cleanup
}

func TestPublicMessageOrdering(t *testing.T) {
	d, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 5; i++ {
		if _, err := d.AppendPublicMessage("alice", fmt.Sprintf("msg-%d", i), "12:00"); err != nil {
			t.Fatalf("AppendPublicMessage failed: %v", err)
		}
	}

	messages, err := d.ListPublicMessages()
	if err != nil {
		t.Fatalf("ListPublicMessages failed: %v", err)
	}

	if len(messages) != 5 {
		t.Fatalf("got %d messages, want 5", len(messages))
	}

	// Порядок чтения должен совпадать с порядком вставки
	for i, msg := range messages {
		want := fmt.Sprintf("msg-%d", i)
		if msg.Message != want {
			t.Errorf("messages[%d] = %q, want %q", i, msg.Message, want)
		}
	}
}

func TestPublicMessageConcurrentAppend(t *testing.T) {
	d, cleanup := setupTestDB(t)
	defer cleanup()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			d.AppendPublicMessage("bob", fmt.Sprintf("msg-%d", n), "12:00")
		}(i)
	}
	wg.Wait()

	messages, err := d.ListPublicMessages()
	if err != nil {
		t.Fatalf("ListPublicMessages failed: %v", err)
	}

	if len(messages) != 10 {
		t.Fatalf("got %d messages, want 10", len(messages))
	}

	// ID монотонны независимо от порядка прихода
	for i := 1; i < len(messages); i++ {
		if messages[i].ID <= messages[i-1].ID {
			t.Errorf("messages not ordered by id: %d after %d", messages[i].ID, messages[i-1].ID)
		}
	}
}

func TestPrivateMessageConversation(t *testing.T) {
	d, cleanup := setupTestDB(t)
	defer cleanup()

	d.AppendPrivateMessage("alice", "bob", "hey", "", "12:00")
	d.AppendPrivateMessage("bob", "alice", "hi", "", "12:01")
	d.AppendPrivateMessage("alice", "carol", "other", "", "12:02")

	messages, err := d.ListPrivateMessages("alice", "bob")
	if err != nil {
		t.Fatalf("ListPrivateMessages failed: %v", err)
	}

	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}

	// Переписка одинакова с обеих сторон
	reversed, err := d.ListPrivateMessages("bob", "alice")
	if err != nil {
		t.Fatalf("ListPrivateMessages failed: %v", err)
	}
	if len(reversed) != 2 {
		t.Fatalf("reversed lookup got %d messages, want 2", len(reversed))
	}
}

func TestMarkConversationRead(t *testing.T) {
	d, cleanup := setupTestDB(t)
	defer cleanup()

	d.AppendPrivateMessage("alice", "bob", "hey", "", "12:00")
	d.AppendPrivateMessage("bob", "alice", "hi", "", "12:01")

	// bob открывает переписку — прочитаны только сообщения alice→bob
	if err := d.MarkConversationRead("alice", "bob"); err != nil {
		t.Fatalf("MarkConversationRead failed: %v", err)
	}

	messages, _ := d.ListPrivateMessages("alice", "bob")
	for _, msg := range messages {
		if msg.Sender == "alice" && !msg.Read {
			t.Errorf("message from alice not marked read")
		}
		if msg.Sender == "bob" && msg.Read {
			t.Errorf("message from bob must stay unread")
		}
	}
}

func TestAcceptFriendRequestIdempotent(t *testing.T) {
	d, cleanup := setupTestDB(t)
	defer cleanup()

	if err := d.CreateFriendRequest("bob", "alice"); err != nil {
		t.Fatalf("CreateFriendRequest failed: %v", err)
	}

	affected, err := d.AcceptFriendRequest("bob", "alice")
	if err != nil {
		t.Fatalf("AcceptFriendRequest failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("first accept affected %d rows, want 1", affected)
	}

	// Повторный accept не трогает ни одной строки
	affected, err = d.AcceptFriendRequest("bob", "alice")
	if err != nil {
		t.Fatalf("second AcceptFriendRequest failed: %v", err)
	}
	if affected != 0 {
		t.Errorf("second accept affected %d rows, want 0", affected)
	}
}

func TestAcceptMissingRequest(t *testing.T) {
	d, cleanup := setupTestDB(t)
	defer cleanup()

	affected, err := d.AcceptFriendRequest("bob", "alice")
	if err != nil {
		t.Fatalf("AcceptFriendRequest failed: %v", err)
	}
	if affected != 0 {
		t.Errorf("accept of missing request affected %d rows, want 0", affected)
	}
}

func TestConcurrentFriendRequestsKeepSinglePairRow(t *testing.T) {
	d, cleanup := setupTestDB(t)
	defer cleanup()

	// Встречные заявки стартуют одновременно; ошибки вставки здесь не
	// важны — важен инвариант одной записи на пару
	for i := 0; i < 200; i++ {
		start := make(chan struct{})
		var wg sync.WaitGroup
		for _, pair := range [][2]string{{"bob", "alice"}, {"alice", "bob"}} {
			wg.Add(1)
			go func(sender, receiver string) {
				defer wg.Done()
				<-start
				d.CreateFriendRequest(sender, receiver)
			}(pair[0], pair[1])
		}
		close(start)
		wg.Wait()

		var count int64
		if err := d.db.Model(&models.FriendRequest{}).Count(&count).Error; err != nil {
			t.Fatalf("iteration %d: count failed: %v", i, err)
		}
		if count > 1 {
			t.Fatalf("iteration %d: %d relationship rows for one unordered pair, want at most 1", i, count)
		}

		d.db.Where("1 = 1").Delete(&models.FriendRequest{})
	}
}

func TestDuplicateFriendRequestIgnoredAtStorage(t *testing.T) {
	d, cleanup := setupTestDB(t)
	defer cleanup()

	if err := d.CreateFriendRequest("bob", "alice"); err != nil {
		t.Fatalf("CreateFriendRequest failed: %v", err)
	}
	// Повторная вставка в обратном направлении упирается в pair_key
	if err := d.CreateFriendRequest("alice", "bob"); err != nil {
		t.Fatalf("reverse CreateFriendRequest failed: %v", err)
	}

	rel, err := d.GetRelationship("bob", "alice")
	if err != nil || rel == nil {
		t.Fatalf("GetRelationship = %v, %v", rel, err)
	}
	if rel.Sender != "bob" {
		t.Errorf("sender = %s, want bob (original direction preserved)", rel.Sender)
	}

	var count int64
	d.db.Model(&models.FriendRequest{}).Count(&count)
	if count != 1 {
		t.Errorf("got %d relationship rows, want 1", count)
	}
}

func TestGetRelationshipOrderIndependent(t *testing.T) {
	d, cleanup := setupTestDB(t)
	defer cleanup()

	d.CreateFriendRequest("bob", "alice")

	forward, err := d.GetRelationship("bob", "alice")
	if err != nil || forward == nil {
		t.Fatalf("GetRelationship(bob, alice) = %v, %v", forward, err)
	}

	backward, err := d.GetRelationship("alice", "bob")
	if err != nil || backward == nil {
		t.Fatalf("GetRelationship(alice, bob) = %v, %v", backward, err)
	}

	if forward.ID != backward.ID {
		t.Errorf("pair lookup returned different rows: %d vs %d", forward.ID, backward.ID)
	}

	none, err := d.GetRelationship("alice", "carol")
	if err != nil {
		t.Fatalf("GetRelationship failed: %v", err)
	}
	if none != nil {
		t.Errorf("expected nil for unrelated pair, got %+v", none)
	}
}

func TestSetPresenceUpsert(t *testing.T) {
	d, cleanup := setupTestDB(t)
	defer cleanup()

	if err := d.SetPresence("alice", "online"); err != nil {
		t.Fatalf("SetPresence failed: %v", err)
	}
	// Повторная запись перезаписывает, не дублирует
	if err := d.SetPresence("alice", "offline"); err != nil {
		t.Fatalf("SetPresence overwrite failed: %v", err)
	}

	presence, err := d.ListPresence()
	if err != nil {
		t.Fatalf("ListPresence failed: %v", err)
	}

	if len(presence) != 1 {
		t.Fatalf("got %d presence rows, want 1", len(presence))
	}
	if presence["alice"] != "offline" {
		t.Errorf("presence[alice] = %q, want offline", presence["alice"])
	}
}
