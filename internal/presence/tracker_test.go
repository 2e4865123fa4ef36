package presence

import (
	"os"
	"testing"

	"github.com/thereayou/chat-lite/internal/database"
	"github.com/thereayou/chat-lite/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTracker создает трекер поверх шлюза на временной sqlite-базе
func setupTracker(t *testing.T) (*Tracker, func()) {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "presence-*.db")
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

	if err := db.AutoMigrate(&models.PresenceRecord{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	cleanup := func() {
		os.Remove(tmpfile.Name())
	}

	return NewTracker(database.NewDatabase(db)), cleanup
}

func TestConnectSetsOnline(t *testing.T) {
	tracker, cleanup := setupTracker(t)
	defer cleanup()

	if err := tracker.Connect("alice"); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if !tracker.IsOnline("alice") {
		t.Errorf("alice not online after Connect")
	}

	snapshot, err := tracker.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snapshot["alice"] != Online {
		t.Errorf("snapshot[alice] = %q, want online", snapshot["alice"])
	}
}

func TestRepeatedConnectOverwrites(t *testing.T) {
	tracker, cleanup := setupTracker(t)
	defer cleanup()

	// Подключения не считаются — повторный connect просто перезаписывает
	tracker.Connect("alice")
	if err := tracker.Connect("alice"); err != nil {
		t.Fatalf("repeated Connect failed: %v", err)
	}

	snapshot, _ := tracker.Snapshot()
	if len(snapshot) != 1 {
		t.Errorf("got %d presence rows, want 1", len(snapshot))
	}
}

func TestDisconnectIdempotent(t *testing.T) {
	tracker, cleanup := setupTracker(t)
	defer cleanup()

	tracker.Connect("alice")
	tracker.Disconnect("alice")

	if tracker.IsOnline("alice") {
		t.Errorf("alice still online after Disconnect")
	}

	// Второй disconnect безвреден
	if err := tracker.Disconnect("alice"); err != nil {
		t.Fatalf("second Disconnect failed: %v", err)
	}

	snapshot, _ := tracker.Snapshot()
	if snapshot["alice"] != Offline {
		t.Errorf("snapshot[alice] = %q, want offline", snapshot["alice"])
	}
}

func TestSnapshotKeepsDisconnectedUsers(t *testing.T) {
	tracker, cleanup := setupTracker(t)
	defer cleanup()

	tracker.Connect("alice")
	tracker.Connect("bob")
	tracker.Disconnect("alice")

	// Строки присутствия никогда не удаляются
	snapshot, _ := tracker.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("got %d presence rows, want 2", len(snapshot))
	}
	if snapshot["alice"] != Offline || snapshot["bob"] != Online {
		t.Errorf("snapshot = %v", snapshot)
	}
}
