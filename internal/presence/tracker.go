package presence

import (
	"log"
	"sync"
)

const (
	Online  = "online"
	Offline = "offline"
)

type Store interface {
	SetPresence(username, state string) error
	ListPresence() (map[string]string, error)
}

// Tracker держит в памяти множество подключенных пользователей и пишет
// каждый переход в хранилище. Память обновляется только после успешной
// записи, чтобы не разойтись с персистентным состоянием.
//
// Таймаута по heartbeat нет: упавшее без disconnect соединение оставляет
// пользователя online, пока read pump не заметит мертвый сокет.
type Tracker struct {
	mu    sync.RWMutex
	store Store
	state map[string]string
}

func NewTracker(store Store) *Tracker {
	return &Tracker{
		store: store,
		state: make(map[string]string),
	}
}

// Connect помечает пользователя online. Повторный connect перезаписывает.
func (t *Tracker) Connect(user string) error {
	if err := t.store.SetPresence(user, Online); err != nil {
		return err
	}

	t.mu.Lock()
	t.state[user] = Online
	t.mu.Unlock()

	return nil
}

// Disconnect помечает пользователя offline. Повторный вызов безвреден.
func (t *Tracker) Disconnect(user string) error {
	if err := t.store.SetPresence(user, Offline); err != nil {
		return err
	}

	t.mu.Lock()
	t.state[user] = Offline
	t.mu.Unlock()

	return nil
}

func (t *Tracker) IsOnline(user string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state[user] == Online
}

// Snapshot возвращает присутствие всех известных пользователей из хранилища
func (t *Tracker) Snapshot() (map[string]string, error) {
	return t.store.ListPresence()
}

// UserOnline/UserOffline — адаптер под слушателя hub'а

func (t *Tracker) UserOnline(user string) {
	if err := t.Connect(user); err != nil {
		log.Printf("Failed to persist online state for %s: %v", user, err)
	}
}

func (t *Tracker) UserOffline(user string) {
	if err := t.Disconnect(user); err != nil {
		log.Printf("Failed to persist offline state for %s: %v", user, err)
	}
}
