package friends

import (
	"github.com/thereayou/chat-lite/internal/database"
	"github.com/thereayou/chat-lite/internal/models"
)

// Status — статус пары глазами конкретного пользователя
type Status string

const (
	StatusNone     Status = "none"
	StatusSent     Status = "sent"
	StatusIncoming Status = "incoming"
	StatusFriends  Status = "friends"
)

type Store interface {
	CreateFriendRequest(sender, receiver string) error
	GetRelationship(userA, userB string) (*models.FriendRequest, error)
	AcceptFriendRequest(sender, receiver string) (int64, error)
}

type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// SendRequest создает pending-заявку sender→receiver.
// Если запись для пары уже есть (pending или friends) — пустая операция.
func (e *Engine) SendRequest(sender, receiver string) error {
	rel, err := e.store.GetRelationship(sender, receiver)
	if err != nil {
		return err
	}
	if rel != nil {
		return nil
	}
	return e.store.CreateFriendRequest(sender, receiver)
}

// Accept принимает заявку requester→caller. Принять может только исходный
// получатель; несуществующая или уже принятая заявка — пустая операция.
func (e *Engine) Accept(caller, requester string) (bool, error) {
	affected, err := e.store.AcceptFriendRequest(requester, caller)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeriveStatus вычисляет отображаемый статус кандидата other для viewer
func (e *Engine) DeriveStatus(viewer, other string) (Status, error) {
	rel, err := e.store.GetRelationship(viewer, other)
	if err != nil {
		return StatusNone, err
	}

	switch {
	case rel == nil:
		return StatusNone, nil
	case rel.Status == database.StatusPending && rel.Sender == viewer:
		return StatusSent, nil
	case rel.Status == database.StatusPending && rel.Receiver == viewer:
		return StatusIncoming, nil
	default:
		return StatusFriends, nil
	}
}
