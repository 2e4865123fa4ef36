package database

import (
	"errors"

	"github.com/thereayou/chat-lite/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	StatusPending = "pending"
	StatusFriends = "friends"
)

// pairKey нормализует пару имен в ключ, не зависящий от направления
func pairKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + "_" + userB
}

// CreateFriendRequest вставляет pending-заявку. Конкурентная вставка для той
// же пары упирается в уникальный индекс по pair_key и молча игнорируется,
// так что запись на пару всегда одна.
func (d *Database) CreateFriendRequest(sender, receiver string) error {
	req := models.FriendRequest{
		PairKey:  pairKey(sender, receiver),
		Sender:   sender,
		Receiver: receiver,
		Status:   StatusPending,
	}
	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pair_key"}},
		DoNothing: true,
	}).Create(&req).Error
}

// GetRelationship ищет запись пары независимо от направления; nil — записи нет
func (d *Database) GetRelationship(userA, userB string) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := d.db.Where("pair_key = ?", pairKey(userA, userB)).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// AcceptFriendRequest переводит pending в friends, возвращает число затронутых строк.
// Условие на status делает повторный accept пустой операцией.
func (d *Database) AcceptFriendRequest(sender, receiver string) (int64, error) {
	res := d.db.Model(&models.FriendRequest{}).
		Where("sender = ? AND receiver = ? AND status = ?", sender, receiver, StatusPending).
		Update("status", StatusFriends)
	return res.RowsAffected, res.Error
}
