package database

import "github.com/thereayou/chat-lite/internal/models"

func (d *Database) AppendPrivateMessage(sender, receiver, body, file, timestamp string) (*models.PrivateMessage, error) {
	msg := models.PrivateMessage{
		Sender:   sender,
		Receiver: receiver,
		Message:  body,
		File:     file,
		Time:     timestamp,
	}
	if err := d.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListPrivateMessages возвращает переписку пары в порядке вставки
func (d *Database) ListPrivateMessages(peerA, peerB string) ([]models.PrivateMessage, error) {
	var messages []models.PrivateMessage
	err := d.db.
		Where("(sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)",
			peerA, peerB, peerB, peerA).
		Order("id ASC").
		Find(&messages).Error
	return messages, err
}

// MarkConversationRead помечает прочитанными все сообщения от peer к viewer
func (d *Database) MarkConversationRead(peer, viewer string) error {
	return d.db.Model(&models.PrivateMessage{}).
		Where("sender = ? AND receiver = ?", peer, viewer).
		Update("read", true).Error
}
