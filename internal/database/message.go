package database

import "github.com/thereayou/chat-lite/internal/models"

func (d *Database) AppendPublicMessage(author, body, timestamp string) (*models.PublicMessage, error) {
	msg := models.PublicMessage{
		Username: author,
		Message:  body,
		Time:     timestamp,
	}
	if err := d.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListPublicMessages возвращает историю общего чата в порядке вставки
func (d *Database) ListPublicMessages() ([]models.PublicMessage, error) {
	var messages []models.PublicMessage
	err := d.db.Order("id ASC").Find(&messages).Error
	return messages, err
}
