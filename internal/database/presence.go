package database

import (
	"github.com/thereayou/chat-lite/internal/models"
	"gorm.io/gorm/clause"
)

// SetPresence создает или перезаписывает строку присутствия пользователя
func (d *Database) SetPresence(username, state string) error {
	record := models.PresenceRecord{
		Username: username,
		LastSeen: state,
	}
	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_seen"}),
	}).Create(&record).Error
}

func (d *Database) ListPresence() (map[string]string, error) {
	var records []models.PresenceRecord
	if err := d.db.Find(&records).Error; err != nil {
		return nil, err
	}

	presence := make(map[string]string, len(records))
	for _, r := range records {
		presence[r.Username] = r.LastSeen
	}
	return presence, nil
}
