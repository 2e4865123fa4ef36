package models

// PresenceRecord хранит состояние как строку online/offline, а не метку времени
type PresenceRecord struct {
	Username string `gorm:"primaryKey"`
	LastSeen string `gorm:"not null"`
}

func (PresenceRecord) TableName() string { return "online_users" }
