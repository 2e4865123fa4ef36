package models

// FriendRequest — не больше одной записи на неупорядоченную пару {sender, receiver}.
// Инвариант держит уникальный индекс по PairKey — нормализованному ключу пары.
type FriendRequest struct {
	ID       uint   `gorm:"primaryKey"`
	PairKey  string `gorm:"uniqueIndex;not null"`
	Sender   string `gorm:"index;not null"`
	Receiver string `gorm:"index;not null"`
	Status   string `gorm:"not null;check:status IN ('pending','friends')"`
}
