package models

// PublicMessage — сообщение общего чата, порядок задается автоинкрементным ID
type PublicMessage struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"not null"`
	Message  string `gorm:"not null"`
	Time     string
}

func (PublicMessage) TableName() string { return "messages" }

// PrivateMessage — ровно одно из полей Message/File заполнено при создании
type PrivateMessage struct {
	ID       uint   `gorm:"primaryKey"`
	Sender   string `gorm:"index;not null"`
	Receiver string `gorm:"index;not null"`
	Message  string
	File     string
	Time     string
	Read     bool `gorm:"default:false"`
}
