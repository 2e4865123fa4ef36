package models

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Phone        string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	Image        string
}
