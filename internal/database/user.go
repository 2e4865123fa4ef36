package database

import "github.com/thereayou/chat-lite/internal/models"

func (d *Database) SaveUser(user *models.User) error {
	if err := d.db.Create(user).Error; err != nil {
		return err
	}
	return nil
}

func (d *Database) FindUserByPhone(phone string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsersExcept возвращает всех пользователей кроме указанного (для списка контактов)
func (d *Database) ListUsersExcept(name string) ([]models.User, error) {
	var users []models.User
	if err := d.db.Where("name != ?", name).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
