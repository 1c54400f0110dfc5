package domain

import (
	"time"
)

// NoOwner — сентинел "владелец не найден" для проверки токена.
// Отличается от любого валидного id, так как id всегда неотрицательные.
const NoOwner int64 = -1

// User представляет модель пользователя в системе,
// соответствует таблице users в бд
type User struct {
	ID      int64      `json:"id" gorm:"primaryKey"`
	Surname string     `json:"surname"`
	Name    string     `json:"name"`
	Bday    *time.Time `json:"-"`
	// Токен выдается один раз при регистрации и не ротируется
	Token   string   `json:"-" gorm:"uniqueIndex"`
	Estates []Estate `json:"estate,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}
