package ports

import (
	"context"

	"github.com/GoArmGo/EstateApp/internal/domain"
)

// EstateStorage определяет методы для взаимодействия с хранилищем объектов недвижимости
type EstateStorage interface {
	// CreateEstate сохраняет объект вместе с вложенными комнатами одной транзакцией
	CreateEstate(ctx context.Context, estate *domain.Estate) error

	// GetEstateByID получает объект по id вместе с комнатами
	GetEstateByID(ctx context.Context, id int64) (*domain.Estate, error)

	// SearchEstatesByCity получает все объекты в городе (город уже в верхнем регистре)
	SearchEstatesByCity(ctx context.Context, city string) ([]domain.Estate, error)

	// UpdateEstate сохраняет измененные поля объекта
	UpdateEstate(ctx context.Context, estate *domain.Estate) error

	// DeleteEstate удаляет объект и каскадно все его комнаты
	DeleteEstate(ctx context.Context, estate *domain.Estate) error
}

// RoomStorage определяет методы для взаимодействия с хранилищем комнат
type RoomStorage interface {
	CreateRoom(ctx context.Context, room *domain.Room) error
	GetRoomByID(ctx context.Context, id int64) (*domain.Room, error)
	UpdateRoom(ctx context.Context, room *domain.Room) error
}

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)

	// GetUserByToken ищет пользователя по точному совпадению токена,
	// возвращает nil без ошибки если совпадения нет
	GetUserByToken(ctx context.Context, token string) (*domain.User, error)

	UpdateUser(ctx context.Context, user *domain.User) error
}
