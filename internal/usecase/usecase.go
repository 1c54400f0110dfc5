package usecase

import (
	"context"

	"github.com/GoArmGo/EstateApp/internal/domain"
	"github.com/GoArmGo/EstateApp/internal/schema"
)

// EstateUseCase определяет бизнес-логику работы с объектами недвижимости и комнатами.
// Все мутации требуют, чтобы вызывающий был владельцем объекта.
type EstateUseCase interface {
	// SearchByCity возвращает все объекты в заданном городе.
	// Название города канонизируется в верхний регистр перед поиском.
	SearchByCity(ctx context.Context, city string) ([]domain.Estate, error)

	// GetEstate возвращает объект по id вместе с комнатами.
	// Возвращает domain.ErrNotFound, если записи нет.
	GetEstate(ctx context.Context, id int64) (*domain.Estate, error)

	// AddEstate создает объект с вложенными комнатами, владелец — вызывающий
	AddEstate(ctx context.Context, ownerID int64, p *schema.EstatePayload) (int64, error)

	// UpdateEstate переносит заполненные поля на существующий объект.
	// Поле rooms полезной нагрузки отбрасывается всегда.
	UpdateEstate(ctx context.Context, id, callerID int64, p *schema.EstatePayload) (int64, error)

	// DeleteEstate удаляет объект и каскадно его комнаты
	DeleteEstate(ctx context.Context, id, callerID int64) error

	// AddRoom создает комнату для существующего объекта.
	// Возвращает domain.ErrEstateRef, если id_estate отсутствует или не разрешается.
	AddRoom(ctx context.Context, callerID int64, p *schema.RoomPayload) (int64, error)

	// UpdateRoom переносит заполненные поля на существующую комнату,
	// включая id_estate: комнату можно перенести на другой объект
	// того же владельца. Права проверяются по владельцу родительского
	// объекта, при переносе — и по владельцу целевого.
	UpdateRoom(ctx context.Context, id, callerID int64, p *schema.RoomPayload) (int64, error)
}

// UserUseCase определяет бизнес-логику работы с пользователями и токенами
type UserUseCase interface {
	// ResolveOwner разрешает токен в id пользователя.
	// Возвращает domain.NoOwner без ошибки, если токен пуст или никому
	// не принадлежит; ошибка означает сбой хранилища, а не плохой токен.
	ResolveOwner(ctx context.Context, token string) (int64, error)

	// Register создает пользователя со свежесгенерированным токеном.
	// Клиентское значение поля token игнорируется.
	Register(ctx context.Context, p *schema.UserPayload) (string, error)

	// UpdateUser переносит заполненные поля на существующего пользователя.
	// Поля token и estate не меняются никогда.
	UpdateUser(ctx context.Context, id int64, p *schema.UserPayload) (int64, error)
}
