package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/EstateApp/internal/domain"
	"gorm.io/gorm"
)

// UserStorage реализует интерфейс ports.UserStorage с использованием GORM
type UserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *gorm.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// CreateUser сохраняет нового пользователя с уже сгенерированным токеном
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	result := s.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		return fmt.Errorf("ошибка при сохранении пользователя: %w", result.Error)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return nil
}

// GetUserByID получает пользователя по id, nil без ошибки если записи нет
func (s *UserStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по id: %w", result.Error)
	}
	return &user, nil
}

// GetUserByToken ищет пользователя по точному совпадению токена.
// Возвращает nil без ошибки, если токен никому не принадлежит.
func (s *UserStorage) GetUserByToken(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("token = ?", token).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при поиске пользователя по токену: %w", result.Error)
	}
	return &user, nil
}

// UpdateUser сохраняет измененные поля пользователя.
// Токен этим методом не меняется никогда.
func (s *UserStorage) UpdateUser(ctx context.Context, user *domain.User) error {
	result := s.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"surname": user.Surname,
			"name":    user.Name,
			"bday":    user.Bday,
		})
	if result.Error != nil {
		return fmt.Errorf("ошибка при обновлении пользователя: %w", result.Error)
	}

	s.logger.Info("user updated", "user_id", user.ID)
	return nil
}
