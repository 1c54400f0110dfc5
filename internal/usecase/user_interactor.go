package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/EstateApp/internal/core/ports"
	"github.com/GoArmGo/EstateApp/internal/domain"
	"github.com/GoArmGo/EstateApp/internal/schema"
)

type userInteractor struct {
	userStorage ports.UserStorage
	validator   *schema.Validator
	logger      *slog.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase
func NewUserUseCase(userStorage ports.UserStorage, validator *schema.Validator, logger *slog.Logger) UserUseCase {
	return &userInteractor{userStorage: userStorage, validator: validator, logger: logger}
}

// ResolveOwner разрешает токен в id пользователя.
// Пустой или неизвестный токен дает domain.NoOwner без ошибки;
// сбой хранилища возвращается как ошибка и не маскируется под плохой токен.
func (i *userInteractor) ResolveOwner(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return domain.NoOwner, nil
	}

	user, err := i.userStorage.GetUserByToken(ctx, token)
	if err != nil {
		return domain.NoOwner, fmt.Errorf("разрешение токена: %w", err)
	}
	if user == nil {
		return domain.NoOwner, nil
	}
	return user.ID, nil
}

func (i *userInteractor) Register(ctx context.Context, p *schema.UserPayload) (string, error) {
	if verrs := i.validator.ValidateUser(p, false); len(verrs) > 0 {
		return "", verrs
	}

	// Токен генерируется здесь и только здесь,
	// значение из полезной нагрузки игнорируется
	token, err := schema.NewToken()
	if err != nil {
		return "", fmt.Errorf("генерация токена: %w", err)
	}

	user := &domain.User{Token: token}
	if p.Surname != nil {
		user.Surname = *p.Surname
	}
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Bday != nil {
		// Формат уже проверен валидацией
		if t, err := schema.ParseBday(*p.Bday); err == nil {
			user.Bday = &t
		}
	}

	if err := i.userStorage.CreateUser(ctx, user); err != nil {
		return "", err
	}

	i.logger.Info("user registered", "user_id", user.ID)
	return user.Token, nil
}

func (i *userInteractor) UpdateUser(ctx context.Context, id int64, p *schema.UserPayload) (int64, error) {
	user, err := i.userStorage.GetUserByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, domain.ErrNotFound
	}

	if verrs := i.validator.ValidateUser(p, true); len(verrs) > 0 {
		return 0, verrs
	}

	schema.ApplyUserPatch(user, p)
	if err := i.userStorage.UpdateUser(ctx, user); err != nil {
		return 0, err
	}
	return user.ID, nil
}
