package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/EstateApp/internal/core/ports"
	"github.com/GoArmGo/EstateApp/internal/domain"
	"github.com/GoArmGo/EstateApp/internal/schema"
)

type estateInteractor struct {
	estateStorage ports.EstateStorage
	roomStorage   ports.RoomStorage
	validator     *schema.Validator
	logger        *slog.Logger
}

// NewEstateUseCase создает новый экземпляр EstateUseCase
func NewEstateUseCase(
	estateStorage ports.EstateStorage,
	roomStorage ports.RoomStorage,
	validator *schema.Validator,
	logger *slog.Logger,
) EstateUseCase {
	return &estateInteractor{
		estateStorage: estateStorage,
		roomStorage:   roomStorage,
		validator:     validator,
		logger:        logger,
	}
}

func (i *estateInteractor) SearchByCity(ctx context.Context, city string) ([]domain.Estate, error) {
	canonical := schema.NormalizeCity(city)

	estates, err := i.estateStorage.SearchEstatesByCity(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("поиск по городу %q: %w", canonical, err)
	}

	i.logger.Info("search completed", "city", canonical, "results", len(estates))
	return estates, nil
}

func (i *estateInteractor) GetEstate(ctx context.Context, id int64) (*domain.Estate, error) {
	estate, err := i.estateStorage.GetEstateByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if estate == nil {
		return nil, domain.ErrNotFound
	}
	return estate, nil
}

func (i *estateInteractor) AddEstate(ctx context.Context, ownerID int64, p *schema.EstatePayload) (int64, error) {
	if verrs := i.validator.ValidateEstate(p, false); len(verrs) > 0 {
		return 0, verrs
	}

	estate := &domain.Estate{
		OwnerID: ownerID,
		Name:    *p.Name,
		Type:    *p.Type,
		City:    schema.NormalizeCity(*p.City),
	}
	if p.Description != nil {
		estate.Description = *p.Description
	}
	for _, rp := range p.Rooms {
		room := domain.Room{Name: *rp.Name}
		if rp.Description != nil {
			room.Description = *rp.Description
		}
		estate.Rooms = append(estate.Rooms, room)
	}

	if err := i.estateStorage.CreateEstate(ctx, estate); err != nil {
		return 0, err
	}
	return estate.ID, nil
}

func (i *estateInteractor) UpdateEstate(ctx context.Context, id, callerID int64, p *schema.EstatePayload) (int64, error) {
	estate, err := i.estateStorage.GetEstateByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if estate == nil {
		return 0, domain.ErrNotFound
	}
	if callerID != estate.OwnerID {
		return 0, domain.ErrNotOwner
	}

	// Валидация после проверки владельца: чужой токен всегда дает 401,
	// независимо от корректности полезной нагрузки
	if verrs := i.validator.ValidateEstate(p, true); len(verrs) > 0 {
		return 0, verrs
	}

	schema.ApplyEstatePatch(estate, p)
	if err := i.estateStorage.UpdateEstate(ctx, estate); err != nil {
		return 0, err
	}
	return estate.ID, nil
}

func (i *estateInteractor) DeleteEstate(ctx context.Context, id, callerID int64) error {
	estate, err := i.estateStorage.GetEstateByID(ctx, id)
	if err != nil {
		return err
	}
	if estate == nil {
		return domain.ErrNotFound
	}
	if callerID != estate.OwnerID {
		return domain.ErrNotOwner
	}

	return i.estateStorage.DeleteEstate(ctx, estate)
}

func (i *estateInteractor) AddRoom(ctx context.Context, callerID int64, p *schema.RoomPayload) (int64, error) {
	if verrs := i.validator.ValidateRoom(p, false); len(verrs) > 0 {
		return 0, verrs
	}

	// Сначала ссылочная проверка, затем проверка владельца:
	// несуществующий объект дает ошибку ссылки даже при чужом токене
	if p.EstateID == nil {
		return 0, domain.ErrEstateRef
	}
	estate, err := i.estateStorage.GetEstateByID(ctx, *p.EstateID)
	if err != nil {
		return 0, err
	}
	if estate == nil {
		return 0, domain.ErrEstateRef
	}
	if callerID != estate.OwnerID {
		return 0, domain.ErrNotOwner
	}

	room := &domain.Room{
		Name:     *p.Name,
		EstateID: estate.ID,
	}
	if p.Description != nil {
		room.Description = *p.Description
	}

	if err := i.roomStorage.CreateRoom(ctx, room); err != nil {
		return 0, err
	}
	return room.ID, nil
}

func (i *estateInteractor) UpdateRoom(ctx context.Context, id, callerID int64, p *schema.RoomPayload) (int64, error) {
	// Существование комнаты проверяется до разыменования родительского объекта
	room, err := i.roomStorage.GetRoomByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if room == nil {
		return 0, domain.ErrNotFound
	}

	estate, err := i.estateStorage.GetEstateByID(ctx, room.EstateID)
	if err != nil {
		return 0, err
	}
	if estate == nil {
		return 0, domain.ErrNotFound
	}
	if callerID != estate.OwnerID {
		return 0, domain.ErrNotOwner
	}

	if verrs := i.validator.ValidateRoom(p, true); len(verrs) > 0 {
		return 0, verrs
	}

	// Перенос комнаты на другой объект: целевой объект должен
	// существовать и принадлежать тому же вызывающему
	if p.EstateID != nil && *p.EstateID != room.EstateID {
		target, err := i.estateStorage.GetEstateByID(ctx, *p.EstateID)
		if err != nil {
			return 0, err
		}
		if target == nil {
			return 0, domain.ErrEstateRef
		}
		if callerID != target.OwnerID {
			return 0, domain.ErrNotOwner
		}
	}

	schema.ApplyRoomPatch(room, p)
	if err := i.roomStorage.UpdateRoom(ctx, room); err != nil {
		return 0, err
	}
	return room.ID, nil
}
