package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/EstateApp/internal/domain"
	"gorm.io/gorm"
)

// EstateStorage реализует интерфейс ports.EstateStorage с использованием GORM
type EstateStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewEstateStorage создает новый экземпляр EstateStorage
func NewEstateStorage(db *gorm.DB, logger *slog.Logger) *EstateStorage {
	return &EstateStorage{db: db, logger: logger}
}

// CreateEstate сохраняет объект недвижимости вместе с вложенными комнатами.
// GORM создает комнаты той же транзакцией через ассоциацию Rooms.
func (s *EstateStorage) CreateEstate(ctx context.Context, estate *domain.Estate) error {
	result := s.db.WithContext(ctx).Create(estate)
	if result.Error != nil {
		return fmt.Errorf("ошибка при сохранении объекта недвижимости: %w", result.Error)
	}

	s.logger.Info("estate created",
		"estate_id", estate.ID,
		"owner_id", estate.OwnerID,
		"rooms", len(estate.Rooms),
	)
	return nil
}

// GetEstateByID получает объект по id вместе с комнатами.
// Возвращает nil без ошибки, если записи нет.
func (s *EstateStorage) GetEstateByID(ctx context.Context, id int64) (*domain.Estate, error) {
	var estate domain.Estate
	result := s.db.WithContext(ctx).Preload("Rooms").First(&estate, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении объекта по id: %w", result.Error)
	}
	return &estate, nil
}

// SearchEstatesByCity получает все объекты в заданном городе.
// Город уже канонизирован вызывающей стороной.
func (s *EstateStorage) SearchEstatesByCity(ctx context.Context, city string) ([]domain.Estate, error) {
	estates := []domain.Estate{}
	result := s.db.WithContext(ctx).
		Preload("Rooms").
		Where("city = ?", city).
		Order("id").
		Find(&estates)
	if result.Error != nil {
		return nil, fmt.Errorf("ошибка при поиске объектов по городу: %w", result.Error)
	}
	return estates, nil
}

// UpdateEstate сохраняет измененные поля объекта.
// Ассоциация Rooms не затрагивается: комнаты меняются только своими эндпоинтами.
func (s *EstateStorage) UpdateEstate(ctx context.Context, estate *domain.Estate) error {
	result := s.db.WithContext(ctx).
		Omit("Rooms").
		Model(&domain.Estate{}).
		Where("id = ?", estate.ID).
		Updates(map[string]any{
			"name":        estate.Name,
			"description": estate.Description,
			"type":        estate.Type,
			"city":        estate.City,
		})
	if result.Error != nil {
		return fmt.Errorf("ошибка при обновлении объекта недвижимости: %w", result.Error)
	}

	s.logger.Info("estate updated", "estate_id", estate.ID)
	return nil
}

// DeleteEstate удаляет объект и каскадно все его комнаты одной транзакцией
func (s *EstateStorage) DeleteEstate(ctx context.Context, estate *domain.Estate) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("estate_id = ?", estate.ID).Delete(&domain.Room{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Estate{}, "id = ?", estate.ID).Error
	})
	if err != nil {
		return fmt.Errorf("ошибка при удалении объекта недвижимости: %w", err)
	}

	s.logger.Info("estate deleted", "estate_id", estate.ID)
	return nil
}
