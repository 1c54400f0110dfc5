package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/EstateApp/internal/domain"
	"gorm.io/gorm"
)

// RoomStorage реализует интерфейс ports.RoomStorage с использованием GORM
type RoomStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewRoomStorage создает новый экземпляр RoomStorage
func NewRoomStorage(db *gorm.DB, logger *slog.Logger) *RoomStorage {
	return &RoomStorage{db: db, logger: logger}
}

// CreateRoom сохраняет комнату, привязанную к существующему объекту недвижимости
func (s *RoomStorage) CreateRoom(ctx context.Context, room *domain.Room) error {
	result := s.db.WithContext(ctx).Create(room)
	if result.Error != nil {
		return fmt.Errorf("ошибка при сохранении комнаты: %w", result.Error)
	}

	s.logger.Info("room created", "room_id", room.ID, "estate_id", room.EstateID)
	return nil
}

// GetRoomByID получает комнату по id, nil без ошибки если записи нет
func (s *RoomStorage) GetRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	result := s.db.WithContext(ctx).First(&room, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении комнаты по id: %w", result.Error)
	}
	return &room, nil
}

// UpdateRoom сохраняет измененные поля комнаты, включая привязку к объекту
func (s *RoomStorage) UpdateRoom(ctx context.Context, room *domain.Room) error {
	result := s.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", room.ID).
		Updates(map[string]any{
			"name":        room.Name,
			"description": room.Description,
			"estate_id":   room.EstateID,
		})
	if result.Error != nil {
		return fmt.Errorf("ошибка при обновлении комнаты: %w", result.Error)
	}

	s.logger.Info("room updated", "room_id", room.ID)
	return nil
}
