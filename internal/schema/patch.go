package schema

import (
	"github.com/GoArmGo/EstateApp/internal/domain"
)

// Функции частичного обновления. Каждая явно перечисляет обновляемые
// поля и их исключения вместо рефлексии: копируются только значения,
// присутствующие в полезной нагрузке (не-nil указатели).

// ApplyEstatePatch переносит заполненные поля на сохраненную сущность.
// Поле rooms всегда отбрасывается: комнаты обновляются через
// add_room/update_room, а не заменой всего списка.
// Владелец неизменяем после создания.
func ApplyEstatePatch(e *domain.Estate, p *EstatePayload) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.City != nil {
		e.City = NormalizeCity(*p.City)
	}
}

// ApplyRoomPatch переносит заполненные поля комнаты, включая привязку
// к объекту недвижимости (id_estate). Целевой объект уже проверен
// вызывающей стороной на существование и владельца.
func ApplyRoomPatch(r *domain.Room, p *RoomPayload) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.EstateID != nil {
		r.EstateID = *p.EstateID
	}
}

// ApplyUserPatch переносит заполненные поля пользователя.
// Поля token и estate никогда не копируются.
func ApplyUserPatch(u *domain.User, p *UserPayload) {
	if p.Surname != nil {
		u.Surname = *p.Surname
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Bday != nil {
		// Формат уже проверен валидацией, ошибка здесь невозможна
		if t, err := ParseBday(*p.Bday); err == nil {
			u.Bday = &t
		}
	}
}
