// Package schema описывает wire-формат API: структуры полезной нагрузки,
// валидацию (полную и частичную), явные трансформации и функции
// частичного обновления сущностей.
package schema

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// BdayLayout — формат дат на проводе: день-месяц-год.
const BdayLayout = "02-01-2006"

// Errors — карта поле→сообщение, результат неуспешной валидации.
// Реализует error, чтобы подниматься сквозь слой usecase
// в правильном порядке относительно проверок владельца.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "невалидные поля: " + strings.Join(keys, ", ")
}

// RoomPayload — тело запроса для комнаты.
// Неизвестные поля JSON игнорируются при декодировании.
type RoomPayload struct {
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description"`
	EstateID    *int64  `json:"id_estate"`
	Token       string  `json:"token"`
}

// EstatePayload — тело запроса для объекта недвижимости.
type EstatePayload struct {
	Name        *string       `json:"name" validate:"required"`
	Description *string       `json:"description"`
	Type        *string       `json:"re_type" validate:"required"`
	City        *string       `json:"city" validate:"required"`
	Rooms       []RoomPayload `json:"rooms" validate:"-"`
	Token       string        `json:"token"`
}

// UserPayload — тело запроса для пользователя.
// Обязательных полей нет, дата рождения проверяется на формат при наличии.
type UserPayload struct {
	Surname *string `json:"surname"`
	Name    *string `json:"name"`
	Bday    *string `json:"bday"`
	Token   string  `json:"token"`
}

// Validator валидирует полезные нагрузки по тегам структур.
// Один экземпляр используется всеми обработчиками.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

// ValidateEstate проверяет тело запроса для объекта недвижимости.
// При partial=true обязательность полей не проверяется: присутствующие
// поля валидируются, отсутствующие допускаются (семантика PATCH).
// Возвращает непустую карту поле→сообщение при ошибке, пустую иначе.
func (s *Validator) ValidateEstate(p *EstatePayload, partial bool) Errors {
	errs := Errors{}

	if partial {
		s.collect(errs, s.v.StructPartial(p, presentEstateFields(p)...))
	} else {
		s.collect(errs, s.v.Struct(p))
	}

	// Вложенные комнаты всегда требуют имя, даже при частичном обновлении
	for i, r := range p.Rooms {
		if r.Name == nil {
			errs[fmt.Sprintf("rooms.%d.name", i)] = "отсутствует обязательное поле"
		}
	}
	return errs
}

// ValidateRoom проверяет тело запроса для комнаты.
func (s *Validator) ValidateRoom(p *RoomPayload, partial bool) Errors {
	errs := Errors{}
	if partial {
		s.collect(errs, s.v.StructPartial(p, presentRoomFields(p)...))
	} else {
		s.collect(errs, s.v.Struct(p))
	}
	return errs
}

// ValidateUser проверяет тело запроса для пользователя.
// Обязательных полей нет; bday должно разбираться по BdayLayout.
func (s *Validator) ValidateUser(p *UserPayload, partial bool) Errors {
	errs := Errors{}
	if p.Bday != nil {
		if _, err := ParseBday(*p.Bday); err != nil {
			errs["bday"] = fmt.Sprintf("дата должна быть в формате ДД-ММ-ГГГГ: %v", err)
		}
	}
	return errs
}

// collect переводит ошибки validator в карту поле→сообщение
// (json-имена полей в нижнем регистре).
func (s *Validator) collect(dst Errors, err error) {
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		dst["_schema"] = err.Error()
		return
	}
	for _, fe := range verrs {
		name := fieldName(fe.Field())
		switch fe.ActualTag() {
		case "required":
			dst[name] = "отсутствует обязательное поле"
		default:
			dst[name] = fmt.Sprintf("поле не прошло проверку %q", fe.ActualTag())
		}
	}
}

func fieldName(structField string) string {
	switch structField {
	case "Type":
		return "re_type"
	case "EstateID":
		return "id_estate"
	default:
		return strings.ToLower(structField)
	}
}

// presentEstateFields перечисляет имена заполненных полей для StructPartial.
func presentEstateFields(p *EstatePayload) []string {
	var fields []string
	if p.Name != nil {
		fields = append(fields, "Name")
	}
	if p.Description != nil {
		fields = append(fields, "Description")
	}
	if p.Type != nil {
		fields = append(fields, "Type")
	}
	if p.City != nil {
		fields = append(fields, "City")
	}
	return fields
}

func presentRoomFields(p *RoomPayload) []string {
	var fields []string
	if p.Name != nil {
		fields = append(fields, "Name")
	}
	if p.Description != nil {
		fields = append(fields, "Description")
	}
	if p.EstateID != nil {
		fields = append(fields, "EstateID")
	}
	return fields
}

// ParseBday разбирает дату рождения из wire-формата ДД-ММ-ГГГГ.
func ParseBday(s string) (time.Time, error) {
	return time.Parse(BdayLayout, s)
}
