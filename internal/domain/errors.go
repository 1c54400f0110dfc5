package domain

import "errors"

// Сентинел-ошибки доменного слоя. Маппинг на HTTP-статусы
// выполняется только в слое handler.
var (
	// ErrNotFound — запись с указанным id отсутствует (HTTP 400 по контракту API).
	ErrNotFound = errors.New("запись не найдена")

	// ErrNotOwner — токен не принадлежит владельцу объекта (HTTP 401).
	ErrNotOwner = errors.New("токен не принадлежит владельцу")

	// ErrEstateRef — ссылка на несуществующий объект недвижимости при создании комнаты.
	ErrEstateRef = errors.New("указанный id не соответствует существующему объекту")
)
