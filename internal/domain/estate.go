package domain

// Estate представляет модель объекта недвижимости,
// соответствует таблице estates в бд.
// Поле City всегда хранится в верхнем регистре.
type Estate struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	OwnerID     int64  `json:"id_owner"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"re_type"`
	City        string `json:"city"`
	Rooms       []Room `json:"rooms" gorm:"foreignKey:EstateID;constraint:OnDelete:CASCADE"`
}

func (Estate) TableName() string {
	return "estates"
}

// Room представляет модель комнаты внутри объекта недвижимости,
// соответствует таблице rooms в бд
type Room struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Description string `json:"description"`
	EstateID    int64  `json:"id_estate"`
}

func (Room) TableName() string {
	return "rooms"
}
