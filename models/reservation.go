package models

import "time"

// Reservation представляет эксклюзивную бронь слота (площадка, дата, час).
// Пара (court_id, date, hour) уникальна на уровне БД.
type Reservation struct {
	ID        int       `json:"id" db:"id"`
	MemberID  int       `json:"member_id" db:"member_id"`
	CourtID   int       `json:"court_id" db:"court_id"`
	Date      time.Time `json:"date" db:"date"`
	Hour      int       `json:"hour" db:"hour"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Member *Member `json:"member,omitempty" db:"-"`
	Court  *Court  `json:"court,omitempty" db:"-"`
}
