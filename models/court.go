package models

// Court представляет площадку клуба, привязанную ровно к одному виду спорта.
type Court struct {
	ID       int     `json:"id" db:"id"`
	SportID  int     `json:"sport_id" db:"sport_id"`
	Name     string  `json:"name" db:"name"`
	Location *string `json:"location,omitempty" db:"location"`

	// Опциональная связанная сущность (не мапится напрямую)
	Sport *Sport `json:"sport,omitempty" db:"-"`
}
