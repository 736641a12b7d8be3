package models

import "time"

// MemberStatus представляет статусы членства, соответствующие ENUM в БД.
type MemberStatus string

const (
	MemberActive    MemberStatus = "active"
	MemberInactive  MemberStatus = "inactive"
	MemberSuspended MemberStatus = "suspended"
)

// Member представляет члена клуба. Привязка к учётной записи опциональна.
type Member struct {
	ID             int          `json:"id" db:"id"`
	UserID         *int         `json:"user_id,omitempty" db:"user_id"`
	Name           string       `json:"name" db:"name"`
	Email          *string      `json:"email,omitempty" db:"email"`
	Phone          *string      `json:"phone,omitempty" db:"phone"`
	MembershipDate time.Time    `json:"membership_date" db:"membership_date"`
	Status         MemberStatus `json:"status" db:"status"`
}
