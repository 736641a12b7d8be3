package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed = errors.New("validation failed")

	// Ошибки конфликтов
	ErrSportNameConflict   = errors.New("sport name already exists")
	ErrMemberEmailConflict = errors.New("member email is already in use")
	ErrUserEmailConflict   = errors.New("email address is already in use")

	// Ошибки аутентификации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound        = errors.New("user not found")
	ErrSportNotFound       = errors.New("sport not found")
	ErrCourtNotFound       = errors.New("court not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrReservationNotFound = errors.New("reservation not found")

	// Ошибки удаления связанных сущностей
	ErrSportInUse  = errors.New("sport cannot be deleted as it is currently in use")
	ErrCourtInUse  = errors.New("court cannot be deleted as it has reservations")
	ErrMemberInUse = errors.New("member cannot be deleted as it has reservations")

	// Ошибки поиска доступности
	ErrInvalidSearchDate = errors.New("el formato de la fecha es inválido, use el formato d/m/Y")
	ErrNoCourtsForSport  = errors.New("no hay pistas disponibles para el deporte especificado")
	ErrNoHoursAvailable  = errors.New("no hay horas disponibles para el deporte especificado")
)

// SportNotFoundError возвращается поиском доступности, когда запрошенный
// спорт неизвестен: несёт полный список доступных, чтобы клиент мог
// поправить запрос.
type SportNotFoundError struct {
	Name      string
	Available []string
}

func (e *SportNotFoundError) Error() string {
	return "el deporte consultado no está disponible"
}

func (e *SportNotFoundError) Is(target error) bool {
	return target == ErrSportNotFound
}

// ValidationError собирает ВСЕ нарушения бизнес-правил одной проверки в
// отображение поле -> сообщения, как его ожидает клиент.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
