package schedule

import (
	"fmt"
	"time"
)

const (
	dateLayout       = "2006-01-02"
	searchDateLayout = "02/01/2006"
	hourLayout       = "15:04"
)

// Hours описывает рабочие часы клуба. Open и Close задают первый и последний
// бронируемый час, оба включительно: Open=8, Close=21 даёт 14 слотов.
type Hours struct {
	Open  int
	Close int
}

func (h Hours) Contains(hour int) bool {
	return hour >= h.Open && hour <= h.Close
}

// Slots возвращает все бронируемые часы по возрастанию.
func (h Hours) Slots() []int {
	slots := make([]int, 0, h.Close-h.Open+1)
	for hour := h.Open; hour <= h.Close; hour++ {
		slots = append(slots, hour)
	}
	return slots
}

// Free возвращает свободные часы: все слоты за вычетом занятых, по
// возрастанию. Часы вне рабочего диапазона игнорируются.
func (h Hours) Free(reserved []int) []int {
	taken := make(map[int]bool, len(reserved))
	for _, hour := range reserved {
		taken[hour] = true
	}

	free := make([]int, 0, h.Close-h.Open+1)
	for hour := h.Open; hour <= h.Close; hour++ {
		if !taken[hour] {
			free = append(free, hour)
		}
	}
	return free
}

// ParseDate разбирает дату брони в формате Y-m-d.
func ParseDate(raw string) (time.Time, error) {
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected format %s", raw, dateLayout)
	}
	return date, nil
}

// ParseSearchDate разбирает дату запроса доступности в формате d/m/Y.
func ParseSearchDate(raw string) (time.Time, error) {
	date, err := time.Parse(searchDateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid search date %q: expected format d/m/Y", raw)
	}
	return date, nil
}

// ParseHour разбирает время в формате HH:MM и возвращает часовую
// составляющую, минуты не участвуют в модели слотов.
func ParseHour(raw string) (int, error) {
	t, err := time.Parse(hourLayout, raw)
	if err != nil {
		return 0, fmt.Errorf("invalid hour %q: expected format HH:MM", raw)
	}
	return t.Hour(), nil
}

// FormatDate приводит дату к формату Y-m-d для запросов к БД.
func FormatDate(date time.Time) string {
	return date.Format(dateLayout)
}

// Today возвращает сегодняшнюю календарную дату без временной составляющей.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
