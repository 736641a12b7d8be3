package schedule

import (
	"testing"
	"time"
)

func TestHoursContains(t *testing.T) {
	hours := Hours{Open: 8, Close: 21}

	cases := []struct {
		hour int
		want bool
	}{
		{7, false},
		{8, true},
		{14, true},
		{21, true},
		{22, false},
	}

	for _, c := range cases {
		if got := hours.Contains(c.hour); got != c.want {
			t.Errorf("Contains(%d) = %v, want %v", c.hour, got, c.want)
		}
	}
}

func TestHoursSlots(t *testing.T) {
	hours := Hours{Open: 8, Close: 21}

	slots := hours.Slots()
	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(slots))
	}
	if slots[0] != 8 || slots[len(slots)-1] != 21 {
		t.Fatalf("expected slots from 8 to 21, got %v", slots)
	}
	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Fatalf("slots are not strictly ascending: %v", slots)
		}
	}
}

func TestHoursFree(t *testing.T) {
	hours := Hours{Open: 8, Close: 21}

	free := hours.Free([]int{12, 13})

	if len(free) != 12 {
		t.Fatalf("expected 12 free hours, got %d: %v", len(free), free)
	}
	for _, hour := range free {
		if hour == 12 || hour == 13 {
			t.Fatalf("reserved hour %d found among free hours: %v", hour, free)
		}
	}
	for i := 1; i < len(free); i++ {
		if free[i] <= free[i-1] {
			t.Fatalf("free hours are not ascending: %v", free)
		}
	}
}

func TestHoursFreeNoReservations(t *testing.T) {
	hours := Hours{Open: 8, Close: 21}

	free := hours.Free(nil)
	if len(free) != 14 {
		t.Fatalf("expected all 14 hours free, got %d", len(free))
	}
}

// Часы вне рабочего диапазона в списке занятых не влияют на свободные.
func TestHoursFreeIgnoresOutOfRange(t *testing.T) {
	hours := Hours{Open: 8, Close: 21}

	free := hours.Free([]int{3, 23})
	if len(free) != 14 {
		t.Fatalf("expected all 14 hours free, got %d: %v", len(free), free)
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2025-05-22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date.Year() != 2025 || date.Month() != time.May || date.Day() != 22 {
		t.Fatalf("unexpected date: %v", date)
	}

	if _, err := ParseDate("22/05/2025"); err == nil {
		t.Fatal("expected error for d/m/Y input")
	}
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestParseSearchDate(t *testing.T) {
	date, err := ParseSearchDate("22/05/2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date.Year() != 2025 || date.Month() != time.May || date.Day() != 22 {
		t.Fatalf("unexpected date: %v", date)
	}

	if _, err := ParseSearchDate("2025-05-22"); err == nil {
		t.Fatal("expected error for Y-m-d input")
	}
}

func TestParseHour(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"08:00", 8, false},
		{"21:00", 21, false},
		{"10:30", 10, false},
		{"25:00", 0, true},
		{"0800", 0, true},
		{"ten", 0, true},
	}

	for _, c := range cases {
		got, err := ParseHour(c.raw)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseHour(%q): expected error", c.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHour(%q): unexpected error: %v", c.raw, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseHour(%q) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2025, time.May, 22, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(date); got != "2025-05-22" {
		t.Fatalf("FormatDate = %q, want %q", got, "2025-05-22")
	}
}
