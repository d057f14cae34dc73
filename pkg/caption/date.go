package caption

import (
	"strconv"
	"strings"
	"time"
)

// LocalDateLayout renders a local capture time, e.g. "Mon Jun 5 14:30".
var LocalDateLayout = "Mon Jan 2 15:04"

// LocalDate is a wall-clock time already in the photographer's zone:
// year, month, day, hour, minute, second.
type LocalDate [6]string

// Time returns the wall-clock time as a time.Time without any zone conversion.
func (d LocalDate) Time() (time.Time, bool) {
	var n [6]int
	for i, s := range d {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return time.Time{}, false
		}
		n[i] = v
	}

	t := time.Date(n[0], time.Month(n[1]), n[2], n[3], n[4], n[5], 0, time.UTC)
	// time.Date normalizes overflow, e.g. Feb 30 -> Mar 2; treat that as invalid.
	if t.Year() != n[0] || int(t.Month()) != n[1] || t.Day() != n[2] ||
		t.Hour() != n[3] || t.Minute() != n[4] || t.Second() != n[5] {
		return time.Time{}, false
	}
	return t, true
}

// FormatLocalDate renders d with LocalDateLayout.
func FormatLocalDate(d LocalDate) (string, bool) {
	t, ok := d.Time()
	if !ok {
		return "", false
	}
	return t.Format(LocalDateLayout), true
}
