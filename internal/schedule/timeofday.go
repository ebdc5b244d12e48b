package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrBadTimeFormat is returned for anything that is not a zero-padded
	// 24-hour HH:MM string.
	ErrBadTimeFormat = errors.New("time must be HH:MM in 24-hour format")
	// ErrOutsideDay is returned when minute arithmetic would leave the
	// 00:00–23:59 range. Wall-clock values never roll over to another day.
	ErrOutsideDay = errors.New("time arithmetic left the 00:00-23:59 range")
)

const minutesPerDay = 24 * 60

// TimeOfDay is a wall-clock value with minute resolution. It carries no date
// and no timezone; the zero value is midnight.
type TimeOfDay struct {
	minutes int
}

// ParseTimeOfDay parses a zero-padded 24-hour "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrBadTimeFormat, s)
	}
	hour, ok1 := twoDigits(s[0], s[1])
	minute, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || hour > 23 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrBadTimeFormat, s)
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// Add returns the time n minutes later (or earlier for negative n). There is
// no day rollover: results outside the day fail with ErrOutsideDay.
func (t TimeOfDay) Add(n int) (TimeOfDay, error) {
	m := t.minutes + n
	if m < 0 || m >= minutesPerDay {
		return TimeOfDay{}, fmt.Errorf("%w: %s%+d min", ErrOutsideDay, t, n)
	}
	return TimeOfDay{minutes: m}, nil
}

// Compare orders by minutes since midnight: -1 if t < o, 0 if equal, 1 if t > o.
func (t TimeOfDay) Compare(o TimeOfDay) int {
	switch {
	case t.minutes < o.minutes:
		return -1
	case t.minutes > o.minutes:
		return 1
	default:
		return 0
	}
}

// Before reports whether t is earlier than o.
func (t TimeOfDay) Before(o TimeOfDay) bool { return t.minutes < o.minutes }

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int { return t.minutes }

// String formats as zero-padded 24-hour "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}
