package types

import (
	"fmt"
	"time"
)

// DayOfWeek is a weekday index with Monday = 1 through Sunday = 7.
type DayOfWeek int

const (
	Monday    DayOfWeek = 1
	Tuesday   DayOfWeek = 2
	Wednesday DayOfWeek = 3
	Thursday  DayOfWeek = 4
	Friday    DayOfWeek = 5
	Saturday  DayOfWeek = 6
	Sunday    DayOfWeek = 7
)

func (d DayOfWeek) Validate() bool {
	return d >= Monday && d <= Sunday
}

// DayOfWeekFromTime converts a time.Time weekday (Sunday = 0) into the
// Monday-first index used by pricing rules.
func DayOfWeekFromTime(t time.Time) DayOfWeek {
	wd := int(t.Weekday())
	if wd == 0 {
		return Sunday
	}
	return DayOfWeek(wd)
}

// TimeOfDay is a wall-clock time with second precision, detached from any
// date or zone. It is stored as seconds since midnight.
type TimeOfDay struct {
	seconds int
}

// NewTimeOfDay builds a TimeOfDay from hour, minute and second components.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay{seconds: hour*3600 + minute*60 + second}
}

// ParseTimeOfDay parses "HH:MM:SS" or "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day: %q", s)
}

// TimeOfDayFromTime extracts the wall-clock component of t.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.seconds < other.seconds
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.seconds > other.seconds
}

func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.seconds == other.seconds
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.seconds/3600, (t.seconds/60)%60, t.seconds%60)
}

// WithinWindow reports whether t lies inside [from, to] inclusive. When
// from > to the window wraps past midnight, so t matches when it is at or
// after from, or at or before to.
func (t TimeOfDay) WithinWindow(from, to TimeOfDay) bool {
	if from.seconds <= to.seconds {
		return t.seconds >= from.seconds && t.seconds <= to.seconds
	}
	return t.seconds >= from.seconds || t.seconds <= to.seconds
}
