// Package schedule evaluates opening hours against wall-clock time.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rasoilabs/menucart/internal/domain"
)

// MinutesPerDay bounds a valid minute-of-day value.
const MinutesPerDay = 24 * 60

// MinuteOfClock parses an "HH:MM" clock string into minute-of-day.
func MinuteOfClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", clock)
	}
	return h*60 + m, nil
}

// IsOpenAt reports whether the given minute-of-day falls inside any slot of
// the day's schedule. Both bounds are inclusive, so a minute equal to the
// close time still counts as open. Slots whose close time parses below their
// open time never match. Unparseable slots are skipped.
func IsOpenAt(day domain.DaySchedule, minuteOfDay int) bool {
	if day.IsClosed {
		return false
	}
	for _, slot := range day.Slots {
		openM, err := MinuteOfClock(slot.Open)
		if err != nil {
			continue
		}
		closeM, err := MinuteOfClock(slot.Close)
		if err != nil {
			continue
		}
		if minuteOfDay >= openM && minuteOfDay <= closeM {
			return true
		}
	}
	return false
}

// IsOpenOn evaluates the full weekly schedule for the given weekday and
// minute. A weekday missing from the map counts as closed.
func IsOpenOn(hours map[string]domain.DaySchedule, weekday time.Weekday, minuteOfDay int) bool {
	day, ok := hours[DayKey(weekday)]
	if !ok {
		return false
	}
	return IsOpenAt(day, minuteOfDay)
}

// IsOpenNow evaluates the weekly schedule against a wall-clock instant.
func IsOpenNow(hours map[string]domain.DaySchedule, now time.Time) bool {
	return IsOpenOn(hours, now.Weekday(), now.Hour()*60+now.Minute())
}

// DayKey returns the lowercase weekday name used as the openingHours map key.
func DayKey(weekday time.Weekday) string {
	return strings.ToLower(weekday.String())
}

// FormatClock renders a minute-of-day as "h:MM AM"/"h:MM PM" for display,
// matching the hours shown on the menu page.
func FormatClock(minuteOfDay int) string {
	h := minuteOfDay / 60
	m := minuteOfDay % 60
	ap := "AM"
	if h >= 12 {
		ap = "PM"
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, ap)
}
