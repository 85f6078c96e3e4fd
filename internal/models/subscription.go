package models

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultTimeOfDay is used when the subscriber's input cannot be parsed at all
const DefaultTimeOfDay = "08:00"

// Subscription binds a subscriber and locality to a daily delivery time in
// the subscriber's own civil timezone. Uniquely keyed by (ChatID, LocalityID);
// writing the same key again replaces the prior record. The JSON shape is the
// on-disk contract of the file store and must stay load-compatible.
type Subscription struct {
	SubscriberID int64  `json:"subscriber_id" db:"subscriber_id"`
	ChatID       int64  `json:"chat_id" db:"chat_id"`
	LocalityID   string `json:"locality_id" db:"locality_id"`
	TimeOfDay    string `json:"time_of_day" db:"time_of_day"`
	TimezoneID   string `json:"timezone_id" db:"timezone_id"`
}

// Valid reports whether the record carries the fields the scheduler needs.
// Loaders skip invalid records instead of failing the whole load.
func (s Subscription) Valid() bool {
	return s.ChatID != 0 && s.LocalityID != ""
}

// DueKey identifies one due delivery within a tick
type DueKey struct {
	ChatID     int64
	LocalityID string
}

// NormalizeTimeOfDay coerces free-text input to "HH:MM". Out-of-range hours
// and minutes are clamped, unparsable input falls back to DefaultTimeOfDay.
// Lenient on purpose: subscribers type these by hand.
func NormalizeTimeOfDay(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTimeOfDay
	}

	parts := strings.SplitN(raw, ":", 3)
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return DefaultTimeOfDay
	}
	m := 0
	if len(parts) > 1 {
		m, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return DefaultTimeOfDay
		}
	}

	h = clamp(h, 0, 23)
	m = clamp(m, 0, 59)
	return fmt.Sprintf("%02d:%02d", h, m)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
