package models

import "testing"

func TestNormalizeTimeOfDay(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"Already normalized", "08:30", "08:30"},
		{"Single digits", "9:0", "09:00"},
		{"Missing minutes", "7", "07:00"},
		{"Whitespace", "  10 : 15 ", "10:15"},
		{"Hour clamped high", "25:10", "23:10"},
		{"Minute clamped high", "10:75", "10:59"},
		{"Negative hour clamped", "-3:10", "00:10"},
		{"Empty input", "", "08:00"},
		{"Garbage input", "morning", "08:00"},
		{"Garbage minutes", "10:mm", "08:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTimeOfDay(tt.raw)
			if got != tt.expected {
				t.Errorf("NormalizeTimeOfDay(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestSubscriptionValid(t *testing.T) {
	sub := Subscription{SubscriberID: 1, ChatID: 1, LocalityID: "kazan", TimeOfDay: "07:30", TimezoneID: "Europe/Moscow"}
	if !sub.Valid() {
		t.Error("expected complete record to be valid")
	}

	if (Subscription{LocalityID: "kazan"}).Valid() {
		t.Error("expected record without chat id to be invalid")
	}
	if (Subscription{ChatID: 5}).Valid() {
		t.Error("expected record without locality to be invalid")
	}
}

func TestContentItemIdentity(t *testing.T) {
	a := ContentItem{Title: "A", Link: "http://x/1"}
	b := ContentItem{Title: "A dup", Link: "http://x/1"}
	c := ContentItem{Title: "C", Link: ""}
	d := ContentItem{Title: "D", Link: ""}

	if !a.IsDuplicateOf(b) {
		t.Error("items with the same link must be duplicates")
	}
	if c.IsDuplicateOf(d) {
		t.Error("items without links must never be duplicates")
	}
}
