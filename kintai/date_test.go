package kintai

import (
	"testing"
	"time"
)

func TestMinutesBetween(t *testing.T) {
	base := time.Date(2024, 5, 20, 9, 0, 0, 0, time.Local)
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"zero interval", base, base, 0},
		{"whole minutes", base, base.Add(40 * time.Minute), 40},
		{"floors partial minute", base, base.Add(5*time.Minute + 59*time.Second), 5},
		{"sub-minute is zero", base, base.Add(59 * time.Second), 0},
		{"reversed is zero", base.Add(10 * time.Minute), base, 0},
		{"hours", base, base.Add(8 * time.Hour), 480},
	}
	for _, tt := range tests {
		if got := MinutesBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: MinutesBetween = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{1, "1m"},
		{59, "59m"},
		{60, "1h 0m"},
		{75, "1h 15m"},
		{440, "7h 20m"},
		{-5, "0m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestSameDay(t *testing.T) {
	beforeMidnight := time.Date(2024, 5, 20, 23, 59, 0, 0, time.Local)
	afterMidnight := time.Date(2024, 5, 21, 0, 1, 0, 0, time.Local)

	if !SameDay(beforeMidnight, beforeMidnight.Add(-8*time.Hour)) {
		t.Error("instants on the same calendar day reported as different")
	}
	if SameDay(beforeMidnight, afterMidnight) {
		t.Error("instants across midnight reported as the same day")
	}
}

func TestDateRoundTrip(t *testing.T) {
	d := DateOf(time.Date(2024, 5, 20, 14, 30, 0, 0, time.Local))
	if d != "2024-05-20" {
		t.Fatalf("DateOf = %q", d)
	}
	parsed, err := d.Time()
	if err != nil {
		t.Fatal(err)
	}
	if DateOf(parsed) != d {
		t.Errorf("round trip changed date: %q", DateOf(parsed))
	}
}
