package kintai

import (
	"fmt"
	"time"
)

// Date identifies a calendar day in local time, formatted as 2006-01-02.
type Date string

const dateLayout = "2006-01-02"

func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) Time() (time.Time, error) {
	return time.ParseInLocation(dateLayout, string(d), time.Local)
}

func SameDay(a, b time.Time) bool {
	return DateOf(a) == DateOf(b)
}

// MinutesBetween returns the whole minutes from a to b, clamped at zero
// when the interval is empty or reversed.
func MinutesBetween(a, b time.Time) int {
	if !b.After(a) {
		return 0
	}
	return int(b.Sub(a) / time.Minute)
}

func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if h := minutes / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// Clock supplies the current instant. A nil Clock falls back to time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
