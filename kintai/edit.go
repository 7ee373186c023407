package kintai

import (
	"log/slog"
	"time"
)

// Manual corrections. Edits set hour:minute (seconds zeroed) on the same
// calendar day as the field's current value, or today when unset. They
// deliberately bypass the allowance policy: a correction records what
// actually happened, not what was permitted. An out-of-range time or
// index cancels the edit and keeps the prior value.

func (t *Tracker) EditPunchIn(hour, minute int) error {
	t.mux.Lock()
	defer t.mux.Unlock()

	if !validHourMinute(hour, minute) {
		t.logger.Debug("edit canceled", slog.Int("hour", hour), slog.Int("minute", minute))
		return nil
	}
	rec, err := t.repo.GetDayRecord()
	if err != nil {
		return err
	}
	at := atHourMinute(rec.PunchIn, t.clock.now(), hour, minute)
	rec.PunchIn = &at
	return t.repo.SaveDayRecord(rec)
}

func (t *Tracker) EditPunchOut(hour, minute int) error {
	t.mux.Lock()
	defer t.mux.Unlock()

	if !validHourMinute(hour, minute) {
		t.logger.Debug("edit canceled", slog.Int("hour", hour), slog.Int("minute", minute))
		return nil
	}
	rec, err := t.repo.GetDayRecord()
	if err != nil {
		return err
	}
	at := atHourMinute(rec.PunchOut, t.clock.now(), hour, minute)
	rec.PunchOut = &at
	return t.repo.SaveDayRecord(rec)
}

// EditBreakStart corrects the start of session i. An index one past the
// end appends a new session with an open end and zero minutes.
func (t *Tracker) EditBreakStart(i, hour, minute int) error {
	t.mux.Lock()
	defer t.mux.Unlock()

	if !validHourMinute(hour, minute) || i < 0 {
		t.logger.Debug("edit canceled", slog.Int("index", i))
		return nil
	}
	rec, err := t.repo.GetDayRecord()
	if err != nil {
		return err
	}
	if i > len(rec.Breaks) {
		t.logger.Debug("edit canceled", slog.Int("index", i))
		return nil
	}
	if i == len(rec.Breaks) {
		rec.Breaks = append(rec.Breaks, BreakSession{})
	}
	b := &rec.Breaks[i]
	b.Start = atHourMinute(nonZeroTime(b.Start), t.clock.now(), hour, minute)
	b.Recompute()
	return t.repo.SaveDayRecord(rec)
}

func (t *Tracker) EditBreakEnd(i, hour, minute int) error {
	t.mux.Lock()
	defer t.mux.Unlock()

	if !validHourMinute(hour, minute) || i < 0 {
		t.logger.Debug("edit canceled", slog.Int("index", i))
		return nil
	}
	rec, err := t.repo.GetDayRecord()
	if err != nil {
		return err
	}
	if i >= len(rec.Breaks) {
		t.logger.Debug("edit canceled", slog.Int("index", i))
		return nil
	}
	b := &rec.Breaks[i]
	at := atHourMinute(b.End, t.clock.now(), hour, minute)
	b.End = &at
	b.Recompute()
	return t.repo.SaveDayRecord(rec)
}

func (t *Tracker) DeleteBreak(i int) error {
	t.mux.Lock()
	defer t.mux.Unlock()

	rec, err := t.repo.GetDayRecord()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(rec.Breaks) {
		return nil
	}
	rec.Breaks = append(rec.Breaks[:i], rec.Breaks[i+1:]...)
	return t.repo.SaveDayRecord(rec)
}

func validHourMinute(hour, minute int) bool {
	return hour >= 0 && hour < 24 && minute >= 0 && minute < 60
}

func atHourMinute(base *time.Time, now time.Time, hour, minute int) time.Time {
	d := now
	if base != nil {
		d = *base
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

func nonZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
