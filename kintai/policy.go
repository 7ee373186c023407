package kintai

import "time"

// Config holds the attendance tunables.
type Config struct {
	OfficeStartHour   int
	OfficeStartMinute int
	BaseBreakMinutes  int
	RequiredMinutes   int

	TickInterval     time.Duration
	RolloverInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		OfficeStartHour:   9,
		OfficeStartMinute: 30,
		BaseBreakMinutes:  60,
		RequiredMinutes:   420,
		TickInterval:      time.Second,
		RolloverInterval:  time.Minute,
	}
}

// Allowance returns the total break minutes permitted for a day started
// at punchIn: the base allowance plus one minute for every minute of
// arrival before office start. Stateless; callers must not cache the
// result across a punch-in change.
func (c Config) Allowance(punchIn time.Time) int {
	officeStart := time.Date(punchIn.Year(), punchIn.Month(), punchIn.Day(),
		c.OfficeStartHour, c.OfficeStartMinute, 0, 0, punchIn.Location())
	return c.BaseBreakMinutes + MinutesBetween(punchIn, officeStart)
}

// BreakStatus is the live break accounting for a day.
type BreakStatus struct {
	Allowed   int
	Used      int
	Remaining int
	Exceeded  int
}

func (s BreakStatus) IsExceeded() bool {
	return s.Exceeded > 0
}

// BreakStatusAt evaluates the break accounting against now. An
// in-progress break counts toward Used.
func (c Config) BreakStatusAt(rec *DayRecord, now time.Time) BreakStatus {
	allowed := c.BaseBreakMinutes
	if rec.PunchIn != nil {
		allowed = c.Allowance(*rec.PunchIn)
	}
	used := rec.BreakMinutes()
	if rec.OnBreak && rec.BreakStart != nil {
		used += MinutesBetween(*rec.BreakStart, now)
	}
	s := BreakStatus{Allowed: allowed, Used: used}
	if used < allowed {
		s.Remaining = allowed - used
	}
	if used > allowed {
		s.Exceeded = used - allowed
	}
	return s
}

// Progress is the live work accounting for an open day.
type Progress struct {
	OfficeMinutes     int
	WorkMinutes       int
	RemainingMinutes  int
	EstimatedPunchOut time.Time
}

// ProgressAt evaluates the work accounting against now. It is only
// meaningful for an open day; nil is returned before punch in and after
// punch out.
func (c Config) ProgressAt(rec *DayRecord, now time.Time) *Progress {
	if rec.PunchIn == nil || rec.PunchOut != nil {
		return nil
	}
	office := MinutesBetween(*rec.PunchIn, now)
	work := office - c.BreakStatusAt(rec, now).Used
	if work < 0 {
		work = 0
	}
	remaining := c.RequiredMinutes - work
	if remaining < 0 {
		remaining = 0
	}
	return &Progress{
		OfficeMinutes:     office,
		WorkMinutes:       work,
		RemainingMinutes:  remaining,
		EstimatedPunchOut: now.Add(time.Duration(remaining) * time.Minute),
	}
}
