package kintai

import "time"

// BreakSession is a finished break. Minutes is recomputed from the
// endpoints whenever either of them changes; an open end means zero.
type BreakSession struct {
	Start   time.Time  `json:"start_at"`
	End     *time.Time `json:"end_at"`
	Minutes int        `json:"minutes"`
}

func (b *BreakSession) Recompute() {
	if b.End == nil {
		b.Minutes = 0
		return
	}
	b.Minutes = MinutesBetween(b.Start, *b.End)
}

// DayRecord is the single live day. It is owned by the Tracker until the
// Archiver freezes it into a HistoryEntry at the day boundary.
type DayRecord struct {
	PunchIn    *time.Time     `json:"punch_in"`
	PunchOut   *time.Time     `json:"punch_out"`
	Breaks     []BreakSession `json:"breaks"`
	OnBreak    bool           `json:"on_break"`
	BreakStart *time.Time     `json:"break_start"`
}

func (r *DayRecord) State() State {
	switch {
	case r.PunchIn == nil:
		return StateNotStarted
	case r.OnBreak:
		return StateOnBreak
	case r.PunchOut != nil:
		return StateCompleted
	default:
		return StateWorking
	}
}

func (r *DayRecord) HasData() bool {
	return r.PunchIn != nil || r.PunchOut != nil || len(r.Breaks) > 0 || r.OnBreak
}

// BreakMinutes sums the recorded sessions. An in-progress break is not
// included; see Config.BreakStatusAt for the live figure.
func (r *DayRecord) BreakMinutes() int {
	total := 0
	for _, b := range r.Breaks {
		total += b.Minutes
	}
	return total
}

// HistoryEntry is a frozen day. It is appended to history by the
// Archiver and never mutated afterwards.
type HistoryEntry struct {
	Date     Date           `json:"date"`
	PunchIn  *time.Time     `json:"punch_in"`
	PunchOut *time.Time     `json:"punch_out"`
	Breaks   []BreakSession `json:"breaks"`
	Summary  *DaySummary    `json:"summary"`
}
