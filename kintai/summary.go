package kintai

import "time"

type DaySummary struct {
	TotalOfficeMinutes int `json:"total_office_minutes"`
	BreakMinutes       int `json:"break_minutes"`
	WorkMinutes        int `json:"work_minutes"`
	RequiredMinutes    int `json:"required_minutes"`
}

func (s *DaySummary) Compliant() bool {
	return s.WorkMinutes >= s.RequiredMinutes
}

// ComputeSummary derives the day's totals. Without both punches there is
// nothing to summarize and nil is returned. Break overrun is deducted in
// full from work time, never capped at the allowance.
func ComputeSummary(punchIn, punchOut *time.Time, breaks []BreakSession, requiredMinutes int) *DaySummary {
	if punchIn == nil || punchOut == nil {
		return nil
	}
	office := MinutesBetween(*punchIn, *punchOut)
	brk := 0
	for _, b := range breaks {
		brk += b.Minutes
	}
	work := office - brk
	if work < 0 {
		work = 0
	}
	return &DaySummary{
		TotalOfficeMinutes: office,
		BreakMinutes:       brk,
		WorkMinutes:        work,
		RequiredMinutes:    requiredMinutes,
	}
}
