package view

import (
	"fmt"
	"strings"
	"time"

	"kintai/kintai"
)

// Viewer renders some slice of the attendance data. The month argument
// is "2006-01", or empty for everything.
type Viewer interface {
	Do(yearMonth string) error
}

// Row is one rendered day: a frozen history entry or today's live record.
type Row struct {
	Date     kintai.Date
	PunchIn  *time.Time
	PunchOut *time.Time
	Breaks   []kintai.BreakSession
	Summary  *kintai.DaySummary
	Today    bool
}

type Repository interface {
	ListRows(yearMonth string) ([]Row, error)
}

func NewRepository(tracker *kintai.Tracker) Repository {
	return &viewRepository{tracker: tracker}
}

type viewRepository struct {
	tracker *kintai.Tracker
}

// ListRows returns history oldest first, with today's live record as the
// final row. Today carries a derived summary only once punched out.
func (r *viewRepository) ListRows(yearMonth string) ([]Row, error) {
	if yearMonth != "" {
		if _, err := time.Parse("2006-01", yearMonth); err != nil {
			return nil, fmt.Errorf("invalid month, expected e.g. 2024-03: %w", err)
		}
	}

	hs, err := r.tracker.History()
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, h := range hs {
		if !matchesMonth(h.Date, yearMonth) {
			continue
		}
		rows = append(rows, Row{
			Date:     h.Date,
			PunchIn:  h.PunchIn,
			PunchOut: h.PunchOut,
			Breaks:   h.Breaks,
			Summary:  h.Summary,
		})
	}

	rec, err := r.tracker.Record()
	if err != nil {
		return nil, err
	}
	summary, err := r.tracker.Summary()
	if err != nil {
		return nil, err
	}
	today := kintai.DateOf(time.Now())
	if rec.HasData() && matchesMonth(today, yearMonth) {
		rows = append(rows, Row{
			Date:     today,
			PunchIn:  rec.PunchIn,
			PunchOut: rec.PunchOut,
			Breaks:   rec.Breaks,
			Summary:  summary,
			Today:    true,
		})
	}
	return rows, nil
}

func matchesMonth(d kintai.Date, yearMonth string) bool {
	if yearMonth == "" {
		return true
	}
	return strings.HasPrefix(string(d), yearMonth)
}
