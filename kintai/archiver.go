package kintai

import (
	"log/slog"

	"github.com/alexflint/go-filemutex"
)

// Archiver detects a calendar-day change and moves the stored day into
// history. It runs at startup and on a periodic check; both paths are
// idempotent, so running it twice with no new activity archives nothing
// the second time.
type Archiver struct {
	repo   Repository
	mux    *filemutex.FileMutex
	clock  Clock
	cfg    Config
	logger *slog.Logger
}

func NewArchiver(repo Repository, fm *filemutex.FileMutex, clock Clock, cfg Config, logger *slog.Logger) *Archiver {
	return &Archiver{repo: repo, mux: fm, clock: clock, cfg: cfg, logger: logger}
}

func (a *Archiver) Run() error {
	a.mux.Lock()
	defer a.mux.Unlock()

	today := DateOf(a.clock.now())

	stored, err := a.repo.GetDayMarker()
	if err != nil {
		return err
	}
	rec, err := a.repo.GetDayRecord()
	if err != nil {
		return err
	}

	// No marker yet: adopt the record's own day so a live day survives
	// the first run after an upgrade.
	marker := stored
	if marker == "" {
		if rec.PunchIn != nil {
			marker = DateOf(*rec.PunchIn)
		} else {
			marker = today
		}
	}

	if marker == today {
		if stored == "" {
			return a.repo.SaveDayMarker(today)
		}
		return nil
	}

	if rec.HasData() {
		entry := HistoryEntry{
			Date:     marker,
			PunchIn:  rec.PunchIn,
			PunchOut: rec.PunchOut,
			Breaks:   rec.Breaks,
			Summary:  ComputeSummary(rec.PunchIn, rec.PunchOut, rec.Breaks, a.cfg.RequiredMinutes),
		}
		if err := a.repo.AppendHistory(entry); err != nil {
			return err
		}
		a.logger.Debug("archived day", slog.String("date", string(marker)))
	}

	if err := a.repo.SaveDayRecord(&DayRecord{}); err != nil {
		return err
	}
	return a.repo.SaveDayMarker(today)
}
