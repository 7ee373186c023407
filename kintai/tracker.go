package kintai

import (
	"fmt"
	"log/slog"

	"github.com/alexflint/go-filemutex"
)

// Notificator surfaces rejections and milestones to the user.
// Fire-and-forget; the Tracker never acts on its error.
type Notificator interface {
	Notify(title, message string) error
}

// Confirmer asks a yes/no question and blocks for the answer.
type Confirmer interface {
	Confirm(message string) bool
}

// Tracker owns the live DayRecord and enforces the punch/break state
// machine. Every mutation is write-through: the record is persisted
// before the operation returns.
type Tracker struct {
	repo        Repository
	mux         *filemutex.FileMutex
	notificator Notificator
	confirmer   Confirmer
	clock       Clock
	cfg         Config
	logger      *slog.Logger
}

func NewTracker(repo Repository, fm *filemutex.FileMutex, notificator Notificator, confirmer Confirmer, clock Clock, cfg Config, logger *slog.Logger) *Tracker {
	return &Tracker{
		repo:        repo,
		mux:         fm,
		notificator: notificator,
		confirmer:   confirmer,
		clock:       clock,
		cfg:         cfg,
		logger:      logger,
	}
}

func (t *Tracker) Config() Config {
	return t.cfg
}

// PunchIn starts a fresh day. Allowed from not-started and completed; a
// completed day is restarted in place, clearing the punch out and all
// breaks. Rejected while working or on break.
func (t *Tracker) PunchIn() error {
	t.mux.Lock()
	defer t.mux.Unlock()

	rec, err := t.repo.GetDayRecord()
	if err != nil {
		return err
	}

	switch rec.State() {
	case StateWorking, StateOnBreak:
		t.notificator.Notify("Punch in", "already punched in")
		return ErrInvalidTransition
	}

	now := t.clock.now()
	*rec = DayRecord{PunchIn: &now}
	if err := t.repo.SaveDayRecord(rec); err != nil {
		return err
	}
	t.logger.Debug("punch in", slog.Time("at", now))
	t.notificator.Notify("Punch in", "have a good day")
	return nil
}

func (t *Tracker) PunchOut() error {
	t.mux.Lock()
	defer t.mux.Unlock()

	rec, err := t.repo.GetDayRecord()
	if err != nil {
		return err
	}

	if rec.State() != StateWorking {
		t.notificator.Notify("Punch out", "not working right now")
		return ErrInvalidTransition
	}

	now := t.clock.now()
	rec.PunchOut = &now
	if err := t.repo.SaveDayRecord(rec); err != nil {
		return err
	}
	t.logger.Debug("punch out", slog.Time("at", now))

	s := ComputeSummary(rec.PunchIn, rec.PunchOut, rec.Breaks, t.cfg.RequiredMinutes)
	msg := fmt.Sprintf("worked %s", FormatDuration(s.WorkMinutes))
	if !s.Compliant() {
		msg += fmt.Sprintf(", %s short of %s", FormatDuration(s.RequiredMinutes-s.WorkMinutes), FormatDuration(s.RequiredMinutes))
	}
	t.notificator.Notify("Punch out", msg)
	return nil
}

// StartBreak opens a break. Rejected once the allowance is used up;
// the allowance is reevaluated from the persisted punch in every time.
func (t *Tracker) StartBreak() error {
	t.mux.Lock()
	defer t.mux.Unlock()

	rec, err := t.repo.GetDayRecord()
	if err != nil {
		return err
	}

	if rec.State() != StateWorking {
		t.notificator.Notify("Break", "can only start a break while working")
		return ErrInvalidTransition
	}

	allowed := t.cfg.Allowance(*rec.PunchIn)
	if rec.BreakMinutes() >= allowed {
		t.notificator.Notify("Break", fmt.Sprintf("break allowance of %s is used up", FormatDuration(allowed)))
		return ErrBreakExhausted
	}

	now := t.clock.now()
	rec.OnBreak = true
	rec.BreakStart = &now
	if err := t.repo.SaveDayRecord(rec); err != nil {
		return err
	}
	t.logger.Debug("break start", slog.Time("at", now))
	t.notificator.Notify("Break", fmt.Sprintf("%s left", FormatDuration(allowed-rec.BreakMinutes())))
	return nil
}

// EndBreak closes the open break and records the session. A break that
// ran over the allowance is committed in full after the user confirms;
// on decline the break stays open and the record is unchanged.
func (t *Tracker) EndBreak() error {
	t.mux.Lock()
	defer t.mux.Unlock()

	rec, err := t.repo.GetDayRecord()
	if err != nil {
		return err
	}

	if rec.State() != StateOnBreak {
		t.notificator.Notify("Break", "not on a break right now")
		return ErrInvalidTransition
	}

	now := t.clock.now()
	minutes := MinutesBetween(*rec.BreakStart, now)
	allowed := t.cfg.Allowance(*rec.PunchIn)
	if used := rec.BreakMinutes() + minutes; used > allowed {
		msg := fmt.Sprintf("this break runs %s over the allowance, end it anyway?", FormatDuration(used-allowed))
		if !t.confirmer.Confirm(msg) {
			return nil
		}
	}

	end := now
	rec.Breaks = append(rec.Breaks, BreakSession{Start: *rec.BreakStart, End: &end, Minutes: minutes})
	rec.OnBreak = false
	rec.BreakStart = nil
	if err := t.repo.SaveDayRecord(rec); err != nil {
		return err
	}
	t.logger.Debug("break end", slog.Time("at", now), slog.Int("minutes", minutes))
	t.notificator.Notify("Break", fmt.Sprintf("%s recorded", FormatDuration(minutes)))
	return nil
}

// ClearDay discards the live record after confirmation. History is kept.
func (t *Tracker) ClearDay() error {
	t.mux.Lock()
	defer t.mux.Unlock()

	rec, err := t.repo.GetDayRecord()
	if err != nil {
		return err
	}
	if !rec.HasData() {
		return nil
	}
	if !t.confirmer.Confirm("discard today's record?") {
		return nil
	}
	return t.repo.SaveDayRecord(&DayRecord{})
}

func (t *Tracker) Record() (*DayRecord, error) {
	return t.repo.GetDayRecord()
}

func (t *Tracker) History() ([]HistoryEntry, error) {
	return t.repo.GetHistory()
}

func (t *Tracker) Summary() (*DaySummary, error) {
	rec, err := t.repo.GetDayRecord()
	if err != nil {
		return nil, err
	}
	return ComputeSummary(rec.PunchIn, rec.PunchOut, rec.Breaks, t.cfg.RequiredMinutes), nil
}

func (t *Tracker) BreakStatus() (BreakStatus, error) {
	rec, err := t.repo.GetDayRecord()
	if err != nil {
		return BreakStatus{}, err
	}
	return t.cfg.BreakStatusAt(rec, t.clock.now()), nil
}

func (t *Tracker) Progress() (*Progress, error) {
	rec, err := t.repo.GetDayRecord()
	if err != nil {
		return nil, err
	}
	return t.cfg.ProgressAt(rec, t.clock.now()), nil
}
