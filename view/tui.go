package view

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"kintai/kintai"
)

// TUI shows history plus today's record and lets the user correct
// today's punches and breaks. History rows are frozen and not
// selectable.
func NewTUI(tracker *kintai.Tracker, repo Repository, logger *slog.Logger) Viewer {
	return &tui{
		tracker: tracker,
		repo:    repo,
		logger:  logger,
	}
}

type tui struct {
	tracker *kintai.Tracker
	repo    Repository

	logger *slog.Logger

	app  *tview.Application
	root *tview.Flex
}

// flatRow is one table line: the day's first line carries the punches,
// each break session gets its own line. breakIndex is -1 on a line with
// no break cell.
type flatRow struct {
	row        Row
	first      bool
	breakIndex int
}

func flatten(rows []Row) []flatRow {
	flat := make([]flatRow, 0, len(rows))
	for _, r := range rows {
		if len(r.Breaks) == 0 {
			flat = append(flat, flatRow{row: r, first: true, breakIndex: -1})
			continue
		}
		for i := range r.Breaks {
			flat = append(flat, flatRow{row: r, first: i == 0, breakIndex: i})
		}
	}
	return flat
}

func (t *tui) Do(yearMonth string) error {
	rows, err := t.repo.ListRows(yearMonth)
	if err != nil {
		return err
	}

	if t.app != nil {
		t.app.Stop()
	}
	t.app = tview.NewApplication()

	flat := flatten(rows)
	table := newAttendanceTable(flat)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(table, 0, 1, true)

	rowOffset := 1
	table.Select(0, 0).SetFixed(1, 1).SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			table.SetSelectable(true, true)
		}
		if key == tcell.KeyEscape {
			t.app.Stop()
		}
	}).SetSelectedFunc(func(row int, column int) {
		idx := row - rowOffset
		if idx < 0 || idx >= len(flat) {
			return
		}
		fr := flat[idx]
		if !fr.row.Today {
			return
		}

		var form *tview.Form
		switch column {
		case 1:
			form = t.newPunchForm(fr, func() {
				t.Do(yearMonth)
			}, func(f *tview.Form) {
				t.app.SetFocus(table)
				flex.RemoveItem(f)
			})
		case 2:
			form = t.newBreakForm(fr, func() {
				t.Do(yearMonth)
			}, func(f *tview.Form) {
				t.app.SetFocus(table)
				flex.RemoveItem(f)
			})
		default:
			return
		}
		flex.AddItem(form, 0, 1, true)
		t.app.SetFocus(form)
	})

	title := "attendance"
	if yearMonth != "" {
		title = fmt.Sprintf("attendance %s", yearMonth)
	}
	t.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(tview.NewTextView().SetText(title), 1, 1, false).
		AddItem(flex, 0, 1, true)
	return t.app.SetRoot(t.root, true).Run()
}

func newAttendanceTable(flat []flatRow) *tview.Table {
	table := tview.NewTable().SetBorders(true)

	table.SetCell(0, 0, tview.NewTableCell("Date").SetAlign(tview.AlignCenter).SetSelectable(false))
	table.SetCell(0, 1, tview.NewTableCell("In ~ Out").SetAlign(tview.AlignCenter).SetSelectable(false))
	table.SetCell(0, 2, tview.NewTableCell("Break").SetAlign(tview.AlignCenter).SetSelectable(false))

	for i, fr := range flat {
		row := i + 1
		dateCell := tview.NewTableCell("").SetSelectable(false)
		punchCell := tview.NewTableCell("").SetAlign(tview.AlignCenter).SetSelectable(false)
		if fr.first {
			label := string(fr.row.Date)
			if fr.row.Today {
				label += " *"
			}
			dateCell = tview.NewTableCell(" " + label + " ").SetAlign(tview.AlignCenter).SetSelectable(false)
			punchCell = newTimeRangeCell(fr.row.PunchIn, fr.row.PunchOut).SetSelectable(fr.row.Today)
		}
		table.SetCell(row, 0, dateCell)
		table.SetCell(row, 1, punchCell)

		if fr.breakIndex >= 0 {
			b := fr.row.Breaks[fr.breakIndex]
			table.SetCell(row, 2, newTimeRangeCell(&b.Start, b.End).SetSelectable(fr.row.Today))
		} else {
			table.SetCell(row, 2, newTimeRangeCell(nil, nil).SetSelectable(fr.row.Today))
		}
	}
	return table
}

func (t *tui) newPunchForm(fr flatRow, refresh func(), cancel func(form *tview.Form)) *tview.Form {
	in, out := "", ""
	if fr.row.PunchIn != nil {
		in = fr.row.PunchIn.Format("15:04")
	}
	if fr.row.PunchOut != nil {
		out = fr.row.PunchOut.Format("15:04")
	}

	var form *tview.Form
	form = tview.NewForm().
		AddInputField("Punch in (HH:mm)", in, 0, nil, func(text string) {
			in = text
		}).
		AddInputField("Punch out (HH:mm)", out, 0, nil, func(text string) {
			out = text
		}).
		AddTextView("", "", 0, 0, false, false)
	form.
		AddButton("Save", func() {
			if in != "" {
				h, m, err := parseHourMinute(in)
				if err != nil {
					setFormError(form, "punch in time must be HH:mm")
					return
				}
				if err := t.tracker.EditPunchIn(h, m); err != nil {
					t.logger.Error("failed to edit punch in", slog.String("error", err.Error()))
				}
			}
			if out != "" {
				h, m, err := parseHourMinute(out)
				if err != nil {
					setFormError(form, "punch out time must be HH:mm")
					return
				}
				if err := t.tracker.EditPunchOut(h, m); err != nil {
					t.logger.Error("failed to edit punch out", slog.String("error", err.Error()))
				}
			}
			refresh()
		}).
		AddButton("Cancel", func() {
			cancel(form)
		})
	form.SetBorder(true).SetTitle("Edit punches").SetTitleAlign(tview.AlignLeft)
	return form
}

func (t *tui) newBreakForm(fr flatRow, refresh func(), cancel func(form *tview.Form)) *tview.Form {
	index := fr.breakIndex
	if index < 0 {
		// empty break cell: editing it appends a new session
		index = len(fr.row.Breaks)
	}
	start, end := "", ""
	if fr.breakIndex >= 0 {
		b := fr.row.Breaks[fr.breakIndex]
		start = b.Start.Format("15:04")
		if b.End != nil {
			end = b.End.Format("15:04")
		}
	}

	var form *tview.Form
	form = tview.NewForm().
		AddInputField("Break start (HH:mm)", start, 0, nil, func(text string) {
			start = text
		}).
		AddInputField("Break end (HH:mm)", end, 0, nil, func(text string) {
			end = text
		}).
		AddTextView("", "", 0, 0, false, false)
	form.
		AddButton("Save", func() {
			if start != "" {
				h, m, err := parseHourMinute(start)
				if err != nil {
					setFormError(form, "break start time must be HH:mm")
					return
				}
				if err := t.tracker.EditBreakStart(index, h, m); err != nil {
					t.logger.Error("failed to edit break start", slog.String("error", err.Error()))
				}
			}
			if end != "" {
				h, m, err := parseHourMinute(end)
				if err != nil {
					setFormError(form, "break end time must be HH:mm")
					return
				}
				if err := t.tracker.EditBreakEnd(index, h, m); err != nil {
					t.logger.Error("failed to edit break end", slog.String("error", err.Error()))
				}
			}
			refresh()
		}).
		AddButton("Delete", func() {
			if fr.breakIndex < 0 {
				cancel(form)
				return
			}
			if err := t.tracker.DeleteBreak(fr.breakIndex); err != nil {
				t.logger.Error("failed to delete break", slog.String("error", err.Error()))
			}
			refresh()
		}).
		AddButton("Cancel", func() {
			cancel(form)
		})
	form.SetBorder(true).SetTitle("Edit break").SetTitleAlign(tview.AlignLeft)
	return form
}

func setFormError(form *tview.Form, msg string) {
	form.GetFormItem(2).(*tview.TextView).
		SetLabel("error").
		SetText(msg)
}

func parseHourMinute(s string) (int, int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

const emptyTimeStr = "--:--"

func newTimeRangeCell(start, end *time.Time) *tview.TableCell {
	return tview.NewTableCell(fmt.Sprintf("  %s ~ %s  ", timeToString(start), timeToString(end))).
		SetAlign(tview.AlignCenter)
}

func timeToString(t *time.Time) string {
	if t == nil {
		return emptyTimeStr
	}
	return t.Format("15:04")
}
