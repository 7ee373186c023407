package view

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"kintai/kintai"
)

type tableViewer struct {
	repo   Repository
	out    io.Writer
	format string
}

func NewTableViewer(repo Repository, out io.Writer) Viewer {
	return &tableViewer{repo: repo, out: out, format: "table"}
}

// NewExportViewer renders the same table in an export format:
// "table", "markdown" or "csv".
func NewExportViewer(repo Repository, out io.Writer, format string) Viewer {
	return &tableViewer{repo: repo, out: out, format: format}
}

func (t *tableViewer) Do(yearMonth string) error {
	rows, err := t.repo.ListRows(yearMonth)
	if err != nil {
		return err
	}
	w := buildTableWriter(rows, t.out)
	switch t.format {
	case "markdown":
		w.RenderMarkdown()
	case "csv":
		w.RenderCSV()
	case "table":
		w.Render()
	default:
		return fmt.Errorf("unknown export format %q", t.format)
	}
	return nil
}

func buildTableWriter(rows []Row, out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Date", "In", "Out", "Break", "Work", "Required", "OK"})

	totalWorkMinutes := 0
	for _, r := range rows {
		date := string(r.Date)
		if r.Today {
			date += " *"
		}

		breakStr := kintai.FormatDuration(breakMinutes(r.Breaks))
		work, required, ok := "", "", ""
		if r.Summary != nil {
			work = kintai.FormatDuration(r.Summary.WorkMinutes)
			required = kintai.FormatDuration(r.Summary.RequiredMinutes)
			if r.Summary.Compliant() {
				ok = "yes"
			} else {
				ok = "no"
			}
			totalWorkMinutes += r.Summary.WorkMinutes
		}

		t.AppendRow(table.Row{
			date,
			ptrTimeToString(r.PunchIn),
			ptrTimeToString(r.PunchOut),
			breakStr,
			work,
			required,
			ok,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "total", kintai.FormatDuration(totalWorkMinutes), "", ""})
	t.SetStyle(table.StyleRounded)
	return t
}

func breakMinutes(breaks []kintai.BreakSession) int {
	total := 0
	for _, b := range breaks {
		total += b.Minutes
	}
	return total
}

func ptrTimeToString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}
