package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexflint/go-filemutex"
	"github.com/tidwall/buntdb"
	"github.com/urfave/cli/v2"

	"kintai/kintai"
	"kintai/view"
)

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	app := &cli.App{
		Name:  "kintai",
		Usage: "daily attendance and break tracking",
		Commands: []*cli.Command{
			inCommand,
			outCommand,
			breakCommand,
			statusCommand,
			editCommand,
			historyCommand,
			exportCommand,
			clearCommand,
			watchCommand,
		},
	}
	return app.Run(os.Args)
}

// env bundles everything a command needs. Every command runs the
// rollover check once before touching the day record.
type env struct {
	db       *buntdb.DB
	logger   *slog.Logger
	tracker  *kintai.Tracker
	archiver *kintai.Archiver
	cfg      kintai.Config
}

func (e *env) close() {
	e.db.Close()
}

func newEnv() (*env, error) {
	db, err := initDB()
	if err != nil {
		return nil, err
	}

	logger := newLogger()
	cfg := kintai.DefaultConfig()
	repo := kintai.NewRepository(db, logger)
	fm := newFileMutex()

	tracker := kintai.NewTracker(repo, fm, newNotificator(), newConfirmer(), nil, cfg, logger)
	archiver := kintai.NewArchiver(repo, fm, nil, cfg, logger)

	if err := archiver.Run(); err != nil {
		db.Close()
		return nil, err
	}

	return &env{db: db, logger: logger, tracker: tracker, archiver: archiver, cfg: cfg}, nil
}

// rejections are already surfaced through the notificator
func squelchRejection(err error) error {
	if errors.Is(err, kintai.ErrInvalidTransition) || errors.Is(err, kintai.ErrBreakExhausted) {
		return nil
	}
	return err
}

var inCommand = &cli.Command{
	Name:  "in",
	Usage: "punch in",
	Action: func(c *cli.Context) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()
		return squelchRejection(e.tracker.PunchIn())
	},
}

var outCommand = &cli.Command{
	Name:  "out",
	Usage: "punch out",
	Action: func(c *cli.Context) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()
		return squelchRejection(e.tracker.PunchOut())
	},
}

var breakCommand = &cli.Command{
	Name:  "break",
	Usage: "start or end a break",
	Subcommands: []*cli.Command{
		{
			Name:  "start",
			Usage: "start a break",
			Action: func(c *cli.Context) error {
				e, err := newEnv()
				if err != nil {
					return err
				}
				defer e.close()
				return squelchRejection(e.tracker.StartBreak())
			},
		},
		{
			Name:  "end",
			Usage: "end the current break",
			Action: func(c *cli.Context) error {
				e, err := newEnv()
				if err != nil {
					return err
				}
				defer e.close()
				return squelchRejection(e.tracker.EndBreak())
			},
		},
	},
}

var statusCommand = &cli.Command{
	Name:  "status",
	Usage: "show today's state, break budget and work progress",
	Action: func(c *cli.Context) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()
		return printStatus(e.tracker)
	},
}

var editCommand = &cli.Command{
	Name:  "edit",
	Usage: "correct today's punches and breaks",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "month", Usage: "month to display, e.g. 2024-03"},
	},
	Action: func(c *cli.Context) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		repo := view.NewRepository(e.tracker)
		return view.NewTUI(e.tracker, repo, e.logger).Do(c.String("month"))
	},
}

var historyCommand = &cli.Command{
	Name:  "history",
	Usage: "list past days and today as a table",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "month", Usage: "month to display, e.g. 2024-03"},
	},
	Action: func(c *cli.Context) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		repo := view.NewRepository(e.tracker)
		return view.NewTableViewer(repo, os.Stdout).Do(c.String("month"))
	},
}

var exportCommand = &cli.Command{
	Name:  "export",
	Usage: "write the attendance table to stdout",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "month", Usage: "month to export, e.g. 2024-03"},
		&cli.StringFlag{Name: "format", Value: "csv", Usage: "table, markdown or csv"},
	},
	Action: func(c *cli.Context) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		repo := view.NewRepository(e.tracker)
		return view.NewExportViewer(repo, os.Stdout, c.String("format")).Do(c.String("month"))
	},
}

var clearCommand = &cli.Command{
	Name:  "clear",
	Usage: "discard today's record",
	Action: func(c *cli.Context) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()
		return e.tracker.ClearDay()
	},
}

var watchCommand = &cli.Command{
	Name:  "watch",
	Usage: "run the periodic day-rollover check",
	Action: func(c *cli.Context) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		mgr := kintai.NewManager(e.archiver, e.logger, e.cfg.RolloverInterval)
		return mgr.Watch()
	},
}

func printStatus(tracker *kintai.Tracker) error {
	rec, err := tracker.Record()
	if err != nil {
		return err
	}
	fmt.Printf("state: %s\n", rec.State())

	bs, err := tracker.BreakStatus()
	if err != nil {
		return err
	}
	fmt.Printf("break: used %s of %s, %s left\n",
		kintai.FormatDuration(bs.Used), kintai.FormatDuration(bs.Allowed), kintai.FormatDuration(bs.Remaining))
	if bs.IsExceeded() {
		fmt.Printf("break allowance exceeded by %s\n", kintai.FormatDuration(bs.Exceeded))
	}

	p, err := tracker.Progress()
	if err != nil {
		return err
	}
	if p != nil {
		fmt.Printf("worked %s, %s to go, estimated punch out %s\n",
			kintai.FormatDuration(p.WorkMinutes), kintai.FormatDuration(p.RemainingMinutes),
			p.EstimatedPunchOut.Format("15:04"))
	}

	s, err := tracker.Summary()
	if err != nil {
		return err
	}
	if s != nil {
		ok := "no"
		if s.Compliant() {
			ok = "yes"
		}
		fmt.Printf("office %s, break %s, work %s, required %s, compliant: %s\n",
			kintai.FormatDuration(s.TotalOfficeMinutes), kintai.FormatDuration(s.BreakMinutes),
			kintai.FormatDuration(s.WorkMinutes), kintai.FormatDuration(s.RequiredMinutes), ok)
	}
	return nil
}

func initDB() (*buntdb.DB, error) {
	dir, err := getKintaiDir()
	if err != nil {
		return nil, err
	}

	db, err := buntdb.Open(filepath.Join(dir, "kintai.db"))
	if err != nil {
		return nil, err
	}
	return db, nil
}

func newLogger() *slog.Logger {
	dir, err := getKintaiDir()
	if err != nil {
		panic(err)
	}
	logFile, err := os.OpenFile(filepath.Join(dir, "log.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		panic(err)
	}

	return slog.New(
		slog.NewJSONHandler(logFile, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}),
	)
}

func newFileMutex() *filemutex.FileMutex {
	dir, err := getKintaiDir()
	if err != nil {
		panic(err)
	}

	mux, err := filemutex.New(filepath.Join(dir, "kintai.lock"))
	if err != nil {
		panic(err)
	}
	return mux
}

func getKintaiDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".kintai")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.Mkdir(dir, 0755); err != nil {
			return "", err
		}
	}
	return dir, nil
}
