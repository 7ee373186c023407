package kintai

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexflint/go-filemutex"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/buntdb"
)

type fakeNotificator struct {
	messages []string
}

func (n *fakeNotificator) Notify(title, message string) error {
	n.messages = append(n.messages, title+": "+message)
	return nil
}

type fakeConfirmer struct {
	answer bool
	asked  []string
}

func (c *fakeConfirmer) Confirm(message string) bool {
	c.asked = append(c.asked, message)
	return c.answer
}

type testClock struct {
	t time.Time
}

func (c *testClock) Clock() Clock {
	return func() time.Time { return c.t }
}

func (c *testClock) Set(t time.Time) {
	c.t = t
}

func (c *testClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

type testEnv struct {
	tracker     *Tracker
	archiver    *Archiver
	repo        Repository
	clock       *testClock
	notificator *fakeNotificator
	confirmer   *fakeConfirmer
}

func newTestEnv(t *testing.T, start time.Time) *testEnv {
	t.Helper()

	db, err := buntdb.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	fm, err := filemutex.New(filepath.Join(t.TempDir(), "kintai.lock"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := NewRepository(db, logger)
	clock := &testClock{t: start}
	notificator := &fakeNotificator{}
	confirmer := &fakeConfirmer{answer: true}
	cfg := DefaultConfig()

	return &testEnv{
		tracker:     NewTracker(repo, fm, notificator, confirmer, clock.Clock(), cfg, logger),
		archiver:    NewArchiver(repo, fm, clock.Clock(), cfg, logger),
		repo:        repo,
		clock:       clock,
		notificator: notificator,
		confirmer:   confirmer,
	}
}

func at(t *testing.T, day time.Time, hhmm string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", hhmm)
	require.NoError(t, err)
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location())
}

var testDay = time.Date(2024, 5, 20, 0, 0, 0, 0, time.Local)
