package kintai

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManagerRunsArchiverPeriodically(t *testing.T) {
	e := newTestEnv(t, at(t, testDay, "09:15"))
	require.NoError(t, e.archiver.Run())
	require.NoError(t, e.tracker.PunchIn())
	e.clock.Set(at(t, testDay.AddDate(0, 0, 1), "08:00"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mgr := NewManager(e.archiver, logger, 5*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- mgr.Watch() }()

	require.Eventually(t, func() bool {
		hs, err := e.repo.GetHistory()
		return err == nil && len(hs) == 1
	}, time.Second, 5*time.Millisecond, "the tick should archive the stale day")

	mgr.Stop()
	require.NoError(t, <-done)
}
