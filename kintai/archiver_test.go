package kintai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiverRollsOverFinishedDay(t *testing.T) {
	e := newTestEnv(t, at(t, testDay, "09:15"))
	require.NoError(t, e.archiver.Run())

	require.NoError(t, e.tracker.PunchIn())
	e.clock.Set(at(t, testDay, "11:00"))
	require.NoError(t, e.tracker.StartBreak())
	e.clock.Set(at(t, testDay, "11:40"))
	require.NoError(t, e.tracker.EndBreak())
	e.clock.Set(at(t, testDay, "17:15"))
	require.NoError(t, e.tracker.PunchOut())

	nextDay := testDay.AddDate(0, 0, 1)
	e.clock.Set(at(t, nextDay, "08:00"))
	require.NoError(t, e.archiver.Run())

	hs, err := e.repo.GetHistory()
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, DateOf(testDay), hs[0].Date, "entry tagged with the old day")
	require.NotNil(t, hs[0].Summary)
	assert.Equal(t, 440, hs[0].Summary.WorkMinutes)
	require.Len(t, hs[0].Breaks, 1)

	rec, err := e.repo.GetDayRecord()
	require.NoError(t, err)
	assert.False(t, rec.HasData(), "live record reset after archival")

	marker, err := e.repo.GetDayMarker()
	require.NoError(t, err)
	assert.Equal(t, DateOf(nextDay), marker)
}

func TestArchiverIdempotent(t *testing.T) {
	e := newTestEnv(t, at(t, testDay, "09:15"))
	require.NoError(t, e.archiver.Run())
	require.NoError(t, e.tracker.PunchIn())

	nextDay := testDay.AddDate(0, 0, 1)
	e.clock.Set(at(t, nextDay, "08:00"))
	require.NoError(t, e.archiver.Run())
	require.NoError(t, e.archiver.Run())

	hs, err := e.repo.GetHistory()
	require.NoError(t, err)
	assert.Len(t, hs, 1, "second run with no new activity archives nothing")
}

func TestArchiverSkipsEmptyDay(t *testing.T) {
	e := newTestEnv(t, at(t, testDay, "09:15"))
	require.NoError(t, e.archiver.Run())

	nextDay := testDay.AddDate(0, 0, 1)
	e.clock.Set(at(t, nextDay, "08:00"))
	require.NoError(t, e.archiver.Run())

	hs, err := e.repo.GetHistory()
	require.NoError(t, err)
	assert.Empty(t, hs, "a day with no punches or breaks leaves no history")

	marker, err := e.repo.GetDayMarker()
	require.NoError(t, err)
	assert.Equal(t, DateOf(nextDay), marker, "marker still advances")
}

// An abandoned day (punched in, never out) is still archived; its
// summary is nil because the punch out is missing.
func TestArchiverArchivesAbandonedDay(t *testing.T) {
	e := newTestEnv(t, at(t, testDay, "09:15"))
	require.NoError(t, e.archiver.Run())
	require.NoError(t, e.tracker.PunchIn())

	nextDay := testDay.AddDate(0, 0, 1)
	e.clock.Set(at(t, nextDay, "08:00"))
	require.NoError(t, e.archiver.Run())

	hs, err := e.repo.GetHistory()
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Nil(t, hs[0].Summary)
	assert.NotNil(t, hs[0].PunchIn)
}

// Without a stored marker the archiver adopts the record's own day, so
// the first run after an upgrade never discards a live day.
func TestArchiverFirstRunKeepsLiveDay(t *testing.T) {
	e := newTestEnv(t, at(t, testDay, "09:15"))
	require.NoError(t, e.tracker.PunchIn())

	e.clock.Set(at(t, testDay, "12:00"))
	require.NoError(t, e.archiver.Run())

	rec, err := e.repo.GetDayRecord()
	require.NoError(t, err)
	assert.True(t, rec.HasData(), "same-day record survives the first run")

	hs, err := e.repo.GetHistory()
	require.NoError(t, err)
	assert.Empty(t, hs)
}

func TestArchiverHistoryIsAppendOnly(t *testing.T) {
	e := newTestEnv(t, at(t, testDay, "09:15"))
	require.NoError(t, e.archiver.Run())

	for i := 0; i < 3; i++ {
		day := testDay.AddDate(0, 0, i)
		e.clock.Set(at(t, day, "09:00"))
		require.NoError(t, e.archiver.Run())
		require.NoError(t, e.tracker.PunchIn())
		e.clock.Set(at(t, day, "17:00"))
		require.NoError(t, e.tracker.PunchOut())
	}
	e.clock.Set(at(t, testDay.AddDate(0, 0, 3), "09:00"))
	require.NoError(t, e.archiver.Run())

	hs, err := e.repo.GetHistory()
	require.NoError(t, err)
	require.Len(t, hs, 3)
	for i, h := range hs {
		assert.Equal(t, DateOf(testDay.AddDate(0, 0, i)), h.Date, "history stays in day order")
	}
}
