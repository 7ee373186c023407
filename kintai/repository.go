package kintai

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/tidwall/buntdb"
)

type Repository interface {
	SaveDayRecord(rec *DayRecord) error
	GetDayRecord() (*DayRecord, error)

	SaveHistory(hs []HistoryEntry) error
	GetHistory() ([]HistoryEntry, error)
	AppendHistory(h HistoryEntry) error

	SaveDayMarker(d Date) error
	GetDayMarker() (Date, error)

	Clear() error
}

const (
	dayRecordKey = "v1:day_record"
	historyKey   = "v1:history"
	dayMarkerKey = "v1:day_marker"
)

func NewRepository(db *buntdb.DB, logger *slog.Logger) Repository {
	return &kintaiRepository{db: db, logger: logger}
}

type kintaiRepository struct {
	db     *buntdb.DB
	logger *slog.Logger
}

func (r *kintaiRepository) SaveDayRecord(rec *DayRecord) error {
	return r.setJSON(dayRecordKey, rec)
}

// GetDayRecord never fails on a missing or malformed record: startup
// must always succeed, so corruption falls back to an empty day.
func (r *kintaiRepository) GetDayRecord() (*DayRecord, error) {
	raw, ok, err := r.get(dayRecordKey)
	if err != nil {
		return nil, err
	}
	rec := &DayRecord{}
	if !ok {
		return rec, nil
	}
	if err := json.Unmarshal([]byte(raw), rec); err != nil {
		r.logger.Warn("discarding malformed day record", slog.String("error", err.Error()))
		return &DayRecord{}, nil
	}
	// on_break without a break start violates the record invariant
	if rec.OnBreak && rec.BreakStart == nil {
		r.logger.Warn("discarding inconsistent break state")
		rec.OnBreak = false
	}
	return rec, nil
}

func (r *kintaiRepository) SaveHistory(hs []HistoryEntry) error {
	return r.setJSON(historyKey, hs)
}

func (r *kintaiRepository) GetHistory() ([]HistoryEntry, error) {
	raw, ok, err := r.get(historyKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var hs []HistoryEntry
	if err := json.Unmarshal([]byte(raw), &hs); err != nil {
		r.logger.Warn("discarding malformed history", slog.String("error", err.Error()))
		return nil, nil
	}
	return hs, nil
}

func (r *kintaiRepository) AppendHistory(h HistoryEntry) error {
	hs, err := r.GetHistory()
	if err != nil {
		return err
	}
	return r.SaveHistory(append(hs, h))
}

func (r *kintaiRepository) SaveDayMarker(d Date) error {
	return r.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(dayMarkerKey, string(d), nil)
		return err
	})
}

func (r *kintaiRepository) GetDayMarker() (Date, error) {
	raw, ok, err := r.get(dayMarkerKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return Date(raw), nil
}

func (r *kintaiRepository) Clear() error {
	return r.db.Update(func(tx *buntdb.Tx) error {
		for _, key := range []string{dayRecordKey, historyKey, dayMarkerKey} {
			if _, err := tx.Delete(key); err != nil && !errors.Is(err, buntdb.ErrNotFound) {
				return err
			}
		}
		return nil
	})
}

func (r *kintaiRepository) setJSON(key string, v any) error {
	return r.db.Update(func(tx *buntdb.Tx) error {
		bs, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(key, string(bs), nil)
		return err
	})
}

func (r *kintaiRepository) get(key string) (string, bool, error) {
	var raw string
	err := r.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if err != nil {
			return err
		}
		raw = v
		return nil
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	return raw, true, nil
}
