package kintai

import (
	"log/slog"
	"time"
)

// Manager drives the periodic rollover check.
type Manager struct {
	archiver        *Archiver
	logger          *slog.Logger
	exitCh          chan error
	pollingInterval time.Duration
}

func NewManager(archiver *Archiver, logger *slog.Logger, pollingInterval time.Duration) *Manager {
	return &Manager{
		archiver:        archiver,
		logger:          logger,
		exitCh:          make(chan error),
		pollingInterval: pollingInterval,
	}
}

// Watch runs the archiver once per polling interval until an archiver
// error or Stop.
func (m *Manager) Watch() error {
	m.logger.Debug("start polling")
	for {
		select {
		case <-time.After(m.pollingInterval):
			if err := m.archiver.Run(); err != nil {
				return err
			}
		case err := <-m.exitCh:
			return err
		}
	}
}

func (m *Manager) Stop() {
	m.exitCh <- nil
}
