// SPDX-License-Identifier: MIT
package backup

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler handles automatic backup scheduling
type Scheduler struct {
	Manager        *Manager
	BackupInterval time.Duration
	Retention      int
	logger         *zap.Logger
	cancel         context.CancelFunc
}

// NewScheduler creates a daily scheduler that keeps the last 10 backups
func NewScheduler(manager *Manager) *Scheduler {
	return &Scheduler{
		Manager:        manager,
		BackupInterval: 24 * time.Hour,
		Retention:      10,
		logger:         manager.logger,
	}
}

// Start runs a backup immediately and then on every interval until ctx is
// done or Stop is called. The returned channel is closed once it has stopped.
func (s *Scheduler) Start(ctx context.Context) <-chan struct{} {
	ctx, s.cancel = context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(s.BackupInterval)
		defer ticker.Stop()

		s.runBackup()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runBackup()
			}
		}
	}()

	return done
}

// Stop stops the backup scheduler
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Scheduler) runBackup() {
	if _, err := s.Manager.Create("scheduled"); err != nil {
		s.logger.Error("scheduled backup failed", zap.Error(err))
		return
	}
	if _, err := s.Manager.Prune(s.Retention); err != nil {
		s.logger.Error("backup pruning failed", zap.Error(err))
	}
}
