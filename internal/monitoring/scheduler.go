// Package monitoring runs background maintenance jobs.
package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/isdelr/quizmaster-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const backupTimeout = time.Minute

// Scheduler runs store backups on a cron schedule.
type Scheduler struct {
	backupSvc services.BackupServiceProvider
	cron      *cron.Cron
}

// NewScheduler creates a scheduler that backs up the store on spec, a
// standard cron expression or descriptor such as "@hourly".
func NewScheduler(backupSvc services.BackupServiceProvider, spec string) (*Scheduler, error) {
	s := &Scheduler{
		backupSvc: backupSvc,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
	if _, err := s.cron.AddFunc(spec, s.runBackup); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	log.Info().Msg("Starting background scheduler...")
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running backup to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Background scheduler stopped")
}

func (s *Scheduler) runBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	backup, err := s.backupSvc.CreateBackup(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Scheduled backup failed")
		return
	}
	log.Debug().Str("backup", backup.Name).Msg("Scheduled backup finished")
}
