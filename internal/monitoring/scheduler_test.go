package monitoring

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/isdelr/quizmaster-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBackups struct {
	calls atomic.Int32
	err   error
}

func (c *countingBackups) CreateBackup(ctx context.Context) (models.Backup, error) {
	c.calls.Add(1)
	return models.Backup{Name: "b.zip"}, c.err
}

func (c *countingBackups) ListBackups() ([]models.Backup, error) { return nil, nil }

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler(&countingBackups{}, "not a schedule")
	assert.Error(t, err)
}

func TestScheduler_RunsBackups(t *testing.T) {
	backups := &countingBackups{}
	s, err := NewScheduler(backups, "@every 1s")
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return backups.calls.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)
}

func TestScheduler_FailedBackupKeepsRunning(t *testing.T) {
	backups := &countingBackups{err: errors.New("disk full")}
	s, err := NewScheduler(backups, "@every 1s")
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return backups.calls.Load() >= 2 }, 6*time.Second, 50*time.Millisecond)
}
