package scheduler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"parking-be-svc/internal/service"
	"parking-be-svc/pkg/logger"
)

// BackupScheduler periodically writes the full export snapshot to disk so a
// whole-file store has at least point-in-time recovery
type BackupScheduler struct {
	exportService  service.ExportService
	logger         *logger.Logger
	cron           *cron.Cron
	cronExpression string
	backupDir      string
}

// NewBackupScheduler creates a new backup scheduler. An empty cron
// expression disables the job.
func NewBackupScheduler(exportService service.ExportService, logger *logger.Logger, cronExpression, dataDir string) *BackupScheduler {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &BackupScheduler{
		exportService:  exportService,
		logger:         logger,
		cron:           c,
		cronExpression: cronExpression,
		backupDir:      filepath.Join(dataDir, "backups"),
	}
}

// Start schedules and starts the backup job
func (s *BackupScheduler) Start() error {
	if s.cronExpression == "" {
		s.logger.Info("Backup scheduler disabled (empty cron expression)")
		return nil
	}

	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling backup job")
	_, err := s.cron.AddFunc(s.cronExpression, s.runBackup)
	if err != nil {
		return fmt.Errorf("failed to schedule backup job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Backup scheduler started successfully")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *BackupScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Backup scheduler stopped")
}

// RunOnce writes one snapshot immediately; also used by the scheduled job
func (s *BackupScheduler) RunOnce() (string, error) {
	snapshot, err := s.exportService.Snapshot()
	if err != nil {
		return "", fmt.Errorf("failed to collect snapshot: %w", err)
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	path := filepath.Join(s.backupDir, fmt.Sprintf("snapshot_%s.json", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	return path, nil
}

func (s *BackupScheduler) runBackup() {
	start := time.Now()
	s.logger.Info("Backup job started")

	path, err := s.RunOnce()
	if err != nil {
		s.logger.WithError(err).Error("Backup job failed")
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"path":     path,
		"duration": time.Since(start).String(),
	}).Info("Backup job completed successfully")
}
