package cleanup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"invest-portal/internal/attachment"
	"invest-portal/internal/common/models"
	"invest-portal/internal/config"
	"invest-portal/internal/features/audit"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const moduleName = "attachments"

type CleanupService interface {
	// SweepOrphans finds blobs that no record references and, when apply is set, deletes them.
	SweepOrphans(ctx context.Context, apply bool) (*SweepResult, error)
	InitializeScheduler(ctx context.Context) error
	StopScheduler() error
}

type CleanupServiceImpl struct {
	Registry     *attachment.Registry
	AuditService audit.AuditService
	Logger       *zap.Logger
	Schedule     string
	GracePeriod  time.Duration
	Now          func() time.Time

	scheduler *cron.Cron
	running   sync.Mutex
	mu        sync.Mutex
}

func NewCleanupService(registry *attachment.Registry, auditService audit.AuditService, cfg *config.Config, logger *zap.Logger) CleanupService {
	return &CleanupServiceImpl{
		Registry:     registry,
		AuditService: auditService,
		Logger:       logger,
		Schedule:     cfg.OrphanSweepSchedule,
		GracePeriod:  cfg.OrphanGracePeriod,
		Now:          time.Now,
	}
}

func (s *CleanupServiceImpl) SweepOrphans(ctx context.Context, apply bool) (*SweepResult, error) {
	// one sweep at a time; a scheduled run and a manual one must not race on deletes
	s.running.Lock()
	defer s.running.Unlock()

	referenced, err := s.Registry.ReferencedPaths(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := s.Now().Add(-s.GracePeriod)
	blobs := s.Registry.Blobs()
	result := &SweepResult{DryRun: !apply, Orphans: []Orphan{}}

	for _, category := range s.Registry.Categories() {
		objects, err := blobs.List(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", category, err)
		}
		for _, obj := range objects {
			if _, ok := referenced[obj.ReferencePath]; ok {
				continue
			}
			if obj.ModTime.After(cutoff) {
				continue
			}

			result.CandidateCount++
			result.Orphans = append(result.Orphans, Orphan{
				ReferencePath: obj.ReferencePath,
				SizeBytes:     obj.SizeBytes,
				ModTime:       obj.ModTime,
			})
			if !apply {
				continue
			}

			if err := blobs.Delete(ctx, obj.ReferencePath); err != nil {
				result.FailedCount++
				s.Logger.Warn("Failed to delete orphaned blob",
					zap.String("path", obj.ReferencePath), zap.Error(err))
				continue
			}
			result.DeletedCount++
			result.ReclaimedBytes += obj.SizeBytes
		}
	}

	s.Logger.Info("Orphan sweep finished",
		zap.Bool("dry_run", result.DryRun),
		zap.Int("candidates", result.CandidateCount),
		zap.Int("deleted", result.DeletedCount),
		zap.Int("failed", result.FailedCount),
		zap.Int64("reclaimed_bytes", result.ReclaimedBytes))

	if apply {
		s.AuditService.Record(ctx, models.AuditActionSweep, moduleName, "", map[string]models.Change{
			"deleted": {New: result.DeletedCount},
			"failed":  {New: result.FailedCount},
		})
	}
	return result, nil
}

// InitializeScheduler starts the periodic sweep. An empty schedule disables it.
func (s *CleanupServiceImpl) InitializeScheduler(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Schedule == "" {
		s.Logger.Info("Orphan sweep schedule disabled")
		return nil
	}
	if s.scheduler != nil {
		return nil
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(s.Schedule, func() {
		if _, err := s.SweepOrphans(context.Background(), true); err != nil {
			s.Logger.Error("Scheduled orphan sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	scheduler.Start()
	s.scheduler = scheduler
	s.Logger.Info("Orphan sweep scheduled", zap.String("schedule", s.Schedule))
	return nil
}

func (s *CleanupServiceImpl) StopScheduler() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler == nil {
		return nil
	}
	<-s.scheduler.Stop().Done()
	s.scheduler = nil
	return nil
}
