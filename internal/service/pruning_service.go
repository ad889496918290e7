package service

import (
	"context"
	"log/slog"
	"time"

	"hourcount/internal/repository"
)

const (
	// LogRetentionMonths is how long resolved and pending hour logs
	// are kept after submission.
	LogRetentionMonths = 2
	// UserRetentionYears is how long user accounts are kept after
	// creation.
	UserRetentionYears = 4
)

// PruneResult reports what one sweep removed.
type PruneResult struct {
	DeletedLogs  int64
	DeletedUsers int64
}

// PruningService is the periodic retention sweep: hour logs and users
// past their horizons are deleted independently. Counters are not
// recomputed; historical approvals stay accounted for. The sweep is
// idempotent and a failed half never aborts the other.
type PruningService struct {
	logRepo  repository.HourLogRepository
	userRepo repository.UserRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewPruningService creates a new pruning service.
func NewPruningService(logRepo repository.HourLogRepository, userRepo repository.UserRepository, logger *slog.Logger) *PruningService {
	return &PruningService{
		logRepo:  logRepo,
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes one sweep. Errors are logged, never propagated, so a
// failed sweep cannot take the cron driver down.
func (s *PruningService) Run(ctx context.Context) PruneResult {
	var result PruneResult
	now := s.now()

	logCutoff := now.AddDate(0, -LogRetentionMonths, 0)
	deletedLogs, err := s.logRepo.DeleteSubmittedBefore(ctx, logCutoff)
	if err != nil {
		s.logger.Error("pruning hour logs failed", "error", err)
	} else {
		result.DeletedLogs = deletedLogs
	}

	userCutoff := now.AddDate(-UserRetentionYears, 0, 0)
	deletedUsers, err := s.userRepo.DeleteCreatedBefore(ctx, userCutoff)
	if err != nil {
		s.logger.Error("pruning users failed", "error", err)
	} else {
		result.DeletedUsers = deletedUsers
	}

	s.logger.Info("pruning complete",
		"deletedLogs", result.DeletedLogs,
		"deletedUsers", result.DeletedUsers)
	return result
}
