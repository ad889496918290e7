package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hourcount/internal/authz"
	"hourcount/internal/cache"
	apperrors "hourcount/internal/errors"
	"hourcount/internal/hours"
	"hourcount/internal/model"
	"hourcount/internal/repository"
)

// CreateHourLogInput carries a validated hour log submission.
type CreateHourLogInput struct {
	Task          string
	Category      model.HourCategory
	Start         time.Time
	End           time.Time
	SeniorPresent string
}

// HourLogService is the hour log lifecycle manager: creation, the
// Pending -> Approved/Rejected transitions, and the counter increment
// that must land atomically with every approval.
type HourLogService interface {
	Create(ctx context.Context, principal authz.Principal, in CreateHourLogInput) (*model.HourLog, error)
	Approve(ctx context.Context, principal authz.Principal, logID uint) (*model.User, error)
	Reject(ctx context.Context, principal authz.Principal, logID uint) (*model.HourLog, error)
	MyLogs(ctx context.Context, principal authz.Principal) ([]model.HourLog, error)
	PendingLogs(ctx context.Context, principal authz.Principal) ([]model.HourLog, error)
	UserLogs(ctx context.Context, principal authz.Principal, userID uint, page, amount int) ([]model.HourLog, *Pagination, error)
}

type hourLogService struct {
	logRepo  repository.HourLogRepository
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewHourLogService creates a new hour log service.
func NewHourLogService(logRepo repository.HourLogRepository, userRepo repository.UserRepository, cache *cache.Client) HourLogService {
	return &hourLogService{
		logRepo:  logRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

// Create files an hour log. Coordinator and Trio submissions are
// self-certifying: the log is born Approved and the author's counter
// is incremented in the same transaction as the insert. HR logs are
// POR-holder self-tracking: born Approved, no counter ever touched.
func (s *hourLogService) Create(ctx context.Context, principal authz.Principal, in CreateHourLogInput) (*model.HourLog, error) {
	if !in.End.After(in.Start) {
		return nil, apperrors.ErrInvalidTimeRange
	}
	if !in.Category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}
	if in.Category == model.CategoryHR && principal.Role != model.RoleSecondYearPOR {
		return nil, apperrors.ErrForbidden
	}

	log := &model.HourLog{
		UserID:        principal.UserID,
		Task:          in.Task,
		Category:      in.Category,
		StartTime:     in.Start,
		EndTime:       in.End,
		SeniorPresent: in.SeniorPresent,
		Status:        model.StatusPending,
	}

	selfCertified := principal.Role.SelfCertifying() || in.Category == model.CategoryHR
	if !selfCertified {
		if err := s.logRepo.Create(ctx, log); err != nil {
			return nil, fmt.Errorf("create hour log: %w", err)
		}
		return log, nil
	}

	log.Status = model.StatusApproved

	// HR never feeds a counter, so a plain insert suffices.
	if !hours.Countable(in.Category) {
		if err := s.logRepo.Create(ctx, log); err != nil {
			return nil, fmt.Errorf("create hour log: %w", err)
		}
		return log, nil
	}

	inc, err := hours.IncrementFor(in.Category, hours.Elapsed(in.Start, in.End))
	if err != nil {
		return nil, fmt.Errorf("resolve counter: %w", err)
	}

	err = s.logRepo.WithTransaction(ctx, func(ctx context.Context, logs repository.HourLogRepository, users repository.UserRepository) error {
		if err := logs.Create(ctx, log); err != nil {
			return fmt.Errorf("create hour log: %w", err)
		}
		if err := users.ApplyIncrement(ctx, principal.UserID, inc); err != nil {
			return fmt.Errorf("apply counter increment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateProfile(ctx, principal.UserID)
	return log, nil
}

// Approve transitions a Pending log to Approved and increments the
// owner's matching counter as one atomic unit. A log already resolved
// yields ErrLogAlreadyResolved and no counter change, so a duplicate
// approval can never double-count.
func (s *hourLogService) Approve(ctx context.Context, principal authz.Principal, logID uint) (*model.User, error) {
	log, err := s.loadForReview(ctx, principal, logID)
	if err != nil {
		return nil, err
	}
	if log.Status.Terminal() {
		return nil, apperrors.ErrLogAlreadyResolved
	}

	ownerID := log.UserID
	err = s.logRepo.WithTransaction(ctx, func(ctx context.Context, logs repository.HourLogRepository, users repository.UserRepository) error {
		locked, err := logs.FindByIDForUpdate(ctx, logID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrLogNotFound
			}
			return fmt.Errorf("lock hour log: %w", err)
		}
		if locked.Status.Terminal() {
			return apperrors.ErrLogAlreadyResolved
		}

		flipped, err := logs.UpdateStatusIfPending(ctx, logID, model.StatusApproved)
		if err != nil {
			return fmt.Errorf("update log status: %w", err)
		}
		if !flipped {
			return apperrors.ErrLogAlreadyResolved
		}

		inc, err := hours.IncrementFor(locked.Category, hours.Elapsed(locked.StartTime, locked.EndTime))
		if err != nil {
			return fmt.Errorf("resolve counter: %w", err)
		}
		if err := users.ApplyIncrement(ctx, locked.UserID, inc); err != nil {
			return fmt.Errorf("apply counter increment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateProfile(ctx, ownerID)

	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("reload owner: %w", err)
	}
	return owner, nil
}

// Reject transitions a Pending log to Rejected. Counters are never
// touched, and a rejected log is terminal: it cannot be re-queued.
func (s *hourLogService) Reject(ctx context.Context, principal authz.Principal, logID uint) (*model.HourLog, error) {
	log, err := s.loadForReview(ctx, principal, logID)
	if err != nil {
		return nil, err
	}
	if log.Status.Terminal() {
		return nil, apperrors.ErrLogAlreadyResolved
	}

	flipped, err := s.logRepo.UpdateStatusIfPending(ctx, logID, model.StatusRejected)
	if err != nil {
		return nil, fmt.Errorf("update log status: %w", err)
	}
	if !flipped {
		return nil, apperrors.ErrLogAlreadyResolved
	}

	log.Status = model.StatusRejected
	return log, nil
}

// loadForReview fetches a log with its owner and runs the scope
// resolver before any mutation is attempted.
func (s *hourLogService) loadForReview(ctx context.Context, principal authz.Principal, logID uint) (*model.HourLog, error) {
	log, err := s.logRepo.FindByIDWithOwner(ctx, logID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrLogNotFound
		}
		return nil, fmt.Errorf("load hour log: %w", err)
	}
	if log.User == nil {
		return nil, apperrors.ErrLogNotFound
	}
	if !authz.CanReviewLog(principal, authz.SubjectFromUser(log.User)) {
		return nil, apperrors.ErrForbidden
	}
	return log, nil
}

func (s *hourLogService) MyLogs(ctx context.Context, principal authz.Principal) ([]model.HourLog, error) {
	return s.logRepo.ListByUser(ctx, principal.UserID)
}

// PendingLogs returns the review queue visible to the principal,
// oldest submissions first.
func (s *hourLogService) PendingLogs(ctx context.Context, principal authz.Principal) ([]model.HourLog, error) {
	filter, ok := authz.ReviewScope(principal)
	if !ok {
		return nil, apperrors.ErrForbidden
	}
	return s.logRepo.ListPending(ctx, filter)
}

// UserLogs is the reviewer's paginated view of one member's logs.
func (s *hourLogService) UserLogs(ctx context.Context, principal authz.Principal, userID uint, page, amount int) ([]model.HourLog, *Pagination, error) {
	target, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperrors.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}
	if !authz.CanReviewLog(principal, authz.SubjectFromUser(target)) {
		return nil, nil, apperrors.ErrForbidden
	}

	page, amount = normalizePage(page, amount)
	logs, total, err := s.logRepo.ListByUserPaged(ctx, userID, (page-1)*amount, amount)
	if err != nil {
		return nil, nil, fmt.Errorf("list user logs: %w", err)
	}
	return logs, newPagination(page, amount, total), nil
}

func (s *hourLogService) invalidateProfile(ctx context.Context, userID uint) {
	_ = s.cache.Delete(ctx, profileCacheKey(userID))
}
