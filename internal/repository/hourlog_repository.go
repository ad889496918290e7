package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hourcount/internal/authz"
	"hourcount/internal/model"
)

// HourLogRepository defines hour log persistence operations.
type HourLogRepository interface {
	Create(ctx context.Context, log *model.HourLog) error
	FindByID(ctx context.Context, id uint) (*model.HourLog, error)
	FindByIDWithOwner(ctx context.Context, id uint) (*model.HourLog, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.HourLog, error)
	UpdateStatusIfPending(ctx context.Context, id uint, status model.LogStatus) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]model.HourLog, error)
	ListByUserPaged(ctx context.Context, userID uint, offset, limit int) ([]model.HourLog, int64, error)
	ListPending(ctx context.Context, filter authz.ListFilter) ([]model.HourLog, error)
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
	DeleteSubmittedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// WithTransaction runs fn with log and user repositories bound to
	// one database transaction; any error rolls the whole unit back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, logs HourLogRepository, users UserRepository) error) error
}

type hourLogRepository struct {
	db *gorm.DB
}

// NewHourLogRepository builds a GORM-backed repository.
func NewHourLogRepository(db *gorm.DB) HourLogRepository {
	return &hourLogRepository{db: db}
}

func (r *hourLogRepository) Create(ctx context.Context, log *model.HourLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *hourLogRepository) FindByID(ctx context.Context, id uint) (*model.HourLog, error) {
	var log model.HourLog
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// FindByIDWithOwner loads a log together with its owning user, which
// the lifecycle manager needs for authorization checks.
func (r *hourLogRepository) FindByIDWithOwner(ctx context.Context, id uint) (*model.HourLog, error) {
	var log model.HourLog
	if err := r.db.WithContext(ctx).Preload("User").First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// FindByIDForUpdate locks the log row so two concurrent approvals
// serialize; the loser observes the terminal status.
func (r *hourLogRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.HourLog, error) {
	var log model.HourLog
	if err := r.db.WithContext(ctx).Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", id).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// UpdateStatusIfPending flips a Pending log to the given terminal
// status. It reports false when the log was already resolved, which
// callers must treat as a conflict rather than re-applying counters.
func (r *hourLogRepository) UpdateStatusIfPending(ctx context.Context, id uint, status model.LogStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.HourLog{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *hourLogRepository) ListByUser(ctx context.Context, userID uint) ([]model.HourLog, error) {
	logs := []model.HourLog{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *hourLogRepository) ListByUserPaged(ctx context.Context, userID uint, offset, limit int) ([]model.HourLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.HourLog{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := []model.HourLog{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// ListPending returns pending logs visible under the filter, oldest
// submissions first, with owner and department preloaded for display.
func (r *hourLogRepository) ListPending(ctx context.Context, filter authz.ListFilter) ([]model.HourLog, error) {
	logs := []model.HourLog{}
	q := r.db.WithContext(ctx).Model(&model.HourLog{}).
		Joins("JOIN users ON users.id = hour_logs.user_id").
		Where("hour_logs.status = ?", model.StatusPending)
	if filter.DepartmentID != 0 {
		q = q.Where("users.department_id = ?", filter.DepartmentID)
	}
	if len(filter.Roles) > 0 {
		q = q.Where("users.role IN ?", filter.Roles)
	}
	if err := q.Preload("User").Preload("User.Department").
		Order("hour_logs.submitted_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *hourLogRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.HourLog{})
	return res.RowsAffected, res.Error
}

func (r *hourLogRepository) DeleteSubmittedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("submitted_at < ?", cutoff).Delete(&model.HourLog{})
	return res.RowsAffected, res.Error
}

func (r *hourLogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, logs HourLogRepository, users UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &hourLogRepository{db: tx}, &userRepository{db: tx})
	})
}
