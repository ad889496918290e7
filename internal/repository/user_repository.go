package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hourcount/internal/authz"
	"hourcount/internal/hours"
	"hourcount/internal/model"
)

// MemberRow is a directory listing row: the user plus how many hour
// logs they have filed.
type MemberRow struct {
	model.User
	LogCount int64 `json:"logCount" gorm:"column:log_count"`
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context, filter authz.ListFilter, offset, limit int) ([]MemberRow, int64, error)
	ApplyIncrement(ctx context.Context, id uint, inc hours.Increment) error
	Delete(ctx context.Context, id uint) error
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDForUpdate finds a user by ID with a row-level lock so a
// concurrent approval cannot interleave a counter update.
func (r *userRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Set("gorm:query_option", "FOR UPDATE").
		Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDWithDetails loads a user together with department and hour
// logs, for the profile view.
func (r *userRepository) FindByIDWithDetails(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("HourLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("hour_logs.submitted_at DESC")
		}).
		First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func applyUserFilter(q *gorm.DB, filter authz.ListFilter) *gorm.DB {
	if filter.DepartmentID != 0 {
		q = q.Where("users.department_id = ?", filter.DepartmentID)
	}
	if len(filter.Roles) > 0 {
		q = q.Where("users.role IN ?", filter.Roles)
	}
	return q
}

// List returns the scope-filtered directory page, newest users first,
// with per-user log counts and the total matching row count.
func (r *userRepository) List(ctx context.Context, filter authz.ListFilter, offset, limit int) ([]MemberRow, int64, error) {
	var total int64
	if err := applyUserFilter(r.db.WithContext(ctx).Model(&model.User{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := []MemberRow{}
	q := applyUserFilter(r.db.WithContext(ctx).Model(&model.User{}), filter).
		Select("users.*, (SELECT COUNT(*) FROM hour_logs WHERE hour_logs.user_id = users.id) AS log_count").
		Order("users.created_at DESC").
		Offset(offset).
		Limit(limit)
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ApplyIncrement adds the increment to its single counter column
// in-place, so the delta composes with concurrent writers.
func (r *userRepository) ApplyIncrement(ctx context.Context, id uint, inc hours.Increment) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn(inc.Column, gorm.Expr(inc.Column+" + ?", inc.Hours)).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

// DeleteCreatedBefore removes users older than the cutoff along with
// their hour logs, returning how many users were deleted.
func (r *userRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id IN (?)",
			tx.Model(&model.User{}).Select("id").Where("created_at < ?", cutoff),
		).Delete(&model.HourLog{}).Error; err != nil {
			return err
		}
		res := tx.Where("created_at < ?", cutoff).Delete(&model.User{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}
