package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"hourcount/internal/authz"
	"hourcount/internal/hours"
	"hourcount/internal/model"
	"hourcount/internal/repository"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) FindByIDWithDetails(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, filter authz.ListFilter, offset, limit int) ([]repository.MemberRow, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]repository.MemberRow), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) ApplyIncrement(ctx context.Context, id uint, inc hours.Increment) error {
	args := m.Called(ctx, id, inc)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// mockHourLogRepository pairs with a user repository mock so
// WithTransaction can hand both to the closure, the way the real
// implementation binds them to one transaction.
type mockHourLogRepository struct {
	mock.Mock
	users *mockUserRepository
}

func (m *mockHourLogRepository) Create(ctx context.Context, log *model.HourLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *mockHourLogRepository) FindByID(ctx context.Context, id uint) (*model.HourLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HourLog), args.Error(1)
}

func (m *mockHourLogRepository) FindByIDWithOwner(ctx context.Context, id uint) (*model.HourLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HourLog), args.Error(1)
}

func (m *mockHourLogRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.HourLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HourLog), args.Error(1)
}

func (m *mockHourLogRepository) UpdateStatusIfPending(ctx context.Context, id uint, status model.LogStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockHourLogRepository) ListByUser(ctx context.Context, userID uint) ([]model.HourLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HourLog), args.Error(1)
}

func (m *mockHourLogRepository) ListByUserPaged(ctx context.Context, userID uint, offset, limit int) ([]model.HourLog, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.HourLog), args.Get(1).(int64), args.Error(2)
}

func (m *mockHourLogRepository) ListPending(ctx context.Context, filter authz.ListFilter) ([]model.HourLog, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HourLog), args.Error(1)
}

func (m *mockHourLogRepository) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockHourLogRepository) DeleteSubmittedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// WithTransaction runs the closure against the same mocks, so tests
// observe the calls made inside the transactional unit.
func (m *mockHourLogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, logs repository.HourLogRepository, users repository.UserRepository) error) error {
	return fn(ctx, m, m.users)
}

type mockDepartmentRepository struct {
	mock.Mock
}

func (m *mockDepartmentRepository) FindByID(ctx context.Context, id uint) (*model.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *mockDepartmentRepository) FindOrCreateByName(ctx context.Context, name string) (*model.Department, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *mockDepartmentRepository) List(ctx context.Context) ([]model.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Department), args.Error(1)
}
