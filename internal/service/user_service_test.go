package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"hourcount/internal/authz"
	apperrors "hourcount/internal/errors"
	"hourcount/internal/model"
)

func newUserServiceForTest() (UserService, *mockUserRepository, *mockDepartmentRepository, *mockHourLogRepository) {
	userRepo := new(mockUserRepository)
	deptRepo := new(mockDepartmentRepository)
	logRepo := &mockHourLogRepository{users: userRepo}
	svc := NewUserService(userRepo, deptRepo, logRepo, nil)
	return svc, userRepo, deptRepo, logRepo
}

func TestAddUserForbiddenForMembers(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceForTest()

	_, err := svc.AddUser(context.Background(), memberPrincipal(), AddUserInput{
		Name:  "New Member",
		Email: "f20241330@pilani.bits-pilani.ac.in",
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddUserPORConfinedToOwnDepartment(t *testing.T) {
	svc, userRepo, deptRepo, _ := newUserServiceForTest()

	// The POR asks for department 9; the new member lands in 3 anyway.
	deptRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.Department{ID: 3}, nil)
	userRepo.On("FindByEmail", mock.Anything, "f20241330@pilani.bits-pilani.ac.in").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.DepartmentID == 3 && u.Role == model.RoleMember
	})).Return(nil)

	user, err := svc.AddUser(context.Background(), reviewerPrincipal(), AddUserInput{
		Name:         "New Member",
		Email:        "F20241330@pilani.bits-pilani.ac.in",
		DepartmentID: 9,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(3), user.DepartmentID)
	assert.Equal(t, "f20241330@pilani.bits-pilani.ac.in", user.Email)
	userRepo.AssertExpectations(t)
}

func TestAddUserRejectsTakenEmail(t *testing.T) {
	svc, userRepo, deptRepo, _ := newUserServiceForTest()

	deptRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.Department{ID: 3}, nil)
	userRepo.On("FindByEmail", mock.Anything, "f20241330@pilani.bits-pilani.ac.in").
		Return(&model.User{ID: 5}, nil)

	_, err := svc.AddUser(context.Background(), reviewerPrincipal(), AddUserInput{
		Name:  "New Member",
		Email: "f20241330@pilani.bits-pilani.ac.in",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddUserUnknownDepartment(t *testing.T) {
	svc, _, deptRepo, _ := newUserServiceForTest()
	coord := authz.Principal{UserID: 1, Role: model.RoleCoordinator, DepartmentID: 2}

	deptRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.AddUser(context.Background(), coord, AddUserInput{
		Name:         "New Member",
		Email:        "f20241330@pilani.bits-pilani.ac.in",
		DepartmentID: 9,
	})
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}

func TestRemoveUserRejectsSelfDeletion(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceForTest()
	trio := authz.Principal{UserID: 7, Role: model.RoleTrio}

	userRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.User{
		ID:   7,
		Role: model.RoleTrio,
	}, nil)

	_, err := svc.RemoveUser(context.Background(), trio, 7)
	assert.ErrorIs(t, err, apperrors.ErrSelfDeletion)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRemoveUserOutsideLadderForbidden(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceForTest()

	// A POR holder cannot delete a member of another department.
	userRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.User{
		ID:           10,
		Role:         model.RoleMember,
		DepartmentID: 9,
	}, nil)

	_, err := svc.RemoveUser(context.Background(), reviewerPrincipal(), 10)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRemoveUserCascadesOverLogs(t *testing.T) {
	svc, userRepo, _, logRepo := newUserServiceForTest()

	userRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.User{
		ID:           10,
		Role:         model.RoleMember,
		DepartmentID: 3,
	}, nil)
	logRepo.On("DeleteByUser", mock.Anything, uint(10)).Return(int64(6), nil)
	userRepo.On("Delete", mock.Anything, uint(10)).Return(nil)

	summary, err := svc.RemoveUser(context.Background(), reviewerPrincipal(), 10)
	assert.NoError(t, err)
	assert.Equal(t, uint(10), summary.DeletedUser.ID)
	assert.Equal(t, int64(6), summary.DeletedLogs)
	logRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestRemoveUserMissingTarget(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceForTest()

	userRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.RemoveUser(context.Background(), reviewerPrincipal(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestPromoteToCoordinatorRequiresTrio(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest()
	coord := authz.Principal{UserID: 1, Role: model.RoleCoordinator, DepartmentID: 2}

	_, err := svc.Promote(context.Background(), coord, 10, 2, model.RoleCoordinator)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestPromoteClearsPositionAbovePOR(t *testing.T) {
	svc, userRepo, deptRepo, _ := newUserServiceForTest()
	trio := authz.Principal{UserID: 1, Role: model.RoleTrio}

	deptRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.Department{ID: 2}, nil)
	userRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.User{
		ID:               10,
		Role:             model.RoleSecondYearPOR,
		SpecificPosition: "Excomm",
		DepartmentID:     3,
	}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleCoordinator && u.SpecificPosition == "" && u.DepartmentID == 2
	})).Return(nil)

	updated, err := svc.Promote(context.Background(), trio, 10, 2, model.RoleCoordinator)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleCoordinator, updated.Role)
	assert.Empty(t, updated.SpecificPosition)
	userRepo.AssertExpectations(t)
}

func TestPromoteToPORKeepsPosition(t *testing.T) {
	svc, userRepo, deptRepo, _ := newUserServiceForTest()
	coord := authz.Principal{UserID: 1, Role: model.RoleCoordinator, DepartmentID: 2}

	deptRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.Department{ID: 3}, nil)
	userRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.User{
		ID:           10,
		Role:         model.RoleMember,
		DepartmentID: 3,
	}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleSecondYearPOR
	})).Return(nil)

	updated, err := svc.Promote(context.Background(), coord, 10, 3, model.RoleSecondYearPOR)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleSecondYearPOR, updated.Role)
}
