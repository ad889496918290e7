package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hourcount/internal/authz"
	apperrors "hourcount/internal/errors"
	"hourcount/internal/model"
	"hourcount/internal/repository"
)

func TestListMembersForbiddenForMembers(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := NewMemberService(userRepo, nil)

	_, _, err := svc.ListMembers(context.Background(), memberPrincipal(), 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	userRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListMembersScopesPORToOwnDepartment(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := NewMemberService(userRepo, nil)

	rows := []repository.MemberRow{
		{User: model.User{ID: 10, Role: model.RoleMember, DepartmentID: 3}, LogCount: 4},
	}
	userRepo.On("List", mock.Anything, authz.ListFilter{
		DepartmentID: 3,
		Roles:        []model.Role{model.RoleMember},
	}, 0, 10).Return(rows, int64(1), nil)

	got, page, err := svc.ListMembers(context.Background(), reviewerPrincipal(), 1, 10)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].LogCount)
	assert.Equal(t, 1, page.TotalPages)
	userRepo.AssertExpectations(t)
}

func TestListMembersEmptyPageIsEmptyResult(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := NewMemberService(userRepo, nil)

	userRepo.On("List", mock.Anything, mock.Anything, 90, 10).
		Return([]repository.MemberRow{}, int64(14), nil)

	got, page, err := svc.ListMembers(context.Background(), reviewerPrincipal(), 10, 10)
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 10, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
}

func TestListMembersNormalizesPaging(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := NewMemberService(userRepo, nil)

	// Page zero and a zero amount fall back to the first default-size page.
	userRepo.On("List", mock.Anything, mock.Anything, 0, defaultPageSize).
		Return([]repository.MemberRow{}, int64(0), nil)

	_, page, err := svc.ListMembers(context.Background(), reviewerPrincipal(), 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, defaultPageSize, page.PageSize)
}

func TestProfileLoadsWithDetails(t *testing.T) {
	userRepo := new(mockUserRepository)
	svc := NewMemberService(userRepo, nil)

	userRepo.On("FindByIDWithDetails", mock.Anything, uint(10)).Return(&model.User{
		ID:            10,
		HourCountDept: 12.5,
		Department:    &model.Department{ID: 3, Name: "Publicity"},
	}, nil)

	user, err := svc.Profile(context.Background(), memberPrincipal())
	assert.NoError(t, err)
	assert.Equal(t, 12.5, user.HourCountDept)
	assert.Equal(t, "Publicity", user.Department.Name)
}
