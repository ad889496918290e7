package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hourcount/internal/authz"
	"hourcount/internal/cache"
	apperrors "hourcount/internal/errors"
	"hourcount/internal/model"
	"hourcount/internal/repository"
)

// AddUserInput carries a validated new-member request.
type AddUserInput struct {
	Name             string
	Email            string
	DepartmentID     uint
	SpecificPosition string
}

// RemovalSummary reports what a user deletion cascaded over.
type RemovalSummary struct {
	DeletedUser *model.User `json:"deletedUser"`
	DeletedLogs int64       `json:"deletedLogs"`
}

// UserService handles administrative user management: creation,
// deletion with cascade, and promotion.
type UserService interface {
	AddUser(ctx context.Context, principal authz.Principal, in AddUserInput) (*model.User, error)
	RemoveUser(ctx context.Context, principal authz.Principal, targetID uint) (*RemovalSummary, error)
	Promote(ctx context.Context, principal authz.Principal, targetID, departmentID uint, to model.Role) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	deptRepo repository.DepartmentRepository
	logRepo  repository.HourLogRepository
	cache    *cache.Client
}

// NewUserService creates a new user management service.
func NewUserService(userRepo repository.UserRepository, deptRepo repository.DepartmentRepository, logRepo repository.HourLogRepository, cache *cache.Client) UserService {
	return &userService{
		userRepo: userRepo,
		deptRepo: deptRepo,
		logRepo:  logRepo,
		cache:    cache,
	}
}

// AddUser creates a plain Member. POR holders are confined to seeding
// their own department; higher roles may target any department.
func (s *userService) AddUser(ctx context.Context, principal authz.Principal, in AddUserInput) (*model.User, error) {
	if !authz.CanCreateUser(principal) {
		return nil, apperrors.ErrForbidden
	}

	deptID := authz.CreateDepartment(principal, in.DepartmentID)
	if _, err := s.deptRepo.FindByID(ctx, deptID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("load department: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	user := &model.User{
		Name:             strings.TrimSpace(in.Name),
		Email:            email,
		Role:             model.RoleMember,
		SpecificPosition: in.SpecificPosition,
		DepartmentID:     deptID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// RemoveUser deletes the target and cascades over their hour logs in
// one transaction. The role ladder and the no-self-deletion rule are
// enforced before anything is touched.
func (s *userService) RemoveUser(ctx context.Context, principal authz.Principal, targetID uint) (*RemovalSummary, error) {
	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if principal.UserID == target.ID {
		return nil, apperrors.ErrSelfDeletion
	}
	if !authz.CanDeleteUser(principal, authz.SubjectFromUser(target)) {
		return nil, apperrors.ErrForbidden
	}

	var deletedLogs int64
	err = s.logRepo.WithTransaction(ctx, func(ctx context.Context, logs repository.HourLogRepository, users repository.UserRepository) error {
		n, err := logs.DeleteByUser(ctx, target.ID)
		if err != nil {
			return fmt.Errorf("delete user logs: %w", err)
		}
		deletedLogs = n
		if err := users.Delete(ctx, target.ID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, profileCacheKey(target.ID))
	return &RemovalSummary{DeletedUser: target, DeletedLogs: deletedLogs}, nil
}

// Promote raises the target to the given role and re-homes them into
// the given department.
func (s *userService) Promote(ctx context.Context, principal authz.Principal, targetID, departmentID uint, to model.Role) (*model.User, error) {
	if !authz.CanPromote(principal, to) {
		return nil, apperrors.ErrForbidden
	}

	if _, err := s.deptRepo.FindByID(ctx, departmentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("load department: %w", err)
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	target.Role = to
	target.DepartmentID = departmentID
	if to != model.RoleSecondYearPOR {
		// The specific-position label only means something for POR holders.
		target.SpecificPosition = ""
	}
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, profileCacheKey(target.ID))
	return target, nil
}
