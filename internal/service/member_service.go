package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"hourcount/internal/authz"
	"hourcount/internal/cache"
	apperrors "hourcount/internal/errors"
	"hourcount/internal/model"
	"hourcount/internal/repository"
)

const (
	profileCacheTTL = 5 * time.Minute

	defaultPageSize = 10
	maxPageSize     = 100
)

// Pagination describes one page of a listing response.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalRows   int64 `json:"totalRows"`
	TotalPages  int   `json:"totalPages"`
}

func profileCacheKey(userID uint) string {
	return fmt.Sprintf("profile:%d", userID)
}

func normalizePage(page, amount int) (int, int) {
	if page < 1 {
		page = 1
	}
	if amount < 1 {
		amount = defaultPageSize
	}
	if amount > maxPageSize {
		amount = maxPageSize
	}
	return page, amount
}

func newPagination(page, amount int, total int64) *Pagination {
	return &Pagination{
		CurrentPage: page,
		PageSize:    amount,
		TotalRows:   total,
		TotalPages:  int(math.Ceil(float64(total) / float64(amount))),
	}
}

// MemberService is the read-side member directory plus the cached
// self-profile view.
type MemberService interface {
	ListMembers(ctx context.Context, principal authz.Principal, page, amount int) ([]repository.MemberRow, *Pagination, error)
	Profile(ctx context.Context, principal authz.Principal) (*model.User, error)
}

type memberService struct {
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewMemberService creates a new member directory service.
func NewMemberService(userRepo repository.UserRepository, cache *cache.Client) MemberService {
	return &memberService{
		userRepo: userRepo,
		cache:    cache,
	}
}

// ListMembers returns the scope-filtered directory page, newest users
// first. An empty page is an empty result, not an error.
func (s *memberService) ListMembers(ctx context.Context, principal authz.Principal, page, amount int) ([]repository.MemberRow, *Pagination, error) {
	filter, ok := authz.ListScope(principal)
	if !ok {
		return nil, nil, apperrors.ErrForbidden
	}

	page, amount = normalizePage(page, amount)
	rows, total, err := s.userRepo.List(ctx, filter, (page-1)*amount, amount)
	if err != nil {
		return nil, nil, fmt.Errorf("list members: %w", err)
	}
	return rows, newPagination(page, amount, total), nil
}

// Profile returns the principal's own record with department, counters
// and logs, cache-aside in Redis. Writers that change counters
// invalidate the entry.
func (s *memberService) Profile(ctx context.Context, principal authz.Principal) (*model.User, error) {
	key := profileCacheKey(principal.UserID)

	var cached model.User
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	user, err := s.userRepo.FindByIDWithDetails(ctx, principal.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	s.cache.SetJSON(ctx, key, user, profileCacheTTL)
	return user, nil
}
