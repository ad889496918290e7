// Package authz is the authorization scope resolver: pure functions
// deciding what an authenticated principal may do to a target user or
// hour log, and how listing queries are narrowed for them.
package authz

import "hourcount/internal/model"

// Principal is the acting user's authorization-relevant snapshot.
type Principal struct {
	UserID           uint
	Role             model.Role
	DepartmentID     uint
	SpecificPosition string
}

// Subject is the target user's snapshot (or a log's owner snapshot).
type Subject struct {
	UserID       uint
	Role         model.Role
	DepartmentID uint
}

// PrincipalFromUser adapts a loaded user record.
func PrincipalFromUser(u *model.User) Principal {
	return Principal{
		UserID:           u.ID,
		Role:             u.Role,
		DepartmentID:     u.DepartmentID,
		SpecificPosition: u.SpecificPosition,
	}
}

// SubjectFromUser adapts a loaded user record.
func SubjectFromUser(u *model.User) Subject {
	return Subject{UserID: u.ID, Role: u.Role, DepartmentID: u.DepartmentID}
}

// CanReviewLog reports whether the principal may approve or reject a
// log owned by the given subject. Second-year POR holders review plain
// Members of their own department only; Coordinator and Trio review
// anyone's logs, unrestricted by department.
func CanReviewLog(p Principal, owner Subject) bool {
	switch p.Role {
	case model.RoleCoordinator, model.RoleTrio:
		return true
	case model.RoleSecondYearPOR:
		return owner.Role == model.RoleMember && owner.DepartmentID == p.DepartmentID
	}
	return false
}

// CanCreateUser reports whether the principal may create new Member
// accounts at all. POR holders are additionally confined to their own
// department via CreateDepartment.
func CanCreateUser(p Principal) bool {
	switch p.Role {
	case model.RoleSecondYearPOR, model.RoleCoordinator, model.RoleTrio:
		return true
	}
	return false
}

// CreateDepartment resolves the department a new user lands in: POR
// holders always seed into their own department; higher roles may pick
// one, falling back to their own when none is given.
func CreateDepartment(p Principal, requested uint) uint {
	if p.Role == model.RoleSecondYearPOR || requested == 0 {
		return p.DepartmentID
	}
	return requested
}

// CanDeleteUser reports whether the principal may delete the target.
// The ladder: POR holders delete same-department Members; Coordinators
// also delete POR holders anywhere; Trio also deletes Coordinators.
// Nobody deletes their own account, under any role.
func CanDeleteUser(p Principal, target Subject) bool {
	if p.UserID == target.UserID {
		return false
	}
	switch target.Role {
	case model.RoleMember:
		switch p.Role {
		case model.RoleSecondYearPOR:
			return target.DepartmentID == p.DepartmentID
		case model.RoleCoordinator, model.RoleTrio:
			return true
		}
	case model.RoleSecondYearPOR:
		return p.Role == model.RoleCoordinator || p.Role == model.RoleTrio
	case model.RoleCoordinator:
		return p.Role == model.RoleTrio
	}
	return false
}

// CanPromote reports whether the principal may promote a user to the
// given role. Coordinator and Trio promote Members to POR holder;
// only Trio promotes to Coordinator.
func CanPromote(p Principal, to model.Role) bool {
	switch to {
	case model.RoleSecondYearPOR:
		return p.Role == model.RoleCoordinator || p.Role == model.RoleTrio
	case model.RoleCoordinator:
		return p.Role == model.RoleTrio
	}
	return false
}

// ListFilter narrows a directory or pending-log query to the rows the
// principal may see. A zero DepartmentID means all departments; an
// empty Roles slice means all roles.
type ListFilter struct {
	DepartmentID uint
	Roles        []model.Role
}

// ListScope resolves the directory visibility for the principal. The
// second return is false when the principal has no directory access.
func ListScope(p Principal) (ListFilter, bool) {
	switch p.Role {
	case model.RoleSecondYearPOR:
		return ListFilter{
			DepartmentID: p.DepartmentID,
			Roles:        []model.Role{model.RoleMember},
		}, true
	case model.RoleCoordinator, model.RoleTrio:
		return ListFilter{
			Roles: []model.Role{model.RoleMember, model.RoleSecondYearPOR},
		}, true
	}
	return ListFilter{}, false
}

// ReviewScope resolves which pending logs the principal may see. POR
// holders see their department's Members only; Coordinator and Trio
// see every pending log.
func ReviewScope(p Principal) (ListFilter, bool) {
	switch p.Role {
	case model.RoleSecondYearPOR:
		return ListFilter{
			DepartmentID: p.DepartmentID,
			Roles:        []model.Role{model.RoleMember},
		}, true
	case model.RoleCoordinator, model.RoleTrio:
		return ListFilter{}, true
	}
	return ListFilter{}, false
}
