package model

import "time"

// Role is the closed set of portal roles, lowest privilege first.
type Role string

const (
	RoleMember        Role = "Member"
	RoleSecondYearPOR Role = "SecondYearPORHolder"
	RoleCoordinator   Role = "Coordinator"
	RoleTrio          Role = "Trio"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleSecondYearPOR, RoleCoordinator, RoleTrio:
		return true
	}
	return false
}

// SelfCertifying reports whether the role's own hour logs skip review.
func (r Role) SelfCertifying() bool {
	return r == RoleCoordinator || r == RoleTrio
}

// SecondYearPositions lists the specific-position labels a
// second-year POR holder may carry.
var SecondYearPositions = []string{"Excomm", "HR"}

// User is a portal member with four independent hour counters.
// Counters only ever grow through the approval path.
type User struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	Name             string  `json:"name" gorm:"size:255;not null"`
	Email            string  `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Role             Role    `json:"role" gorm:"type:varchar(30);not null;default:'Member';index"`
	SpecificPosition string  `json:"specificPosition,omitempty" gorm:"size:50"`
	DepartmentID     uint    `json:"departmentId" gorm:"not null;index"`
	HourCountDept    float64 `json:"hourCountDept" gorm:"not null;default:0"`
	HourCountMeet    float64 `json:"hourCountMeet" gorm:"not null;default:0"`
	HourCountEvent   float64 `json:"hourCountEvent" gorm:"not null;default:0"`
	HourCountMisc    float64 `json:"hourCountMisc" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	HourLogs   []HourLog   `json:"hourLogs,omitempty" gorm:"foreignKey:UserID"`
}
