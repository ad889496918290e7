package model

import "time"

// HourCategory tags an hour log with the activity it claims hours for.
// HR is internal-only self-tracking for second-year POR holders and is
// never aggregated into the four department counters.
type HourCategory string

const (
	CategoryDept  HourCategory = "Dept"
	CategoryMeet  HourCategory = "Meet"
	CategoryEvent HourCategory = "Event"
	CategoryMisc  HourCategory = "Misc"
	CategoryHR    HourCategory = "HR"
)

// Valid reports whether c is one of the known categories.
func (c HourCategory) Valid() bool {
	switch c {
	case CategoryDept, CategoryMeet, CategoryEvent, CategoryMisc, CategoryHR:
		return true
	}
	return false
}

// LogStatus is the hour log state machine: Pending may move to
// Approved or Rejected exactly once; both are terminal.
type LogStatus string

const (
	StatusPending  LogStatus = "Pending"
	StatusApproved LogStatus = "Approved"
	StatusRejected LogStatus = "Rejected"
)

// Terminal reports whether the status permits no further transition.
func (s LogStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// HourLog is a single time-bounded activity claim. EndTime is strictly
// after StartTime at creation time.
type HourLog struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	UserID        uint         `json:"userId" gorm:"not null;index"`
	Task          string       `json:"task" gorm:"type:text;not null"`
	Category      HourCategory `json:"category" gorm:"type:varchar(10);not null;index"`
	StartTime     time.Time    `json:"startTime" gorm:"not null"`
	EndTime       time.Time    `json:"endTime" gorm:"not null"`
	SeniorPresent string       `json:"seniorPresent,omitempty" gorm:"size:255"`
	Status        LogStatus    `json:"status" gorm:"type:varchar(10);not null;default:'Pending';index"`
	SubmittedAt   time.Time    `json:"submittedAt" gorm:"autoCreateTime;index"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
