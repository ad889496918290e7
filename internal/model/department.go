package model

// Department is a pure grouping entity; every user belongs to exactly one.
type Department struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:255;not null"`
}
