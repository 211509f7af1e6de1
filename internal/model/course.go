package model

import "time"

// swagger:model Course
type Course struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	LevelIDs    StringList `gorm:"type:json" json:"levelIds"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Course) TableName() string {
	return "courses"
}
