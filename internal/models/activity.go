package models

import (
	"time"
)

type Meal struct {
	Base
	UserID   string    `gorm:"index;not null" json:"userId"`
	Name     string    `json:"name"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
	Date     time.Time `gorm:"index" json:"date"`
}

type Workout struct {
	Base
	UserID   string    `gorm:"index;not null" json:"userId"`
	Type     string    `json:"type"`
	Duration int       `json:"duration"` // minutes
	Calories float64   `json:"calories"`
	Date     time.Time `gorm:"index" json:"date"`
}

// Follow is a directed edge: FollowerID follows FollowingID.
type Follow struct {
	Base
	FollowerID  string `gorm:"uniqueIndex:idx_follow_pair;not null" json:"followerId"`
	FollowingID string `gorm:"uniqueIndex:idx_follow_pair;index;not null" json:"followingId"`
	Follower    *User  `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following   *User  `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}
