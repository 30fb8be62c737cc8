package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Achievement struct {
	Base
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// UserAchievement records that a user earned an achievement. At most one row
// exists per (user, achievement); rows are never updated or deleted.
type UserAchievement struct {
	ID            string      `gorm:"primaryKey;type:text" json:"id"`
	UserID        string      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"userId"`
	AchievementID string      `gorm:"uniqueIndex:idx_user_achievement;not null" json:"achievementId"`
	EarnedAt      time.Time   `json:"earnedAt"`
	Achievement   Achievement `json:"achievement"`
}

func (g *UserAchievement) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.EarnedAt.IsZero() {
		g.EarnedAt = time.Now().UTC()
	}
	return nil
}
