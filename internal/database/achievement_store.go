package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/fittrack-api/internal/achievement"
	"github.com/gdg-garage/fittrack-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AchievementStore implements achievement.Store on gorm.
type AchievementStore struct {
	db *gorm.DB
}

var _ achievement.Store = (*AchievementStore)(nil)

func NewAchievementStore(db *gorm.DB) *AchievementStore {
	return &AchievementStore{db: db}
}

func (s *AchievementStore) CountMeals(ctx context.Context, userID string) (int64, error) {
	return s.count(ctx, &models.Meal{}, "user_id = ?", userID)
}

func (s *AchievementStore) CountWorkouts(ctx context.Context, userID string) (int64, error) {
	return s.count(ctx, &models.Workout{}, "user_id = ?", userID)
}

func (s *AchievementStore) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return s.count(ctx, &models.Follow{}, "following_id = ?", userID)
}

func (s *AchievementStore) count(ctx context.Context, model any, query string, args ...any) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func (s *AchievementStore) ListDefinitions(ctx context.Context) ([]models.Achievement, error) {
	var defs []models.Achievement
	if err := s.db.WithContext(ctx).Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

func (s *AchievementStore) FindDefinitionByName(ctx context.Context, name string) (*models.Achievement, error) {
	var def models.Achievement
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&def).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, achievement.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &def, nil
}

func (s *AchievementStore) CreateDefinitions(ctx context.Context, definitions []models.Achievement) error {
	if len(definitions) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&definitions).Error
}

// CreateGrant inserts the grant unless the (user, achievement) pair already
// exists, in which case created is false.
func (s *AchievementStore) CreateGrant(ctx context.Context, grant *models.UserAchievement) (bool, error) {
	res := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(grant)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *AchievementStore) ListGrants(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	var grants []models.UserAchievement
	err := s.db.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("earned_at asc").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}
