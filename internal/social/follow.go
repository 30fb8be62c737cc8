package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/fittrack-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Follow makes followerID follow followingID. Only users with a public
// profile can be followed.
func (s *Service) Follow(ctx context.Context, followerID, followingID string) (*models.Follow, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}

	var target models.User
	err := s.db.WithContext(ctx).Preload("Profile").Where("id = ?", followingID).First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if target.Profile == nil || !target.Profile.IsPublic {
		return nil, ErrPrivateProfile
	}

	follow := models.Follow{FollowerID: followerID, FollowingID: followingID}
	res := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow)
	if res.Error != nil {
		return nil, fmt.Errorf("create follow: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyFollowing
	}
	return &follow, nil
}

func (s *Service) Unfollow(ctx context.Context, followerID, followingID string) error {
	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return fmt.Errorf("delete follow: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

func (s *Service) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return count > 0, nil
}

// Followers lists the users following userID, newest first, with each
// follower's profile attached.
func (s *Service) Followers(ctx context.Context, userID string, p Pagination) (Page[models.Follow], error) {
	return s.listFollows(ctx, "following_id", "Follower", userID, p)
}

// Following lists the users userID follows, newest first.
func (s *Service) Following(ctx context.Context, userID string, p Pagination) (Page[models.Follow], error) {
	return s.listFollows(ctx, "follower_id", "Following", userID, p)
}

func (s *Service) listFollows(ctx context.Context, column, relation, userID string, p Pagination) (Page[models.Follow], error) {
	p = p.normalize()

	var total int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where(column+" = ?", userID).
		Count(&total).Error
	if err != nil {
		return Page[models.Follow]{}, fmt.Errorf("count follows: %w", err)
	}

	var follows []models.Follow
	err = s.db.WithContext(ctx).
		Preload(relation + ".Profile").
		Where(column+" = ?", userID).
		Order("created_at desc").
		Offset(p.offset()).
		Limit(p.Limit).
		Find(&follows).Error
	if err != nil {
		return Page[models.Follow]{}, fmt.Errorf("list follows: %w", err)
	}

	return newPage(follows, total, p), nil
}
