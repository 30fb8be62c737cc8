package social

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdg-garage/fittrack-api/internal/models"
	"gorm.io/gorm"
)

// ProfileInput carries optional profile fields; nil means "leave unchanged".
type ProfileInput struct {
	Username *string
	Bio      *string
	Avatar   *string
	IsPublic *bool
}

func (s *Service) CreateProfile(ctx context.Context, userID string, in ProfileInput) (*models.Profile, error) {
	if in.Username == nil || strings.TrimSpace(*in.Username) == "" {
		return nil, ErrUsernameRequired
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check profile: %w", err)
	}
	if count > 0 {
		return nil, ErrProfileExists
	}

	profile := models.Profile{
		UserID:   userID,
		Username: strings.TrimSpace(*in.Username),
		IsPublic: true,
	}
	applyProfileInput(&profile, in)

	if err := s.db.WithContext(ctx).Omit("User").Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return &profile, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*models.Profile, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Username != nil && strings.TrimSpace(*in.Username) == "" {
		return nil, ErrUsernameRequired
	}

	applyProfileInput(profile, in)
	if err := s.db.WithContext(ctx).Omit("User").Save(profile).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

// GetProfile returns the user's profile with the owning user attached.
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

func (s *Service) PublicProfiles(ctx context.Context, p Pagination) (Page[models.Profile], error) {
	return s.listProfiles(ctx, s.db.Where("is_public = ?", true), p)
}

// SearchProfiles matches public profiles whose username or bio contains
// query, ignoring case.
func (s *Service) SearchProfiles(ctx context.Context, query string, p Pagination) (Page[models.Profile], error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	scope := s.db.Where("is_public = ?", true).
		Where(`(LOWER(username) LIKE ? ESCAPE '\' OR LOWER(bio) LIKE ? ESCAPE '\')`, pattern, pattern)
	return s.listProfiles(ctx, scope, p)
}

func (s *Service) listProfiles(ctx context.Context, scope *gorm.DB, p Pagination) (Page[models.Profile], error) {
	p = p.normalize()

	var total int64
	if err := scope.WithContext(ctx).Model(&models.Profile{}).Count(&total).Error; err != nil {
		return Page[models.Profile]{}, fmt.Errorf("count profiles: %w", err)
	}

	var profiles []models.Profile
	err := scope.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Offset(p.offset()).
		Limit(p.Limit).
		Find(&profiles).Error
	if err != nil {
		return Page[models.Profile]{}, fmt.Errorf("list profiles: %w", err)
	}

	return newPage(profiles, total, p), nil
}

func (s *Service) findProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &profile, nil
}

func applyProfileInput(p *models.Profile, in ProfileInput) {
	if in.Username != nil {
		p.Username = strings.TrimSpace(*in.Username)
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.Avatar != nil {
		p.Avatar = *in.Avatar
	}
	if in.IsPublic != nil {
		p.IsPublic = *in.IsPublic
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
