package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fittrack-api/internal/achievement"
	"github.com/gdg-garage/fittrack-api/internal/auth"
	"github.com/gdg-garage/fittrack-api/internal/logging"
	"github.com/gdg-garage/fittrack-api/internal/models"
	"github.com/rs/zerolog"
)

type AchievementHandler struct {
	service     *achievement.Service
	authHandler *auth.AuthHandler
	log         zerolog.Logger
}

func NewAchievementHandler(service *achievement.Service, authHandler *auth.AuthHandler) *AchievementHandler {
	return &AchievementHandler{
		service:     service,
		authHandler: authHandler,
		log:         logging.WithComponent("achievements"),
	}
}

type UserAchievementsRequest struct {
	auth.AuthInput
}

type UserAchievementsResponse struct {
	Body struct {
		Message      string                   `json:"message"`
		Achievements []models.UserAchievement `json:"achievements"`
	}
}

func (h *AchievementHandler) HandleGetUserAchievements(ctx context.Context, input *UserAchievementsRequest) (*UserAchievementsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	grants, err := h.service.ListUserGrants(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list user achievements")
		return nil, huma.Error500InternalServerError("Failed to get user achievements")
	}

	res := &UserAchievementsResponse{}
	res.Body.Message = "User achievements retrieved successfully"
	res.Body.Achievements = grants
	return res, nil
}

type CheckAchievementsRequest struct {
	auth.AuthInput
}

// HandleCheckAchievements evaluates every rule for the caller and returns
// only the grants created by this call.
func (h *AchievementHandler) HandleCheckAchievements(ctx context.Context, input *CheckAchievementsRequest) (*UserAchievementsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	granted, err := h.service.Evaluate(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to check achievements")
		return nil, huma.Error500InternalServerError("Failed to check achievements")
	}

	res := &UserAchievementsResponse{}
	res.Body.Message = "Achievements checked successfully"
	res.Body.Achievements = granted
	return res, nil
}

type ListAchievementsResponse struct {
	Body struct {
		Message      string               `json:"message"`
		Achievements []models.Achievement `json:"achievements"`
	}
}

func (h *AchievementHandler) HandleListAchievements(ctx context.Context, _ *struct{}) (*ListAchievementsResponse, error) {
	definitions, err := h.service.ListDefinitions(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list achievements")
		return nil, huma.Error500InternalServerError("Failed to get achievements list")
	}

	res := &ListAchievementsResponse{}
	res.Body.Message = "Achievements list retrieved successfully"
	res.Body.Achievements = definitions
	return res, nil
}
