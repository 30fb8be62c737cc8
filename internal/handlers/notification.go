package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fittrack-api/internal/auth"
	"github.com/gdg-garage/fittrack-api/internal/logging"
	"github.com/gdg-garage/fittrack-api/internal/notifier"
	"github.com/rs/zerolog"
)

type NotificationHandler struct {
	scheduler   *notifier.Scheduler
	authHandler *auth.AuthHandler
	log         zerolog.Logger
}

func NewNotificationHandler(scheduler *notifier.Scheduler, authHandler *auth.AuthHandler) *NotificationHandler {
	return &NotificationHandler{scheduler: scheduler, authHandler: authHandler, log: logging.WithComponent("notifications")}
}

type UpdatePreferencesRequest struct {
	auth.AuthInput
	Body struct {
		MealReminders    *bool   `json:"mealReminders,omitempty"`
		WorkoutReminders *bool   `json:"workoutReminders,omitempty"`
		WeeklyReports    *bool   `json:"weeklyReports,omitempty"`
		DiscordUserID    *string `json:"discordUserId,omitempty" doc:"Discord account that receives direct messages"`
	}
}

type NotificationPreferences struct {
	MealReminders    bool   `json:"mealReminders"`
	WorkoutReminders bool   `json:"workoutReminders"`
	WeeklyReports    bool   `json:"weeklyReports"`
	DiscordUserID    string `json:"discordUserId,omitempty"`
}

type UpdatePreferencesResponse struct {
	Body struct {
		Message     string                  `json:"message"`
		Preferences NotificationPreferences `json:"preferences"`
	}
}

func (h *NotificationHandler) HandleUpdatePreferences(ctx context.Context, input *UpdatePreferencesRequest) (*UpdatePreferencesResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	b := input.Body
	user, err := h.scheduler.UpdatePreferences(ctx, userID, notifier.Preferences{
		MealReminders:    b.MealReminders,
		WorkoutReminders: b.WorkoutReminders,
		WeeklyReports:    b.WeeklyReports,
		DiscordUserID:    b.DiscordUserID,
	})
	if errors.Is(err, notifier.ErrUserNotFound) {
		return nil, huma.Error404NotFound("User not found")
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to update notification preferences")
		return nil, huma.Error500InternalServerError("Failed to update notification preferences")
	}

	res := &UpdatePreferencesResponse{}
	res.Body.Message = "Notification preferences updated successfully"
	res.Body.Preferences = NotificationPreferences{
		MealReminders:    user.MealReminders,
		WorkoutReminders: user.WorkoutReminders,
		WeeklyReports:    user.WeeklyReports,
		DiscordUserID:    user.DiscordUserID,
	}
	return res, nil
}
