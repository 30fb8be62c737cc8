// Package notifier delivers reminders and weekly reports to users and keeps
// their per-user cron schedules in sync with their preferences.
package notifier

import (
	"context"

	"github.com/gdg-garage/fittrack-api/internal/models"
	"github.com/gdg-garage/fittrack-api/internal/statistics"
	"github.com/rs/zerolog"
)

type Notifier interface {
	SendMealReminder(ctx context.Context, user models.User, meal string) error
	SendWorkoutReminder(ctx context.Context, user models.User) error
	SendWeeklyReport(ctx context.Context, user models.User, report statistics.WeeklyReport) error
}

// LogNotifier writes notifications to the log. Used when no Discord bot is
// configured.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) SendMealReminder(_ context.Context, user models.User, meal string) error {
	n.Log.Info().Str("user_id", user.ID).Str("meal", meal).Msg("meal reminder")
	return nil
}

func (n LogNotifier) SendWorkoutReminder(_ context.Context, user models.User) error {
	n.Log.Info().Str("user_id", user.ID).Msg("workout reminder")
	return nil
}

func (n LogNotifier) SendWeeklyReport(_ context.Context, user models.User, report statistics.WeeklyReport) error {
	n.Log.Info().
		Str("user_id", user.ID).
		Int("avg_calories", report.AverageCalories).
		Int64("workouts", report.WorkoutsCount).
		Msg("weekly report")
	return nil
}
