package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/fittrack-api/internal/models"
	"github.com/gdg-garage/fittrack-api/internal/statistics"
)

var ErrNoDiscordAccount = errors.New("user has no linked discord account")

type directMessenger interface {
	SendDM(userID, content string) error
}

type sessionMessenger struct {
	session *discordgo.Session
}

func (m sessionMessenger) SendDM(userID, content string) error {
	if m.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	channel, err := m.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("open DM channel: %w", err)
	}
	if _, err := m.session.ChannelMessageSend(channel.ID, content); err != nil {
		return fmt.Errorf("send DM: %w", err)
	}
	return nil
}

// DiscordNotifier sends notifications as direct messages to the user's
// linked Discord account.
type DiscordNotifier struct {
	dm directMessenger
}

func NewDiscordNotifier(session *discordgo.Session) *DiscordNotifier {
	return &DiscordNotifier{dm: sessionMessenger{session: session}}
}

func (n *DiscordNotifier) SendMealReminder(_ context.Context, user models.User, meal string) error {
	return n.send(user, fmt.Sprintf("🍽️ **Meal reminder**\nTime for %s! Don't forget to log it.", meal))
}

func (n *DiscordNotifier) SendWorkoutReminder(_ context.Context, user models.User) error {
	return n.send(user, "💪 **Workout reminder**\nYour daily workout is waiting. Log it when you're done!")
}

func (n *DiscordNotifier) SendWeeklyReport(_ context.Context, user models.User, report statistics.WeeklyReport) error {
	message := fmt.Sprintf("📊 **Weekly report**\n**Average calories:** %d kcal\n**Average protein:** %d g\n**Average fat:** %d g\n**Average carbs:** %d g\n**Workouts:** %d",
		report.AverageCalories,
		report.AverageProtein,
		report.AverageFat,
		report.AverageCarbs,
		report.WorkoutsCount,
	)
	return n.send(user, message)
}

func (n *DiscordNotifier) send(user models.User, content string) error {
	if user.DiscordUserID == "" {
		return ErrNoDiscordAccount
	}
	return n.dm.SendDM(user.DiscordUserID, content)
}
