package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdg-garage/fittrack-api/internal/logging"
	"github.com/gdg-garage/fittrack-api/internal/metrics"
	"github.com/gdg-garage/fittrack-api/internal/models"
	"github.com/gdg-garage/fittrack-api/internal/statistics"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	MealSchedule    = "0 8,12,18 * * *"
	WorkoutSchedule = "0 17 * * *"
	ReportSchedule  = "0 9 * * 1"

	jobTimeout = 30 * time.Second
)

var ErrUserNotFound = errors.New("user not found")

type kind string

const (
	kindMeal    kind = "meal"
	kindWorkout kind = "workout"
	kindReport  kind = "report"
)

func jobKey(k kind, userID string) string {
	return string(k) + "-" + userID
}

// Preferences is a partial update; nil fields are left unchanged.
type Preferences struct {
	MealReminders    *bool
	WorkoutReminders *bool
	WeeklyReports    *bool
	DiscordUserID    *string
}

// Scheduler owns one cron entry per user and notification kind.
type Scheduler struct {
	cron     *cron.Cron
	db       *gorm.DB
	stats    *statistics.Service
	notifier Notifier
	log      zerolog.Logger
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

func NewScheduler(db *gorm.DB, stats *statistics.Service, notifier Notifier) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		db:       db,
		stats:    stats,
		notifier: notifier,
		log:      logging.WithComponent("notifier"),
		now:      time.Now,
		entries:  make(map[string]cron.EntryID),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron loop and returns a context that is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// ScheduleAll registers jobs for every user with at least one notification
// enabled.
func (s *Scheduler) ScheduleAll(ctx context.Context) error {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("meal_reminders = ? OR workout_reminders = ? OR weekly_reports = ?", true, true, true).
		Find(&users).Error
	if err != nil {
		return fmt.Errorf("load users with notifications: %w", err)
	}

	for _, u := range users {
		if err := s.Apply(u); err != nil {
			return err
		}
	}
	s.log.Info().Int("users", len(users)).Int("jobs", s.Len()).Msg("notification jobs scheduled")
	return nil
}

// Apply brings the user's cron entries in line with their flags.
func (s *Scheduler) Apply(user models.User) error {
	toggles := []struct {
		kind    kind
		enabled bool
		spec    string
		run     func(userID string)
	}{
		{kindMeal, user.MealReminders, MealSchedule, s.runMealReminder},
		{kindWorkout, user.WorkoutReminders, WorkoutSchedule, s.runWorkoutReminder},
		{kindReport, user.WeeklyReports, ReportSchedule, s.runWeeklyReport},
	}

	for _, t := range toggles {
		key := jobKey(t.kind, user.ID)
		if !t.enabled {
			s.cancel(key)
			continue
		}
		userID, run := user.ID, t.run
		if err := s.schedule(key, t.spec, func() { run(userID) }); err != nil {
			return fmt.Errorf("schedule %s: %w", key, err)
		}
	}
	return nil
}

// UpdatePreferences stores the changed flags and reschedules the user's jobs.
func (s *Scheduler) UpdatePreferences(ctx context.Context, userID string, prefs Preferences) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if prefs.MealReminders != nil {
		user.MealReminders = *prefs.MealReminders
	}
	if prefs.WorkoutReminders != nil {
		user.WorkoutReminders = *prefs.WorkoutReminders
	}
	if prefs.WeeklyReports != nil {
		user.WeeklyReports = *prefs.WeeklyReports
	}
	if prefs.DiscordUserID != nil {
		user.DiscordUserID = *prefs.DiscordUserID
	}

	err = s.db.WithContext(ctx).Model(&user).
		Select("MealReminders", "WorkoutReminders", "WeeklyReports", "DiscordUserID").
		Updates(&user).Error
	if err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}

	if err := s.Apply(user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Scheduler) Scheduled(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	return ok
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Scheduler) schedule(key, spec string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[key]; ok {
		s.cron.Remove(id)
		delete(s.entries, key)
	}
	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return err
	}
	s.entries[key] = id
	metrics.RemindersScheduled.Set(float64(len(s.entries)))
	return nil
}

func (s *Scheduler) cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[key]; ok {
		s.cron.Remove(id)
		delete(s.entries, key)
		metrics.RemindersScheduled.Set(float64(len(s.entries)))
	}
}

func mealForHour(hour int) string {
	switch {
	case hour < 11:
		return "breakfast"
	case hour < 16:
		return "lunch"
	default:
		return "dinner"
	}
}

func (s *Scheduler) runMealReminder(userID string) {
	s.deliver(kindMeal, userID, func(ctx context.Context, u models.User) error {
		return s.notifier.SendMealReminder(ctx, u, mealForHour(s.now().Hour()))
	})
}

func (s *Scheduler) runWorkoutReminder(userID string) {
	s.deliver(kindWorkout, userID, func(ctx context.Context, u models.User) error {
		return s.notifier.SendWorkoutReminder(ctx, u)
	})
}

func (s *Scheduler) runWeeklyReport(userID string) {
	s.deliver(kindReport, userID, func(ctx context.Context, u models.User) error {
		report, err := s.stats.WeeklyAverages(ctx, u.ID, s.now())
		if err != nil {
			return err
		}
		return s.notifier.SendWeeklyReport(ctx, u, report)
	})
}

// deliver loads the current user row and hands it to send. Failures are
// logged and counted, never retried.
func (s *Scheduler) deliver(k kind, userID string, send func(context.Context, models.User) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err == nil {
		err = send(ctx, user)
	}

	metrics.RemindersSent.WithLabelValues(string(k), metrics.Result(err)).Inc()
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Str("kind", string(k)).Msg("failed to deliver notification")
		return
	}
	s.log.Debug().Str("user_id", userID).Str("kind", string(k)).Msg("notification delivered")
}
