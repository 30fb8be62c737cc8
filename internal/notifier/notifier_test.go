package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gdg-garage/fittrack-api/internal/database"
	"github.com/gdg-garage/fittrack-api/internal/models"
	"github.com/gdg-garage/fittrack-api/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sent struct {
	kind   string
	userID string
	detail string
	report statistics.WeeklyReport
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sent
	err  error
}

func (f *fakeNotifier) record(s sent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, s)
	return nil
}

func (f *fakeNotifier) SendMealReminder(_ context.Context, u models.User, meal string) error {
	return f.record(sent{kind: "meal", userID: u.ID, detail: meal})
}

func (f *fakeNotifier) SendWorkoutReminder(_ context.Context, u models.User) error {
	return f.record(sent{kind: "workout", userID: u.ID})
}

func (f *fakeNotifier) SendWeeklyReport(_ context.Context, u models.User, r statistics.WeeklyReport) error {
	return f.record(sent{kind: "report", userID: u.ID, report: r})
}

func setupScheduler(t *testing.T) (*Scheduler, *fakeNotifier, *gorm.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	fake := &fakeNotifier{}
	return NewScheduler(db, statistics.NewService(db), fake), fake, db
}

func createUser(t *testing.T, db *gorm.DB, u models.User) models.User {
	t.Helper()
	u.PasswordHash = "x"
	require.NoError(t, db.Create(&u).Error)
	return u
}

func ptr[T any](v T) *T { return &v }

func TestScheduler_Apply(t *testing.T) {
	s, _, _ := setupScheduler(t)
	user := models.User{Base: models.Base{ID: "u1"}, MealReminders: true, WeeklyReports: true}

	require.NoError(t, s.Apply(user))
	assert.True(t, s.Scheduled("meal-u1"))
	assert.False(t, s.Scheduled("workout-u1"))
	assert.True(t, s.Scheduled("report-u1"))
	assert.Equal(t, 2, s.Len())

	// Re-applying replaces entries instead of stacking them.
	require.NoError(t, s.Apply(user))
	assert.Equal(t, 2, s.Len())
	assert.Len(t, s.cron.Entries(), 2)

	user.MealReminders = false
	user.WorkoutReminders = true
	require.NoError(t, s.Apply(user))
	assert.False(t, s.Scheduled("meal-u1"))
	assert.True(t, s.Scheduled("workout-u1"))
	assert.Len(t, s.cron.Entries(), 2)
}

func TestScheduler_ScheduleAll(t *testing.T) {
	s, _, db := setupScheduler(t)
	a := createUser(t, db, models.User{Email: "a@example.com", MealReminders: true})
	b := createUser(t, db, models.User{Email: "b@example.com", WorkoutReminders: true, WeeklyReports: true})
	c := createUser(t, db, models.User{Email: "c@example.com"})

	require.NoError(t, s.ScheduleAll(context.Background()))
	assert.True(t, s.Scheduled(jobKey(kindMeal, a.ID)))
	assert.True(t, s.Scheduled(jobKey(kindWorkout, b.ID)))
	assert.True(t, s.Scheduled(jobKey(kindReport, b.ID)))
	assert.False(t, s.Scheduled(jobKey(kindMeal, c.ID)))
	assert.Equal(t, 3, s.Len())
}

func TestScheduler_UpdatePreferences(t *testing.T) {
	s, _, db := setupScheduler(t)
	ctx := context.Background()
	user := createUser(t, db, models.User{Email: "p@example.com", WorkoutReminders: true})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := s.UpdatePreferences(ctx, "missing", Preferences{MealReminders: ptr(true)})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Enable", func(t *testing.T) {
		updated, err := s.UpdatePreferences(ctx, user.ID, Preferences{
			MealReminders: ptr(true),
			DiscordUserID: ptr("1234"),
		})
		require.NoError(t, err)
		assert.True(t, updated.MealReminders)
		assert.True(t, updated.WorkoutReminders)
		assert.True(t, s.Scheduled(jobKey(kindMeal, user.ID)))
		assert.True(t, s.Scheduled(jobKey(kindWorkout, user.ID)))

		var stored models.User
		require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
		assert.True(t, stored.MealReminders)
		assert.Equal(t, "1234", stored.DiscordUserID)
	})

	t.Run("Disable", func(t *testing.T) {
		updated, err := s.UpdatePreferences(ctx, user.ID, Preferences{WorkoutReminders: ptr(false)})
		require.NoError(t, err)
		assert.False(t, updated.WorkoutReminders)
		assert.False(t, s.Scheduled(jobKey(kindWorkout, user.ID)))

		var stored models.User
		require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
		assert.False(t, stored.WorkoutReminders)
		assert.True(t, stored.MealReminders)
	})
}

func TestScheduler_Jobs(t *testing.T) {
	s, fake, db := setupScheduler(t)
	now := time.Date(2024, 3, 18, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	user := createUser(t, db, models.User{Email: "j@example.com"})

	require.NoError(t, db.Create(&models.Meal{UserID: user.ID, Name: "Salad", Calories: 450, Protein: 20, Fat: 15, Carbs: 40, Date: now.Add(-24 * time.Hour)}).Error)
	require.NoError(t, db.Create(&models.Workout{UserID: user.ID, Type: "Running", Duration: 30, Date: now.Add(-48 * time.Hour)}).Error)

	s.runMealReminder(user.ID)
	s.runWorkoutReminder(user.ID)
	s.runWeeklyReport(user.ID)
	s.runWorkoutReminder("ghost")

	require.Len(t, fake.sent, 3)
	assert.Equal(t, sent{kind: "meal", userID: user.ID, detail: "lunch"}, fake.sent[0])
	assert.Equal(t, "workout", fake.sent[1].kind)
	assert.Equal(t, statistics.WeeklyReport{
		AverageCalories: 450,
		AverageProtein:  20,
		AverageFat:      15,
		AverageCarbs:    40,
		WorkoutsCount:   1,
	}, fake.sent[2].report)
}

func TestScheduler_DeliveryFailureIsSwallowed(t *testing.T) {
	s, fake, db := setupScheduler(t)
	fake.err = errors.New("discord down")
	user := createUser(t, db, models.User{Email: "f@example.com"})

	assert.NotPanics(t, func() { s.runMealReminder(user.ID) })
	assert.Empty(t, fake.sent)
}

func TestMealForHour(t *testing.T) {
	assert.Equal(t, "breakfast", mealForHour(8))
	assert.Equal(t, "lunch", mealForHour(12))
	assert.Equal(t, "dinner", mealForHour(18))
}

type fakeMessenger struct {
	to, content string
	err         error
}

func (f *fakeMessenger) SendDM(userID, content string) error {
	f.to, f.content = userID, content
	return f.err
}

func TestDiscordNotifier(t *testing.T) {
	ctx := context.Background()

	t.Run("NoLinkedAccount", func(t *testing.T) {
		dm := &fakeMessenger{}
		n := &DiscordNotifier{dm: dm}
		err := n.SendWorkoutReminder(ctx, models.User{})
		assert.ErrorIs(t, err, ErrNoDiscordAccount)
		assert.Empty(t, dm.to)
	})

	t.Run("MealReminder", func(t *testing.T) {
		dm := &fakeMessenger{}
		n := &DiscordNotifier{dm: dm}
		require.NoError(t, n.SendMealReminder(ctx, models.User{DiscordUserID: "42"}, "dinner"))
		assert.Equal(t, "42", dm.to)
		assert.Contains(t, dm.content, "Time for dinner!")
	})

	t.Run("WeeklyReport", func(t *testing.T) {
		dm := &fakeMessenger{}
		n := &DiscordNotifier{dm: dm}
		report := statistics.WeeklyReport{AverageCalories: 2100, AverageProtein: 90, WorkoutsCount: 4}
		require.NoError(t, n.SendWeeklyReport(ctx, models.User{DiscordUserID: "42"}, report))
		assert.Contains(t, dm.content, "**Average calories:** 2100 kcal")
		assert.Contains(t, dm.content, "**Workouts:** 4")
	})

	t.Run("SendError", func(t *testing.T) {
		n := &DiscordNotifier{dm: &fakeMessenger{err: errors.New("forbidden")}}
		assert.Error(t, n.SendWorkoutReminder(ctx, models.User{DiscordUserID: "42"}))
	})

	t.Run("NilSession", func(t *testing.T) {
		n := NewDiscordNotifier(nil)
		assert.Error(t, n.SendWorkoutReminder(ctx, models.User{DiscordUserID: "42"}))
	})
}
