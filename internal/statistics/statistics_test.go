package statistics

import (
	"context"
	"testing"
	"time"

	"github.com/gdg-garage/fittrack-api/internal/database"
	"github.com/gdg-garage/fittrack-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) (*gorm.DB, models.User) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	user := models.User{Email: "stats@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return db, user
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	meals := []models.Meal{
		{Calories: 500, Protein: 30, Carbs: 50, Fat: 20},
		{Calories: 300, Protein: 20, Carbs: 30, Fat: 10},
	}
	workouts := []models.Workout{
		{Duration: 30, Calories: 300},
		{Duration: 45, Calories: 400},
	}

	s := Summarize(meals, workouts)
	assert.Equal(t, MealTotals{TotalCalories: 800, TotalProtein: 50, TotalCarbs: 80, TotalFat: 30}, s.Meals)
	assert.Equal(t, WorkoutTotals{TotalDuration: 75, TotalCalories: 700}, s.Workouts)

	assert.Equal(t, Summary{}, Summarize(nil, nil))
}

func TestRanges(t *testing.T) {
	tests := []struct {
		name     string
		r        Range
		from, to time.Time
	}{
		{"day", DayRange(day(2024, 3, 10, 15)), day(2024, 3, 10, 0), day(2024, 3, 11, 0)},
		{"week", WeekRange(day(2024, 3, 10, 9)), day(2024, 3, 10, 0), day(2024, 3, 17, 0)},
		{"month", MonthRange(day(2024, 2, 10, 9)), day(2024, 2, 10, 0), day(2024, 3, 1, 0)},
		{"december", MonthRange(day(2024, 12, 1, 0)), day(2024, 12, 1, 0), day(2025, 1, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.from.Equal(tt.r.From), "from: %v", tt.r.From)
			assert.True(t, tt.to.Equal(tt.r.To), "to: %v", tt.r.To)
		})
	}
}

func TestService_Daily(t *testing.T) {
	db, user := setupDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&[]models.Meal{
		{UserID: user.ID, Name: "Breakfast", Calories: 400, Protein: 20, Date: day(2024, 3, 10, 8)},
		{UserID: user.ID, Name: "Late dinner", Calories: 600, Protein: 35, Date: day(2024, 3, 10, 23)},
		{UserID: user.ID, Name: "Next day", Calories: 999, Date: day(2024, 3, 11, 8)},
	}).Error)
	require.NoError(t, db.Create(&models.Workout{UserID: user.ID, Type: "Running", Duration: 30, Calories: 300, Date: day(2024, 3, 10, 17)}).Error)

	s, err := svc.Daily(ctx, user.ID, day(2024, 3, 10, 12))
	require.NoError(t, err)
	assert.Equal(t, 1000.0, s.Meals.TotalCalories)
	assert.Equal(t, 55.0, s.Meals.TotalProtein)
	assert.Equal(t, 30, s.Workouts.TotalDuration)
	assert.Equal(t, 300.0, s.Workouts.TotalCalories)
}

func TestService_WeeklyAndMonthly(t *testing.T) {
	db, user := setupDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&[]models.Meal{
		{UserID: user.ID, Name: "a", Calories: 100, Date: day(2024, 3, 1, 8)},
		{UserID: user.ID, Name: "b", Calories: 200, Date: day(2024, 3, 7, 22)},
		{UserID: user.ID, Name: "c", Calories: 400, Date: day(2024, 3, 8, 8)},
		{UserID: user.ID, Name: "d", Calories: 800, Date: day(2024, 3, 31, 20)},
		{UserID: user.ID, Name: "e", Calories: 1600, Date: day(2024, 4, 1, 8)},
	}).Error)

	week, err := svc.Weekly(ctx, user.ID, day(2024, 3, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 300.0, week.Meals.TotalCalories)

	month, err := svc.Monthly(ctx, user.ID, day(2024, 3, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 1500.0, month.Meals.TotalCalories)
}

func TestService_OtherUsersExcluded(t *testing.T) {
	db, user := setupDB(t)
	svc := NewService(db)
	other := models.User{Email: "other@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, db.Create(&models.Meal{UserID: other.ID, Name: "x", Calories: 700, Date: day(2024, 3, 10, 8)}).Error)

	s, err := svc.Daily(context.Background(), user.ID, day(2024, 3, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, Summary{}, s)
}

func TestService_WeeklyAverages(t *testing.T) {
	db, user := setupDB(t)
	svc := NewService(db)
	now := day(2024, 3, 15, 9)

	require.NoError(t, db.Create(&[]models.Meal{
		{UserID: user.ID, Name: "a", Calories: 500, Protein: 30, Fat: 10, Carbs: 60, Date: day(2024, 3, 14, 8)},
		{UserID: user.ID, Name: "b", Calories: 701, Protein: 41, Fat: 21, Carbs: 81, Date: day(2024, 3, 10, 8)},
		{UserID: user.ID, Name: "old", Calories: 5000, Date: day(2024, 3, 1, 8)},
	}).Error)
	require.NoError(t, db.Create(&[]models.Workout{
		{UserID: user.ID, Type: "Cycling", Duration: 60, Date: day(2024, 3, 12, 18)},
		{UserID: user.ID, Type: "Yoga", Duration: 30, Date: day(2024, 3, 13, 18)},
		{UserID: user.ID, Type: "Old", Duration: 30, Date: day(2024, 2, 1, 18)},
	}).Error)

	report, err := svc.WeeklyAverages(context.Background(), user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, WeeklyReport{
		AverageCalories: 601,
		AverageProtein:  36,
		AverageFat:      16,
		AverageCarbs:    71,
		WorkoutsCount:   2,
	}, report)
}

func TestService_WeeklyAveragesEmpty(t *testing.T) {
	db, user := setupDB(t)
	report, err := NewService(db).WeeklyAverages(context.Background(), user.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, WeeklyReport{}, report)
}

func TestService_WeeklyAveragesLocalZone(t *testing.T) {
	db, user := setupDB(t)
	svc := NewService(db)
	now := day(2024, 3, 15, 9)

	require.NoError(t, db.Create(&models.Meal{
		UserID: user.ID, Name: "edge", Calories: 500, Date: now.AddDate(0, 0, -7).Add(time.Hour),
	}).Error)

	utc, err := svc.WeeklyAverages(context.Background(), user.ID, now)
	require.NoError(t, err)
	require.Equal(t, 500, utc.AverageCalories)

	plusTwo := time.FixedZone("UTC+2", 2*60*60)
	local, err := svc.WeeklyAverages(context.Background(), user.ID, now.In(plusTwo))
	require.NoError(t, err)
	assert.Equal(t, utc, local)
}
