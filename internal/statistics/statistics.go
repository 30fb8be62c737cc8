// Package statistics aggregates logged meals and workouts over date ranges.
package statistics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdg-garage/fittrack-api/internal/models"
	"gorm.io/gorm"
)

type MealTotals struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
}

type WorkoutTotals struct {
	TotalDuration int     `json:"totalDuration"`
	TotalCalories float64 `json:"totalCalories"`
}

type Summary struct {
	Meals    MealTotals    `json:"meals"`
	Workouts WorkoutTotals `json:"workouts"`
}

// Range is half-open: From <= t < To.
type Range struct {
	From time.Time
	To   time.Time
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func DayRange(date time.Time) Range {
	from := startOfDay(date)
	return Range{From: from, To: from.AddDate(0, 0, 1)}
}

// WeekRange covers the seven days starting on start.
func WeekRange(start time.Time) Range {
	from := startOfDay(start)
	return Range{From: from, To: from.AddDate(0, 0, 7)}
}

// MonthRange runs from start to the end of start's calendar month.
func MonthRange(start time.Time) Range {
	from := startOfDay(start)
	firstOfNext := time.Date(from.Year(), from.Month()+1, 1, 0, 0, 0, 0, from.Location())
	return Range{From: from, To: firstOfNext}
}

func Summarize(meals []models.Meal, workouts []models.Workout) Summary {
	var s Summary
	for _, m := range meals {
		s.Meals.TotalCalories += m.Calories
		s.Meals.TotalProtein += m.Protein
		s.Meals.TotalCarbs += m.Carbs
		s.Meals.TotalFat += m.Fat
	}
	for _, w := range workouts {
		s.Workouts.TotalDuration += w.Duration
		s.Workouts.TotalCalories += w.Calories
	}
	return s
}

type WeeklyReport struct {
	AverageCalories int   `json:"averageCalories"`
	AverageProtein  int   `json:"averageProtein"`
	AverageFat      int   `json:"averageFat"`
	AverageCarbs    int   `json:"averageCarbs"`
	WorkoutsCount   int64 `json:"workoutsCount"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Summary(ctx context.Context, userID string, r Range) (Summary, error) {
	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, r.From, r.To).
		Find(&meals).Error
	if err != nil {
		return Summary{}, fmt.Errorf("load meals: %w", err)
	}

	var workouts []models.Workout
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, r.From, r.To).
		Find(&workouts).Error
	if err != nil {
		return Summary{}, fmt.Errorf("load workouts: %w", err)
	}

	return Summarize(meals, workouts), nil
}

func (s *Service) Daily(ctx context.Context, userID string, date time.Time) (Summary, error) {
	return s.Summary(ctx, userID, DayRange(date))
}

func (s *Service) Weekly(ctx context.Context, userID string, start time.Time) (Summary, error) {
	return s.Summary(ctx, userID, WeekRange(start))
}

func (s *Service) Monthly(ctx context.Context, userID string, start time.Time) (Summary, error) {
	return s.Summary(ctx, userID, MonthRange(start))
}

// WeeklyAverages averages the macros of every meal logged in the seven days
// before now and counts the workouts in the same window. Dates are stored in
// UTC and compared as text, so the bound is converted to UTC first.
func (s *Service) WeeklyAverages(ctx context.Context, userID string, now time.Time) (WeeklyReport, error) {
	since := now.UTC().AddDate(0, 0, -7)

	var avg struct {
		Calories float64
		Protein  float64
		Fat      float64
		Carbs    float64
	}
	err := s.db.WithContext(ctx).Model(&models.Meal{}).
		Select("COALESCE(AVG(calories), 0) AS calories, COALESCE(AVG(protein), 0) AS protein, COALESCE(AVG(fat), 0) AS fat, COALESCE(AVG(carbs), 0) AS carbs").
		Where("user_id = ? AND date >= ?", userID, since).
		Scan(&avg).Error
	if err != nil {
		return WeeklyReport{}, fmt.Errorf("average meals: %w", err)
	}

	var workouts int64
	err = s.db.WithContext(ctx).Model(&models.Workout{}).
		Where("user_id = ? AND date >= ?", userID, since).
		Count(&workouts).Error
	if err != nil {
		return WeeklyReport{}, fmt.Errorf("count workouts: %w", err)
	}

	return WeeklyReport{
		AverageCalories: int(math.Round(avg.Calories)),
		AverageProtein:  int(math.Round(avg.Protein)),
		AverageFat:      int(math.Round(avg.Fat)),
		AverageCarbs:    int(math.Round(avg.Carbs)),
		WorkoutsCount:   workouts,
	}, nil
}
