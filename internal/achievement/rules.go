package achievement

import (
	"context"
)

const (
	FirstMeal     = "First Meal"
	FirstWorkout  = "First Workout"
	FirstFollower = "First Follower"
)

// Counter reads one activity counter for a user.
type Counter func(ctx context.Context, s Store, userID string) (int64, error)

// Rule grants Achievement once Counter reports any activity.
type Rule struct {
	Achievement string
	Counter     Counter
}

// DefaultRules is evaluated in order; the order only affects the order of
// the returned grants.
var DefaultRules = []Rule{
	{Achievement: FirstMeal, Counter: func(ctx context.Context, s Store, userID string) (int64, error) {
		return s.CountMeals(ctx, userID)
	}},
	{Achievement: FirstWorkout, Counter: func(ctx context.Context, s Store, userID string) (int64, error) {
		return s.CountWorkouts(ctx, userID)
	}},
	{Achievement: FirstFollower, Counter: func(ctx context.Context, s Store, userID string) (int64, error) {
		return s.CountFollowers(ctx, userID)
	}},
}
