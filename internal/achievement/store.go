// Package achievement grants users milestone achievements based on their
// activity counters.
//
// The catalog of definitions is seeded once, each rule is bound to its
// definition at startup, and grants are append-only: the store enforces at
// most one grant per (user, achievement).
package achievement

import (
	"context"
	"errors"

	"github.com/gdg-garage/fittrack-api/internal/models"
)

var ErrNotFound = errors.New("achievement not found")

// Store is the persistence the achievement subsystem needs. Implementations
// must report a duplicate (user, achievement) grant as created == false with
// a nil error.
type Store interface {
	CountMeals(ctx context.Context, userID string) (int64, error)
	CountWorkouts(ctx context.Context, userID string) (int64, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)

	ListDefinitions(ctx context.Context) ([]models.Achievement, error)
	// FindDefinitionByName returns ErrNotFound when no definition has the name.
	FindDefinitionByName(ctx context.Context, name string) (*models.Achievement, error)
	CreateDefinitions(ctx context.Context, definitions []models.Achievement) error

	CreateGrant(ctx context.Context, grant *models.UserAchievement) (created bool, err error)
	ListGrants(ctx context.Context, userID string) ([]models.UserAchievement, error)
}
