package achievement

import (
	"context"
	"fmt"

	"github.com/gdg-garage/fittrack-api/internal/models"
)

// Service is the entry point used by the HTTP layer and the CLI.
type Service struct {
	store     Store
	catalog   *Catalog
	evaluator *Evaluator
}

func NewService(store Store, definitions []Definition, rules []Rule) *Service {
	catalog := NewCatalog(store, definitions)
	return &Service{
		store:     store,
		catalog:   catalog,
		evaluator: NewEvaluator(store, catalog, rules),
	}
}

// Init seeds the catalog and binds the rules. Callers may treat a failure
// as non-fatal: evaluation retries the binding on demand.
func (s *Service) Init(ctx context.Context) error {
	if err := s.catalog.EnsureSeeded(ctx); err != nil {
		return err
	}
	return s.evaluator.Bind(ctx)
}

func (s *Service) Seed(ctx context.Context) error {
	return s.catalog.EnsureSeeded(ctx)
}

func (s *Service) Evaluate(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	return s.evaluator.Evaluate(ctx, userID)
}

func (s *Service) ListDefinitions(ctx context.Context) ([]models.Achievement, error) {
	defs, err := s.store.ListDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	if defs == nil {
		defs = []models.Achievement{}
	}
	return defs, nil
}

// ListUserGrants returns the user's grants with their definitions attached.
func (s *Service) ListUserGrants(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	grants, err := s.store.ListGrants(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user achievements: %w", err)
	}
	if grants == nil {
		grants = []models.UserAchievement{}
	}
	return grants, nil
}
