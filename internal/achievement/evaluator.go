package achievement

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdg-garage/fittrack-api/internal/logging"
	"github.com/gdg-garage/fittrack-api/internal/metrics"
	"github.com/gdg-garage/fittrack-api/internal/models"
	"github.com/rs/zerolog"
)

type Evaluator struct {
	store   Store
	catalog *Catalog
	rules   []Rule
	log     zerolog.Logger

	mu       sync.RWMutex
	bindings Bindings
	// settled is set once a bind found at least one definition. Seeding
	// skips a non-empty catalog, so missing rules will not appear later.
	settled bool
}

func NewEvaluator(store Store, catalog *Catalog, rules []Rule) *Evaluator {
	return &Evaluator{
		store:   store,
		catalog: catalog,
		rules:   rules,
		log:     logging.WithComponent("achievement-evaluator"),
	}
}

// Bind resolves the definition of every rule and keeps the result for
// later evaluations.
func (e *Evaluator) Bind(ctx context.Context) error {
	bindings, err := e.catalog.Resolve(ctx, e.rules)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.bindings = bindings
	e.settled = len(bindings) > 0
	e.mu.Unlock()
	return nil
}

// currentBindings returns the resolved bindings, resolving again until the
// catalog has been found (e.g. the store was down at startup).
func (e *Evaluator) currentBindings(ctx context.Context) (Bindings, error) {
	e.mu.RLock()
	bindings, settled := e.bindings, e.settled
	e.mu.RUnlock()

	if settled {
		return bindings, nil
	}

	if err := e.Bind(ctx); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bindings, nil
}

// Evaluate grants every achievement the user qualifies for and has not
// earned yet. It returns only the grants created by this call, in rule order.
//
// A store failure stops the evaluation; grants written before the failure
// stay in place.
func (e *Evaluator) Evaluate(ctx context.Context, userID string) (granted []models.UserAchievement, err error) {
	defer func() {
		metrics.AchievementEvaluations.WithLabelValues(metrics.Result(err)).Inc()
	}()

	bindings, err := e.currentBindings(ctx)
	if err != nil {
		return nil, err
	}

	granted = []models.UserAchievement{}
	for _, rule := range e.rules {
		count, err := rule.Counter(ctx, e.store, userID)
		if err != nil {
			return nil, fmt.Errorf("count activity for %q: %w", rule.Achievement, err)
		}
		if count == 0 {
			continue
		}

		def, ok := bindings[rule.Achievement]
		if !ok {
			continue
		}

		grant := models.UserAchievement{
			UserID:        userID,
			AchievementID: def.ID,
		}
		created, err := e.store.CreateGrant(ctx, &grant)
		if err != nil {
			return nil, fmt.Errorf("grant %q: %w", rule.Achievement, err)
		}
		if !created {
			continue
		}

		grant.Achievement = def
		granted = append(granted, grant)

		metrics.AchievementsGranted.WithLabelValues(def.Name).Inc()
		e.log.Info().Str("user_id", userID).Str("achievement", def.Name).Msg("Achievement granted")
	}

	return granted, nil
}
