package achievement

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/fittrack-api/internal/logging"
	"github.com/gdg-garage/fittrack-api/internal/models"
	"github.com/rs/zerolog"
)

type Definition struct {
	Name        string
	Description string
	Icon        string
}

var DefaultDefinitions = []Definition{
	{Name: FirstMeal, Description: "Add your first meal", Icon: "🍽️"},
	{Name: FirstWorkout, Description: "Complete your first workout", Icon: "💪"},
	{Name: FirstFollower, Description: "Get your first follower", Icon: "👥"},
}

// Bindings maps a rule's achievement name to its stored definition.
type Bindings map[string]models.Achievement

type Catalog struct {
	store       Store
	definitions []Definition
	log         zerolog.Logger
}

func NewCatalog(store Store, definitions []Definition) *Catalog {
	return &Catalog{
		store:       store,
		definitions: definitions,
		log:         logging.WithComponent("achievement-catalog"),
	}
}

// EnsureSeeded inserts the catalog definitions in one batch when no
// definition exists yet. A non-empty catalog is left untouched, even if it
// is missing some of the definitions.
func (c *Catalog) EnsureSeeded(ctx context.Context) error {
	existing, err := c.store.ListDefinitions(ctx)
	if err != nil {
		return fmt.Errorf("list achievements: %w", err)
	}
	if len(existing) > 0 {
		c.log.Debug().Int("count", len(existing)).Msg("Achievement catalog already seeded")
		return nil
	}

	rows := make([]models.Achievement, 0, len(c.definitions))
	for _, d := range c.definitions {
		rows = append(rows, models.Achievement{
			Name:        d.Name,
			Description: d.Description,
			Icon:        d.Icon,
		})
	}

	if err := c.store.CreateDefinitions(ctx, rows); err != nil {
		return fmt.Errorf("seed achievements: %w", err)
	}

	c.log.Info().Int("count", len(rows)).Msg("Achievement catalog seeded")
	return nil
}

// Resolve looks up the definition of every rule. Rules without a definition
// are left out of the result.
func (c *Catalog) Resolve(ctx context.Context, rules []Rule) (Bindings, error) {
	bindings := make(Bindings, len(rules))
	for _, rule := range rules {
		def, err := c.store.FindDefinitionByName(ctx, rule.Achievement)
		if errors.Is(err, ErrNotFound) {
			c.log.Warn().Str("achievement", rule.Achievement).Msg("No definition for achievement rule, rule disabled")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve achievement %q: %w", rule.Achievement, err)
		}
		bindings[rule.Achievement] = *def
	}
	return bindings, nil
}
