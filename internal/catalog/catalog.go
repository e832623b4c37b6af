// Package catalog holds the immutable card templates (spec.md §3) and the
// store that looks them up by template id. It sits above effect, value, and
// criteria in the dependency graph, implementing criteria.CatalogView so
// those lower packages never need to import catalog back.
package catalog

import (
	"fmt"

	"github.com/duelforge/battleengine/internal/criteria"
	"github.com/duelforge/battleengine/internal/effect"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/value"
)

// EnergyRequirement is one slot of an attack's energy cost; Colorless means
// any type satisfies it.
type EnergyRequirement struct {
	Type   schema.EnergyType
	Amount int
}

// Attack is one of a creature's attacks.
type Attack struct {
	Name           string
	Damage         value.Expression
	Requirements   []EnergyRequirement
	ChainedEffects []effect.Effect
}

// Ability is an optional passive or activatable creature ability.
type Ability struct {
	Name    string
	Effects []effect.Effect
}

// Creature is a creature card template.
type Creature struct {
	MaxHP             int
	ElementType       schema.ElementType
	WeaknessType      *schema.ElementType
	RetreatCost       int
	Attacks           []Attack
	Ability           *Ability
	PreviousStageName string
	Attributes        schema.AttributeSet
}

// Trainer is the shared shape of Supporter, Item, Tool, and Stadium
// templates: a name and an effect list, plus an optional trigger for tools.
type Trainer struct {
	Effects []effect.Effect
	Trigger string // tool trigger event name, empty if none
}

// Template is one catalog entry: a tagged sum over Kind carrying either a
// Creature or a Trainer payload.
type Template struct {
	ID   string
	Kind schema.CardKind
	Name string

	Creature *Creature
	Trainer  *Trainer
}

// Catalog is the immutable store of every template in play, keyed by
// template id.
type Catalog struct {
	templates map[string]Template
}

// New builds an empty catalog.
func New() *Catalog {
	return &Catalog{templates: make(map[string]Template)}
}

// Add registers a template, keyed by its own ID.
func (c *Catalog) Add(t Template) {
	c.templates[t.ID] = t
}

// Lookup returns the template for a template id.
func (c *Catalog) Lookup(id string) (Template, bool) {
	t, ok := c.templates[id]
	return t, ok
}

// MustLookup panics on a missing template — used once validation has
// already confirmed the id exists (spec.md §7: an unknown template at
// validation time is a CatalogError, not a panic; panics here would only
// follow an internal bug after that check passed).
func (c *Catalog) MustLookup(id string) Template {
	t, ok := c.templates[id]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown template %q", id))
	}
	return t
}

// Facts implements criteria.CatalogView.
func (c *Catalog) Facts(templateID string) (criteria.CardFacts, bool) {
	t, ok := c.templates[templateID]
	if !ok {
		return criteria.CardFacts{}, false
	}
	facts := criteria.CardFacts{Kind: t.Kind, Name: t.Name}
	if t.Creature != nil {
		facts.ElementType = t.Creature.ElementType
		facts.Attributes = t.Creature.Attributes
		facts.PreviousStageName = t.Creature.PreviousStageName
		facts.HasPreviousStage = t.Creature.PreviousStageName != ""
		if facts.HasPreviousStage {
			if prev, ok := c.templates[t.Creature.PreviousStageName]; ok && prev.Creature != nil {
				facts.GrandparentHasPrevious = prev.Creature.PreviousStageName != ""
			}
		}
	}
	return facts, true
}

// Validate confirms every template id referenced by previousStageName
// actually exists, surfacing a CatalogError rather than failing later
// mid-game (spec.md §7).
func (c *Catalog) Validate() error {
	for id, t := range c.templates {
		if t.Creature == nil || t.Creature.PreviousStageName == "" {
			continue
		}
		if _, ok := c.templates[t.Creature.PreviousStageName]; !ok {
			return &CatalogError{TemplateID: id, Reason: fmt.Sprintf("previous stage %q not found", t.Creature.PreviousStageName)}
		}
	}
	return nil
}

// CatalogError is returned by Validate when a creature's previous stage
// names a template that is not in the catalog (spec.md §7).
type CatalogError struct {
	TemplateID string
	Reason     string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog: %s: %s", e.TemplateID, e.Reason)
}
