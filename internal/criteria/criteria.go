// Package criteria implements the declarative predicates effects and
// targets use to filter creatures, cards, and energy: stage, type,
// attributes, position, hasTool, hasEnergy, and name whitelists
// (spec.md §4.1).
//
// It depends only on schema and state — never on catalog — so catalog can
// satisfy CatalogView without criteria importing catalog back.
package criteria

import (
	"golang.org/x/exp/slices"

	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/state"
)

// CardFacts is the subset of a card template's immutable facts criteria
// matching needs, decoupled from the concrete catalog representation.
type CardFacts struct {
	Kind               schema.CardKind
	ElementType        schema.ElementType
	Attributes         schema.AttributeSet
	PreviousStageName  string
	HasPreviousStage   bool
	// GrandparentHasPrevious reports whether this card's previous stage
	// itself has a previous stage, used by schema.DeriveStage.
	GrandparentHasPrevious bool
	Name                   string
}

// Stage derives this card's evolution stage (0, 1, or 2).
func (f CardFacts) Stage() int {
	return schema.DeriveStage(f.HasPreviousStage, f.GrandparentHasPrevious)
}

// CatalogView is the read-only lookup criteria needs from the card catalog.
// Defined here (the consumer) rather than in catalog (the implementer) so
// catalog can depend on criteria without criteria depending on catalog.
type CatalogView interface {
	Facts(templateID string) (CardFacts, bool)
}

// CardCriteria filters a CardRef-level card (in hand, deck, or discard) by
// kind and, for creatures, stage/type/attributes/name.
type CardCriteria struct {
	Kind *schema.CardKind

	// Creature-specific filters; nil/zero means "don't filter on this".
	Stage             *int
	IsType            *schema.ElementType
	Attributes        schema.AttributeSet // all bits set here must be present
	PreviousStageName *string
	Names             []string // whitelist; empty means no restriction
}

// Match reports whether the card referenced by ref satisfies the criteria,
// consulting the catalog for its template facts.
func (c CardCriteria) Match(ref state.CardRef, catalog CatalogView) bool {
	facts, ok := catalog.Facts(ref.TemplateID)
	if !ok {
		return false
	}
	return c.MatchFacts(facts)
}

// MatchFacts evaluates the criteria directly against a resolved CardFacts,
// for callers that already have it (e.g. field-card matching).
func (c CardCriteria) MatchFacts(facts CardFacts) bool {
	if c.Kind != nil && facts.Kind != *c.Kind {
		return false
	}
	if c.Stage != nil && facts.Stage() != *c.Stage {
		return false
	}
	if c.IsType != nil && facts.ElementType != *c.IsType {
		return false
	}
	if c.Attributes != 0 && int(facts.Attributes)&int(c.Attributes) != int(c.Attributes) {
		return false
	}
	if c.PreviousStageName != nil && facts.PreviousStageName != *c.PreviousStageName {
		return false
	}
	if len(c.Names) > 0 && !slices.Contains(c.Names, facts.Name) {
		return false
	}
	return true
}

// FieldCriteria filters a field card by its current-form card criteria plus
// field-specific conditions: damage taken, energy attached, tool attached.
type FieldCriteria struct {
	Card      *CardCriteria
	HasDamage *bool
	HasEnergy *bool
	HasTool   *bool
}

// Match evaluates the criteria against a field card.
func (fc FieldCriteria) Match(fieldCard *state.FieldCard, owner *state.Player, catalog CatalogView) bool {
	if fc.Card != nil {
		facts, ok := catalog.Facts(fieldCard.CurrentForm())
		if !ok || !fc.Card.MatchFacts(facts) {
			return false
		}
	}
	id := fieldCard.FieldInstanceID()
	if fc.HasDamage != nil && (fieldCard.DamageTaken > 0) != *fc.HasDamage {
		return false
	}
	if fc.HasEnergy != nil && (owner.TotalEnergy(id) > 0) != *fc.HasEnergy {
		return false
	}
	if fc.HasTool != nil && owner.HasTool(id) != *fc.HasTool {
		return false
	}
	return true
}

// FieldTargetCriteria additionally scopes a FieldCriteria match to a player
// (self/opponent, resolved by the caller to an absolute index) and/or a
// position (active or bench).
type FieldTargetCriteria struct {
	Player   *int // absolute player index, resolved from self/opponent upstream
	Position *schema.Position
	Field    *FieldCriteria
}

// Candidate is one field card that matches a FieldTargetCriteria: the
// player it belongs to and its field index (0 = active, 1..3 = bench).
type Candidate struct {
	Player     int
	FieldIndex int
	FieldCard  *state.FieldCard
}

// MatchingFieldCards returns every field card across both players matching
// the criteria, in the deterministic order spec.md §4.2 requires: active
// first, then bench ascending, per player in the order they're scanned.
func MatchingFieldCards(gs *state.GameState, ftc FieldTargetCriteria, catalog CatalogView) []Candidate {
	var out []Candidate
	for playerIdx, player := range gs.Players {
		if ftc.Player != nil && playerIdx != *ftc.Player {
			continue
		}
		for idx, fc := range player.FieldCards() {
			fieldIndex := idx
			// player.FieldCards() already orders active-first/bench-ascending,
			// but its index doesn't directly map to FieldIndexOf when active is
			// absent; recompute from the authoritative lookup to stay correct.
			fieldIndex = player.FieldIndexOf(fc.FieldInstanceID())
			if ftc.Position != nil {
				isActive := fieldIndex == 0
				if (*ftc.Position == schema.PositionActive) != isActive {
					continue
				}
			}
			if ftc.Field != nil && !ftc.Field.Match(fc, player, catalog) {
				continue
			}
			out = append(out, Candidate{Player: playerIdx, FieldIndex: fieldIndex, FieldCard: fc})
		}
	}
	return out
}

// CountMatchingFieldCards implements the value algebra's count{field}
// source (spec.md §4.1).
func CountMatchingFieldCards(gs *state.GameState, ftc FieldTargetCriteria, catalog CatalogView) int {
	return len(MatchingFieldCards(gs, ftc, catalog))
}

// CountMatchingCards filters a card collection (hand/deck/discard) by
// CardCriteria, for the value algebra's count{card} source.
func CountMatchingCards(cards []state.CardRef, cc CardCriteria, catalog CatalogView) int {
	n := 0
	for _, c := range cards {
		if cc.Match(c, catalog) {
			n++
		}
	}
	return n
}

// CountEnergy implements count{energy}: the total energy attached to a
// field instance, optionally restricted to one type.
func CountEnergy(player *state.Player, id state.InstanceID, energyType *schema.EnergyType) int {
	if energyType != nil {
		return player.EnergyCount(id, *energyType)
	}
	return player.TotalEnergy(id)
}

// FilterCards returns the subset of cards matching the criteria, preserving
// order — used by search and hand-discard effect handlers.
func FilterCards(cards []state.CardRef, cc CardCriteria, catalog CatalogView) []state.CardRef {
	var out []state.CardRef
	for _, c := range cards {
		if cc.Match(c, catalog) {
			out = append(out, c)
		}
	}
	return out
}
