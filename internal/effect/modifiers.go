package effect

import (
	"github.com/duelforge/battleengine/internal/criteria"
	"github.com/duelforge/battleengine/internal/state"
)

// ApplyDamageModifiers applies prevent-damage and damage-reduction passives
// targeting targetID to a non-attack damage amount (spec.md §4.3's hp
// handler note: "bypasses weakness but still subject to prevent-damage and
// damage-reduction passives matching criteria"). sourceFacts describes the
// effect's source card, if any, for filter matching; nil skips any
// filtered passive since there is no source to test.
func ApplyDamageModifiers(registry *Registry, targetID state.InstanceID, amount int, sourceFacts *criteria.CardFacts) int {
	for _, p := range registry.QueryKind(KindPreventDamage) {
		if p.Target == targetID && filterMatches(p.Filter, sourceFacts) {
			return 0
		}
	}
	reduction := 0
	for _, p := range registry.QueryKind(KindDamageReduction) {
		if p.Target == targetID && filterMatches(p.Filter, sourceFacts) {
			reduction += p.Amount
		}
	}
	total := amount - reduction
	if total < 0 {
		total = 0
	}
	return total
}

func filterMatches(filter *criteria.CardCriteria, facts *criteria.CardFacts) bool {
	if filter == nil {
		return true
	}
	if facts == nil {
		return false
	}
	return filter.MatchFacts(*facts)
}

// HPBonus sums hp-bonus passives targeting a field instance, added to a
// creature's effective max HP for knockout comparisons.
func HPBonus(registry *Registry, targetID state.InstanceID) int {
	total := 0
	for _, p := range registry.Query(KindHPBonus, targetID) {
		total += p.Amount
	}
	return total
}

// RetreatCostReduction sums retreat-cost-reduction passives targeting a
// field instance.
func RetreatCostReduction(registry *Registry, targetID state.InstanceID) int {
	total := 0
	for _, p := range registry.Query(KindRetreatCostReduction, targetID) {
		total += p.Amount
	}
	return total
}

// RetreatPrevented reports whether any retreat-prevention passive targets
// the field instance.
func RetreatPrevented(registry *Registry, targetID state.InstanceID) bool {
	return len(registry.Query(KindRetreatPrevention, targetID)) > 0
}

// EvolutionFlexible reports whether an evolution-flexibility passive covers
// the field instance, letting it evolve despite having been played or
// evolved this same turn (spec.md §4.1's evolution-flexibility modifier).
func EvolutionFlexible(registry *Registry, targetID state.InstanceID) bool {
	return len(registry.Query(KindEvolutionFlexibility, targetID)) > 0
}

// CoinFlipManipulated reports whether player owns an active
// coin-flip-manipulation passive, which forces every coin flip they make to
// land heads (spec.md §4.1's coin-flip-manipulation modifier).
func CoinFlipManipulated(registry *Registry, player int) bool {
	for _, p := range registry.QueryKind(KindCoinFlipManipulation) {
		if p.Owner == player {
			return true
		}
	}
	return false
}
