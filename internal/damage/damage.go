// Package damage implements the attack damage pipeline and the
// knockout/promotion/points cascade (spec.md §4.5, §4.6).
package damage

import (
	"github.com/duelforge/battleengine/internal/catalog"
	"github.com/duelforge/battleengine/internal/criteria"
	"github.com/duelforge/battleengine/internal/effect"
	"github.com/duelforge/battleengine/internal/elog"
	"github.com/duelforge/battleengine/internal/state"
	"github.com/duelforge/battleengine/internal/value"
)

// WeaknessBonus is the flat damage weakness adds (spec.md §9 open question:
// "+20 for zero-sensitive fairness").
const WeaknessBonus = 20

// AttackContext carries everything the damage pipeline needs beyond the
// mutable GameState.
type AttackContext struct {
	AttackerPlayer int
	DefenderPlayer int
	Catalog        *catalog.Catalog
	Registry       *effect.Registry
	Logger         elog.EventLogger
	CurrentTurn    int
	Flip           func() bool
}

// Result reports the final damage dealt and whether it was suppressed by a
// prevent-damage passive.
type Result struct {
	FinalDamage int
	Prevented   bool
}

// Resolve runs the six-step pipeline of spec.md §4.5 steps 3-6: base damage
// → weakness → boosts/reductions → prevention → apply to damage_taken.
// Attack energy-requirement validation and chained-effect/trigger
// processing are the caller's responsibility (the turn machine validates
// cost before invoking attack resolution at all).
func Resolve(attack catalog.Attack, gs *state.GameState, ctx AttackContext) Result {
	attacker := gs.Player(ctx.AttackerPlayer)
	defender := gs.Player(ctx.DefenderPlayer)
	if attacker.Active == nil || defender.Active == nil {
		return Result{}
	}
	attackerID := attacker.Active.FieldInstanceID()
	defenderID := defender.Active.FieldInstanceID()

	base := value.Evaluate(attack.Damage, gs, value.EvalContext{
		SourcePlayer: ctx.AttackerPlayer,
		Catalog:      ctx.Catalog,
		Flip:         ctx.Flip,
	})

	total := base
	if base > 0 && weaknessApplies(ctx.Catalog, defender.Active.CurrentForm(), attacker.Active.CurrentForm()) {
		total += WeaknessBonus
	}

	attackerFacts, _ := ctx.Catalog.Facts(attacker.Active.CurrentForm())
	defenderFacts, _ := ctx.Catalog.Facts(defender.Active.CurrentForm())

	boost := 0
	for _, p := range ctx.Registry.Query(effect.KindDamageBoost, attackerID) {
		if filterMatches(p.Filter, &defenderFacts) {
			boost += p.Amount
		}
	}
	reduction := 0
	for _, p := range ctx.Registry.Query(effect.KindDamageReduction, defenderID) {
		if filterMatches(p.Filter, &attackerFacts) {
			reduction += p.Amount
		}
	}
	total += boost - reduction
	if total < 0 {
		total = 0
	}

	for _, p := range ctx.Registry.Query(effect.KindPreventDamage, defenderID) {
		if filterMatches(p.Filter, &attackerFacts) {
			ctx.Logger.Log(elog.NewAttackEvent(ctx.CurrentTurn, ctx.AttackerPlayer, attacker.Active.CurrentForm(), defender.Active.CurrentForm(), 0))
			return Result{FinalDamage: 0, Prevented: true}
		}
	}

	defender.Active.DamageTaken += total
	ctx.Logger.Log(elog.NewAttackEvent(ctx.CurrentTurn, ctx.AttackerPlayer, attacker.Active.CurrentForm(), defender.Active.CurrentForm(), total))
	return Result{FinalDamage: total}
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

func weaknessApplies(cat *catalog.Catalog, defenderTemplate, attackerTemplate string) bool {
	t, ok := cat.Lookup(defenderTemplate)
	if !ok || t.Creature == nil || t.Creature.WeaknessType == nil {
		return false
	}
	at, ok := cat.Lookup(attackerTemplate)
	if !ok || at.Creature == nil {
		return false
	}
	return *t.Creature.WeaknessType == at.Creature.ElementType
}

// MaxHP returns a creature's effective max HP, including hp-bonus passives
// (spec.md §4.6: "damage_taken >= max_hp + hp_bonus_passives").
func MaxHP(cat *catalog.Catalog, registry *effect.Registry, fc *state.FieldCard) int {
	t, ok := cat.Lookup(fc.CurrentForm())
	base := 0
	if ok && t.Creature != nil {
		base = t.Creature.MaxHP
	}
	return base + effect.HPBonus(registry, fc.FieldInstanceID())
}

// KnockoutOutcome reports what happened when CheckKnockouts processed a
// field card.
type KnockoutOutcome struct {
	Player         int
	NeedsPromotion bool
	OpponentPoints int
}

// CheckKnockouts scans both players' active and bench cards for lethal
// damage, applies the knockout cascade (spec.md §4.6), and returns any
// outcomes that need a promotion selection from their owner.
func CheckKnockouts(gs *state.GameState, cat *catalog.Catalog, registry *effect.Registry, logger elog.EventLogger, currentTurn int) []KnockoutOutcome {
	var outcomes []KnockoutOutcome
	for playerIdx := 0; playerIdx < 2; playerIdx++ {
		p := gs.Player(playerIdx)
		for _, fc := range p.FieldCards() {
			maxHP := MaxHP(cat, registry, fc)
			if fc.DamageTaken < maxHP {
				continue
			}
			outcomes = append(outcomes, knockout(gs, cat, registry, logger, currentTurn, playerIdx, fc)...)
		}
	}
	return outcomes
}

func knockout(gs *state.GameState, cat *catalog.Catalog, registry *effect.Registry, logger elog.EventLogger, currentTurn, playerIdx int, fc *state.FieldCard) []KnockoutOutcome {
	p := gs.Player(playerIdx)
	id := fc.FieldInstanceID()
	wasActive := p.FieldIndexOf(id) == 0

	t, _ := cat.Lookup(fc.CurrentForm())
	prized := t.Creature != nil && t.Creature.Attributes.IsPrized()

	for _, ref := range fc.EvolutionStack {
		p.SendToDiscard(ref)
	}
	if tool, ok := p.DetachTool(id); ok {
		p.SendToDiscard(tool)
	}
	p.RemoveFieldCard(id)
	registry.ExpireInstance(id)

	logger.Log(elog.NewKnockoutEvent(currentTurn, playerIdx, fc.CurrentForm()))

	opponent := state.Opponent(playerIdx)
	points := 1
	if prized {
		points = 2
	}
	gs.AwardPoints(opponent, points)
	logger.Log(elog.NewPointsAwardedEvent(currentTurn, opponent, points))

	if gs.Over {
		return nil
	}

	if !wasActive {
		return nil
	}
	if p.BenchCount() == 0 {
		gs.CheckNoActiveLoss(playerIdx)
		return nil
	}
	return []KnockoutOutcome{{Player: playerIdx, NeedsPromotion: true, OpponentPoints: gs.Player(opponent).Points}}
}
