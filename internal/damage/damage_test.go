package damage

import (
	"testing"

	"github.com/duelforge/battleengine/internal/catalog"
	"github.com/duelforge/battleengine/internal/criteria"
	"github.com/duelforge/battleengine/internal/effect"
	"github.com/duelforge/battleengine/internal/elog"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/state"
	"github.com/duelforge/battleengine/internal/value"
)

func newTestMatch(t *testing.T) (*state.GameState, *catalog.Catalog, *effect.Registry, *elog.MemoryLogger) {
	t.Helper()
	cat := catalog.New()
	fireType := schema.ElementType(schema.EnergyFire)
	cat.Add(catalog.Template{
		ID: "attacker", Kind: schema.KindCreature, Name: "Ember Pup",
		Creature: &catalog.Creature{
			MaxHP: 60, ElementType: schema.EnergyFire,
			Attacks: []catalog.Attack{{Name: "Scratch", Damage: value.Expression{Kind: value.ExprConstant, Constant: 10}}},
		},
	})
	cat.Add(catalog.Template{
		ID: "defender", Kind: schema.KindCreature, Name: "Moss Turtle",
		Creature: &catalog.Creature{MaxHP: 70, ElementType: schema.EnergyGrass, WeaknessType: &fireType},
	})
	cat.Add(catalog.Template{
		ID: "ex-defender", Kind: schema.KindCreature, Name: "Moss Turtle ex",
		Creature: &catalog.Creature{MaxHP: 70, ElementType: schema.EnergyGrass, Attributes: schema.AttributeSet(schema.AttributeEX)},
	})

	gs := state.NewGameState(nil, nil, 3, 10)
	gs.Player(0).Active = state.NewFieldCard(state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: "attacker"}, 1)
	gs.Player(1).Active = state.NewFieldCard(state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: "defender"}, 1)

	return gs, cat, effect.NewRegistry(), elog.NewMemoryLogger()
}

func TestResolveAppliesWeaknessBonus(t *testing.T) {
	gs, cat, registry, logger := newTestMatch(t)
	atk := catalog.Attack{Damage: value.Expression{Kind: value.ExprConstant, Constant: 10}}
	res := Resolve(atk, gs, AttackContext{AttackerPlayer: 0, DefenderPlayer: 1, Catalog: cat, Registry: registry, Logger: logger, CurrentTurn: 1})
	if res.FinalDamage != 30 {
		t.Errorf("expected 10 base + 20 weakness = 30, got %d", res.FinalDamage)
	}
	if gs.Player(1).Active.DamageTaken != 30 {
		t.Errorf("expected damage_taken to record 30, got %d", gs.Player(1).Active.DamageTaken)
	}
}

func TestResolveSkipsWeaknessOnZeroBaseDamage(t *testing.T) {
	gs, cat, registry, logger := newTestMatch(t)
	atk := catalog.Attack{Damage: value.Expression{Kind: value.ExprConstant, Constant: 0}}
	res := Resolve(atk, gs, AttackContext{AttackerPlayer: 0, DefenderPlayer: 1, Catalog: cat, Registry: registry, Logger: logger, CurrentTurn: 1})
	if res.FinalDamage != 0 {
		t.Errorf("expected zero-base attacks to skip weakness entirely, got %d", res.FinalDamage)
	}
}

func TestResolveBoostAndReductionStackBeforeClamp(t *testing.T) {
	gs, cat, registry, logger := newTestMatch(t)
	attackerID := gs.Player(0).Active.FieldInstanceID()
	defenderID := gs.Player(1).Active.FieldInstanceID()
	registry.Register(effect.Passive{Kind: effect.KindDamageBoost, Target: attackerID, Amount: 10})
	registry.Register(effect.Passive{Kind: effect.KindDamageReduction, Target: defenderID, Amount: 100})

	atk := catalog.Attack{Damage: value.Expression{Kind: value.ExprConstant, Constant: 10}}
	res := Resolve(atk, gs, AttackContext{AttackerPlayer: 0, DefenderPlayer: 1, Catalog: cat, Registry: registry, Logger: logger, CurrentTurn: 1})
	if res.FinalDamage != 0 {
		t.Errorf("expected damage to clamp at 0 when reduction exceeds boosted total, got %d", res.FinalDamage)
	}
}

func TestResolvePreventDamageWithSourceFilter(t *testing.T) {
	gs, cat, registry, logger := newTestMatch(t)
	defenderID := gs.Player(1).Active.FieldInstanceID()
	fireFilter := criteria.CardCriteria{IsType: elementPtr(schema.EnergyFire)}
	registry.Register(effect.Passive{Kind: effect.KindPreventDamage, Target: defenderID, Filter: &fireFilter})

	atk := catalog.Attack{Damage: value.Expression{Kind: value.ExprConstant, Constant: 50}}
	res := Resolve(atk, gs, AttackContext{AttackerPlayer: 0, DefenderPlayer: 1, Catalog: cat, Registry: registry, Logger: logger, CurrentTurn: 1})
	if !res.Prevented || res.FinalDamage != 0 {
		t.Errorf("expected a fire-sourced attack to be fully prevented, got %+v", res)
	}
}

func TestCheckKnockoutsAwardsTwoPointsForExCreatures(t *testing.T) {
	gs, cat, registry, logger := newTestMatch(t)
	gs.Player(1).Active = state.NewFieldCard(state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: "ex-defender"}, 1)
	gs.Player(1).Active.DamageTaken = 70
	gs.Player(1).Bench[0] = state.NewFieldCard(state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: "defender"}, 1)

	outcomes := CheckKnockouts(gs, cat, registry, logger, 1)
	if len(outcomes) != 1 || !outcomes[0].NeedsPromotion {
		t.Fatalf("expected one promotion outcome, got %+v", outcomes)
	}
	if gs.Player(0).Points != 2 {
		t.Errorf("expected ex knockout to award 2 points, got %d", gs.Player(0).Points)
	}
}

func TestCheckNoActiveLossWhenBenchEmpty(t *testing.T) {
	gs, cat, registry, logger := newTestMatch(t)
	gs.Player(1).Active.DamageTaken = 70

	CheckKnockouts(gs, cat, registry, logger, 1)
	if !gs.Over || gs.Winner != 0 {
		t.Errorf("expected player 0 to win when player 1 has no creatures left, got over=%v winner=%d", gs.Over, gs.Winner)
	}
}

func elementPtr(e schema.ElementType) *schema.ElementType { return &e }
