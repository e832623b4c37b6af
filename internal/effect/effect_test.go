package effect

import (
	"testing"

	"github.com/duelforge/battleengine/internal/criteria"
	"github.com/duelforge/battleengine/internal/elog"
	"github.com/duelforge/battleengine/internal/rng"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/state"
	"github.com/duelforge/battleengine/internal/target"
	"github.com/duelforge/battleengine/internal/value"
)

type fakeCatalog map[string]criteria.CardFacts

func (f fakeCatalog) Facts(id string) (criteria.CardFacts, bool) {
	facts, ok := f[id]
	return facts, ok
}

func newTestMachine() (*state.GameState, Context, fakeCatalog) {
	gs := state.NewGameState(nil, nil, 3, 10)
	cat := fakeCatalog{"basic": {Kind: schema.KindCreature}}
	gs.Player(0).Active = state.NewFieldCard(state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: "basic"}, 1)
	gs.Player(1).Active = state.NewFieldCard(state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: "basic"}, 1)
	ctx := Context{
		SourcePlayer: 0,
		Catalog:      cat,
		Registry:     NewRegistry(),
		RNG:          rng.NewDefault(0),
		Logger:       elog.NewMemoryLogger(),
		CurrentTurn:  1,
		MaxHandSize:  10,
	}
	return gs, ctx, cat
}

func TestRunAppliesFixedTargetDamage(t *testing.T) {
	gs, ctx, _ := newTestMachine()
	e := Effect{
		Kind:   KindHP,
		Target: &target.Descriptor{Kind: target.KindFixed, FixedPlayer: schema.RefOpponent, FixedPosition: schema.PositionActive},
		Amount: value.Expression{Kind: value.ExprConstant, Constant: 20},
	}
	res := Run([]Effect{e}, gs, ctx)
	if res.Outcome != OutcomeComplete {
		t.Fatalf("expected immediate completion, got %v", res.Outcome)
	}
	if gs.Player(1).Active.DamageTaken != 20 {
		t.Errorf("expected 20 damage on opponent's active, got %d", gs.Player(1).Active.DamageTaken)
	}
}

func TestRunSuspendsOnAmbiguousTarget(t *testing.T) {
	gs, ctx, _ := newTestMachine()
	gs.Player(0).Bench[0] = state.NewFieldCard(state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: "basic"}, 1)
	gs.Player(0).Bench[1] = state.NewFieldCard(state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: "basic"}, 1)
	gs.Player(0).Bench[0].DamageTaken = 20
	gs.Player(0).Bench[1].DamageTaken = 20
	self := 0
	e := Effect{
		Kind:   KindHP,
		Heal:   true,
		Target: &target.Descriptor{Kind: target.KindSingleChoice, Chooser: schema.RefSelf, Criteria: criteria.FieldTargetCriteria{Player: &self}},
		Amount: value.Expression{Kind: value.ExprConstant, Constant: 10},
	}
	res := Run([]Effect{e}, gs, ctx)
	if res.Outcome != OutcomeSuspended {
		t.Fatalf("expected suspension with 3 candidates, got %v", res.Outcome)
	}
	if res.Suspension.Kind != "target" || res.Suspension.Count != 1 {
		t.Errorf("unexpected suspension: %+v", res.Suspension)
	}

	resolved := []target.FieldRef{{Player: 0, FieldIndex: 1}}
	final := Resume(res.Frame, resolved, gs)
	if final.Outcome != OutcomeComplete {
		t.Fatalf("expected resume to complete, got %v", final.Outcome)
	}
	if gs.Player(0).Bench[0].DamageTaken != 10 {
		t.Error("heal applied to the wrong field card")
	}
}

func TestRunDrainsChainedEffects(t *testing.T) {
	gs, ctx, _ := newTestMachine()
	chained := Effect{
		Kind:   KindDraw,
		Amount: value.Expression{Kind: value.ExprConstant, Constant: 1},
	}
	e := Effect{
		Kind:           KindHP,
		Target:         &target.Descriptor{Kind: target.KindFixed, FixedPlayer: schema.RefOpponent, FixedPosition: schema.PositionActive},
		Amount:         value.Expression{Kind: value.ExprConstant, Constant: 10},
		ChainedEffects: []Effect{chained},
	}
	gs.Player(0).Deck = []state.CardRef{{InstanceID: state.NewInstanceID(), TemplateID: "basic"}}
	res := Run([]Effect{e}, gs, ctx)
	if res.Outcome != OutcomeComplete {
		t.Fatalf("expected completion after draining the chained-effect queue, got %v", res.Outcome)
	}
	if len(gs.Player(0).Hand) != 1 {
		t.Errorf("expected the chained draw to run, hand has %d cards", len(gs.Player(0).Hand))
	}
}

func TestPreventDamagePassiveBlocksDirectDamage(t *testing.T) {
	gs, ctx, _ := newTestMachine()
	targetID := gs.Player(1).Active.FieldInstanceID()
	ctx.Registry.Register(Passive{Kind: KindPreventDamage, Owner: 1, Target: targetID})

	amount := ApplyDamageModifiers(ctx.Registry, targetID, 30, nil)
	if amount != 0 {
		t.Errorf("expected prevent-damage passive to zero the amount, got %d", amount)
	}
}

func TestDamageReductionPassive(t *testing.T) {
	gs, ctx, _ := newTestMachine()
	targetID := gs.Player(1).Active.FieldInstanceID()
	ctx.Registry.Register(Passive{Kind: KindDamageReduction, Owner: 1, Target: targetID, Amount: 10})

	amount := ApplyDamageModifiers(ctx.Registry, targetID, 30, nil)
	if amount != 20 {
		t.Errorf("expected reduction to bring 30 down to 20, got %d", amount)
	}
}

func TestRegistryExpireEndOfTurn(t *testing.T) {
	r := NewRegistry()
	id := state.NewInstanceID()
	r.Register(Passive{Kind: KindDamageBoost, Target: id, Duration: Duration{Kind: DurationUntilEndOfTurn}})
	r.Register(Passive{Kind: KindHPBonus, Target: id, Duration: Duration{Kind: DurationUntilEndOfNextTurn, CreatedTurn: 1}})

	r.ExpireEndOfTurn(1)
	if len(r.Query(KindDamageBoost, id)) != 0 {
		t.Error("expected end-of-turn passive to expire")
	}
	if len(r.Query(KindHPBonus, id)) != 1 {
		t.Error("expected until-end-of-next-turn passive to survive the same turn")
	}

	r.ExpireEndOfTurn(3)
	if len(r.Query(KindHPBonus, id)) != 0 {
		t.Error("expected until-end-of-next-turn passive to expire two turns later")
	}
}
