package target

import (
	"testing"

	"github.com/duelforge/battleengine/internal/criteria"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/state"
)

type fakeCatalog map[string]criteria.CardFacts

func (f fakeCatalog) Facts(id string) (criteria.CardFacts, bool) {
	facts, ok := f[id]
	return facts, ok
}

func newFieldState() (*state.GameState, fakeCatalog) {
	gs := state.NewGameState(nil, nil, 3, 10)
	cat := fakeCatalog{"basic": {Kind: schema.KindCreature}}
	gs.Player(0).Active = state.NewFieldCard(state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: "basic"}, 1)
	gs.Player(1).Active = state.NewFieldCard(state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: "basic"}, 1)
	return gs, cat
}

func TestResolveFixedActive(t *testing.T) {
	gs, cat := newFieldState()
	d := Descriptor{Kind: KindFixed, FixedPlayer: schema.RefSelf, FixedPosition: schema.PositionActive}
	res := Resolve(d, gs, 0, cat)
	if res.Kind != ResolutionAutoResolved {
		t.Fatalf("expected auto-resolved, got %v", res.Kind)
	}
	if len(res.Targets) != 1 || res.Targets[0].Player != 0 || res.Targets[0].FieldIndex != 0 {
		t.Errorf("unexpected target: %+v", res.Targets)
	}
}

func TestResolveFixedActiveNoneInPlay(t *testing.T) {
	gs := state.NewGameState(nil, nil, 3, 10)
	cat := fakeCatalog{}
	d := Descriptor{Kind: KindFixed, FixedPlayer: schema.RefOpponent, FixedPosition: schema.PositionActive}
	res := Resolve(d, gs, 0, cat)
	if res.Kind != ResolutionNoValidTargets {
		t.Fatalf("expected no valid targets, got %v", res.Kind)
	}
}

func TestResolveSingleChoiceAutoResolvesWithOneCandidate(t *testing.T) {
	gs, cat := newFieldState()
	self := schema.RefSelf
	d := Descriptor{Kind: KindSingleChoice, Chooser: schema.RefSelf, PlayerScope: &self, Criteria: criteria.FieldTargetCriteria{Position: positionPtr(schema.PositionActive)}}
	res := Resolve(d, gs, 0, cat)
	if res.Kind != ResolutionAutoResolved {
		t.Fatalf("expected single candidate to auto-resolve, got %v", res.Kind)
	}
}

func TestResolveSingleChoiceRequiresSelection(t *testing.T) {
	gs, cat := newFieldState()
	gs.Player(0).Bench[0] = state.NewFieldCard(state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: "basic"}, 1)
	gs.Player(0).Bench[1] = state.NewFieldCard(state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: "basic"}, 1)
	self := 0
	d := Descriptor{Kind: KindSingleChoice, Chooser: schema.RefSelf, Criteria: criteria.FieldTargetCriteria{Player: &self}}
	res := Resolve(d, gs, 0, cat)
	if res.Kind != ResolutionRequiresSelection {
		t.Fatalf("expected a selection to be required with 3 candidates, got %v", res.Kind)
	}
	if res.Count != 1 || res.Chooser != 0 {
		t.Errorf("unexpected selection parameters: %+v", res)
	}
}

func TestResolveAllMatching(t *testing.T) {
	gs, cat := newFieldState()
	d := Descriptor{Kind: KindAllMatching}
	res := Resolve(d, gs, 0, cat)
	if res.Kind != ResolutionResolved || len(res.Targets) != 2 {
		t.Fatalf("expected both actives resolved, got %+v", res)
	}
}

func positionPtr(p schema.Position) *schema.Position { return &p }
