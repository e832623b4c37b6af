package engine

import (
	"testing"

	"github.com/duelforge/battleengine/internal/catalog"
	"github.com/duelforge/battleengine/internal/rng"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/turnmachine"
	"github.com/duelforge/battleengine/internal/value"
)

func buildTestCatalog() *catalog.Catalog {
	cat := catalog.New()
	cat.Add(catalog.Template{
		ID: "starter", Kind: schema.KindCreature, Name: "Ember Pup",
		Creature: &catalog.Creature{
			MaxHP: 60, ElementType: schema.EnergyFire, RetreatCost: 1,
			Attacks: []catalog.Attack{{
				Name:   "Ember",
				Damage: value.Expression{Kind: value.ExprConstant, Constant: 20},
			}},
		},
	})
	cat.Add(catalog.Template{
		ID: "filler", Kind: schema.KindCreature, Name: "Pebble Mouse",
		Creature: &catalog.Creature{MaxHP: 40, ElementType: schema.EnergyFighting},
	})
	return cat
}

func testDecks() (Decklist, Decklist) {
	deck0 := Decklist{"starter"}
	deck1 := Decklist{"starter"}
	for i := 0; i < 8; i++ {
		deck0 = append(deck0, "filler")
		deck1 = append(deck1, "filler")
	}
	return deck0, deck1
}

func TestNewEngineRejectsUnknownTemplateInDecklist(t *testing.T) {
	cat := buildTestCatalog()
	deck0, deck1 := testDecks()
	deck0 = append(deck0, "nonexistent")

	_, err := NewEngine(Config{PlayerEnergy: [2][]schema.EnergyType{{schema.EnergyFire}, {schema.EnergyFire}}}, cat, deck0, deck1)
	if err == nil {
		t.Fatal("expected an error for a decklist referencing an unknown template")
	}
	if _, ok := err.(*CatalogError); !ok {
		t.Errorf("expected a *CatalogError, got %T", err)
	}
}

func TestNewEngineDealsOpeningHands(t *testing.T) {
	cat := buildTestCatalog()
	deck0, deck1 := testDecks()

	e, err := NewEngine(Config{
		PlayerEnergy: [2][]schema.EnergyType{{schema.EnergyFire}, {schema.EnergyFire}},
		RNG:          rng.NewScripted(nil, nil),
	}, cat, deck0, deck1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.State().Player(0).Hand) != 5 || len(e.State().Player(1).Hand) != 5 {
		t.Errorf("expected 5-card opening hands, got %d and %d", len(e.State().Player(0).Hand), len(e.State().Player(1).Hand))
	}
	if e.Phase() != turnmachine.PhaseSetup {
		t.Errorf("expected the engine to start in setup, got %v", e.Phase())
	}
}

func TestRespondDrivesSetupIntoTheActionLoop(t *testing.T) {
	cat := buildTestCatalog()
	deck0, deck1 := testDecks()

	e, err := NewEngine(Config{
		PlayerEnergy: [2][]schema.EnergyType{{schema.EnergyFire}, {schema.EnergyFire}},
		RNG:          rng.NewScripted(nil, nil),
	}, cat, deck0, deck1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := e.Respond(turnmachine.Message{Kind: turnmachine.MsgSetupComplete, Player: 0, ActiveTemplate: "starter"})
	if out.Phase != turnmachine.PhaseSetup {
		t.Fatalf("expected setup to remain pending after only one player is ready, got %v", out.Phase)
	}
	out = e.Respond(turnmachine.Message{Kind: turnmachine.MsgSetupComplete, Player: 1, ActiveTemplate: "starter"})
	if out.Phase != turnmachine.PhaseActionLoop {
		t.Fatalf("expected the action loop to begin once both players are ready, got %v", out.Phase)
	}
	if e.Phase() != turnmachine.PhaseActionLoop {
		t.Errorf("expected Phase() to reflect the engine's live state, got %v", e.Phase())
	}
}
