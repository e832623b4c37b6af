package state

import (
	"testing"

	"github.com/duelforge/battleengine/internal/schema"
)

func TestDrawCardRespectsHandCap(t *testing.T) {
	p := NewPlayer(nil)
	for i := 0; i < 3; i++ {
		p.Deck = append(p.Deck, CardRef{InstanceID: NewInstanceID(), TemplateID: "basic"})
	}
	for i := 0; i < 2; i++ {
		if _, ok := p.DrawCard(2); !ok {
			t.Fatalf("draw %d should have succeeded", i)
		}
	}
	if _, ok := p.DrawCard(2); ok {
		t.Error("expected draw to fail once hand is at the cap")
	}
	if len(p.Hand) != 2 || len(p.Deck) != 1 {
		t.Errorf("unexpected hand/deck sizes: hand=%d deck=%d", len(p.Hand), len(p.Deck))
	}
}

func TestDrawCardFromEmptyDeckDoesNothing(t *testing.T) {
	p := NewPlayer(nil)
	if _, ok := p.DrawCard(10); ok {
		t.Error("expected draw from an empty deck to fail without panicking")
	}
}

func TestPromoteBenchToActive(t *testing.T) {
	p := NewPlayer(nil)
	ref := CardRef{InstanceID: NewInstanceID(), TemplateID: "basic"}
	p.Bench[1] = NewFieldCard(ref, 1)
	if !p.PromoteBenchToActive(1) {
		t.Fatal("expected promotion to succeed")
	}
	if p.Active == nil || p.Active.CurrentForm() != "basic" {
		t.Error("expected the bench card to become active")
	}
	if p.Bench[1] != nil {
		t.Error("expected the bench slot to clear after promotion")
	}
}

func TestApplyStatusExclusiveReplacesPriorExclusive(t *testing.T) {
	p := NewPlayer(nil)
	p.ApplyStatus(schema.StatusPoison)
	p.ApplyStatus(schema.StatusSleep)
	p.ApplyStatus(schema.StatusParalysis)
	if !p.HasStatus(schema.StatusPoison) {
		t.Error("poison should stack alongside an exclusive condition")
	}
	if p.HasStatus(schema.StatusSleep) {
		t.Error("paralysis should have replaced sleep")
	}
	if !p.HasStatus(schema.StatusParalysis) {
		t.Error("expected paralysis to be present")
	}
}

func TestEnergyAttachAndDiscard(t *testing.T) {
	p := NewPlayer(nil)
	id := NewInstanceID()
	p.AttachEnergy(id, schema.EnergyFire, 3)
	if p.TotalEnergy(id) != 3 {
		t.Fatalf("expected 3 total energy, got %d", p.TotalEnergy(id))
	}
	taken := p.DiscardEnergy(id, schema.EnergyFire, 5)
	if taken != 3 {
		t.Errorf("expected discard to cap at the available amount, got %d", taken)
	}
	if p.TotalEnergy(id) != 0 {
		t.Error("expected no energy remaining after discarding it all")
	}
	if _, ok := p.Energy[id]; ok {
		t.Error("expected the empty energy map entry to be cleaned up")
	}
}

func TestRemoveFieldCardClearsAttachments(t *testing.T) {
	p := NewPlayer(nil)
	ref := CardRef{InstanceID: NewInstanceID(), TemplateID: "basic"}
	p.Active = NewFieldCard(ref, 1)
	id := p.Active.FieldInstanceID()
	p.AttachEnergy(id, schema.EnergyWater, 1)
	p.Status = []schema.StatusCondition{schema.StatusBurn}

	fc := p.RemoveFieldCard(id)
	if fc == nil {
		t.Fatal("expected the removed field card to be returned")
	}
	if p.Active != nil {
		t.Error("expected the active slot to be cleared")
	}
	if p.TotalEnergy(id) != 0 {
		t.Error("expected energy attachments to be cleared on removal")
	}
	if p.HasStatus(schema.StatusBurn) {
		t.Error("expected status to clear when the active creature is removed")
	}
}
