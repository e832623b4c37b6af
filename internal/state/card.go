package state

import "github.com/google/uuid"

// InstanceID stably identifies a runtime card instance for the lifetime of a
// game. Grounded on the teacher's CardInstance.ID, but generated with
// google/uuid instead of an incrementing int — this spec's instance ids
// must stay stable and collision-free across evolution, promotion, and
// knockout, a richer set of lifecycle transitions than the teacher's.
type InstanceID = uuid.UUID

// NewInstanceID allocates a fresh, unique instance id.
func NewInstanceID() InstanceID {
	return uuid.New()
}

// CardRef is a card instance living in hand, deck, or discard: just enough
// to identify it and look up its template in the catalog. Unlike a
// FieldCard it carries no evolution history or per-turn flags.
type CardRef struct {
	InstanceID InstanceID
	TemplateID string
}

// FieldCard is a card placed on a player's field (active or bench).
// EvolutionStack is ordered oldest (base) to newest (current form); its
// head's InstanceID is the stable FieldInstanceID used to key energy/tool
// attachments, per spec.md §3's invariant that this id never changes
// across evolution.
type FieldCard struct {
	EvolutionStack []CardRef
	DamageTaken    int
	TurnLastPlayed int
}

// FieldInstanceID returns the stable identifier for this field card: the
// head of its evolution stack. Panics if the stack is empty, which would
// be an engine invariant violation (spec.md §8 property 1).
func (f *FieldCard) FieldInstanceID() InstanceID {
	if len(f.EvolutionStack) == 0 {
		panic("state: FieldCard has empty evolution stack")
	}
	return f.EvolutionStack[0].InstanceID
}

// CurrentForm returns the tail of the evolution stack — the template id
// used for stats/attacks/weakness lookups.
func (f *FieldCard) CurrentForm() string {
	if len(f.EvolutionStack) == 0 {
		panic("state: FieldCard has empty evolution stack")
	}
	return f.EvolutionStack[len(f.EvolutionStack)-1].TemplateID
}

// NewFieldCard places a fresh basic (or pre-evolved) card onto the field.
func NewFieldCard(ref CardRef, turn int) *FieldCard {
	return &FieldCard{
		EvolutionStack: []CardRef{ref},
		TurnLastPlayed: turn,
	}
}

// PushEvolution appends a new form to the stack (one stage of evolution).
func (f *FieldCard) PushEvolution(ref CardRef, turn int) {
	f.EvolutionStack = append(f.EvolutionStack, ref)
	f.TurnLastPlayed = turn
}
