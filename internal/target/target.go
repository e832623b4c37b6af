// Package target implements the Target Resolver (spec.md §4.2): turning a
// target descriptor into concrete field positions, either automatically or
// by suspending for a player selection.
package target

import (
	"github.com/duelforge/battleengine/internal/criteria"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/state"
)

// Kind distinguishes the five target descriptor shapes spec.md §4.1 names.
type Kind int

const (
	KindFixed Kind = iota
	KindSingleChoice
	KindMultiChoice
	KindAllMatching
	KindResolved
)

// FieldRef is a resolved target: an absolute player index and field index
// (0 = active, 1..3 = bench).
type FieldRef struct {
	Player     int
	FieldIndex int
}

// Descriptor is a target specification. Exactly the fields relevant to Kind
// are populated.
type Descriptor struct {
	Kind Kind

	// fixed
	FixedPlayer   schema.PlayerRef
	FixedPosition schema.Position
	FixedIndex    int // bench index when Position == bench with a specific slot; -1 means "any bench"

	// single-choice / multi-choice / all-matching
	Chooser schema.PlayerRef
	// PlayerScope is the criteria's self/opponent player scope, resolved
	// against sourcePlayer at Resolve time; nil scopes across both players.
	PlayerScope *schema.PlayerRef
	Criteria    criteria.FieldTargetCriteria
	Count       int // required count for multi-choice

	// resolved
	Resolved []FieldRef
}

// scopedCriteria returns d.Criteria with PlayerScope resolved against
// sourcePlayer, if set.
func (d Descriptor) scopedCriteria(sourcePlayer int) criteria.FieldTargetCriteria {
	c := d.Criteria
	if d.PlayerScope != nil {
		p := d.PlayerScope.Resolve(sourcePlayer)
		c.Player = &p
	}
	return c
}

// ResolutionKind tags the outcome of Resolve.
type ResolutionKind int

const (
	ResolutionAutoResolved ResolutionKind = iota
	ResolutionResolved
	ResolutionRequiresSelection
	ResolutionNoValidTargets
)

// Resolution is the outcome of attempting to resolve a Descriptor.
type Resolution struct {
	Kind       ResolutionKind
	Targets    []FieldRef           // populated for AutoResolved/Resolved
	Candidates []criteria.Candidate // populated for RequiresSelection
	Count      int                  // required selection count
	Chooser    int                  // absolute player index, for RequiresSelection
}

// IsAvailable reports whether at least one legal target exists; for the
// choice kinds that is true even when resolving would still require a
// player selection.
func IsAvailable(d Descriptor, gs *state.GameState, sourcePlayer int, catalog criteria.CatalogView) bool {
	switch d.Kind {
	case KindFixed:
		return fixedTarget(d, sourcePlayer, gs) != nil
	case KindSingleChoice, KindMultiChoice, KindAllMatching:
		return len(criteria.MatchingFieldCards(gs, d.scopedCriteria(sourcePlayer), catalog)) > 0
	case KindResolved:
		return len(d.Resolved) > 0
	}
	return false
}

func fixedTarget(d Descriptor, sourcePlayer int, gs *state.GameState) *FieldRef {
	player := d.FixedPlayer.Resolve(sourcePlayer)
	p := gs.Player(player)
	if d.FixedPosition == schema.PositionActive {
		if p.Active == nil {
			return nil
		}
		return &FieldRef{Player: player, FieldIndex: 0}
	}
	// bench
	if d.FixedIndex >= 0 {
		if p.FieldCardAt(d.FixedIndex + 1) == nil {
			return nil
		}
		return &FieldRef{Player: player, FieldIndex: d.FixedIndex + 1}
	}
	// "any bench" target wants an occupied slot, not a free one.
	for i := 0; i < state.BenchCapacity; i++ {
		if p.Bench[i] != nil {
			return &FieldRef{Player: player, FieldIndex: i + 1}
		}
	}
	return nil
}

// Resolve attempts to turn a descriptor into concrete targets, per
// spec.md §4.2's four-way outcome.
func Resolve(d Descriptor, gs *state.GameState, sourcePlayer int, catalog criteria.CatalogView) Resolution {
	switch d.Kind {
	case KindFixed:
		ref := fixedTarget(d, sourcePlayer, gs)
		if ref == nil {
			return Resolution{Kind: ResolutionNoValidTargets}
		}
		return Resolution{Kind: ResolutionAutoResolved, Targets: []FieldRef{*ref}}

	case KindResolved:
		if len(d.Resolved) == 0 {
			return Resolution{Kind: ResolutionNoValidTargets}
		}
		return Resolution{Kind: ResolutionResolved, Targets: d.Resolved}

	case KindAllMatching:
		candidates := criteria.MatchingFieldCards(gs, d.scopedCriteria(sourcePlayer), catalog)
		if len(candidates) == 0 {
			return Resolution{Kind: ResolutionNoValidTargets}
		}
		return Resolution{Kind: ResolutionResolved, Targets: toFieldRefs(candidates)}

	case KindSingleChoice:
		candidates := criteria.MatchingFieldCards(gs, d.scopedCriteria(sourcePlayer), catalog)
		if len(candidates) == 0 {
			return Resolution{Kind: ResolutionNoValidTargets}
		}
		if len(candidates) == 1 {
			return Resolution{Kind: ResolutionAutoResolved, Targets: toFieldRefs(candidates)}
		}
		return Resolution{
			Kind:       ResolutionRequiresSelection,
			Candidates: candidates,
			Count:      1,
			Chooser:    d.Chooser.Resolve(sourcePlayer),
		}

	case KindMultiChoice:
		candidates := criteria.MatchingFieldCards(gs, d.scopedCriteria(sourcePlayer), catalog)
		if len(candidates) == 0 {
			return Resolution{Kind: ResolutionNoValidTargets}
		}
		if len(candidates) <= d.Count {
			return Resolution{Kind: ResolutionResolved, Targets: toFieldRefs(candidates)}
		}
		return Resolution{
			Kind:       ResolutionRequiresSelection,
			Candidates: candidates,
			Count:      d.Count,
			Chooser:    d.Chooser.Resolve(sourcePlayer),
		}
	}
	return Resolution{Kind: ResolutionNoValidTargets}
}

// RequiresSelection reports whether resolving this descriptor would suspend
// for a player choice.
func RequiresSelection(d Descriptor, gs *state.GameState, sourcePlayer int, catalog criteria.CatalogView) bool {
	return Resolve(d, gs, sourcePlayer, catalog).Kind == ResolutionRequiresSelection
}

func toFieldRefs(candidates []criteria.Candidate) []FieldRef {
	refs := make([]FieldRef, len(candidates))
	for i, c := range candidates {
		refs[i] = FieldRef{Player: c.Player, FieldIndex: c.FieldIndex}
	}
	return refs
}
