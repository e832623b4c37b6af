package effect

import (
	"github.com/duelforge/battleengine/internal/criteria"
	"github.com/duelforge/battleengine/internal/state"
)

// Passive is one registered modifier effect instance (spec.md §4.3/§9: "a
// flat list, not a graph").
type Passive struct {
	ID       state.InstanceID
	Kind     Kind
	Owner    int // player who registered it
	Target   state.InstanceID // field instance id this passive affects
	Amount   int              // evaluated magnitude at registration time
	Filter   *criteria.CardCriteria
	Duration Duration
}

// Registry holds every currently active passive, queried linearly by kind
// and predicate (spec.md §9: "keep it flat; queried by effect kind via a
// predicate").
type Registry struct {
	passives []Passive
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a passive, stamping it with a fresh id.
func (r *Registry) Register(p Passive) state.InstanceID {
	p.ID = state.NewInstanceID()
	r.passives = append(r.passives, p)
	return p.ID
}

// Query returns every passive of the given kind affecting the given field
// instance.
func (r *Registry) Query(kind Kind, targetID state.InstanceID) []Passive {
	var out []Passive
	for _, p := range r.passives {
		if p.Kind == kind && p.Target == targetID {
			out = append(out, p)
		}
	}
	return out
}

// QueryKind returns every passive of the given kind, regardless of target —
// used by callers that match the target or owner themselves
// (ApplyDamageModifiers, CoinFlipManipulated).
func (r *Registry) QueryKind(kind Kind) []Passive {
	var out []Passive
	for _, p := range r.passives {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// ExpireEndOfTurn drops until-end-of-turn passives and any
// until-end-of-next-turn passive registered two or more turns before
// currentTurn (spec.md §4.7).
func (r *Registry) ExpireEndOfTurn(currentTurn int) {
	var kept []Passive
	for _, p := range r.passives {
		switch p.Duration.Kind {
		case DurationUntilEndOfTurn:
			continue
		case DurationUntilEndOfNextTurn:
			if currentTurn-p.Duration.CreatedTurn >= 2 {
				continue
			}
		}
		kept = append(kept, p)
	}
	r.passives = kept
}

// ExpireInstance drops every passive keyed to the given field instance,
// either as its target or as a while-in-play/while-attached owner — called
// on knockout and when a stadium is replaced (spec.md §8 property 3).
func (r *Registry) ExpireInstance(id state.InstanceID) {
	var kept []Passive
	for _, p := range r.passives {
		if p.Target == id {
			continue
		}
		if p.Duration.Kind == DurationWhileInPlay && p.Duration.WhileInPlayID == id {
			continue
		}
		if p.Duration.Kind == DurationWhileAttached && p.Duration.WhileAttachedToolID == id {
			continue
		}
		kept = append(kept, p)
	}
	r.passives = kept
}

// All returns every currently registered passive, mainly for snapshotting.
func (r *Registry) All() []Passive {
	return r.passives
}
