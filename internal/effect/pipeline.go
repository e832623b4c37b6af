package effect

import (
	"github.com/duelforge/battleengine/internal/criteria"
	"github.com/duelforge/battleengine/internal/elog"
	"github.com/duelforge/battleengine/internal/rng"
	"github.com/duelforge/battleengine/internal/state"
	"github.com/duelforge/battleengine/internal/target"
	"github.com/duelforge/battleengine/internal/value"
)

// Context carries everything a handler or the value evaluator needs beyond
// the mutable GameState: the acting player, the catalog view, the passive
// registry, the RNG source, and the event logger.
type Context struct {
	SourcePlayer int
	Catalog      criteria.CatalogView
	Registry     *Registry
	RNG          rng.Source
	Logger       elog.EventLogger
	CurrentTurn  int
	MaxHandSize  int
}

func (c Context) evalContext() value.EvalContext {
	return value.EvalContext{
		SourcePlayer: c.SourcePlayer,
		Catalog:      c.Catalog,
		Flip:         c.Flip,
	}
}

// Flip performs one coin flip on this context's source player's behalf,
// forcing heads when a coin-flip-manipulation passive covers them.
func (c Context) Flip() bool {
	if CoinFlipManipulated(c.Registry, c.SourcePlayer) {
		return true
	}
	return c.RNG.CoinFlip()
}

// Frame is the effect pipeline's in-flight state while suspended on a
// player selection. It is deliberately kept out of state.GameState (which
// has no notion of the effect package) — the top-level engine composes a
// Frame alongside GameState so state stays free of a dependency on effect.
type Frame struct {
	Effects  []Effect
	Index    int
	Property string
	Queue    []Effect
	Context  Context
}

// Outcome tags what Run/Resume produced.
type Outcome int

const (
	OutcomeComplete Outcome = iota
	OutcomeSuspended
	OutcomeRejected // can_apply failed; card not consumed
)

// Suspension describes what selection is needed to continue.
type Suspension struct {
	Chooser    int
	Kind       string // "target", "multi_target", or "choice"
	Candidates []criteria.Candidate
	Count      int
	MinCount   int
}

// Result is what running or resuming the pipeline produces.
type Result struct {
	Outcome    Outcome
	Suspension *Suspension
	Frame      *Frame // non-nil when Outcome == OutcomeSuspended; pass back into Resume
}

// CanApplyAll validates playability per spec.md §4.4 step 1: supporters
// require every effect's can_apply to pass; items and attacks require at
// least one.
func CanApplyAll(effects []Effect, gs *state.GameState, ctx Context, requireAll bool) bool {
	if len(effects) == 0 {
		return true
	}
	anyPass := false
	for _, e := range effects {
		h, ok := handlers[e.Kind]
		ok2 := ok && h.CanApply != nil
		pass := true
		if ok2 {
			pass = h.CanApply(gs, e, ctx)
		}
		if requireAll && !pass {
			return false
		}
		if pass {
			anyPass = true
		}
	}
	if requireAll {
		return true
	}
	return anyPass
}

// Run drives the effect pipeline over a freshly declared effect list
// (spec.md §4.4).
func Run(effects []Effect, gs *state.GameState, ctx Context) Result {
	// Target resolution rewrites effects in place; work on a copy so the
	// caller's (often a catalog template's) effect list stays untouched.
	effects = append([]Effect(nil), effects...)
	return runFrom(&Frame{Effects: effects, Index: 0, Context: ctx}, gs)
}

// Resume re-enters a suspended pipeline after a player supplied the
// requested selection. resolved is applied to the frame's pending property
// before continuing.
func Resume(frame *Frame, resolved []target.FieldRef, gs *state.GameState) Result {
	e := &frame.Effects[frame.Index]
	if frame.Property == "choice" {
		frame.Property = ""
		if len(resolved) > 0 {
			if idx := resolved[0].FieldIndex; idx >= 0 && idx < len(e.Options) {
				frame.Queue = append([]Effect{e.Options[idx]}, frame.Queue...)
			}
		}
		frame.Index++
		return runFrom(frame, gs)
	}
	applyResolvedProperty(e, frame.Property, resolved)
	return runFrom(frame, gs)
}

func applyResolvedProperty(e *Effect, property string, resolved []target.FieldRef) {
	d := &target.Descriptor{Kind: target.KindResolved, Resolved: resolved}
	switch property {
	case "source":
		e.Source = d
	default:
		e.Target = d
	}
}

func runFrom(frame *Frame, gs *state.GameState) Result {
	ctx := frame.Context
	for frame.Index < len(frame.Effects) {
		e := &frame.Effects[frame.Index]
		res, suspended := resolveRequirements(e, frame, gs, ctx)
		if suspended != nil {
			return Result{Outcome: OutcomeSuspended, Suspension: suspended, Frame: frame}
		}
		if !res {
			// A required target could not be found; skip without error.
			frame.Index++
			continue
		}
		h, ok := handlers[e.Kind]
		if ok && h.Apply != nil {
			h.Apply(gs, *e, ctx, frame)
		}
		for _, chained := range e.ChainedEffects {
			frame.Push(chained)
		}
		frame.Index++
	}
	// Drain the FIFO queue of chained/triggered effects appended by Apply.
	for len(frame.Queue) > 0 {
		next := frame.Queue[0]
		frame.Queue = frame.Queue[1:]
		sub := &Frame{Effects: []Effect{next}, Context: ctx}
		res := runFrom(sub, gs)
		if res.Outcome == OutcomeSuspended {
			// Move the unresolved queue entry onto the end of the declared
			// list so Resume re-enters it, keeping the sub-frame's own queue
			// and the remaining queue behind it.
			n := len(frame.Effects)
			frame.Effects = append(frame.Effects[:n:n], sub.Effects[sub.Index])
			frame.Index = n
			frame.Property = sub.Property
			frame.Queue = append(sub.Queue, frame.Queue...)
			return Result{Outcome: OutcomeSuspended, Suspension: res.Suspension, Frame: frame}
		}
		frame.Queue = append(frame.Queue, sub.Queue...)
	}
	return Result{Outcome: OutcomeComplete}
}

// Push enqueues a chained/triggered effect for processing after the current
// frame (spec.md §4.4's "push_pending_effect").
func (f *Frame) Push(e Effect) {
	f.Queue = append(f.Queue, e)
}

func resolveRequirements(e *Effect, frame *Frame, gs *state.GameState, ctx Context) (ok bool, suspend *Suspension) {
	if e.Kind == KindChoice {
		frame.Property = "choice"
		return false, &Suspension{Chooser: ctx.SourcePlayer, Kind: "choice", Count: len(e.Options)}
	}
	if e.Target != nil && e.Target.Kind != target.KindResolved {
		r := target.Resolve(*e.Target, gs, ctx.SourcePlayer, ctx.Catalog)
		switch r.Kind {
		case target.ResolutionNoValidTargets:
			return false, nil
		case target.ResolutionRequiresSelection:
			frame.Property = "target"
			kind := "target"
			if r.Count > 1 {
				kind = "multi_target"
			}
			return false, &Suspension{Chooser: r.Chooser, Kind: kind, Candidates: r.Candidates, Count: r.Count}
		default:
			e.Target = &target.Descriptor{Kind: target.KindResolved, Resolved: r.Targets}
		}
	}
	if e.Source != nil && e.Source.Kind != target.KindResolved {
		r := target.Resolve(*e.Source, gs, ctx.SourcePlayer, ctx.Catalog)
		switch r.Kind {
		case target.ResolutionNoValidTargets:
			return false, nil
		case target.ResolutionRequiresSelection:
			frame.Property = "source"
			kind := "target"
			if r.Count > 1 {
				kind = "multi_target"
			}
			return false, &Suspension{Chooser: r.Chooser, Kind: kind, Candidates: r.Candidates, Count: r.Count}
		default:
			e.Source = &target.Descriptor{Kind: target.KindResolved, Resolved: r.Targets}
		}
	}
	return true, nil
}

// canApplyTarget resolves a fixed or auto-resolvable target for a
// playability pre-check (CanApplyAll runs before the pipeline's
// resolveRequirements ever gets a chance to resolve e.Target itself).
func canApplyTarget(d *target.Descriptor, gs *state.GameState, ctx Context) *criteria.Candidate {
	if d == nil {
		return nil
	}
	if d.Kind == target.KindResolved {
		cands := resolvedFieldCards(d, gs)
		if len(cands) == 0 {
			return nil
		}
		return &cands[0]
	}
	r := target.Resolve(*d, gs, ctx.SourcePlayer, ctx.Catalog)
	if len(r.Targets) == 0 {
		return nil
	}
	ref := r.Targets[0]
	fc := gs.Player(ref.Player).FieldCardAt(ref.FieldIndex)
	if fc == nil {
		return nil
	}
	return &criteria.Candidate{Player: ref.Player, FieldIndex: ref.FieldIndex, FieldCard: fc}
}

// resolvedFieldCards returns the FieldCard pointers (and owning players) a
// resolved descriptor points at, for handlers to mutate directly.
func resolvedFieldCards(d *target.Descriptor, gs *state.GameState) []criteria.Candidate {
	if d == nil {
		return nil
	}
	var out []criteria.Candidate
	for _, ref := range d.Resolved {
		p := gs.Player(ref.Player)
		fc := p.FieldCardAt(ref.FieldIndex)
		if fc == nil {
			continue
		}
		out = append(out, criteria.Candidate{Player: ref.Player, FieldIndex: ref.FieldIndex, FieldCard: fc})
	}
	return out
}

func evalAmount(e Effect, gs *state.GameState, ctx Context) int {
	return value.Evaluate(e.Amount, gs, ctx.evalContext())
}
