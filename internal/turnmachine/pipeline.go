package turnmachine

import (
	"github.com/duelforge/battleengine/internal/damage"
	"github.com/duelforge/battleengine/internal/effect"
	"github.com/duelforge/battleengine/internal/state"
	"github.com/duelforge/battleengine/internal/target"
)

func (m *Machine) effectContext(sourcePlayer int) effect.Context {
	return effect.Context{
		SourcePlayer: sourcePlayer,
		Catalog:      m.Catalog,
		Registry:     m.Registry,
		RNG:          m.RNG,
		Logger:       m.Logger,
		CurrentTurn:  m.State.TurnNumber,
		MaxHandSize:  m.Config.MaxHandSize,
	}
}

// flip performs one coin flip on player's behalf, forcing heads when a
// coin-flip-manipulation passive covers them (spec.md §4.1).
func (m *Machine) flip(player int) bool {
	if effect.CoinFlipManipulated(m.Registry, player) {
		return true
	}
	return m.RNG.CoinFlip()
}

// runEffects drives the pipeline over a freshly declared effect list,
// handling suspension by recording the frame on both the machine and
// state.GameState (spec.md §5: "the machine stores a pending_* record on
// the turn state and sets the waiting position to the chooser").
func (m *Machine) runEffects(effects []effect.Effect, sourcePlayer int) Outcome {
	res := effect.Run(effects, m.State, m.effectContext(sourcePlayer))
	return m.handlePipelineResult(res)
}

func (m *Machine) resumeEffects(resolved []target.FieldRef) Outcome {
	res := effect.Resume(m.frame, resolved, m.State)
	return m.handlePipelineResult(res)
}

func (m *Machine) handlePipelineResult(res effect.Result) Outcome {
	switch res.Outcome {
	case effect.OutcomeSuspended:
		m.frame = res.Frame
		m.pendingSuspension = res.Suspension
		m.Phase = PhaseAwaitingSelection
		var candidateIDs []string
		for _, c := range res.Suspension.Candidates {
			candidateIDs = append(candidateIDs, c.FieldCard.FieldInstanceID().String())
		}
		m.State.BeginSelection(state.PendingSelection{
			Chooser:    res.Suspension.Chooser,
			Kind:       res.Suspension.Kind,
			Candidates: candidateIDs,
			Count:      res.Suspension.Count,
		})
		return m.outcome()
	default:
		m.frame = nil
		m.pendingSuspension = nil
		m.State.ResolveSelection()
		m.afterEffects()
		return m.outcome()
	}
}

// afterEffects runs the checks every effect application and every attack
// must perform afterward: knockouts, then win/loss.
func (m *Machine) afterEffects() {
	outcomes := damage.CheckKnockouts(m.State, m.Catalog, m.Registry, m.Logger, m.State.TurnNumber)
	for _, o := range outcomes {
		if o.NeedsPromotion {
			m.promotionNeeded = o.Player
			m.Phase = PhaseAwaitingSelection
		}
	}
}
