package effect

import (
	"github.com/duelforge/battleengine/internal/elog"
	"github.com/duelforge/battleengine/internal/state"
)

// passiveHandler builds the shared Apply for every modifier kind: resolve
// the target, evaluate the amount, and register a Passive (spec.md §4.3:
// "register as a passive effect with the declared duration and optional
// predicate").
func passiveHandler(kind Kind) Handler {
	return Handler{
		Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
			targets := resolvedFieldCards(e.Target, gs)
			if len(targets) == 0 {
				return
			}
			amount := evalAmount(e, gs, ctx)
			duration := e.Duration
			duration.CreatedTurn = ctx.CurrentTurn
			for _, t := range targets {
				ctx.Registry.Register(Passive{
					Kind:     kind,
					Owner:    ctx.SourcePlayer,
					Target:   t.FieldCard.FieldInstanceID(),
					Amount:   amount,
					Filter:   e.PassiveFilter,
					Duration: duration,
				})
				ctx.Logger.Log(elog.NewPassiveRegisteredEvent(ctx.CurrentTurn, ctx.SourcePlayer, kind.String()))
			}
		},
	}
}
