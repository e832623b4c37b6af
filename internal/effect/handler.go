package effect

import "github.com/duelforge/battleengine/internal/state"

// Handler is the per-kind effect handler (spec.md §4.3): a cheap
// playability pre-check plus the mutation itself. Modeled as a struct of
// function fields, in the teacher's CardEffect idiom, rather than an
// interface — the handler table is a flat map keyed by tag, not a class
// hierarchy (spec.md §9).
type Handler struct {
	// CanApply is a cheap pre-check; a nil CanApply defaults to always-true.
	CanApply func(gs *state.GameState, e Effect, ctx Context) bool

	// Apply performs the mutation. By the time Apply runs, e.Target/e.Source
	// (if declared) are already resolved to target.KindResolved.
	Apply func(gs *state.GameState, e Effect, ctx Context, frame *Frame)
}

var handlers map[Kind]Handler

func init() {
	handlers = map[Kind]Handler{
		KindHP:                    hpHandler,
		KindStatus:                statusHandler,
		KindDraw:                  drawHandler,
		KindEnergyAttach:          energyAttachHandler,
		KindSearch:                searchHandler,
		KindShuffle:               shuffleHandler,
		KindHandDiscard:           handDiscardHandler,
		KindSwitch:                switchHandler,
		KindEnergyTransfer:        energyTransferHandler,
		KindEvolutionAcceleration: evolutionAccelerationHandler,
		KindStatusRecovery:        statusRecoveryHandler,
		KindEndTurn:               endTurnHandler,
		KindSwapCards:             swapCardsHandler,
		KindMoveCards:             moveCardsHandler,
		KindPullEvolution:         pullEvolutionHandler,

		KindPreventDamage:        passiveHandler(KindPreventDamage),
		KindDamageReduction:      passiveHandler(KindDamageReduction),
		KindDamageBoost:          passiveHandler(KindDamageBoost),
		KindRetreatPrevention:    passiveHandler(KindRetreatPrevention),
		KindRetreatCostReduction: passiveHandler(KindRetreatCostReduction),
		KindEvolutionFlexibility: passiveHandler(KindEvolutionFlexibility),
		KindCoinFlipManipulation: passiveHandler(KindCoinFlipManipulation),
		KindHPBonus:              passiveHandler(KindHPBonus),
	}
}
