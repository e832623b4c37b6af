// Package turnmachine implements the turn/action state machine: response
// dispatch, the turn-start sequence, the setup phase, and the stadium
// controller (spec.md §4.7, §4.8, §6). It sits above effect, damage,
// catalog, and state — the top of the dependency graph save for engine.
package turnmachine

import (
	"github.com/duelforge/battleengine/internal/catalog"
	"github.com/duelforge/battleengine/internal/effect"
	"github.com/duelforge/battleengine/internal/elog"
	"github.com/duelforge/battleengine/internal/rng"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/state"
)

// Phase is one of the seven turn-machine states spec.md §4.7 names.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseTurnStart
	PhaseActionLoop
	PhaseAwaitingSelection
	PhaseBetweenTurns
	PhaseTurnEnd
	PhaseCompleted
)

// Config holds the configuration parameters spec.md §6 lists.
type Config struct {
	MaxHandSize       int
	MaxTurns          int
	PointsToWin       int
	PlayerEnergyTypes [2][]schema.EnergyType
}

// DefaultConfig returns spec.md §6's defaults (max_hand_size=10;
// points_to_win is this engine's generalization of the "3 points" rule
// spec.md §4.6/§8 names).
func DefaultConfig() Config {
	return Config{MaxHandSize: 10, MaxTurns: 0, PointsToWin: 3}
}

// Machine drives one match: the mutable GameState plus the collaborators
// (catalog, passive registry, RNG, logger) every handler needs.
type Machine struct {
	State    *state.GameState
	Catalog  *catalog.Catalog
	Registry *effect.Registry
	RNG      rng.Source
	Logger   elog.EventLogger
	Config   Config

	Phase Phase

	// frame holds the effect pipeline's in-flight suspension, if any.
	frame             *effect.Frame
	pendingSuspension *effect.Suspension

	// setupReady tracks which players have sent setup-complete.
	setupReady [2]bool

	// promotionNeeded names the player who must select a new active card
	// after a knockout, or -1 when no promotion is pending.
	promotionNeeded int

	// endTurnAfterPromotion records whose action loop the pending promotion
	// interrupted, so the turn can finish ending once the promotion response
	// arrives (spec.md §4.6: a knockout caused by the acting player's own
	// attack or confusion still ends their turn, after promotion).
	endTurnAfterPromotion  bool
	endTurnAfterPromotionBy int

	// turnEnergy is the current turn player's single generated energy,
	// consumed by the next attach-energy response (spec.md §4.7 turn-start
	// sequence). Nil once spent, and nil for the very first turn of the
	// game (the first player's first-turn energy is withheld).
	turnEnergy *schema.EnergyType

	// stadiumPlayedTurn[p] is the turn number p last played a stadium,
	// enforcing "one stadium per owner per turn" (spec.md §7).
	stadiumPlayedTurn [2]int
	// stadiumOwner is the player whose stadium currently occupies the slot.
	stadiumOwner int
}

// NewMachine builds a machine for a fresh match (decks already placed into
// each player's Deck by the caller; DealHands shuffles and deals them).
func NewMachine(gs *state.GameState, cat *catalog.Catalog, rngSource rng.Source, logger elog.EventLogger, cfg Config) *Machine {
	return &Machine{
		State:             gs,
		Catalog:           cat,
		Registry:          effect.NewRegistry(),
		RNG:               rngSource,
		Logger:            logger,
		Config:            cfg,
		Phase:             PhaseSetup,
		promotionNeeded:   -1,
		stadiumPlayedTurn: [2]int{-1, -1},
	}
}

// Outcome reports what a Dispatch call produced, for the driver loop
// (spec.md §5).
type Outcome struct {
	Phase      Phase
	GameOver   bool
	Suspension *effect.Suspension
}

func (m *Machine) outcome() Outcome {
	return Outcome{Phase: m.Phase, GameOver: m.State.Over, Suspension: m.pendingSuspension}
}
