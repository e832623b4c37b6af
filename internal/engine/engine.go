// Package engine is the library facade: it builds a match from a catalog
// and two decklists, accepts response messages, and returns the resulting
// turn-machine outcome. It performs no I/O and renders nothing (spec.md §1,
// §6) — wiring turnmachine/catalog/state/rng/elog the way the teacher's
// Duel wires game/log, but message-in/message-out instead of a synchronous
// PlayerController callback (spec.md Non-goals exclude baking any player
// controller, bot, or transport into the core).
package engine

import (
	"fmt"

	"github.com/duelforge/battleengine/internal/catalog"
	"github.com/duelforge/battleengine/internal/elog"
	"github.com/duelforge/battleengine/internal/rng"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/state"
	"github.com/duelforge/battleengine/internal/turnmachine"
)

// Decklist is one player's deck, as template ids; the engine instantiates a
// fresh CardRef (with a unique instance id) for each entry.
type Decklist []string

// Config configures a new match (spec.md §6).
type Config struct {
	Turn         turnmachine.Config
	PlayerEnergy [2][]schema.EnergyType
	Seed         int64
	RNG          rng.Source // overrides Seed when non-nil, for scripted tests
	Logger       elog.EventLogger
}

// CatalogError wraps a catalog-validation or unknown-template-id failure
// encountered while building a match (spec.md §7).
type CatalogError struct {
	Reason string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("engine: catalog error: %s", e.Reason)
}

// InternalEngineError reports an invariant violation the engine detected in
// itself rather than in caller input (spec.md §7: these should never
// happen; surfaced distinctly from CatalogError so a caller can tell a
// content bug from an engine bug).
type InternalEngineError struct {
	Reason string
}

func (e *InternalEngineError) Error() string {
	return fmt.Sprintf("engine: internal error: %s", e.Reason)
}

// Engine wraps one in-progress match.
type Engine struct {
	Machine *turnmachine.Machine
}

// NewEngine validates the catalog and both decklists, builds fresh game
// state, deals opening hands (spec.md §4.7 setup), and returns a ready
// engine. Both players must still send setup-complete before play begins.
func NewEngine(cfg Config, cat *catalog.Catalog, deck0, deck1 Decklist) (*Engine, error) {
	if err := cat.Validate(); err != nil {
		return nil, &CatalogError{Reason: err.Error()}
	}
	for _, id := range deck0 {
		if _, ok := cat.Lookup(id); !ok {
			return nil, &CatalogError{Reason: fmt.Sprintf("deck 0 references unknown template %q", id)}
		}
	}
	for _, id := range deck1 {
		if _, ok := cat.Lookup(id); !ok {
			return nil, &CatalogError{Reason: fmt.Sprintf("deck 1 references unknown template %q", id)}
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = elog.NewMemoryLogger()
	}
	rngSource := cfg.RNG
	if rngSource == nil {
		rngSource = rng.NewDefault(cfg.Seed)
	}

	turnCfg := cfg.Turn
	if turnCfg.MaxHandSize == 0 {
		turnCfg = turnmachine.DefaultConfig()
	}
	turnCfg.PlayerEnergyTypes = cfg.PlayerEnergy

	gs := state.NewGameState(cfg.PlayerEnergy[0], cfg.PlayerEnergy[1], turnCfg.PointsToWin, turnCfg.MaxHandSize)
	gs.Player(0).Deck = instantiateDeck(deck0)
	gs.Player(1).Deck = instantiateDeck(deck1)

	m := turnmachine.NewMachine(gs, cat, rngSource, logger, turnCfg)
	m.DealHands()

	return &Engine{Machine: m}, nil
}

func instantiateDeck(list Decklist) []state.CardRef {
	refs := make([]state.CardRef, 0, len(list))
	for _, id := range list {
		refs = append(refs, state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: id})
	}
	return refs
}

// Respond dispatches one response message and returns the resulting
// outcome (spec.md §5/§6). The engine never panics on malformed input; an
// invalid or out-of-phase message forfeits the turn of the player the
// machine is waiting on, and an action from the player who is not up is
// ignored, per turnmachine's validation rules.
func (e *Engine) Respond(msg turnmachine.Message) turnmachine.Outcome {
	return e.Machine.Dispatch(msg)
}

// State exposes the underlying game state for a caller's own snapshotting
// or display (the engine itself never renders anything).
func (e *Engine) State() *state.GameState {
	return e.Machine.State
}

// Phase reports the turn machine's current phase.
func (e *Engine) Phase() turnmachine.Phase {
	return e.Machine.Phase
}
