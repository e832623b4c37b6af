// Package effect implements the effect algebra, its per-kind handlers, the
// effect pipeline that drives them, and the passive effect registry
// (spec.md §4.1, §4.3, §4.4). Modeled as a tagged sum over Kind, matched
// exhaustively by the handler table — no runtime class hierarchy
// (spec.md §9).
package effect

import (
	"github.com/duelforge/battleengine/internal/criteria"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/state"
	"github.com/duelforge/battleengine/internal/target"
	"github.com/duelforge/battleengine/internal/value"
)

// Kind enumerates every effect variant spec.md §4.1 lists.
type Kind int

const (
	KindHP Kind = iota
	KindStatus
	KindDraw
	KindEnergyAttach
	KindSearch
	KindShuffle
	KindHandDiscard
	KindSwitch
	KindEnergyTransfer
	KindEvolutionAcceleration
	KindStatusRecovery
	KindEndTurn
	KindSwapCards
	KindMoveCards
	KindPullEvolution
	KindChoice

	// Modifier kinds, registered as passives rather than applied immediately.
	KindPreventDamage
	KindDamageReduction
	KindDamageBoost
	KindRetreatPrevention
	KindRetreatCostReduction
	KindEvolutionFlexibility
	KindCoinFlipManipulation
	KindHPBonus
)

// IsModifier reports whether this kind registers as a passive instead of
// applying immediately.
func (k Kind) IsModifier() bool {
	return k >= KindPreventDamage
}

func (k Kind) String() string {
	switch k {
	case KindHP:
		return "hp"
	case KindStatus:
		return "status"
	case KindDraw:
		return "draw"
	case KindEnergyAttach:
		return "energy"
	case KindSearch:
		return "search"
	case KindShuffle:
		return "shuffle"
	case KindHandDiscard:
		return "hand-discard"
	case KindSwitch:
		return "switch"
	case KindEnergyTransfer:
		return "energy-transfer"
	case KindEvolutionAcceleration:
		return "evolution-acceleration"
	case KindStatusRecovery:
		return "status-recovery"
	case KindEndTurn:
		return "end-turn"
	case KindSwapCards:
		return "swap-cards"
	case KindMoveCards:
		return "move-cards"
	case KindPullEvolution:
		return "pull-evolution"
	case KindChoice:
		return "choice"
	case KindPreventDamage:
		return "prevent-damage"
	case KindDamageReduction:
		return "damage-reduction"
	case KindDamageBoost:
		return "damage-boost"
	case KindRetreatPrevention:
		return "retreat-prevention"
	case KindRetreatCostReduction:
		return "retreat-cost-reduction"
	case KindEvolutionFlexibility:
		return "evolution-flexibility"
	case KindCoinFlipManipulation:
		return "coin-flip-manipulation"
	case KindHPBonus:
		return "hp-bonus"
	default:
		return "unknown"
	}
}

// Zone names a card pile, reused across search/discard/move effects.
type Zone int

const (
	ZoneHand Zone = iota
	ZoneDeck
	ZoneDiscard
)

// DurationKind enumerates the four passive lifetimes spec.md §4.3 allows.
type DurationKind int

const (
	DurationUntilEndOfTurn DurationKind = iota
	DurationUntilEndOfNextTurn
	DurationWhileInPlay
	DurationWhileAttached
)

// Duration describes when a registered passive expires.
type Duration struct {
	Kind DurationKind

	// WhileInPlayID is the field instance id this passive is tied to
	// (DurationWhileInPlay) — e.g. a stadium's own instance.
	WhileInPlayID state.InstanceID

	// WhileAttachedToolID is the tool instance id this passive is tied to
	// (DurationWhileAttached).
	WhileAttachedToolID state.InstanceID

	// CreatedTurn records the turn number the passive was registered, used
	// to expire until-end-of-next-turn passives two turns later.
	CreatedTurn int
}

// Effect is a single card effect: a tagged sum over Kind, carrying only the
// fields its kind interprets.
type Effect struct {
	Kind Kind

	// Target is the primary resolved/resolvable target (hp, status, switch,
	// energy-attach, status-recovery, evolution-acceleration, pull-evolution,
	// and every modifier kind's affected creature).
	Target *target.Descriptor

	// Source is a second target, used by energy-transfer (the donor).
	Source *target.Descriptor

	// Amount is the generic numeric parameter: heal/damage amount, draw
	// count, energy count, search/discard count cap.
	Amount value.Expression

	// Heal distinguishes KindHP's two directions: true heals, false damages.
	Heal bool

	StatusCondition   schema.StatusCondition
	RecoverConditions []schema.StatusCondition // empty means "all"

	EnergyType schema.EnergyType

	SearchCriteria criteria.CardCriteria
	SearchZone     Zone // zone to search (search/move "from"); default ZoneDeck
	Destination    Zone // zone to move matches into; default ZoneHand

	HandCap *int // swap-cards' optional post-draw hand cap

	BasicOnly bool // evolution-acceleration restriction: current form must be stage 0

	// PassiveFilter optionally restricts a damage-modifying passive to
	// sources/targets matching criteria (spec.md §8 scenario: prevent-damage
	// with `source.ex==true`).
	PassiveFilter *criteria.CardCriteria

	Duration Duration

	// ChainedEffects are appended to the pipeline's FIFO queue after this
	// effect applies (spec.md §4.4's "push_pending_effect").
	ChainedEffects []Effect

	// Options is the set of alternative sub-effects a KindChoice effect
	// presents; the pipeline suspends with a "choice" selection over
	// len(Options) alternatives and re-injects the chosen one (spec.md
	// §4.4's "pending_choice_selection").
	Options []Effect
}
