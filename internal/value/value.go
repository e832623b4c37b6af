// Package value implements the effect value algebra (spec.md §4.1): integer
// expressions that evaluate against game state at application time.
package value

import (
	"github.com/duelforge/battleengine/internal/criteria"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/state"
)

// ContextSource is the player-context source for a player-context
// expression.
type ContextSource int

const (
	SourceHandSize ContextSource = iota
	SourceCurrentPoints
	SourcePointsToWin
)

// CountKind distinguishes what a count expression counts.
type CountKind int

const (
	CountField CountKind = iota
	CountEnergy
	CountCard
	CountDamage
)

// Expression is a tagged-sum integer expression. Exactly one of the typed
// fields is meaningful, selected by Kind — modeled as a flat struct rather
// than an interface hierarchy so the evaluator can switch exhaustively on
// Kind without type assertions (spec.md §9: "do not use runtime class
// hierarchies").
type Expression struct {
	Kind ExpressionKind

	// constant
	Constant int

	// player-context
	ContextSource ContextSource
	ContextWho    schema.PlayerRef

	// multiplication
	Base *Expression
	Mult *Expression

	// addition
	Operands []Expression

	// conditional
	Cond      *Condition
	IfTrue    *Expression
	IfFalse   *Expression

	// coin-flip
	Heads *Expression
	Tails *Expression
	Flips int // count of flips, minimum 1

	// count
	CountKind        CountKind
	CountField_      criteria.FieldTargetCriteria
	CountCardCrit    criteria.CardCriteria
	CountCardSource  schema.PlayerRef // whose hand/deck/discard to count from
	CountCardZone    Zone
	CountEnergyOf    schema.PlayerRef
	CountEnergyField int // resolved field index (0=active,1..3=bench) to count energy on
	CountEnergyType  *schema.EnergyType
	CountDamageOf    criteria.FieldTargetCriteria
}

type ExpressionKind int

const (
	ExprConstant ExpressionKind = iota
	ExprPlayerContext
	ExprMultiplication
	ExprAddition
	ExprConditional
	ExprCoinFlip
	ExprCount
)

// Zone distinguishes which pile count{card} inspects.
type Zone int

const (
	ZoneHand Zone = iota
	ZoneDeck
	ZoneDiscard
)

// Condition is a boolean predicate usable inside a conditional expression.
// Kept minimal: the spec only needs to compare two sub-expressions or test
// a criteria match count.
type Condition struct {
	Left  Expression
	Op    CompareOp
	Right Expression
}

type CompareOp int

const (
	OpEqual CompareOp = iota
	OpNotEqual
	OpGreaterThan
	OpGreaterOrEqual
	OpLessThan
	OpLessOrEqual
)

func (op CompareOp) apply(l, r int) bool {
	switch op {
	case OpEqual:
		return l == r
	case OpNotEqual:
		return l != r
	case OpGreaterThan:
		return l > r
	case OpGreaterOrEqual:
		return l >= r
	case OpLessThan:
		return l < r
	case OpLessOrEqual:
		return l <= r
	default:
		return false
	}
}

// EvalContext carries what Evaluate needs beyond the game state: the acting
// player, the catalog view, and an RNG-backed coin flip function (injected
// so evaluation of coin-flip stays deterministic under a scripted source).
type EvalContext struct {
	SourcePlayer int
	Catalog      criteria.CatalogView
	Flip         func() bool
}

// Evaluate computes an expression's integer value against the current
// state. Division and negative results never occur in this algebra
// (spec.md §4.1); count expressions are clamped to ≥0 by construction.
func Evaluate(expr Expression, gs *state.GameState, ctx EvalContext) int {
	switch expr.Kind {
	case ExprConstant:
		return expr.Constant

	case ExprPlayerContext:
		player := expr.ContextWho.Resolve(ctx.SourcePlayer)
		p := gs.Player(player)
		switch expr.ContextSource {
		case SourceHandSize:
			return len(p.Hand)
		case SourceCurrentPoints:
			return p.Points
		case SourcePointsToWin:
			need := gs.PointsToWin - p.Points
			if need < 1 {
				need = 1
			}
			return need
		}
		return 0

	case ExprMultiplication:
		if expr.Base == nil || expr.Mult == nil {
			return 0
		}
		return Evaluate(*expr.Base, gs, ctx) * Evaluate(*expr.Mult, gs, ctx)

	case ExprAddition:
		total := 0
		for _, op := range expr.Operands {
			total += Evaluate(op, gs, ctx)
		}
		return total

	case ExprConditional:
		if expr.Cond == nil {
			return 0
		}
		if evalCondition(*expr.Cond, gs, ctx) {
			if expr.IfTrue == nil {
				return 0
			}
			return Evaluate(*expr.IfTrue, gs, ctx)
		}
		if expr.IfFalse == nil {
			return 0
		}
		return Evaluate(*expr.IfFalse, gs, ctx)

	case ExprCoinFlip:
		flips := expr.Flips
		if flips < 1 {
			flips = 1
		}
		total := 0
		for i := 0; i < flips; i++ {
			if ctx.Flip != nil && ctx.Flip() {
				if expr.Heads != nil {
					total += Evaluate(*expr.Heads, gs, ctx)
				}
			} else if expr.Tails != nil {
				total += Evaluate(*expr.Tails, gs, ctx)
			}
		}
		return total

	case ExprCount:
		return evalCount(expr, gs, ctx)
	}
	return 0
}

func evalCondition(c Condition, gs *state.GameState, ctx EvalContext) bool {
	l := Evaluate(c.Left, gs, ctx)
	r := Evaluate(c.Right, gs, ctx)
	return c.Op.apply(l, r)
}

func evalCount(expr Expression, gs *state.GameState, ctx EvalContext) int {
	switch expr.CountKind {
	case CountField:
		n := criteria.CountMatchingFieldCards(gs, expr.CountField_, ctx.Catalog)
		if n < 0 {
			return 0
		}
		return n

	case CountCard:
		player := expr.CountCardSource.Resolve(ctx.SourcePlayer)
		p := gs.Player(player)
		var zone []state.CardRef
		switch expr.CountCardZone {
		case ZoneHand:
			zone = p.Hand
		case ZoneDeck:
			zone = p.Deck
		case ZoneDiscard:
			zone = p.Discard
		}
		return criteria.CountMatchingCards(zone, expr.CountCardCrit, ctx.Catalog)

	case CountEnergy:
		player := expr.CountEnergyOf.Resolve(ctx.SourcePlayer)
		p := gs.Player(player)
		fc := p.FieldCardAt(expr.CountEnergyField)
		if fc == nil {
			return 0
		}
		return criteria.CountEnergy(p, fc.FieldInstanceID(), expr.CountEnergyType)

	case CountDamage:
		matches := criteria.MatchingFieldCards(gs, expr.CountDamageOf, ctx.Catalog)
		total := 0
		for _, m := range matches {
			total += m.FieldCard.DamageTaken
		}
		return total
	}
	return 0
}
