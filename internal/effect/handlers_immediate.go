package effect

import (
	"fmt"

	"github.com/duelforge/battleengine/internal/criteria"
	"github.com/duelforge/battleengine/internal/elog"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/state"
)

var hpHandler = Handler{
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		targets := resolvedFieldCards(e.Target, gs)
		amount := evalAmount(e, gs, ctx)
		for _, t := range targets {
			fc := t.FieldCard
			if e.Heal {
				fc.DamageTaken -= amount
				if fc.DamageTaken < 0 {
					fc.DamageTaken = 0
				}
				ctx.Logger.Log(elog.NewHealEvent(ctx.CurrentTurn, t.Player, fc.CurrentForm(), amount))
				continue
			}
			final := ApplyDamageModifiers(ctx.Registry, fc.FieldInstanceID(), amount, nil)
			fc.DamageTaken += final
			ctx.Logger.Log(elog.NewDamageEvent(ctx.CurrentTurn, t.Player, fc.CurrentForm(), final))
		}
	},
}

var statusHandler = Handler{
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		for _, t := range resolvedFieldCards(e.Target, gs) {
			p := gs.Player(t.Player)
			p.ApplyStatus(e.StatusCondition)
			ctx.Logger.Log(elog.NewStatusAppliedEvent(ctx.CurrentTurn, t.Player, t.FieldCard.CurrentForm(), e.StatusCondition.String()))
		}
	},
}

var drawHandler = Handler{
	CanApply: func(gs *state.GameState, e Effect, ctx Context) bool {
		// Playability never depends on deck size: an empty deck draws
		// nothing rather than failing (spec.md §4.3).
		return true
	},
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		p := gs.Player(ctx.SourcePlayer)
		n := evalAmount(e, gs, ctx)
		drew := 0
		for i := 0; i < n; i++ {
			if _, ok := p.DrawCard(ctx.MaxHandSize); !ok {
				break
			}
			drew++
		}
		ctx.Logger.Log(elog.NewDrawEvent(ctx.CurrentTurn, ctx.SourcePlayer, fmt.Sprintf("%d card(s)", drew)))
	},
}

var energyAttachHandler = Handler{
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		amount := evalAmount(e, gs, ctx)
		for _, t := range resolvedFieldCards(e.Target, gs) {
			p := gs.Player(t.Player)
			p.AttachEnergy(t.FieldCard.FieldInstanceID(), e.EnergyType, amount)
			ctx.Logger.Log(elog.NewAttachEnergyEvent(ctx.CurrentTurn, t.Player, e.EnergyType.String(), t.FieldCard.CurrentForm()))
		}
	},
}

var searchHandler = Handler{
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		p := gs.Player(ctx.SourcePlayer)
		zone := zoneOf(p, e.SearchZone)
		amount := evalAmount(e, gs, ctx)
		matches := criteria.FilterCards(*zone, e.SearchCriteria, ctx.Catalog)
		// spec.md §9 open question: take the first <= amount matches
		// deterministically rather than prompting.
		if amount > 0 && len(matches) > amount {
			matches = matches[:amount]
		}
		for _, m := range matches {
			removeFromZone(zone, m.InstanceID)
			appendToZone(p, e.Destination, m)
		}
		p.Deck = shuffle(p.Deck, ctx)
		ctx.Logger.Log(elog.NewSearchEvent(ctx.CurrentTurn, ctx.SourcePlayer, len(matches)))
		ctx.Logger.Log(elog.NewShuffleEvent(ctx.CurrentTurn, ctx.SourcePlayer))
	},
}

var shuffleHandler = Handler{
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		p := gs.Player(ctx.SourcePlayer)
		p.Deck = shuffle(p.Deck, ctx)
		ctx.Logger.Log(elog.NewShuffleEvent(ctx.CurrentTurn, ctx.SourcePlayer))
	},
}

var handDiscardHandler = Handler{
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		p := gs.Player(ctx.SourcePlayer)
		matches := criteria.FilterCards(p.Hand, e.SearchCriteria, ctx.Catalog)
		amount := evalAmount(e, gs, ctx)
		if amount > 0 && len(matches) > amount {
			matches = matches[:amount]
		}
		for _, m := range matches {
			p.RemoveFromHand(m.InstanceID)
			if e.Destination == ZoneDeck {
				p.Deck = append(p.Deck, m)
			} else {
				p.SendToDiscard(m)
			}
			ctx.Logger.Log(elog.NewDiscardEvent(ctx.CurrentTurn, ctx.SourcePlayer, m.TemplateID))
		}
		if e.Destination == ZoneDeck {
			p.Deck = shuffle(p.Deck, ctx)
		}
	},
}

var switchHandler = Handler{
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		targets := resolvedFieldCards(e.Target, gs)
		if len(targets) == 0 {
			return
		}
		t := targets[0]
		p := gs.Player(t.Player)
		if t.FieldIndex == 0 {
			return
		}
		incoming := t.FieldCard.CurrentForm()
		outgoing := ""
		if p.Active != nil {
			outgoing = p.Active.CurrentForm()
			p.RecoverStatus() // previously-active clears status on leaving active (spec.md §4.3 switch note)
		}
		p.SwapActiveWithBench(t.FieldIndex - 1)
		ctx.Logger.Log(elog.NewSwitchEvent(ctx.CurrentTurn, t.Player, outgoing, incoming))
	},
}

var energyTransferHandler = Handler{
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		sources := resolvedFieldCards(e.Source, gs)
		targets := resolvedFieldCards(e.Target, gs)
		if len(sources) == 0 || len(targets) == 0 {
			return
		}
		src := sources[0]
		dst := targets[0]
		srcPlayer := gs.Player(src.Player)
		dstPlayer := gs.Player(dst.Player)
		amount := evalAmount(e, gs, ctx)
		remaining := amount
		for _, et := range schema.AllEnergyTypes {
			if remaining <= 0 {
				break
			}
			taken := srcPlayer.DiscardEnergy(src.FieldCard.FieldInstanceID(), et, remaining)
			if taken > 0 {
				dstPlayer.AttachEnergy(dst.FieldCard.FieldInstanceID(), et, taken)
				remaining -= taken
			}
		}
	},
}

var evolutionAccelerationHandler = Handler{
	CanApply: func(gs *state.GameState, e Effect, ctx Context) bool {
		cand := canApplyTarget(e.Target, gs, ctx)
		if cand == nil {
			return false
		}
		fc := cand.FieldCard
		if e.BasicOnly {
			facts, ok := ctx.Catalog.Facts(fc.CurrentForm())
			if !ok || facts.Stage() != 0 {
				return false
			}
		}
		return true
	},
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		targets := resolvedFieldCards(e.Target, gs)
		if len(targets) == 0 {
			return
		}
		fc := targets[0].FieldCard
		p := gs.Player(targets[0].Player)
		current := fc.CurrentForm()
		var finalCard state.CardRef
		var finalIndex int = -1
		for i, h := range p.Hand {
			facts, ok := ctx.Catalog.Facts(h.TemplateID)
			if !ok || !facts.HasPreviousStage || !facts.GrandparentHasPrevious {
				continue
			}
			if facts.PreviousStageName == "" {
				continue
			}
			midFacts, ok := ctx.Catalog.Facts(facts.PreviousStageName)
			if !ok || midFacts.PreviousStageName != current {
				continue
			}
			finalCard = h
			finalIndex = i
			break
		}
		if finalIndex < 0 {
			return
		}
		p.Hand = append(p.Hand[:finalIndex], p.Hand[finalIndex+1:]...)
		midFacts, _ := ctx.Catalog.Facts(finalCard.TemplateID)
		midRef := state.CardRef{InstanceID: state.NewInstanceID(), TemplateID: midFacts.PreviousStageName}
		fc.PushEvolution(midRef, ctx.CurrentTurn)
		fc.PushEvolution(finalCard, ctx.CurrentTurn)
		ctx.Logger.Log(elog.NewEvolutionEvent(ctx.CurrentTurn, targets[0].Player, current, finalCard.TemplateID))
	},
}

var statusRecoveryHandler = Handler{
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		for _, t := range resolvedFieldCards(e.Target, gs) {
			p := gs.Player(t.Player)
			p.RecoverStatus(e.RecoverConditions...)
			ctx.Logger.Log(elog.NewStatusRecoveredEvent(ctx.CurrentTurn, t.Player, t.FieldCard.CurrentForm()))
		}
	},
}

var endTurnHandler = Handler{
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		gs.Player(ctx.SourcePlayer).Turn.ShouldEndTurn = true
	},
}

var swapCardsHandler = Handler{
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		p := gs.Player(ctx.SourcePlayer)
		matches := criteria.FilterCards(p.Hand, e.SearchCriteria, ctx.Catalog)
		amount := evalAmount(e, gs, ctx)
		if amount > 0 && len(matches) > amount {
			matches = matches[:amount]
		}
		for _, m := range matches {
			p.RemoveFromHand(m.InstanceID)
			p.SendToDiscard(m)
		}
		handCap := ctx.MaxHandSize
		if e.HandCap != nil {
			handCap = *e.HandCap
		}
		for i := 0; i < len(matches); i++ {
			if _, ok := p.DrawCard(handCap); !ok {
				break
			}
		}
	},
}

var moveCardsHandler = Handler{
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		p := gs.Player(ctx.SourcePlayer)
		src := zoneOf(p, e.SearchZone)
		matches := criteria.FilterCards(*src, e.SearchCriteria, ctx.Catalog)
		amount := evalAmount(e, gs, ctx)
		if amount > 0 && len(matches) > amount {
			matches = matches[:amount]
		}
		for _, m := range matches {
			removeFromZone(src, m.InstanceID)
			appendToZone(p, e.Destination, m)
		}
	},
}

var pullEvolutionHandler = Handler{
	CanApply: func(gs *state.GameState, e Effect, ctx Context) bool {
		cand := canApplyTarget(e.Target, gs, ctx)
		return cand != nil && len(cand.FieldCard.EvolutionStack) > 1
	},
	Apply: func(gs *state.GameState, e Effect, ctx Context, frame *Frame) {
		targets := resolvedFieldCards(e.Target, gs)
		if len(targets) == 0 {
			return
		}
		fc := targets[0].FieldCard
		if len(fc.EvolutionStack) <= 1 {
			return
		}
		popped := fc.EvolutionStack[len(fc.EvolutionStack)-1]
		fc.EvolutionStack = fc.EvolutionStack[:len(fc.EvolutionStack)-1]
		gs.Player(targets[0].Player).Hand = append(gs.Player(targets[0].Player).Hand, popped)
	},
}

func zoneOf(p *state.Player, z Zone) *[]state.CardRef {
	switch z {
	case ZoneHand:
		return &p.Hand
	case ZoneDiscard:
		return &p.Discard
	default:
		return &p.Deck
	}
}

func appendToZone(p *state.Player, z Zone, ref state.CardRef) {
	switch z {
	case ZoneDeck:
		p.Deck = append(p.Deck, ref)
	case ZoneDiscard:
		p.SendToDiscard(ref)
	default:
		p.Hand = append(p.Hand, ref)
	}
}

func removeFromZone(zone *[]state.CardRef, id state.InstanceID) {
	for i, c := range *zone {
		if c.InstanceID == id {
			*zone = append((*zone)[:i], (*zone)[i+1:]...)
			return
		}
	}
}

func shuffle(deck []state.CardRef, ctx Context) []state.CardRef {
	ctx.RNG.ShuffleCards(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
