package turnmachine

import (
	"github.com/duelforge/battleengine/internal/elog"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/state"
)

const maxMulligans = 4

// DealHands shuffles each player's deck and draws their opening five,
// redrawing up to maxMulligans times until a basic creature is present
// (spec.md §4.7 Setup). Decks must already be populated on gs.Players
// before calling this.
func (m *Machine) DealHands() {
	for i := 0; i < 2; i++ {
		p := m.State.Player(i)
		p.Deck = shuffleDeck(p.Deck, m.RNG)
		for attempt := 0; attempt <= maxMulligans; attempt++ {
			drawOpeningHand(p)
			if m.hasBasicCreature(p) || attempt == maxMulligans {
				break
			}
			// Mulligan: return hand to deck, reshuffle, redraw.
			p.Deck = append(p.Deck, p.Hand...)
			p.Hand = nil
			p.Deck = shuffleDeck(p.Deck, m.RNG)
		}
	}
}

func drawOpeningHand(p *state.Player) {
	for i := 0; i < 5; i++ {
		if _, ok := p.DrawCard(5); !ok {
			break
		}
	}
}

func (m *Machine) hasBasicCreature(p *state.Player) bool {
	for _, c := range p.Hand {
		facts, ok := m.Catalog.Facts(c.TemplateID)
		if ok && facts.Kind == schema.KindCreature && facts.Stage() == 0 {
			return true
		}
	}
	return false
}

func shuffleDeck(deck []state.CardRef, source interface {
	ShuffleCards(n int, swap func(i, j int))
}) []state.CardRef {
	source.ShuffleCards(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// SetupComplete places a player's chosen active and bench creatures from
// hand onto the field, transitioning to turn_start once both players are
// ready (spec.md §4.7).
func (m *Machine) SetupComplete(player int, activeTemplate string, benchTemplates []string) Outcome {
	p := m.State.Player(player)
	if m.Phase != PhaseSetup {
		return m.forfeitInvalid(player, "setup-complete outside setup")
	}

	activeID, ok := pickFromHand(p, activeTemplate)
	if !ok {
		// Smart correction: pick the first legal basic creature instead
		// (spec.md §4.7 validation note).
		for _, c := range p.Hand {
			facts, ok2 := m.Catalog.Facts(c.TemplateID)
			if ok2 && facts.Kind == schema.KindCreature && facts.Stage() == 0 {
				activeID = c
				ok = true
				break
			}
		}
	}
	if !ok {
		return m.forfeitInvalid(player, "no legal active creature in hand")
	}
	p.RemoveFromHand(activeID.InstanceID)
	p.Active = state.NewFieldCard(activeID, m.State.TurnNumber)

	benchCount := 0
	for _, bt := range benchTemplates {
		if benchCount >= state.BenchCapacity {
			break
		}
		ref, ok := pickFromHand(p, bt)
		if !ok {
			continue
		}
		p.RemoveFromHand(ref.InstanceID)
		p.Bench[benchCount] = state.NewFieldCard(ref, m.State.TurnNumber)
		benchCount++
	}

	m.setupReady[player] = true
	m.Logger.Log(elog.NewSetupCompleteEvent(m.State.TurnNumber, player))

	if m.setupReady[0] && m.setupReady[1] {
		m.Phase = PhaseTurnStart
		m.BeginTurn()
	}
	return m.outcome()
}

func pickFromHand(p *state.Player, templateID string) (state.CardRef, bool) {
	for _, c := range p.Hand {
		if c.TemplateID == templateID {
			return c, true
		}
	}
	return state.CardRef{}, false
}
