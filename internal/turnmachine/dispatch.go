package turnmachine

import (
	"github.com/duelforge/battleengine/internal/catalog"
	"github.com/duelforge/battleengine/internal/damage"
	"github.com/duelforge/battleengine/internal/effect"
	"github.com/duelforge/battleengine/internal/elog"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/state"
	"github.com/duelforge/battleengine/internal/target"
)

// Dispatch routes one response message to its handler (spec.md §6 Inputs).
// Invalid or out-of-phase responses forfeit the turn of the player the
// machine is waiting on unless a smart correction applies (spec.md §4.7);
// an action from the player who is not up is ignored.
func (m *Machine) Dispatch(msg Message) Outcome {
	if m.Phase == PhaseCompleted || m.State.Over {
		return m.outcome()
	}

	switch msg.Kind {
	case MsgSetupComplete:
		return m.SetupComplete(msg.Player, msg.ActiveTemplate, msg.BenchTemplates)
	case MsgSelectActiveCard:
		return m.selectActiveCard(msg.Player, msg.BenchIndex)
	case MsgSelectTarget, MsgSelectMultiTarget:
		return m.selectTargets(msg.Player, msg.Targets)
	case MsgSelectCard:
		return m.selectCards(msg.Player, msg.CardIndices)
	case MsgSelectEnergy:
		return m.selectEnergy(msg.Player, msg.Energies)
	case MsgSelectChoice:
		return m.selectChoice(msg.Player, msg.ChoiceOption)
	}

	if m.Phase == PhaseAwaitingSelection {
		return m.forfeitInvalid(m.awaitingChooser(), "response received while a selection is pending")
	}
	if m.Phase != PhaseActionLoop {
		return m.forfeitInvalid(m.State.TurnPlayer, "action received outside the action loop")
	}
	if msg.Player != m.State.TurnPlayer {
		// A message from the player who isn't up doesn't cost the actual
		// turn player anything; just ignore it.
		return m.outcome()
	}

	switch msg.Kind {
	case MsgAttack:
		return m.attack(msg.Player, msg.AttackIndex)
	case MsgPlayCard:
		return m.playCard(msg.Player, msg.TemplateID, msg.CardKind)
	case MsgEvolve:
		return m.evolve(msg.Player, msg.EvolutionTemplateID, msg.FieldIndex)
	case MsgAttachEnergy:
		return m.attachEnergy(msg.Player, msg.FieldIndex)
	case MsgRetreat:
		return m.retreat(msg.Player, msg.BenchIndex)
	case MsgEndTurn:
		return m.EndTurn(msg.Player)
	case MsgUseAbility:
		return m.useAbility(msg.Player, msg.FieldIndex)
	}
	return m.forfeitInvalid(msg.Player, "unrecognized response")
}

// awaitingChooser resolves who the engine is actually waiting on while
// suspended: the effect pipeline's declared chooser if one is suspended,
// otherwise the player who owes a knockout promotion, otherwise the current
// turn player.
func (m *Machine) awaitingChooser() int {
	if m.pendingSuspension != nil {
		return m.pendingSuspension.Chooser
	}
	if m.promotionNeeded >= 0 {
		return m.promotionNeeded
	}
	return m.State.TurnPlayer
}

// forfeitInvalid implements spec.md §4.7's "invalid response forfeits the
// turn" rule: the waiting position is cleared and the given player's turn
// ends immediately, without consuming any card.
func (m *Machine) forfeitInvalid(player int, reason string) Outcome {
	m.Logger.Log(elog.NewForfeitEvent(m.State.TurnNumber, player, reason))
	m.frame = nil
	m.pendingSuspension = nil
	m.State.ResolveSelection()
	if m.Phase == PhaseSetup {
		return m.outcome()
	}
	return m.EndTurn(player)
}

func (m *Machine) attack(player, attackIndex int) Outcome {
	p := m.State.Player(player)
	opponent := state.Opponent(player)
	if p.Active == nil {
		return m.forfeitInvalid(player, "no active creature")
	}
	if p.HasStatus(schema.StatusParalysis) || p.HasStatus(schema.StatusSleep) {
		return m.outcome()
	}
	if p.HasStatus(schema.StatusConfusion) && !m.flip(player) {
		p.Active.DamageTaken += poisonDamage
		m.Logger.Log(elog.NewDamageEvent(m.State.TurnNumber, player, p.Active.CurrentForm(), poisonDamage))
		m.afterEffects()
		if m.State.Over {
			return m.outcome()
		}
		if m.promotionNeeded >= 0 {
			m.endTurnAfterPromotion = true
			m.endTurnAfterPromotionBy = player
			return m.outcome()
		}
		return m.EndTurn(player)
	}
	tmpl, ok := m.Catalog.Lookup(p.Active.CurrentForm())
	if !ok || tmpl.Creature == nil || attackIndex < 0 || attackIndex >= len(tmpl.Creature.Attacks) {
		return m.forfeitInvalid(player, "unknown attack")
	}
	atk := tmpl.Creature.Attacks[attackIndex]
	if !m.hasEnergyFor(p.Active.FieldInstanceID(), p, atk.Requirements) {
		return m.outcome()
	}

	damage.Resolve(atk, m.State, damage.AttackContext{
		AttackerPlayer: player,
		DefenderPlayer: opponent,
		Catalog:        m.Catalog,
		Registry:       m.Registry,
		Logger:         m.Logger,
		CurrentTurn:    m.State.TurnNumber,
		Flip:           func() bool { return m.flip(player) },
	})

	out := m.runEffects(atk.ChainedEffects, player)
	if out.Suspension != nil || m.State.Over {
		return out
	}
	if m.promotionNeeded >= 0 {
		m.endTurnAfterPromotion = true
		m.endTurnAfterPromotionBy = player
		return out
	}
	return m.EndTurn(player)
}

// hasEnergyFor validates attached energy on a field instance against an
// attack's per-type requirements, filling colorless slots from whatever
// surplus remains after specific types are satisfied (spec.md §4.5 step 1).
func (m *Machine) hasEnergyFor(id state.InstanceID, p *state.Player, reqs []catalog.EnergyRequirement) bool {
	remaining := make(map[schema.EnergyType]int)
	for _, t := range schema.AllEnergyTypes {
		if n := p.EnergyCount(id, t); n > 0 {
			remaining[t] = n
		}
	}
	colorlessNeeded := 0
	for _, r := range reqs {
		if r.Type == schema.EnergyColorless {
			colorlessNeeded += r.Amount
			continue
		}
		if remaining[r.Type] < r.Amount {
			return false
		}
		remaining[r.Type] -= r.Amount
	}
	surplus := 0
	for _, n := range remaining {
		surplus += n
	}
	return surplus >= colorlessNeeded
}

func (m *Machine) playCard(player int, templateID string, kind schema.CardKind) Outcome {
	p := m.State.Player(player)
	ref, ok := pickFromHand(p, templateID)
	if !ok {
		return m.outcome()
	}
	tmpl, ok := m.Catalog.Lookup(templateID)
	if !ok {
		return m.outcome()
	}

	switch kind {
	case schema.KindCreature:
		idx := p.FreeBenchIndex()
		if idx < 0 {
			return m.outcome()
		}
		p.RemoveFromHand(ref.InstanceID)
		p.Bench[idx] = state.NewFieldCard(ref, m.State.TurnNumber)
		m.Logger.Log(elog.NewPlayCardEvent(m.State.TurnNumber, player, tmpl.Name))
		return m.outcome()

	case schema.KindSupporter:
		if p.Turn.SupporterPlayedThisTurn {
			return m.outcome()
		}
		if tmpl.Trainer == nil || !effect.CanApplyAll(tmpl.Trainer.Effects, m.State, m.effectContext(player), true) {
			return m.outcome()
		}
		p.RemoveFromHand(ref.InstanceID)
		p.SendToDiscard(ref)
		p.Turn.SupporterPlayedThisTurn = true
		m.Logger.Log(elog.NewPlayCardEvent(m.State.TurnNumber, player, tmpl.Name))
		return m.runEffects(tmpl.Trainer.Effects, player)

	case schema.KindItem:
		if tmpl.Trainer == nil || !effect.CanApplyAll(tmpl.Trainer.Effects, m.State, m.effectContext(player), false) {
			return m.outcome()
		}
		p.RemoveFromHand(ref.InstanceID)
		p.SendToDiscard(ref)
		m.Logger.Log(elog.NewPlayCardEvent(m.State.TurnNumber, player, tmpl.Name))
		return m.runEffects(tmpl.Trainer.Effects, player)

	case schema.KindTool:
		if p.Active == nil || p.HasTool(p.Active.FieldInstanceID()) {
			return m.outcome()
		}
		p.RemoveFromHand(ref.InstanceID)
		p.AttachTool(p.Active.FieldInstanceID(), ref)
		m.Logger.Log(elog.NewPlayCardEvent(m.State.TurnNumber, player, tmpl.Name))
		if tmpl.Trainer != nil {
			return m.runEffects(tmpl.Trainer.Effects, player)
		}
		return m.outcome()

	case schema.KindStadium:
		return m.playStadium(player, ref, tmpl)
	}
	return m.outcome()
}

func (m *Machine) evolve(player int, evolutionTemplateID string, fieldIndex int) Outcome {
	p := m.State.Player(player)
	fc := p.FieldCardAt(fieldIndex)
	if fc == nil {
		return m.outcome()
	}
	if fc.TurnLastPlayed == m.State.TurnNumber && !effect.EvolutionFlexible(m.Registry, fc.FieldInstanceID()) {
		return m.outcome()
	}
	if p.Turn.EvolvedThisTurn(fc.FieldInstanceID()) {
		return m.outcome()
	}
	ref, ok := pickFromHand(p, evolutionTemplateID)
	if !ok {
		return m.outcome()
	}
	facts, ok := m.Catalog.Facts(evolutionTemplateID)
	if !ok || facts.PreviousStageName != fc.CurrentForm() {
		return m.outcome()
	}
	from := fc.CurrentForm()
	p.RemoveFromHand(ref.InstanceID)
	fc.PushEvolution(ref, m.State.TurnNumber)
	p.Turn.MarkEvolved(fc.FieldInstanceID())
	m.Logger.Log(elog.NewEvolutionEvent(m.State.TurnNumber, player, from, evolutionTemplateID))
	return m.outcome()
}

func (m *Machine) attachEnergy(player, fieldIndex int) Outcome {
	p := m.State.Player(player)
	fc := p.FieldCardAt(fieldIndex)
	if fc == nil || m.turnEnergy == nil {
		return m.outcome()
	}
	energyType := *m.turnEnergy
	p.AttachEnergy(fc.FieldInstanceID(), energyType, 1)
	m.turnEnergy = nil
	m.Logger.Log(elog.NewAttachEnergyEvent(m.State.TurnNumber, player, energyType.String(), fc.CurrentForm()))
	return m.outcome()
}

func (m *Machine) retreat(player, benchIndex int) Outcome {
	p := m.State.Player(player)
	if p.Active == nil {
		return m.outcome()
	}
	if p.Turn.RetreatedThisTurn {
		return m.outcome()
	}
	activeID := p.Active.FieldInstanceID()
	if effect.RetreatPrevented(m.Registry, activeID) {
		return m.outcome()
	}
	tmpl, ok := m.Catalog.Lookup(p.Active.CurrentForm())
	if !ok || tmpl.Creature == nil {
		return m.outcome()
	}
	cost := tmpl.Creature.RetreatCost - effect.RetreatCostReduction(m.Registry, activeID)
	if cost < 0 {
		cost = 0
	}
	if p.TotalEnergy(activeID) < cost {
		return m.outcome()
	}
	from := p.Active.CurrentForm()
	if !p.SwapActiveWithBench(benchIndex) {
		return m.outcome()
	}
	paid := cost
	for et := range p.Energy[activeID] {
		if paid <= 0 {
			break
		}
		paid -= p.DiscardEnergy(activeID, et, paid)
	}
	p.Status = nil
	p.Turn.RetreatedThisTurn = true
	m.Logger.Log(elog.NewRetreatEvent(m.State.TurnNumber, player, from, p.Active.CurrentForm()))
	return m.outcome()
}

func (m *Machine) useAbility(player, fieldIndex int) Outcome {
	p := m.State.Player(player)
	fc := p.FieldCardAt(fieldIndex)
	if fc == nil {
		return m.outcome()
	}
	if p.Turn.UsedAbility(fc.FieldInstanceID()) {
		return m.outcome()
	}
	tmpl, ok := m.Catalog.Lookup(fc.CurrentForm())
	if !ok || tmpl.Creature == nil || tmpl.Creature.Ability == nil {
		return m.outcome()
	}
	if !effect.CanApplyAll(tmpl.Creature.Ability.Effects, m.State, m.effectContext(player), false) {
		return m.outcome()
	}
	p.Turn.MarkAbilityUsed(fc.FieldInstanceID())
	return m.runEffects(tmpl.Creature.Ability.Effects, player)
}

// selectActiveCard handles both the post-knockout promotion selection and
// the generic select-active-card response, smart-correcting an
// out-of-range bench index to the first occupied slot (spec.md §4.7).
func (m *Machine) selectActiveCard(player, benchIndex int) Outcome {
	p := m.State.Player(player)
	if benchIndex < 0 || benchIndex >= state.BenchCapacity || p.Bench[benchIndex] == nil {
		benchIndex = -1
		for i, b := range p.Bench {
			if b != nil {
				benchIndex = i
				break
			}
		}
	}
	if benchIndex >= 0 && p.PromoteBenchToActive(benchIndex) {
		p.Status = nil
		m.Logger.Log(elog.NewPromotionEvent(m.State.TurnNumber, player, p.Active.CurrentForm()))
	}
	if m.promotionNeeded == player {
		m.promotionNeeded = -1
	}
	if m.promotionNeeded >= 0 || m.frame != nil {
		return m.outcome()
	}
	if m.State.Over {
		m.Phase = PhaseCompleted
		return m.outcome()
	}
	if m.endTurnAfterPromotion {
		m.endTurnAfterPromotion = false
		return m.EndTurn(m.endTurnAfterPromotionBy)
	}
	m.Phase = PhaseActionLoop
	return m.outcome()
}

func (m *Machine) selectTargets(player int, targets []FieldTarget) Outcome {
	if m.frame == nil {
		return m.outcome()
	}
	refs := make([]target.FieldRef, 0, len(targets))
	for _, t := range targets {
		refs = append(refs, target.FieldRef{Player: t.Player, FieldIndex: t.FieldIndex})
	}
	return m.resumeEffects(refs)
}

func (m *Machine) selectCards(player int, indices []int) Outcome {
	if m.frame == nil {
		return m.outcome()
	}
	refs := make([]target.FieldRef, 0, len(indices))
	for _, idx := range indices {
		refs = append(refs, target.FieldRef{Player: player, FieldIndex: idx})
	}
	return m.resumeEffects(refs)
}

// selectEnergy resumes a suspended pipeline waiting on an energy selection.
// No handler currently declares a target needing this selection kind
// (search/hand-discard resolve deterministically, spec.md §9 open
// question); it is wired here for completeness against spec.md §6's input
// list and forwards an empty resolution.
func (m *Machine) selectEnergy(player int, energies []EnergySelection) Outcome {
	if m.frame == nil {
		return m.outcome()
	}
	return m.resumeEffects(nil)
}

func (m *Machine) selectChoice(player, option int) Outcome {
	if m.frame == nil {
		return m.outcome()
	}
	refs := []target.FieldRef{{Player: player, FieldIndex: option}}
	return m.resumeEffects(refs)
}

func (m *Machine) playStadium(player int, ref state.CardRef, tmpl catalog.Template) Outcome {
	p := m.State.Player(player)
	stadium := m.State.Stadium
	if stadium != nil {
		if old, ok := m.Catalog.Lookup(stadium.TemplateID); ok && old.Name == tmpl.Name {
			return m.outcome()
		}
	}
	if m.stadiumPlayedTurn[player] == m.State.TurnNumber {
		return m.outcome()
	}

	p.RemoveFromHand(ref.InstanceID)
	if stadium != nil {
		m.Registry.ExpireInstance(stadium.InstanceID)
		oldOwner := m.stadiumOwner
		m.State.Player(oldOwner).SendToDiscard(state.CardRef{InstanceID: stadium.InstanceID, TemplateID: stadium.TemplateID})
		m.Logger.Log(elog.NewStadiumReplacedEvent(m.State.TurnNumber, player, stadium.TemplateID, tmpl.ID))
	} else {
		m.Logger.Log(elog.NewStadiumPlayedEvent(m.State.TurnNumber, player, tmpl.Name))
	}

	m.State.Stadium = &state.StadiumSlot{InstanceID: ref.InstanceID, TemplateID: tmpl.ID, PlayedTurn: m.State.TurnNumber}
	m.stadiumOwner = player
	m.stadiumPlayedTurn[player] = m.State.TurnNumber
	if tmpl.Trainer != nil {
		// Stadium passives last exactly as long as this stadium stays in play.
		effects := make([]effect.Effect, len(tmpl.Trainer.Effects))
		for i, e := range tmpl.Trainer.Effects {
			e.Duration = effect.Duration{Kind: effect.DurationWhileInPlay, WhileInPlayID: ref.InstanceID}
			effects[i] = e
		}
		return m.runEffects(effects, player)
	}
	return m.outcome()
}
