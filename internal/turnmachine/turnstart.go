package turnmachine

import (
	"github.com/duelforge/battleengine/internal/elog"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/state"
)

const (
	poisonDamage = 10
	burnDamage   = 20
)

// BeginTurn runs the turn-start sequence (spec.md §4.7): advance the turn
// number and player, expire time-bounded passives, reset per-turn flags,
// generate the turn's energy, apply between-turn status damage and status
// expiry, then draw one card.
func (m *Machine) BeginTurn() {
	if m.State.TurnNumber == 0 {
		m.State.TurnPlayer = 0
	} else {
		m.State.TurnPlayer = state.Opponent(m.State.TurnPlayer)
	}
	m.State.TurnNumber++
	m.Phase = PhaseTurnStart
	m.Logger.Log(elog.NewTurnStartedEvent(m.State.TurnNumber, m.State.TurnPlayer))

	if m.Config.MaxTurns > 0 && m.State.TurnNumber > m.Config.MaxTurns {
		m.declareByPoints()
		m.Phase = PhaseCompleted
		return
	}

	m.Registry.ExpireEndOfTurn(m.State.TurnNumber)

	player := m.State.Player(m.State.TurnPlayer)
	player.Turn.Reset()

	m.turnEnergy = nil
	firstTurnFirstPlayer := m.State.TurnNumber == 1 && m.State.TurnPlayer == 0
	if !firstTurnFirstPlayer && len(player.AvailableEnergyTypes) > 0 {
		t := m.RNG.PickEnergyType(player.AvailableEnergyTypes)
		m.turnEnergy = &t
	}

	m.applyBetweenTurnStatus(player)
	m.afterEffects()
	if m.State.Over {
		m.Phase = PhaseCompleted
		return
	}
	if m.promotionNeeded >= 0 {
		return
	}

	if _, drew := player.DrawCard(m.Config.MaxHandSize); drew {
		card := player.Hand[len(player.Hand)-1]
		m.Logger.Log(elog.NewDrawEvent(m.State.TurnNumber, m.State.TurnPlayer, card.TemplateID))
	}

	m.Phase = PhaseActionLoop
}

// EndTurn closes out the acting player's turn: paralysis clears (it lasts
// exactly the one turn it suppressed, spec.md §4.7), then play advances to
// the opponent via BeginTurn.
func (m *Machine) EndTurn(player int) Outcome {
	p := m.State.Player(player)
	p.RecoverStatus(schema.StatusParalysis)
	p.Turn.ShouldEndTurn = false
	m.Logger.Log(elog.NewTurnEndedEvent(m.State.TurnNumber, player))
	m.Phase = PhaseBetweenTurns

	if m.State.Over {
		m.Phase = PhaseCompleted
		return m.outcome()
	}
	m.BeginTurn()
	return m.outcome()
}

// declareByPoints ends the game once the turn cap (spec.md:187's max_turns)
// is reached, deciding the winner by points scored so far. A tie goes to the
// turn player reaching the cap, since the engine has no drawn-game state
// (state.GameState.Winner's "-1" slot is reserved for "not yet decided").
func (m *Machine) declareByPoints() {
	winner := m.State.TurnPlayer
	opponent := state.Opponent(winner)
	if m.State.Player(opponent).Points > m.State.Player(winner).Points {
		winner = opponent
	}
	m.State.Declare(winner, "max_turns")
	m.Logger.Log(elog.NewWinEvent(m.State.TurnNumber, winner, "max_turns"))
}

// applyBetweenTurnStatus charges poison/burn damage against the incoming
// turn player's active creature and resolves sleep's wake-up flip
// (spec.md §4.7). Confusion's attack-time flip lives in attack(), since it
// only matters at the moment the afflicted creature tries to act.
func (m *Machine) applyBetweenTurnStatus(player *state.Player) {
	active := player.Active
	if active == nil {
		return
	}
	if player.HasStatus(schema.StatusPoison) {
		active.DamageTaken += poisonDamage
		m.Logger.Log(elog.NewDamageEvent(m.State.TurnNumber, m.State.TurnPlayer, active.CurrentForm(), poisonDamage))
	}
	if player.HasStatus(schema.StatusBurn) {
		active.DamageTaken += burnDamage
		m.Logger.Log(elog.NewDamageEvent(m.State.TurnNumber, m.State.TurnPlayer, active.CurrentForm(), burnDamage))
	}
	if player.HasStatus(schema.StatusSleep) && m.flip(m.State.TurnPlayer) {
		player.RecoverStatus(schema.StatusSleep)
		m.Logger.Log(elog.NewStatusRecoveredEvent(m.State.TurnNumber, m.State.TurnPlayer, active.CurrentForm()))
	}
}
