// Package elog defines the engine's status-message stream: the informational
// events the rules engine emits as it resolves actions (spec.md §6 Outputs).
// The engine never performs I/O; a GameEvent is a plain value a caller's
// driver loop can log, display, or discard.
package elog

// EventType enumerates all observable status messages the engine emits.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventDraw
	EventPlayCard
	EventEvolution
	EventAttachEnergy
	EventAttack
	EventHeal
	EventDamage
	EventStatusApplied
	EventStatusRecovered
	EventKnockout
	EventPromotion
	EventRetreat
	EventSwitch
	EventSearch
	EventShuffle
	EventDiscard
	EventStadiumPlayed
	EventStadiumReplaced
	EventPassiveRegistered
	EventPassiveExpired
	EventChoiceRequested
	EventTargetRequested
	EventForfeit
	EventTurnStarted
	EventTurnEnded
	EventPointsAwarded
	EventWin
	EventSetupComplete
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventDraw:
		return "Draw"
	case EventPlayCard:
		return "PlayCard"
	case EventEvolution:
		return "Evolution"
	case EventAttachEnergy:
		return "AttachEnergy"
	case EventAttack:
		return "Attack"
	case EventHeal:
		return "Heal"
	case EventDamage:
		return "Damage"
	case EventStatusApplied:
		return "StatusApplied"
	case EventStatusRecovered:
		return "StatusRecovered"
	case EventKnockout:
		return "Knockout"
	case EventPromotion:
		return "Promotion"
	case EventRetreat:
		return "Retreat"
	case EventSwitch:
		return "Switch"
	case EventSearch:
		return "Search"
	case EventShuffle:
		return "Shuffle"
	case EventDiscard:
		return "Discard"
	case EventStadiumPlayed:
		return "StadiumPlayed"
	case EventStadiumReplaced:
		return "StadiumReplaced"
	case EventPassiveRegistered:
		return "PassiveRegistered"
	case EventPassiveExpired:
		return "PassiveExpired"
	case EventChoiceRequested:
		return "ChoiceRequested"
	case EventTargetRequested:
		return "TargetRequested"
	case EventForfeit:
		return "Forfeit"
	case EventTurnStarted:
		return "TurnStarted"
	case EventTurnEnded:
		return "TurnEnded"
	case EventPointsAwarded:
		return "PointsAwarded"
	case EventWin:
		return "Win"
	case EventSetupComplete:
		return "SetupComplete"
	default:
		return "Unknown"
	}
}

// GameEvent is a single status message, carrying enough structured data for
// a caller to build its own display without the engine formatting text for
// them (card names, amounts, player indices are all exposed as fields; Details
// is a convenience human-readable rendering, not the payload of record).
type GameEvent struct {
	Seq     int
	Turn    int
	Player  int
	Type    EventType
	Card    string
	Amount  int
	Details string
}

func NewPhaseChangeEvent(turn int, details string) GameEvent {
	return GameEvent{Turn: turn, Type: EventPhaseChange, Details: details}
}

func NewDrawEvent(turn, player int, cardName string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventDraw, Card: cardName,
		Details: "draws a card"}
}

func NewPlayCardEvent(turn, player int, cardName string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventPlayCard, Card: cardName,
		Details: "plays " + cardName}
}

func NewEvolutionEvent(turn, player int, from, to string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventEvolution, Card: to,
		Details: from + " evolves into " + to}
}

func NewAttachEnergyEvent(turn, player int, energyType, target string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventAttachEnergy, Card: target,
		Details: "attaches " + energyType + " energy to " + target}
}

func NewAttackEvent(turn, player int, attacker, defender string, damage int) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventAttack, Card: attacker, Amount: damage,
		Details: attacker + " attacks " + defender}
}

func NewHealEvent(turn, player int, target string, amount int) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventHeal, Card: target, Amount: amount,
		Details: target + " heals"}
}

func NewDamageEvent(turn, player int, target string, amount int) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventDamage, Card: target, Amount: amount,
		Details: target + " takes damage"}
}

func NewStatusAppliedEvent(turn, player int, target, condition string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventStatusApplied, Card: target,
		Details: target + " is now " + condition}
}

func NewStatusRecoveredEvent(turn, player int, target string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventStatusRecovered, Card: target,
		Details: target + " recovers from status conditions"}
}

func NewKnockoutEvent(turn, player int, cardName string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventKnockout, Card: cardName,
		Details: cardName + " is knocked out"}
}

func NewPromotionEvent(turn, player int, cardName string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventPromotion, Card: cardName,
		Details: cardName + " is promoted to active"}
}

func NewRetreatEvent(turn, player int, from, to string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventRetreat, Card: to,
		Details: from + " retreats for " + to}
}

func NewSwitchEvent(turn, player int, a, b string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventSwitch, Card: a,
		Details: a + " switches with " + b}
}

func NewSearchEvent(turn, player int, count int) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventSearch, Amount: count,
		Details: "searches the deck"}
}

func NewShuffleEvent(turn, player int) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventShuffle, Details: "shuffles their deck"}
}

func NewDiscardEvent(turn, player int, cardName string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventDiscard, Card: cardName,
		Details: "discards " + cardName}
}

func NewStadiumPlayedEvent(turn, player int, cardName string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventStadiumPlayed, Card: cardName,
		Details: "plays stadium " + cardName}
}

func NewStadiumReplacedEvent(turn, player int, old, new string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventStadiumReplaced, Card: new,
		Details: new + " replaces " + old}
}

func NewPassiveRegisteredEvent(turn, player int, name string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventPassiveRegistered, Card: name,
		Details: "registers passive " + name}
}

func NewPassiveExpiredEvent(turn, player int, name string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventPassiveExpired, Card: name,
		Details: "passive " + name + " expires"}
}

func NewChoiceRequestedEvent(turn, player int, prompt string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventChoiceRequested, Details: prompt}
}

func NewTargetRequestedEvent(turn, player int, prompt string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventTargetRequested, Details: prompt}
}

func NewForfeitEvent(turn, player int, reason string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventForfeit, Details: "forfeits turn: " + reason}
}

func NewTurnStartedEvent(turn, player int) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventTurnStarted, Details: "turn begins"}
}

func NewTurnEndedEvent(turn, player int) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventTurnEnded, Details: "turn ends"}
}

func NewPointsAwardedEvent(turn, player, points int) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventPointsAwarded, Amount: points,
		Details: "awarded points"}
}

func NewWinEvent(turn, player int, reason string) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventWin, Details: "wins: " + reason}
}

func NewSetupCompleteEvent(turn, player int) GameEvent {
	return GameEvent{Turn: turn, Player: player, Type: EventSetupComplete, Details: "setup complete"}
}
