package state

import "github.com/duelforge/battleengine/internal/schema"

// StadiumSlot is the single stadium card in play, if any (spec.md §7).
type StadiumSlot struct {
	InstanceID InstanceID
	TemplateID string
	// PlayedTurn records the turn number it was played.
	PlayedTurn int
}

// PendingSelection describes a suspended pipeline waiting on a player
// response (spec.md §5's pending_target_selection / pending_choice_selection
// suspension points). It carries only state-level data — candidate
// descriptions, not concrete effect values — so this package never needs to
// import the effect package; the effect package attaches its own in-flight
// frame alongside this through the top-level engine composition.
type PendingSelection struct {
	// Chooser is the player index who must respond.
	Chooser int
	// Kind distinguishes what is being selected: "target", "multi_target",
	// "choice", "card", or "energy" (spec.md §5).
	Kind string
	// Candidates are the instance ids (or opaque choice keys) available.
	Candidates []string
	// Count is how many selections are required ("up to N" encoded by the
	// caller via MinCount/Count).
	Count    int
	MinCount int
}

// GameState is the complete, serializable state of one match (spec.md §3's
// Game State module): both players, whose turn it is, the stadium, and the
// win/forfeit outcome once the game is over.
type GameState struct {
	Players [2]*Player

	TurnNumber int
	TurnPlayer int

	Stadium *StadiumSlot

	// Pending is non-nil while the engine is suspended awaiting a player
	// response to a target/choice/card/energy selection.
	Pending *PendingSelection

	Over       bool
	Winner     int // -1 if no winner (e.g. a draw is not modeled; a forfeit ends only the turn, not the game)
	WinReason  string

	PointsToWin int
	MaxHandSize int
}

// NewGameState builds the state container for a fresh match. Player field
// slices (hand/deck) are populated separately once decks are dealt and
// mulligans resolved (spec.md §6 setup phase).
func NewGameState(p1Energy, p2Energy []schema.EnergyType, pointsToWin, maxHandSize int) *GameState {
	return &GameState{
		Players:     [2]*Player{NewPlayer(p1Energy), NewPlayer(p2Energy)},
		Winner:      -1,
		PointsToWin: pointsToWin,
		MaxHandSize: maxHandSize,
	}
}

// Opponent returns the player index of the given player's opponent.
func Opponent(player int) int {
	return 1 - player
}

// Player returns the state for the given player index.
func (g *GameState) Player(index int) *Player {
	return g.Players[index]
}

// CurrentPlayer returns the player whose turn it is.
func (g *GameState) CurrentPlayer() *Player {
	return g.Players[g.TurnPlayer]
}

// PlayerOwning returns the index of the player whose field or hand/deck/
// discard contains the given instance id, or -1.
func (g *GameState) PlayerOwning(id InstanceID) int {
	for i, p := range g.Players {
		if p.FieldIndexOf(id) >= 0 {
			return i
		}
		for _, c := range p.Hand {
			if c.InstanceID == id {
				return i
			}
		}
		for _, c := range p.Deck {
			if c.InstanceID == id {
				return i
			}
		}
		for _, c := range p.Discard {
			if c.InstanceID == id {
				return i
			}
		}
	}
	return -1
}

// AwardPoints credits a player with points and checks the win condition by
// point total (spec.md §4.6: first to reach PointsToWin wins immediately).
func (g *GameState) AwardPoints(player, amount int) {
	g.Players[player].Points += amount
	if g.Players[player].Points >= g.PointsToWin {
		g.Declare(player, "points")
	}
}

// Declare ends the game in favor of the given player.
func (g *GameState) Declare(winner int, reason string) {
	if g.Over {
		return
	}
	g.Over = true
	g.Winner = winner
	g.WinReason = reason
}

// CheckNoActiveLoss ends the game if a player has no active and an empty
// bench to promote from (spec.md §4.6: a player who cannot field any
// creature loses).
func (g *GameState) CheckNoActiveLoss(player int) {
	if g.Over {
		return
	}
	p := g.Players[player]
	if p.Active == nil && p.BenchCount() == 0 {
		g.Declare(Opponent(player), "no_creatures")
	}
}

// BeginSelection suspends play on a pending selection.
func (g *GameState) BeginSelection(sel PendingSelection) {
	g.Pending = &sel
}

// ResolveSelection clears the suspension.
func (g *GameState) ResolveSelection() {
	g.Pending = nil
}

// IsSuspended reports whether the engine is waiting on a player response.
func (g *GameState) IsSuspended() bool {
	return g.Pending != nil
}
