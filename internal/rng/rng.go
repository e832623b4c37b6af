// Package rng defines the engine's sole source of randomness as an injected
// collaborator (spec.md §9: "RNG and player responses are external
// collaborators... this keeps the engine deterministic for a given trace").
// Nothing in the rest of the engine calls math/rand directly.
package rng

import (
	"math/rand"

	"github.com/duelforge/battleengine/internal/schema"
)

// Source supplies the randomness the engine needs: coin flips and the
// per-turn energy type draw. Tests inject a scripted Source instead.
type Source interface {
	// CoinFlip reports heads (true) or tails (false).
	CoinFlip() bool

	// PickEnergyType draws one energy type from the given set, used for the
	// turn's generated energy (spec.md §4.7).
	PickEnergyType(available []schema.EnergyType) schema.EnergyType

	// ShuffleCards shuffles n items in place using the given swap function,
	// mirroring the teacher's rand.Shuffle-based deck shuffle.
	ShuffleCards(n int, swap func(i, j int))
}

// Default wraps math/rand.Rand behind the Source interface — the
// teacher's own deck-shuffle idiom (rand.Shuffle), promoted to an
// injectable seam instead of a direct package-level call so the engine
// stays deterministic for a caller who supplies a seeded Source.
type Default struct {
	r *rand.Rand
}

// NewDefault builds a Source seeded deterministically; seed 0 uses
// rand.NewSource(0), which is itself deterministic — callers wanting real
// entropy should seed with a time-derived value themselves.
func NewDefault(seed int64) *Default {
	return &Default{r: rand.New(rand.NewSource(seed))}
}

func (d *Default) CoinFlip() bool {
	return d.r.Intn(2) == 0
}

func (d *Default) PickEnergyType(available []schema.EnergyType) schema.EnergyType {
	if len(available) == 0 {
		return schema.EnergyColorless
	}
	return available[d.r.Intn(len(available))]
}

func (d *Default) ShuffleCards(n int, swap func(i, j int)) {
	d.r.Shuffle(n, swap)
}

// Scripted replays a fixed sequence of coin-flip outcomes and energy-type
// picks, falling back to a deterministic Default once exhausted. Grounded
// on the teacher's ScriptedController test-double pattern
// (testutil_test.go), applied here to the RNG seam instead of player
// input.
type Scripted struct {
	Flips       []bool
	EnergyPicks []schema.EnergyType
	flipPos     int
	energyPos   int
	fallback    *Default
}

func NewScripted(flips []bool, energyPicks []schema.EnergyType) *Scripted {
	return &Scripted{Flips: flips, EnergyPicks: energyPicks, fallback: NewDefault(0)}
}

func (s *Scripted) CoinFlip() bool {
	if s.flipPos < len(s.Flips) {
		v := s.Flips[s.flipPos]
		s.flipPos++
		return v
	}
	return s.fallback.CoinFlip()
}

func (s *Scripted) PickEnergyType(available []schema.EnergyType) schema.EnergyType {
	if s.energyPos < len(s.EnergyPicks) {
		v := s.EnergyPicks[s.energyPos]
		s.energyPos++
		return v
	}
	return s.fallback.PickEnergyType(available)
}

func (s *Scripted) ShuffleCards(n int, swap func(i, j int)) {
	// Never shuffles, so deck order stays exactly as dealt; use Default
	// for a real shuffle.
	_ = n
	_ = swap
}
