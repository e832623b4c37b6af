package state

import "github.com/duelforge/battleengine/internal/schema"

const (
	BenchCapacity  = 3
	MaxHandDefault = 10
)

// EnergyAttachments maps a field instance to the counts of each energy type
// attached to it (spec.md §3).
type EnergyAttachments map[InstanceID]map[schema.EnergyType]int

// ToolAttachments maps a field instance to the single tool card attached to
// it, if any.
type ToolAttachments map[InstanceID]CardRef

// Player holds one player's entire state.
type Player struct {
	Hand    []CardRef
	Deck    []CardRef
	Discard []CardRef

	Active *FieldCard
	Bench  [BenchCapacity]*FieldCard

	Energy EnergyAttachments
	Tools  ToolAttachments

	// Status conditions currently affecting this player's active creature
	// (spec.md §3: status is tracked per-player, cleared on knockout,
	// retreat, or promotion of the active).
	Status []schema.StatusCondition

	Points int

	// AvailableEnergyTypes is the pool the turn-start energy draw is picked
	// from (spec.md §6 configuration: player_energy_types).
	AvailableEnergyTypes []schema.EnergyType

	Turn TurnFlags
}

// NewPlayer builds an empty player state for the given energy pool.
func NewPlayer(energyTypes []schema.EnergyType) *Player {
	return &Player{
		Energy:               make(EnergyAttachments),
		Tools:                make(ToolAttachments),
		AvailableEnergyTypes: energyTypes,
	}
}

// DrawCard moves the top card of the deck to hand, subject to a hand-size
// cap (spec.md §4.3: draws are never an error; an empty deck or a full
// hand simply draws nothing). Returns the drawn ref and true, or a zero
// ref and false.
func (p *Player) DrawCard(maxHand int) (CardRef, bool) {
	if len(p.Deck) == 0 || len(p.Hand) >= maxHand {
		return CardRef{}, false
	}
	card := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	p.Hand = append(p.Hand, card)
	return card, true
}

// RemoveFromHand removes a card from hand by instance id.
func (p *Player) RemoveFromHand(id InstanceID) (CardRef, bool) {
	for i, c := range p.Hand {
		if c.InstanceID == id {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c, true
		}
	}
	return CardRef{}, false
}

// SendToDiscard appends a card ref to the discard pile.
func (p *Player) SendToDiscard(ref CardRef) {
	p.Discard = append(p.Discard, ref)
}

// FreeBenchIndex returns the first empty bench index, or -1.
func (p *Player) FreeBenchIndex() int {
	for i, b := range p.Bench {
		if b == nil {
			return i
		}
	}
	return -1
}

// BenchCount returns the number of occupied bench slots.
func (p *Player) BenchCount() int {
	n := 0
	for _, b := range p.Bench {
		if b != nil {
			n++
		}
	}
	return n
}

// FieldCards returns active (if any) followed by bench cards in index order
// — the deterministic candidate ordering spec.md §4.2 requires.
func (p *Player) FieldCards() []*FieldCard {
	var out []*FieldCard
	if p.Active != nil {
		out = append(out, p.Active)
	}
	for _, b := range p.Bench {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// FieldCardAt returns the field card at a given position (0 = active,
// 1..3 = bench), or nil.
func (p *Player) FieldCardAt(index int) *FieldCard {
	if index == 0 {
		return p.Active
	}
	if index >= 1 && index <= BenchCapacity {
		return p.Bench[index-1]
	}
	return nil
}

// FieldIndexOf returns the position (0 = active, 1..3 = bench) of the field
// card with the given field instance id, or -1 if not present.
func (p *Player) FieldIndexOf(id InstanceID) int {
	if p.Active != nil && p.Active.FieldInstanceID() == id {
		return 0
	}
	for i, b := range p.Bench {
		if b != nil && b.FieldInstanceID() == id {
			return i + 1
		}
	}
	return -1
}

// RemoveFieldCard clears whichever slot holds the given field instance id,
// along with its energy/tool attachments and status (spec.md §4.6 knockout
// cleanup).
func (p *Player) RemoveFieldCard(id InstanceID) *FieldCard {
	if p.Active != nil && p.Active.FieldInstanceID() == id {
		fc := p.Active
		p.Active = nil
		delete(p.Energy, id)
		delete(p.Tools, id)
		p.Status = nil
		return fc
	}
	for i, b := range p.Bench {
		if b != nil && b.FieldInstanceID() == id {
			fc := b
			p.Bench[i] = nil
			delete(p.Energy, id)
			delete(p.Tools, id)
			return fc
		}
	}
	return nil
}

// PromoteBenchToActive moves a bench card into the active slot.
func (p *Player) PromoteBenchToActive(benchIndex int) bool {
	if benchIndex < 0 || benchIndex >= BenchCapacity || p.Bench[benchIndex] == nil {
		return false
	}
	p.Active = p.Bench[benchIndex]
	p.Bench[benchIndex] = nil
	return true
}

// SwapActiveWithBench exchanges the active card with a bench card.
func (p *Player) SwapActiveWithBench(benchIndex int) bool {
	if benchIndex < 0 || benchIndex >= BenchCapacity || p.Bench[benchIndex] == nil {
		return false
	}
	p.Active, p.Bench[benchIndex] = p.Bench[benchIndex], p.Active
	return true
}

// --- Energy attachments ---

// AttachEnergy credits amount of energyType to a field instance.
func (p *Player) AttachEnergy(id InstanceID, energyType schema.EnergyType, amount int) {
	if amount <= 0 {
		return
	}
	m, ok := p.Energy[id]
	if !ok {
		m = make(map[schema.EnergyType]int)
		p.Energy[id] = m
	}
	m[energyType] += amount
}

// DiscardEnergy removes up to amount of energyType from a field instance,
// returning how much was actually removed.
func (p *Player) DiscardEnergy(id InstanceID, energyType schema.EnergyType, amount int) int {
	m, ok := p.Energy[id]
	if !ok {
		return 0
	}
	have := m[energyType]
	take := amount
	if take > have {
		take = have
	}
	m[energyType] -= take
	if m[energyType] <= 0 {
		delete(m, energyType)
	}
	if len(m) == 0 {
		delete(p.Energy, id)
	}
	return take
}

// EnergyCount returns the attached count of a specific type.
func (p *Player) EnergyCount(id InstanceID, energyType schema.EnergyType) int {
	m, ok := p.Energy[id]
	if !ok {
		return 0
	}
	return m[energyType]
}

// TotalEnergy returns the total energy of all types on a field instance.
func (p *Player) TotalEnergy(id InstanceID) int {
	total := 0
	for _, n := range p.Energy[id] {
		total += n
	}
	return total
}

// --- Tool attachments ---

// AttachTool attaches a tool to a field instance, replacing any existing one
// (callers are expected to have already validated "at most one tool").
func (p *Player) AttachTool(id InstanceID, tool CardRef) {
	p.Tools[id] = tool
}

// DetachTool removes and returns the tool attached to a field instance.
func (p *Player) DetachTool(id InstanceID) (CardRef, bool) {
	t, ok := p.Tools[id]
	if ok {
		delete(p.Tools, id)
	}
	return t, ok
}

func (p *Player) HasTool(id InstanceID) bool {
	_, ok := p.Tools[id]
	return ok
}

// --- Status conditions ---

// ApplyStatus inserts a condition, replacing any existing exclusive
// condition (paralysis/sleep/confusion); poison and burn stack with
// anything but never duplicate themselves (spec.md §4.3).
func (p *Player) ApplyStatus(cond schema.StatusCondition) {
	if cond.Exclusive() {
		var kept []schema.StatusCondition
		for _, c := range p.Status {
			if !c.Exclusive() {
				kept = append(kept, c)
			}
		}
		p.Status = append(kept, cond)
		return
	}
	for _, c := range p.Status {
		if c == cond {
			return
		}
	}
	p.Status = append(p.Status, cond)
}

func (p *Player) HasStatus(cond schema.StatusCondition) bool {
	for _, c := range p.Status {
		if c == cond {
			return true
		}
	}
	return false
}

// RecoverStatus removes the given conditions, or all of them if conditions
// is empty.
func (p *Player) RecoverStatus(conditions ...schema.StatusCondition) {
	if len(conditions) == 0 {
		p.Status = nil
		return
	}
	var kept []schema.StatusCondition
	for _, c := range p.Status {
		remove := false
		for _, rc := range conditions {
			if c == rc {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, c)
		}
	}
	p.Status = kept
}

// TurnFlags are the per-turn tracking fields spec.md §3 names on TurnState.
type TurnFlags struct {
	SupporterPlayedThisTurn bool
	RetreatedThisTurn       bool
	EvolvedInstancesThisTurn []InstanceID
	UsedAbilitiesThisTurn    []InstanceID
	ShouldEndTurn            bool
}

// Reset clears all per-turn flags at the start of a new turn for this
// player.
func (t *TurnFlags) Reset() {
	*t = TurnFlags{}
}

// EvolvedThisTurn reports whether the given field instance already evolved
// this turn.
func (t *TurnFlags) EvolvedThisTurn(id InstanceID) bool {
	for _, e := range t.EvolvedInstancesThisTurn {
		if e == id {
			return true
		}
	}
	return false
}

func (t *TurnFlags) MarkEvolved(id InstanceID) {
	t.EvolvedInstancesThisTurn = append(t.EvolvedInstancesThisTurn, id)
}

func (t *TurnFlags) UsedAbility(id InstanceID) bool {
	for _, e := range t.UsedAbilitiesThisTurn {
		if e == id {
			return true
		}
	}
	return false
}

func (t *TurnFlags) MarkAbilityUsed(id InstanceID) {
	t.UsedAbilitiesThisTurn = append(t.UsedAbilitiesThisTurn, id)
}
