package turnmachine

import "github.com/duelforge/battleengine/internal/schema"

// MessageKind enumerates the response inputs a driver loop can send
// (spec.md §6 Inputs).
type MessageKind int

const (
	MsgAttack MessageKind = iota
	MsgPlayCard
	MsgEvolve
	MsgAttachEnergy
	MsgRetreat
	MsgEndTurn
	MsgSelectActiveCard
	MsgSetupComplete
	MsgSelectTarget
	MsgSelectMultiTarget
	MsgSelectCard
	MsgSelectEnergy
	MsgSelectChoice
	MsgUseAbility
)

// FieldTarget identifies one field position for a select-target response.
type FieldTarget struct {
	Player     int
	FieldIndex int
}

// EnergySelection identifies one attached energy unit for a select-energy
// response (e.g. discarding a specific attached energy for a retreat-like
// cost or an energy-transfer effect).
type EnergySelection struct {
	FieldInstanceID string
	Type            schema.EnergyType
}

// Message is a tagged sum over every response spec.md §6 names. Only the
// fields relevant to Kind are populated; the rest are zero.
type Message struct {
	Kind   MessageKind
	Player int

	AttackIndex int

	TemplateID string
	CardKind   schema.CardKind

	EvolutionTemplateID string
	FieldIndex          int

	EnergyType schema.EnergyType

	BenchIndex int

	ActiveTemplate string
	BenchTemplates []string

	Targets      []FieldTarget
	CardIndices  []int
	Energies     []EnergySelection
	ChoiceOption int
}
