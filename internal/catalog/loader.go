package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/duelforge/battleengine/internal/criteria"
	"github.com/duelforge/battleengine/internal/effect"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/target"
	"github.com/duelforge/battleengine/internal/value"
)

// file is the top-level YAML shape a card catalog file parses into,
// grounded on the teacher's DeckFile/ParseDeckFile pattern (deck.go).
type file struct {
	Creatures  []creatureYAML `yaml:"creatures"`
	Supporters []trainerYAML  `yaml:"supporters"`
	Items      []trainerYAML  `yaml:"items"`
	Tools      []trainerYAML  `yaml:"tools"`
	Stadiums   []trainerYAML  `yaml:"stadiums"`
}

type creatureYAML struct {
	ID                string        `yaml:"id"`
	Name              string        `yaml:"name"`
	MaxHP             int           `yaml:"max_hp"`
	ElementType       string        `yaml:"element_type"`
	WeaknessType      string        `yaml:"weakness_type,omitempty"`
	RetreatCost       int           `yaml:"retreat_cost"`
	PreviousStageName string        `yaml:"previous_stage,omitempty"`
	Attributes        []string      `yaml:"attributes,omitempty"`
	Attacks           []attackYAML  `yaml:"attacks"`
	Ability           *abilityYAML  `yaml:"ability,omitempty"`
}

type attackYAML struct {
	Name         string         `yaml:"name"`
	Damage       int            `yaml:"damage"`
	Requirements []energyReqYAML `yaml:"cost"`
	Effects      []effectYAML   `yaml:"effects,omitempty"`
}

type energyReqYAML struct {
	Type   string `yaml:"type"`
	Amount int    `yaml:"amount"`
}

type abilityYAML struct {
	Name    string       `yaml:"name"`
	Effects []effectYAML `yaml:"effects"`
}

type trainerYAML struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Trigger string       `yaml:"trigger,omitempty"`
	Effects []effectYAML `yaml:"effects"`
}

type effectYAML struct {
	Kind        string         `yaml:"kind"`
	Amount      int            `yaml:"amount,omitempty"`
	Heal        bool           `yaml:"heal,omitempty"`
	Target      *targetYAML    `yaml:"target,omitempty"`
	Source      *targetYAML    `yaml:"source,omitempty"`
	Status      string         `yaml:"status,omitempty"`
	EnergyType  string         `yaml:"energy_type,omitempty"`
	BasicOnly   bool           `yaml:"basic_only,omitempty"`
	SearchStage *int           `yaml:"search_stage,omitempty"`
	Duration    *durationYAML  `yaml:"duration,omitempty"`
	Filter      *filterYAML    `yaml:"filter,omitempty"`
	Options     []effectYAML   `yaml:"options,omitempty"`
}

type targetYAML struct {
	Kind     string `yaml:"kind"`
	Player   string `yaml:"player,omitempty"`
	Position string `yaml:"position,omitempty"`
	Count    int    `yaml:"count,omitempty"`
}

type durationYAML struct {
	Kind string `yaml:"kind"`
}

type filterYAML struct {
	HasAttribute string `yaml:"has_attribute,omitempty"`
}

// LoadFile parses a YAML card catalog file and returns a populated Catalog,
// mirroring the teacher's ParseDeckFile (deck.go).
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	c := New()
	for _, cr := range f.Creatures {
		c.Add(buildCreatureTemplate(cr))
	}
	for _, s := range f.Supporters {
		c.Add(buildTrainerTemplate(s, schema.KindSupporter))
	}
	for _, it := range f.Items {
		c.Add(buildTrainerTemplate(it, schema.KindItem))
	}
	for _, t := range f.Tools {
		c.Add(buildTrainerTemplate(t, schema.KindTool))
	}
	for _, st := range f.Stadiums {
		c.Add(buildTrainerTemplate(st, schema.KindStadium))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func buildCreatureTemplate(y creatureYAML) Template {
	cr := &Creature{
		MaxHP:             y.MaxHP,
		ElementType:       parseEnergyType(y.ElementType),
		RetreatCost:       y.RetreatCost,
		PreviousStageName: y.PreviousStageName,
		Attributes:        parseAttributes(y.Attributes),
	}
	if y.WeaknessType != "" {
		w := parseEnergyType(y.WeaknessType)
		cr.WeaknessType = &w
	}
	for _, a := range y.Attacks {
		cr.Attacks = append(cr.Attacks, buildAttack(a))
	}
	if y.Ability != nil {
		var effects []effect.Effect
		for _, e := range y.Ability.Effects {
			effects = append(effects, buildEffect(e))
		}
		cr.Ability = &Ability{Name: y.Ability.Name, Effects: effects}
	}
	return Template{ID: y.ID, Kind: schema.KindCreature, Name: y.Name, Creature: cr}
}

func buildAttack(y attackYAML) Attack {
	var reqs []EnergyRequirement
	for _, r := range y.Requirements {
		reqs = append(reqs, EnergyRequirement{Type: parseEnergyType(r.Type), Amount: r.Amount})
	}
	var chained []effect.Effect
	for _, e := range y.Effects {
		chained = append(chained, buildEffect(e))
	}
	return Attack{
		Name:           y.Name,
		Damage:         value.Expression{Kind: value.ExprConstant, Constant: y.Damage},
		Requirements:   reqs,
		ChainedEffects: chained,
	}
}

func buildTrainerTemplate(y trainerYAML, kind schema.CardKind) Template {
	var effects []effect.Effect
	for _, e := range y.Effects {
		effects = append(effects, buildEffect(e))
	}
	return Template{ID: y.ID, Kind: kind, Name: y.Name, Trainer: &Trainer{Effects: effects, Trigger: y.Trigger}}
}

func buildEffect(y effectYAML) effect.Effect {
	e := effect.Effect{
		Kind:      parseKind(y.Kind),
		Amount:    value.Expression{Kind: value.ExprConstant, Constant: y.Amount},
		Heal:      y.Heal,
		BasicOnly: y.BasicOnly,
	}
	if y.Target != nil {
		d := buildTarget(*y.Target)
		e.Target = &d
	}
	if y.Source != nil {
		d := buildTarget(*y.Source)
		e.Source = &d
	}
	if y.Status != "" {
		e.StatusCondition = parseStatus(y.Status)
	}
	if y.EnergyType != "" {
		e.EnergyType = parseEnergyType(y.EnergyType)
	}
	if y.Duration != nil {
		e.Duration = effect.Duration{Kind: parseDurationKind(y.Duration.Kind)}
	}
	if y.Filter != nil && y.Filter.HasAttribute != "" {
		attrs := schema.AttributeSet(attributeBit(y.Filter.HasAttribute))
		e.PassiveFilter = &criteria.CardCriteria{Attributes: attrs}
	}
	if y.SearchStage != nil {
		e.SearchCriteria.Stage = y.SearchStage
	}
	for _, opt := range y.Options {
		e.Options = append(e.Options, buildEffect(opt))
	}
	return e
}

func buildTarget(y targetYAML) target.Descriptor {
	d := target.Descriptor{Kind: parseTargetKind(y.Kind), Count: y.Count}
	switch d.Kind {
	case target.KindFixed:
		d.FixedPlayer = parsePlayerRef(y.Player)
		d.FixedPosition = parsePosition(y.Position)
		d.FixedIndex = -1
	case target.KindSingleChoice, target.KindMultiChoice, target.KindAllMatching:
		d.Chooser = parsePlayerRef(y.Player)
		scope := parsePlayerRef(y.Player)
		d.PlayerScope = &scope
		if y.Position != "" {
			pos := parsePosition(y.Position)
			d.Criteria.Position = &pos
		}
	}
	return d
}

func parseKind(s string) effect.Kind {
	switch s {
	case "hp":
		return effect.KindHP
	case "status":
		return effect.KindStatus
	case "draw":
		return effect.KindDraw
	case "energy":
		return effect.KindEnergyAttach
	case "search":
		return effect.KindSearch
	case "shuffle":
		return effect.KindShuffle
	case "hand-discard":
		return effect.KindHandDiscard
	case "switch":
		return effect.KindSwitch
	case "energy-transfer":
		return effect.KindEnergyTransfer
	case "evolution-acceleration":
		return effect.KindEvolutionAcceleration
	case "status-recovery":
		return effect.KindStatusRecovery
	case "end-turn":
		return effect.KindEndTurn
	case "swap-cards":
		return effect.KindSwapCards
	case "move-cards":
		return effect.KindMoveCards
	case "pull-evolution":
		return effect.KindPullEvolution
	case "choice":
		return effect.KindChoice
	case "prevent-damage":
		return effect.KindPreventDamage
	case "damage-reduction":
		return effect.KindDamageReduction
	case "damage-boost":
		return effect.KindDamageBoost
	case "retreat-prevention":
		return effect.KindRetreatPrevention
	case "retreat-cost-reduction":
		return effect.KindRetreatCostReduction
	case "evolution-flexibility":
		return effect.KindEvolutionFlexibility
	case "coin-flip-manipulation":
		return effect.KindCoinFlipManipulation
	case "hp-bonus":
		return effect.KindHPBonus
	default:
		return effect.KindHP
	}
}

func parseTargetKind(s string) target.Kind {
	switch s {
	case "single-choice":
		return target.KindSingleChoice
	case "multi-choice":
		return target.KindMultiChoice
	case "all-matching":
		return target.KindAllMatching
	default:
		return target.KindFixed
	}
}

func parsePlayerRef(s string) schema.PlayerRef {
	if s == "opponent" {
		return schema.RefOpponent
	}
	return schema.RefSelf
}

func parsePosition(s string) schema.Position {
	if s == "bench" {
		return schema.PositionBench
	}
	return schema.PositionActive
}

func parseStatus(s string) schema.StatusCondition {
	switch s {
	case "poison":
		return schema.StatusPoison
	case "burn":
		return schema.StatusBurn
	case "paralysis":
		return schema.StatusParalysis
	case "sleep":
		return schema.StatusSleep
	case "confusion":
		return schema.StatusConfusion
	default:
		return schema.StatusPoison
	}
}

func parseDurationKind(s string) effect.DurationKind {
	switch s {
	case "until-end-of-next-turn":
		return effect.DurationUntilEndOfNextTurn
	case "while-in-play":
		return effect.DurationWhileInPlay
	case "while-attached":
		return effect.DurationWhileAttached
	default:
		return effect.DurationUntilEndOfTurn
	}
}

func parseEnergyType(s string) schema.EnergyType {
	switch s {
	case "grass":
		return schema.EnergyGrass
	case "fire":
		return schema.EnergyFire
	case "water":
		return schema.EnergyWater
	case "lightning":
		return schema.EnergyLightning
	case "psychic":
		return schema.EnergyPsychic
	case "fighting":
		return schema.EnergyFighting
	case "darkness":
		return schema.EnergyDarkness
	case "metal":
		return schema.EnergyMetal
	default:
		return schema.EnergyColorless
	}
}

func parseAttributes(list []string) schema.AttributeSet {
	var s int
	for _, a := range list {
		s |= attributeBit(a)
	}
	return schema.AttributeSet(s)
}

func attributeBit(s string) int {
	switch s {
	case "ex":
		return int(schema.AttributeEX)
	case "mega":
		return int(schema.AttributeMega)
	case "ultraBeast":
		return int(schema.AttributeUltraBeast)
	default:
		return 0
	}
}
