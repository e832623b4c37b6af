package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duelforge/battleengine/internal/effect"
	"github.com/duelforge/battleengine/internal/schema"
	"github.com/duelforge/battleengine/internal/target"
)

const testCatalogYAML = `
creatures:
  - id: ember-pup
    name: Ember Pup
    max_hp: 60
    element_type: fire
    retreat_cost: 1
    attacks:
      - name: Ember
        damage: 20
        cost:
          - type: fire
            amount: 1
  - id: ember-fox
    name: Ember Fox
    max_hp: 90
    element_type: fire
    weakness_type: water
    retreat_cost: 2
    previous_stage: ember-pup
    attributes: [ex]
    attacks:
      - name: Blaze Kick
        damage: 40
        cost:
          - type: fire
            amount: 2
        effects:
          - kind: status
            status: burn
            target:
              kind: fixed
              player: opponent
              position: active
supporters:
  - id: quick-study
    name: Quick Study
    effects:
      - kind: draw
        amount: 2
        target:
          kind: fixed
          player: self
stadiums:
  - id: windswept-plains
    name: Windswept Plains
    effects:
      - kind: damage-boost
        amount: 10
        target:
          kind: single-choice
          player: self
`

func writeTestCatalog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogYAML), 0o644))
	return path
}

func TestLoadFileParsesCreatureAndEvolutionLink(t *testing.T) {
	path := writeTestCatalog(t)
	cat, err := LoadFile(path)
	require.NoError(t, err)

	pup, ok := cat.Lookup("ember-pup")
	require.True(t, ok, "expected ember-pup to be in the catalog")
	assert.Equal(t, schema.KindCreature, pup.Kind)
	assert.Equal(t, 60, pup.Creature.MaxHP)
	assert.Equal(t, schema.EnergyFire, pup.Creature.ElementType)
	require.Len(t, pup.Creature.Attacks, 1)
	assert.Equal(t, "Ember", pup.Creature.Attacks[0].Name)

	fox, ok := cat.Lookup("ember-fox")
	require.True(t, ok, "expected ember-fox to be in the catalog")
	assert.Equal(t, "ember-pup", fox.Creature.PreviousStageName)
	require.NotNil(t, fox.Creature.WeaknessType)
	assert.Equal(t, schema.ElementType(schema.EnergyWater), *fox.Creature.WeaknessType)
	assert.True(t, fox.Creature.Attributes.Has(schema.AttributeEX))
}

func TestLoadFileParsesChainedStatusEffect(t *testing.T) {
	path := writeTestCatalog(t)
	cat, err := LoadFile(path)
	require.NoError(t, err)

	fox, _ := cat.Lookup("ember-fox")
	require.Len(t, fox.Creature.Attacks, 1)
	chained := fox.Creature.Attacks[0].ChainedEffects
	require.Len(t, chained, 1)
	assert.Equal(t, effect.KindStatus, chained[0].Kind)
	assert.Equal(t, schema.StatusBurn, chained[0].StatusCondition)
	require.NotNil(t, chained[0].Target)
	assert.Equal(t, schema.RefOpponent, chained[0].Target.FixedPlayer)
}

func TestLoadFileParsesSupporterAndStadiumTargets(t *testing.T) {
	path := writeTestCatalog(t)
	cat, err := LoadFile(path)
	require.NoError(t, err)

	supporter, ok := cat.Lookup("quick-study")
	require.True(t, ok)
	assert.Equal(t, schema.KindSupporter, supporter.Kind)
	require.Len(t, supporter.Trainer.Effects, 1)
	assert.Equal(t, effect.KindDraw, supporter.Trainer.Effects[0].Kind)

	stadium, ok := cat.Lookup("windswept-plains")
	require.True(t, ok)
	assert.Equal(t, schema.KindStadium, stadium.Kind)
	require.Len(t, stadium.Trainer.Effects, 1)
	targetDesc := stadium.Trainer.Effects[0].Target
	require.NotNil(t, targetDesc)
	assert.Equal(t, target.KindSingleChoice, targetDesc.Kind)
}

func TestLoadFileRejectsDanglingPreviousStage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
creatures:
  - id: mystery-evolution
    name: Mystery Evolution
    max_hp: 90
    element_type: psychic
    retreat_cost: 1
    previous_stage: nonexistent
    attacks: []
`), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	var catErr *CatalogError
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "mystery-evolution", catErr.TemplateID)
}
