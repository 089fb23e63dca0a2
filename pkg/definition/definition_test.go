package definition_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/automata/pkg/definition"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endsWithB = `
id: ends-with-b
name: Words ending in b
states:
  - name: q0
    initial: true
    x: 10
  - name: q1
    final: true
transitions:
  - {from: q0, to: q0, symbols: a}
  - {from: q0, to: q1, symbols: b}
  - {from: q1, to: q0, symbols: a}
  - {from: q1, to: q1, symbols: "b"}
`

func TestParse_YAML(t *testing.T) {
	def, err := definition.Parse([]byte(endsWithB), definition.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "ends-with-b", def.ID)
	assert.Equal(t, "Words ending in b", def.Title())
	require.Len(t, def.States, 2)
	assert.True(t, def.States[0].Initial)
	assert.Equal(t, 10.0, def.States[0].X)
	assert.Equal(t, domain.NewTransition("q0", "q1", "b"), def.Transitions[1])

	a := def.Automaton()
	assert.Len(t, a.Transitions, 4)
}

func TestParse_JSON(t *testing.T) {
	data := `{"id":"eps","states":[{"name":"q0","initial":true},{"name":"q1","final":true}],
		"transitions":[{"from":"q0","to":"q1","symbols":""}]}`

	def, err := definition.Parse([]byte(data), definition.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "eps", def.Title())
	assert.True(t, def.Transitions[0].IsEpsilon())
}

func TestParse_Invalid(t *testing.T) {
	t.Run("Syntax", func(t *testing.T) {
		_, err := definition.Parse([]byte("{"), definition.FormatJSON)
		assert.Error(t, err)
	})

	t.Run("Reports Every Failure", func(t *testing.T) {
		data := `
states:
  - name: q0
  - name: q0
  - name: ""
transitions:
  - {from: q0, to: ghost, symbols: a}
  - {from: nowhere, to: q0, symbols: b}
`
		_, err := definition.Parse([]byte(data), definition.FormatYAML)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidDefinition)

		errs := definition.ValidationErrors(err)
		require.Len(t, errs, 4)
		assert.Contains(t, errs[0].Error(), `"states[1].name"`)
		assert.Contains(t, errs[0].Error(), "duplicate of states[0]")
		assert.Contains(t, errs[1].Error(), "required")
		assert.Contains(t, errs[2].Error(), "ghost")
		assert.Contains(t, errs[3].Error(), "transitions[1].from")
		assert.Contains(t, err.Error(), "4 validation errors")
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "even.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("states:\n  - name: q0\n    initial: true\n    final: true\n"), 0644))

	def, err := definition.Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "even", def.ID, "ID defaults to the file name")

	jsonPath := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"states":[{"name":"q0"}],"transitions":[{"from":"q0","to":"q1"}]}`), 0644))

	_, err = definition.Load(jsonPath)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
	assert.Contains(t, err.Error(), "broken.json")

	_, err = definition.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode(t *testing.T) {
	input := map[string]any{
		"id": "decoded",
		"states": []any{
			map[string]any{"name": "q0", "initial": true, "x": 1.5},
			map[string]any{"name": "q1", "final": true},
		},
		"transitions": []any{
			map[string]any{"from": "q0", "to": "q1", "symbols": "a,b"},
		},
	}

	def, err := definition.Decode(input)
	require.NoError(t, err)
	assert.Equal(t, "decoded", def.ID)
	assert.Equal(t, 1.5, def.States[0].X)
	assert.Equal(t, []string{"a", "b"}, def.Transitions[0].Symbols())

	_, err = definition.Decode(map[string]any{"states": "not a list"})
	assert.Error(t, err)

	_, err = definition.Decode(map[string]any{
		"transitions": []any{map[string]any{"from": "a", "to": "b"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
}

func TestMarshal_RoundTripsThroughParse(t *testing.T) {
	a := domain.NewAutomaton(
		[]domain.State{{Name: "q0", Initial: true}, {Name: "q1", Final: true}},
		[]domain.Transition{domain.NewTransition("q0", "q1", "ε")},
	)
	def := definition.New("eps", a)

	for _, format := range []definition.Format{definition.FormatYAML, definition.FormatJSON} {
		data, err := definition.Marshal(def, format)
		require.NoError(t, err)

		back, err := definition.Parse(data, format)
		require.NoError(t, err, string(data))
		assert.Equal(t, a, back.Automaton(), format)
	}
}

func TestFormats(t *testing.T) {
	assert.Equal(t, definition.FormatJSON, definition.FormatFromPath("a/b.JSON"))
	assert.Equal(t, definition.FormatYAML, definition.FormatFromPath("a/b.yaml"))
	assert.Equal(t, definition.FormatYAML, definition.FormatFromPath("a/b"))

	f, err := definition.ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, definition.FormatYAML, f)
	_, err = definition.ParseFormat("toml")
	assert.Error(t, err)
}
