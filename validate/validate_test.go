package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/sanandreas/game/config"
	"github.com/wricardo/sanandreas/game/save"
)

const openScenario = `name: Open Block
width: 6
height: 4
player: {name: CJ, x: 4, y: 2}
npcs:
  - {key: sweet, name: Sweet, x: 0, y: 0, mission: Errand}
shops:
  - {key: a, name: Shop A, x: 3, y: 0}
missions:
  - name: Errand
    description: Bring money.
    objective: {kind: money_at_least, amount: 10}
`

const boxedScenario = `name: Boxed In
width: 6
height: 4
player: {name: CJ, x: 4, y: 2}
npcs:
  - {key: sweet, name: Sweet, x: 0, y: 0, mission: Errand}
shops:
  - {key: a, name: Shop A, x: 1, y: 0}
  - {key: b, name: Shop B, x: 0, y: 1}
  - {key: c, name: Shop C, x: 1, y: 1}
missions:
  - name: Errand
    description: Bring money.
    objective: {kind: money_at_least, amount: 10}
`

const brokenScenario = `name: Broken
width: 6
height: 4
player: {name: CJ, x: 4, y: 2}
npcs:
  - {key: sweet, name: Sweet, x: 4, y: 2, mission: Nothing}
missions:
  - name: Errand
    description: Bring money.
    objective: {kind: money_at_least, amount: 10}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScenarioFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		valid    bool
		contains string
	}{
		{"open", openScenario, true, "✓ Connectivity: All 2 objects reachable from the start"},
		{"boxed in", boxedScenario, false, "Unreachable: Sweet at (0,0)"},
		{"broken", brokenScenario, false, "overlaps player"},
		{"not yaml", "name: [", false, "invalid scenario"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScenarioFile(writeFile(t, "block.yaml", tt.content))
			assert.Equal(t, "block.yaml", result.File)
			assert.Equal(t, tt.valid, result.Valid, "%v", result.Errors)

			found := false
			for _, msg := range result.Errors {
				if strings.Contains(msg, tt.contains) {
					found = true
				}
			}
			assert.True(t, found, "no message contains %q in %v", tt.contains, result.Errors)
		})
	}
}

func TestScenarioFileCollectsEveryProblem(t *testing.T) {
	result := ScenarioFile(writeFile(t, "broken.yaml", brokenScenario))
	require.False(t, result.Valid)
	// Overlap, unknown mission, and a mission nobody offers.
	assert.GreaterOrEqual(t, len(result.Errors), 3)
}

func TestScenarioFileMissing(t *testing.T) {
	result := ScenarioFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Failed to read file")
}

func TestBuiltinScenariosAreConnected(t *testing.T) {
	scenarios, err := config.NewManager("")
	require.NoError(t, err)
	infos, err := scenarios.ListScenarios()
	require.NoError(t, err)
	require.NotEmpty(t, infos)

	for _, info := range infos {
		sc, err := scenarios.LoadScenario(info.ID)
		require.NoError(t, err)
		result := Scenario(sc)
		assert.True(t, result.Valid, "%s: %v", info.ID, result.Errors)
	}
}

func TestSaveFile(t *testing.T) {
	scenarios, err := config.NewManager("")
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		st, err := scenarios.NewWorld("short_story")
		require.NoError(t, err)
		st.Tick = 100
		data, err := save.Marshal(st)
		require.NoError(t, err)

		result, report := SaveFile(writeFile(t, "savegame.json", string(data)), scenarios)
		assert.True(t, result.Valid, "%v", result.Errors)
		require.NotNil(t, report)
		assert.Equal(t, 100, report.Tick)
		assert.Equal(t, "01:00", report.Clock)
		assert.Contains(t, result.Errors[0], "Version 3")
	})

	t.Run("corrupt", func(t *testing.T) {
		result, report := SaveFile(writeFile(t, "savegame.json", `{"version": 3, "player": 7}`), scenarios)
		assert.False(t, result.Valid)
		require.NotNil(t, report)
		assert.False(t, report.Valid())
	})

	t.Run("unknown scenario", func(t *testing.T) {
		result, report := SaveFile(writeFile(t, "savegame.json", `{"version": 3, "scenario": "atlantis"}`), scenarios)
		assert.False(t, result.Valid)
		assert.Nil(t, report)
	})

	t.Run("missing", func(t *testing.T) {
		result, _ := SaveFile(filepath.Join(t.TempDir(), "savegame.json"), scenarios)
		assert.False(t, result.Valid)
	})
}
