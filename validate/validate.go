// Package validate checks scenario files and save documents before they are
// played. It checks:
//   - YAML structure, placement and mission references of scenarios
//   - Connectivity: every NPC, shop, item and vehicle can be reached on foot
//     from the player's start
//   - Structure, version and restorability of save documents
package validate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/buger/jsonparser"
	"go.uber.org/multierr"

	"github.com/wricardo/sanandreas/game/config"
	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/entity"
	"github.com/wricardo/sanandreas/game/save"
)

// Result captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type Result struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (r *Result) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// ScenarioFile loads and validates one scenario YAML file.
func ScenarioFile(path string) Result {
	result := Result{File: filepath.Base(path), Valid: true, Errors: []string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	id := strings.TrimSuffix(strings.TrimSuffix(result.File, ".yaml"), ".yml")
	sc, err := config.ParseScenario(id, data)
	if err != nil {
		for _, e := range causes(err) {
			result.fail("%v", e)
		}
		return result
	}

	r := Scenario(sc)
	r.File = result.File
	return r
}

// causes splits a scenario error into the problems it reports.
func causes(err error) []error {
	var out []error
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range u.Unwrap() {
			if !errors.Is(e, config.ErrInvalidScenario) {
				out = append(out, multierr.Errors(e)...)
			}
		}
	}
	if len(out) == 0 {
		return []error{err}
	}
	return out
}

// Scenario validates already parsed scenario content.
func Scenario(sc *config.Scenario) Result {
	result := Result{File: sc.ID, Valid: true, Errors: []string{}}

	for _, err := range multierr.Errors(config.ValidateScenario(sc)) {
		result.fail("%v", err)
	}
	if !result.Valid {
		return result
	}

	st, err := config.Build(sc)
	if err != nil {
		result.fail("Failed to build world: %v", err)
		return result
	}
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Map: %dx%d", sc.Width, sc.Height))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Missions: %d", len(st.Missions.Missions())))

	conn := Connectivity(st)
	result.Valid = conn.Valid
	result.Errors = append(result.Errors, conn.Errors...)
	return result
}

// Connectivity ensures every interactable object has a neighbour the player
// can walk to from the start, moving in four directions over free cells.
// Enemies wander and are not treated as walls.
func Connectivity(st *engine.State) Result {
	result := Result{Valid: true, Errors: []string{}}
	m := st.Map
	start := st.Player.GetPosition()

	passable := func(p entity.Position) bool {
		if !m.InBounds(p) {
			return false
		}
		for _, o := range m.OccupantsAt(p) {
			if o.GetKind() != entity.KindPlayer && o.GetKind() != entity.KindEnemy {
				return false
			}
		}
		return true
	}

	visited := map[entity.Position]bool{start: true}
	queue := []entity.Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			next := cur.Add(d[0], d[1])
			if !visited[next] && passable(next) {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var targets, unreachable int
	for _, o := range m.Objects() {
		kind := o.GetKind()
		if kind == entity.KindPlayer || kind == entity.KindEnemy {
			continue
		}
		targets++
		if !reachable(st, o, visited) {
			unreachable++
			result.fail("Unreachable: %s at (%d,%d)", o.GetName(), o.GetPosition().X, o.GetPosition().Y)
		}
	}

	if unreachable > 0 {
		result.Errors = append([]string{
			fmt.Sprintf("Connectivity failure: %d/%d objects unreachable from the start", unreachable, targets),
		}, result.Errors...)
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: All %d objects reachable from the start", targets))
	}
	return result
}

func reachable(st *engine.State, o entity.Object, visited map[entity.Position]bool) bool {
	for _, cell := range o.Footprint() {
		for _, n := range st.Map.Neighbors(cell) {
			if visited[n] {
				return true
			}
		}
	}
	return false
}

// SaveFile inspects a save document against a fresh world of the scenario it
// names.
func SaveFile(path string, scenarios *config.Manager) (Result, *save.Report) {
	result := Result{File: filepath.Base(path), Valid: true, Errors: []string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result, nil
	}

	name, err := jsonparser.GetString(data, "scenario")
	if err != nil || name == "" {
		name = scenarios.DefaultName()
	}
	base, err := scenarios.NewWorld(name)
	if err != nil {
		result.fail("Scenario %q: %v", name, err)
		return result, nil
	}

	report := save.Inspect(data, base)
	for _, p := range report.Problems {
		result.fail("%s", p)
	}
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Version %d, tick %d (%s)", report.Version, report.Tick, report.Clock))
		if report.Upgraded {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Upgrades to version %d on load", save.CurrentVersion))
		}
	}
	return result, report
}
