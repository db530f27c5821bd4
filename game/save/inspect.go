package save

import (
	"go.uber.org/multierr"

	"github.com/wricardo/sanandreas/game/engine"
)

// Report summarizes a save document.
type Report struct {
	Version    int      `json:"version"`
	Upgraded   bool     `json:"upgraded"`
	Scenario   string   `json:"scenario"`
	Tick       int      `json:"tick"`
	Clock      string   `json:"clock"`
	Player     string   `json:"player"`
	Missions   []string `json:"missions_completed"`
	NPCs       int      `json:"npcs"`
	Shops      int      `json:"shops"`
	Enemies    int      `json:"enemies"`
	Vehicles   int      `json:"vehicles"`
	ItemsOnMap int      `json:"items_on_map"`
	Problems   []string `json:"problems,omitempty"`
}

// Valid reports whether the document can be loaded.
func (r *Report) Valid() bool { return len(r.Problems) == 0 }

// Inspect parses data against base and lists every structural problem
// instead of stopping at the first.
func Inspect(data []byte, base *engine.State) *Report {
	doc, version, err := Parse(data, base)
	r := &Report{Version: version}
	if err != nil {
		r.Problems = []string{err.Error()}
		return r
	}
	r.Upgraded = version != CurrentVersion
	r.Scenario = doc.Scenario
	r.Tick = doc.GameTime
	r.Clock = engine.Clock(doc.GameTime)
	r.Player = doc.Player.Name
	r.Missions = doc.Player.MissionsCompleted
	r.NPCs = doc.NPCs.Len()
	r.Shops = doc.Shops.Len()
	r.Enemies = doc.Enemies.Len()
	r.Vehicles = doc.Vehicles.Len()
	r.ItemsOnMap = len(doc.ItemsOnMap)
	for _, err := range multierr.Errors(doc.Validate()) {
		r.Problems = append(r.Problems, err.Error())
	}
	if r.Valid() {
		if _, err := doc.Restore(base.Missions); err != nil {
			r.Problems = append(r.Problems, err.Error())
		}
	}
	return r
}
