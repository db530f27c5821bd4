package validate

import (
	"fmt"
	"io"

	"github.com/wricardo/sanandreas/game/config"
	"github.com/wricardo/sanandreas/game/entity"
)

// Analysis holds quick, human-readable heuristics about a scenario.
type Analysis struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	Start        entity.Position `json:"start"`
	StartMoney   int             `json:"start_money"`
	NPCs         int             `json:"npcs"`
	Shops        int             `json:"shops"`
	Items        int             `json:"items"`
	Enemies      int             `json:"enemies"`
	Vehicles     int             `json:"vehicles"`
	MapMoney     int             `json:"map_money"`
	NearestEnemy int             `json:"nearest_enemy"`
	Chain        []MissionStep   `json:"chain"`
	Warnings     []string        `json:"warnings,omitempty"`
}

// MissionStep is one mission in play order.
type MissionStep struct {
	Name      string `json:"name"`
	Giver     string `json:"giver"`
	Distance  int    `json:"distance"`
	Objective string `json:"objective"`
	Reward    int    `json:"reward"`
}

// Analyze walks the mission chain in play order and flags objectives the
// scenario cannot satisfy: money targets above everything the player could
// collect by then, and items nobody sells, drops or rewards. Distances are
// Manhattan distances from the player's start; NearestEnemy is -1 without
// enemies.
func Analyze(sc *config.Scenario) (*Analysis, error) {
	st, err := config.Build(sc)
	if err != nil {
		return nil, err
	}
	order, err := st.Missions.Order()
	if err != nil {
		return nil, err
	}

	start := st.Player.GetPosition()
	a := &Analysis{
		ID:           sc.ID,
		Name:         sc.Name,
		Width:        sc.Width,
		Height:       sc.Height,
		Start:        start,
		StartMoney:   st.Player.Money,
		NPCs:         st.NPCs.Len(),
		Shops:        st.Shops.Len(),
		Items:        len(sc.Items),
		Enemies:      st.Enemies.Len(),
		Vehicles:     st.Vehicles.Len(),
		NearestEnemy: -1,
	}

	available := map[string]bool{}
	for _, it := range sc.Items {
		if it.Type == entity.KindMoneyBundle {
			a.MapMoney += it.Amount
		}
		available[it.Name] = true
	}
	for _, it := range sc.Player.Inventory {
		available[it.Name] = true
	}
	for _, ss := range sc.Shops {
		for _, l := range ss.Catalog {
			available[l.Item.Name] = true
		}
	}

	for pair := st.Enemies.Oldest(); pair != nil; pair = pair.Next() {
		d := manhattan(start, pair.Value.GetPosition())
		if a.NearestEnemy < 0 || d < a.NearestEnemy {
			a.NearestEnemy = d
		}
	}

	givers := map[string]*entity.NPC{}
	for pair := st.NPCs.Oldest(); pair != nil; pair = pair.Next() {
		if n := pair.Value; n.Mission != nil {
			givers[n.Mission.Name] = n
		}
	}

	money := a.StartMoney + a.MapMoney
	for _, name := range order {
		m, _ := st.Missions.Get(name)
		step := MissionStep{Name: m.Name, Distance: -1, Objective: m.Objective.String(), Reward: m.RewardMoney}
		if n, ok := givers[m.Name]; ok {
			step.Giver = n.Name
			step.Distance = manhattan(start, n.GetPosition())
		}
		a.Chain = append(a.Chain, step)

		objectives := []entity.Objective{m.Objective}
		if m.Gate != nil {
			objectives = append(objectives, m.Gate.Objective)
		}
		for _, o := range objectives {
			switch o.Kind {
			case entity.ObjectiveMoneyAtLeast:
				if o.Amount > money {
					a.Warnings = append(a.Warnings, fmt.Sprintf("%s needs $%d but at most $%d can be collected by then", m.Name, o.Amount, money))
				}
			case entity.ObjectiveHasItem:
				if !available[o.Item] {
					a.Warnings = append(a.Warnings, fmt.Sprintf("%s needs the %s, which is not on the map, in a shop or an earlier reward", m.Name, o.Item))
				}
			}
		}

		money += m.RewardMoney
		if m.RewardItem != nil {
			available[m.RewardItem.Name] = true
		}
	}
	return a, nil
}

// Print writes the analysis in the form the analyze command shows.
func (a *Analysis) Print(w io.Writer) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Map Size: %d x %d\n", a.Width, a.Height)
	fmt.Fprintf(w, "Start Position: (%d, %d)\n", a.Start.X, a.Start.Y)
	fmt.Fprintf(w, "Starting Money: $%d\n", a.StartMoney)
	fmt.Fprintf(w, "NPCs: %d | Shops: %d | Items: %d | Enemies: %d | Vehicles: %d\n",
		a.NPCs, a.Shops, a.Items, a.Enemies, a.Vehicles)
	fmt.Fprintf(w, "Money on map: $%d\n", a.MapMoney)
	if a.NearestEnemy >= 0 {
		fmt.Fprintf(w, "Nearest enemy: %d cells from the start\n", a.NearestEnemy)
	}

	fmt.Fprintf(w, "Mission chain:\n")
	for i, s := range a.Chain {
		giver := "nobody"
		if s.Giver != "" {
			giver = fmt.Sprintf("%s, %d cells away", s.Giver, s.Distance)
		}
		fmt.Fprintf(w, "  %d. %s (%s): %s, reward $%d\n", i+1, s.Name, giver, s.Objective, s.Reward)
	}

	if len(a.Warnings) == 0 {
		fmt.Fprintf(w, "✅ Every mission objective can be met\n")
		return
	}
	fmt.Fprintf(w, "⚠️  WARNING: %d mission objectives look unreachable\n", len(a.Warnings))
	for _, warning := range a.Warnings {
		fmt.Fprintf(w, "   %s\n", warning)
	}
}

func manhattan(p, q entity.Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
