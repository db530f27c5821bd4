package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/wricardo/sanandreas/game/entity"
	"github.com/wricardo/sanandreas/game/mission"
	"github.com/wricardo/sanandreas/game/save"
)

func TestDefaultWorld(t *testing.T) {
	m, err := NewManager("")
	require.NoError(t, err)
	s, err := m.NewWorld(DefaultScenario)
	require.NoError(t, err)

	assert.Equal(t, "default", s.Scenario)
	assert.Equal(t, 80, s.Map.Width)
	assert.Equal(t, 25, s.Map.Height)
	assert.Equal(t, entity.Position{X: 40, Y: 12}, s.Player.GetPosition())
	assert.Equal(t, 100, s.Player.Health)
	assert.Equal(t, 500, s.Player.Money)
	assert.Equal(t, 3, s.NPCs.Len())
	assert.Equal(t, 2, s.Shops.Len())
	assert.Equal(t, 3, s.Enemies.Len())
	assert.Equal(t, 2, s.Vehicles.Len())
	assert.Len(t, s.Map.Items(), 4)

	smoke, ok := s.NPCs.Get("big_smoke")
	require.True(t, ok)
	assert.Equal(t, entity.KindBigSmoke, smoke.GetKind())
	require.NotNil(t, smoke.Mission)
	assert.Equal(t, mission.BigSmokeMission, smoke.Mission.Name)

	police, _ := s.Enemies.Get("police_officer")
	assert.True(t, police.IsPolice())

	ammu, _ := s.Shops.Get("ammu_nation")
	require.Len(t, ammu.Catalog, 3)
	assert.Equal(t, 20, ammu.Catalog[1].Item.Damage)
	assert.Equal(t, 150, ammu.Catalog[1].Price)
}

func TestDefaultScenarioMatchesStoryChain(t *testing.T) {
	m, err := NewManager("")
	require.NoError(t, err)
	s, err := m.NewWorld(DefaultScenario)
	require.NoError(t, err)

	want := mission.DefaultChain()
	got := s.Missions.Missions()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i], got[i], want[i].Name)
	}
}

func TestBuildReturnsIndependentWorlds(t *testing.T) {
	m, err := NewManager("")
	require.NoError(t, err)
	a, err := m.NewWorld("short_story")
	require.NoError(t, err)
	b, err := m.NewWorld("short_story")
	require.NoError(t, err)

	a.Player.Money = 999
	shopA, _ := a.Shops.Get("corner_store")
	shopA.Catalog[0].Item.Hunger = 1

	assert.Equal(t, 100, b.Player.Money)
	shopB, _ := b.Shops.Get("corner_store")
	assert.Equal(t, 25, shopB.Catalog[0].Item.Hunger)
	assert.Equal(t, "General", shopB.Category)
}

func TestScenarioDefaults(t *testing.T) {
	sc, err := ParseScenario("tiny", []byte(tinyScenario+`
enemies:
  - {name: Street Thug, x: 3, y: 1}
vehicles:
  - {name: BMX, x: 2, y: 2}
`))
	require.NoError(t, err)
	s, err := Build(sc)
	require.NoError(t, err)

	assert.Equal(t, "CJ", s.Player.Name)
	assert.Equal(t, 100, s.Player.MaxHealth)
	sweet, ok := s.NPCs.Get("sweet")
	require.True(t, ok)
	assert.Equal(t, "...", sweet.Dialogue)
	thug, ok := s.Enemies.Get("street_thug")
	require.True(t, ok)
	assert.Equal(t, 40, thug.Health)
	assert.Equal(t, 10, thug.Damage)
	assert.Equal(t, "Gang", thug.Faction)
	bmx, _ := s.Vehicles.Get("bmx")
	assert.Equal(t, 100, bmx.Health)
	assert.Equal(t, 1, bmx.Speed)
}

func TestValidateScenario(t *testing.T) {
	base := func() *Scenario {
		sc, err := ParseScenario("tiny", []byte(tinyScenario))
		require.NoError(t, err)
		cp := *sc
		return &cp
	}

	tests := []struct {
		name   string
		mutate func(*Scenario)
		want   int
	}{
		{name: "valid", mutate: func(*Scenario) {}, want: 0},
		{name: "player off map", mutate: func(sc *Scenario) { sc.Player.X = 10 }, want: 1},
		{name: "big smoke over the edge", mutate: func(sc *Scenario) {
			sc.NPCs = []NPCSpec{{Name: "Big Smoke", Type: entity.KindBigSmoke, X: 5, Y: 3, Mission: "Errand"}}
		}, want: 1},
		{name: "overlap and duplicate key", mutate: func(sc *Scenario) {
			sc.Enemies = []EnemySpec{{Name: "Thug", X: 1, Y: 1}, {Name: "Thug", X: 1, Y: 1}}
		}, want: 2},
		{name: "unknown mission offered", mutate: func(sc *Scenario) {
			sc.NPCs = append(sc.NPCs, NPCSpec{Name: "Ryder", X: 2, Y: 2, Mission: "Nope"})
		}, want: 1},
		{name: "mission nobody offers", mutate: func(sc *Scenario) {
			sc.Missions = append(sc.Missions, MissionSpec{Name: "Orphan", Objective: entity.Objective{Kind: entity.ObjectiveMoneyAtLeast}})
		}, want: 1},
		{name: "no missions", mutate: func(sc *Scenario) {
			sc.Missions = nil
			sc.NPCs[0].Mission = ""
		}, want: 1},
		{name: "bad item", mutate: func(sc *Scenario) {
			sc.Items = []save.ItemState{{Type: "Rocket", Name: "Rocket", X: 9, Y: 9}}
		}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := base()
			sc.NPCs = append([]NPCSpec{}, sc.NPCs...)
			tt.mutate(sc)
			errs := multierr.Errors(ValidateScenario(sc))
			assert.Len(t, errs, tt.want, "%v", errs)
			if tt.want > 0 {
				_, err := Build(sc)
				assert.ErrorIs(t, err, ErrInvalidScenario)
			}
		})
	}
}

func TestSaveRoundTripOnBuiltWorld(t *testing.T) {
	m, err := NewManager("")
	require.NoError(t, err)
	s, err := m.NewWorld(DefaultScenario)
	require.NoError(t, err)
	s.Tick = 42

	data, err := save.Marshal(s)
	require.NoError(t, err)
	got, err := save.Decode(data, m.Fresh(DefaultScenario))
	require.NoError(t, err)

	assert.Equal(t, 42, got.Tick)
	assert.Equal(t, save.Encode(s).Player, save.Encode(got).Player)
	assert.Equal(t, s.NPCs.Len(), got.NPCs.Len())
	assert.Len(t, got.Map.Items(), 4)
}
