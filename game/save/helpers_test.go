package save

import (
	"testing"

	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/entity"
	"github.com/wricardo/sanandreas/game/mission"
)

func testWorld(t *testing.T) *engine.State {
	t.Helper()
	g, err := mission.NewGraph(mission.DefaultChain()...)
	require.NoError(t, err)

	p := entity.NewPlayer("CJ", entity.Position{X: 40, Y: 12}, 80, 25)
	p.Money = 500
	s := engine.NewState(80, 25, p, g)
	s.Scenario = "default"

	sweet := entity.NewNPC("Sweet", "Hey CJ!", entity.Position{X: 5, Y: 5})
	sweet.Mission, _ = g.Get(mission.SweetMission)
	smoke := entity.NewBigSmoke("Big Smoke", "You picked the wrong house, fool!", entity.Position{X: 20, Y: 15})
	smoke.Mission, _ = g.Get(mission.BigSmokeMission)
	smoke.AfterDialogue = "Now let's get some food!"
	require.NoError(t, s.AddNPC("sweet", sweet))
	require.NoError(t, s.AddNPC("big_smoke", smoke))

	s.AddItem(entity.NewWeapon("Pistol", "A basic handgun.", 15, 75).At(entity.Position{X: 2, Y: 2}))
	s.AddItem(entity.NewMoneyBundle("Cash Bundle", "A stack of money.", 200).At(entity.Position{X: 20, Y: 6}))

	bell := entity.NewShop("Cluckin' Bell", "Fast Food", entity.Position{X: 40, Y: 2}).
		Stock(entity.NewFood("Cluckin' Bell Burger", "A tasty burger.", 40, 15), 15).
		Stock(entity.NewDrink("Sprunk", "Refreshing soda.", 30, 10), 10)
	require.NoError(t, s.AddShop("cluckin_bell", bell))

	require.NoError(t, s.AddEnemy("gangster1", entity.NewEnemy("Gangster", entity.Position{X: 15, Y: 10}, 40, 10, "Ballaz")))
	require.NoError(t, s.AddEnemy("gangster2", entity.NewEnemy("Gangster", entity.Position{X: 25, Y: 8}, 40, 10, "Vagos")))
	require.NoError(t, s.AddEnemy("police_officer", entity.NewEnemy("Police Officer", entity.Position{X: 78, Y: 2}, 60, 15, entity.FactionPolice)))

	require.NoError(t, s.AddVehicle("green_sabre", entity.NewVehicle("Green Sabre", entity.Position{X: 30, Y: 10}, 100, 3)))
	return s
}

func freshFor(t *testing.T) Fresh {
	return func() (*engine.State, error) { return testWorld(t), nil }
}

func registryKeys[V any](m *orderedmap.OrderedMap[string, V]) []string {
	var out []string
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}
