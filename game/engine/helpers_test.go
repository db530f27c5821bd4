package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wricardo/sanandreas/game/entity"
	"github.com/wricardo/sanandreas/game/mission"
)

// scriptedRandom replays values, wrapping around, reduced modulo n.
type scriptedRandom struct {
	values []int
	i      int
}

func (s *scriptedRandom) Intn(n int) int {
	if len(s.values) == 0 || n <= 0 {
		return 0
	}
	v := s.values[s.i%len(s.values)]
	s.i++
	return v % n
}

type memoryStore struct {
	saved   int
	loadErr error
	state   *State
}

func (m *memoryStore) Save(s *State) error {
	m.saved++
	m.state = s
	return nil
}

func (m *memoryStore) Load() (*State, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.state == nil {
		return nil, errors.New("no save")
	}
	return m.state, nil
}

func buildWorld(t *testing.T) *State {
	t.Helper()
	g, err := mission.NewGraph(mission.DefaultChain()...)
	require.NoError(t, err)

	p := entity.NewPlayer("CJ", Position{X: 40, Y: 12}, 80, 25)
	p.Money = 500
	s := NewState(80, 25, p, g)

	sweet := entity.NewNPC("Sweet", "Hey CJ, long time no see! We got some business to handle.", Position{X: 5, Y: 5})
	sweet.Mission, _ = g.Get(mission.SweetMission)
	ryder := entity.NewNPC("Ryder", "Yo, CJ! You still busta? Go get me some spray cans.", Position{X: 10, Y: 10})
	ryder.Mission, _ = g.Get(mission.RyderMission)
	smoke := entity.NewBigSmoke("Big Smoke", "You picked the wrong house, fool!", Position{X: 20, Y: 15})
	smoke.Mission, _ = g.Get(mission.BigSmokeMission)
	smoke.AfterDialogue = "All right, CJ, you're doing good. Now let's get some food!"
	require.NoError(t, s.AddNPC("sweet", sweet))
	require.NoError(t, s.AddNPC("ryder", ryder))
	require.NoError(t, s.AddNPC("big_smoke", smoke))

	s.AddItem(entity.NewWeapon("Pistol", "A basic handgun.", 15, 75).At(Position{X: 2, Y: 2}))
	s.AddItem(entity.NewWeapon("Shotgun", "Deals heavy damage up close.", 30, 200).At(Position{X: 75, Y: 20}))
	s.AddItem(entity.NewHealthPack("Small Health Pack", "Restores some health.", 25, 30).At(Position{X: 7, Y: 7}))
	s.AddItem(entity.NewMoneyBundle("Cash Bundle", "A stack of money.", 200).At(Position{X: 20, Y: 6}))

	ammu := entity.NewShop("Ammu-Nation", "Ammu-Nation", Position{X: 70, Y: 5}).
		Stock(entity.NewWeapon("Knife", "A sharp blade.", 10, 50), 50).
		Stock(entity.NewWeapon("Uzi", "Rapid-fire submachine gun.", 20, 150), 150).
		Stock(entity.NewHealthPack("Large Health Pack", "Restores a lot of health.", 50, 75), 75)
	bell := entity.NewShop("Cluckin' Bell", "Fast Food", Position{X: 40, Y: 2}).
		Stock(entity.NewFood("Cluckin' Bell Burger", "A tasty burger.", 40, 15), 15).
		Stock(entity.NewDrink("Sprunk", "Refreshing soda.", 30, 10), 10)
	require.NoError(t, s.AddShop("ammu_nation", ammu))
	require.NoError(t, s.AddShop("cluckin_bell", bell))

	require.NoError(t, s.AddEnemy("gangster1", entity.NewEnemy("Gangster", Position{X: 15, Y: 10}, 40, 10, "Ballaz")))
	require.NoError(t, s.AddEnemy("gangster2", entity.NewEnemy("Gangster", Position{X: 25, Y: 8}, 40, 10, "Vagos")))
	require.NoError(t, s.AddEnemy("police_officer", entity.NewEnemy("Police Officer", Position{X: 78, Y: 2}, 60, 15, entity.FactionPolice)))

	require.NoError(t, s.AddVehicle("green_sabre", entity.NewVehicle("Green Sabre", Position{X: 30, Y: 10}, 100, 3)))
	require.NoError(t, s.AddVehicle("police_car", entity.NewVehicle("Police Car", Position{X: 75, Y: 15}, 120, 4)))
	return s
}

func newTestEngine(t *testing.T, opts ...Option) (*GameEngine, *State) {
	t.Helper()
	s := buildWorld(t)
	opts = append([]Option{
		WithRandom(&scriptedRandom{values: []int{0}}),
		WithFreshWorld(func() (*State, error) { return buildWorld(t), nil }),
	}, opts...)
	eng, err := NewEngine(s, opts...)
	require.NoError(t, err)
	return eng, s
}

func place(s *State, x, y int) {
	s.Player.SetPosition(Position{X: x, Y: y})
}

func enemy(t *testing.T, s *State, key string) *entity.Enemy {
	t.Helper()
	en, ok := s.Enemies.Get(key)
	require.True(t, ok, "enemy %s", key)
	return en
}
