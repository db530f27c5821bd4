package save

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/entity"
	"github.com/wricardo/sanandreas/game/mission"
)

func TestRoundTrip(t *testing.T) {
	s := testWorld(t)
	s.Tick = 137
	p := s.Player
	pistol := entity.NewWeapon("Pistol", "A basic handgun.", 15, 75)
	p.AddItem(pistol)
	p.AddItem(entity.NewHealthPack("Small Health Pack", "Restores some health.", 25, 30))
	require.NoError(t, p.Equip(pistol))
	p.Health = 64
	p.Hunger = 55
	p.Thirst = 41
	p.WantedLevel = 3
	p.Stamina = 87.5
	p.MarkCompleted(mission.SweetMission)
	p.Mission, _ = s.Missions.Get(mission.RyderMission)
	p.Reveal(3, 4)
	sweet, _ := s.NPCs.Get("sweet")
	sweet.MissionCompleted = true
	sabre, _ := s.Vehicles.Get("green_sabre")
	require.NoError(t, sabre.Enter(p))
	sabre.Health = 70

	data, err := Marshal(s)
	require.NoError(t, err)

	got, err := Decode(data, freshFor(t))
	require.NoError(t, err)

	gp := got.Player
	assert.Equal(t, 137, got.Tick)
	assert.Equal(t, "default", got.Scenario)
	assert.Equal(t, entity.Position{X: 30, Y: 10}, gp.GetPosition())
	assert.Equal(t, 64, gp.Health)
	assert.Equal(t, 100, gp.MaxHealth)
	assert.Equal(t, 500, gp.Money)
	assert.InDelta(t, 87.5, gp.Stamina, 1e-9)
	assert.Equal(t, 55, gp.Hunger)
	assert.Equal(t, 41, gp.Thirst)
	assert.Equal(t, 3, gp.WantedLevel)
	assert.True(t, gp.IsDiscovered(3, 4))
	assert.Equal(t, []string{mission.SweetMission}, gp.Completed)

	require.Len(t, gp.Inventory, 2)
	require.NotNil(t, gp.Weapon)
	assert.Same(t, gp.Inventory[0], gp.Weapon)
	assert.Equal(t, 15, gp.Weapon.Damage)
	assert.Equal(t, 25, gp.Inventory[1].Heal)

	require.NotNil(t, gp.Mission)
	ryder, _ := got.Missions.Get(mission.RyderMission)
	assert.Same(t, ryder, gp.Mission)

	gotSabre, ok := got.Vehicles.Get("green_sabre")
	require.True(t, ok)
	assert.Same(t, gotSabre, gp.Vehicle)
	assert.Same(t, gp, gotSabre.Occupant)
	assert.Equal(t, 70, gotSabre.Health)
	assert.Equal(t, 3, gotSabre.Speed)

	gotSweet, _ := got.NPCs.Get("sweet")
	assert.True(t, gotSweet.MissionCompleted)
	sweetMission, _ := got.Missions.Get(mission.SweetMission)
	assert.Same(t, sweetMission, gotSweet.Mission)

	smoke, _ := got.NPCs.Get("big_smoke")
	assert.Equal(t, entity.KindBigSmoke, smoke.GetKind())
	assert.Len(t, smoke.Footprint(), 2)
	assert.Equal(t, "Now let's get some food!", smoke.AfterDialogue)

	police, _ := got.Enemies.Get("police_officer")
	assert.True(t, police.IsPolice())
	assert.Equal(t, 15, police.Damage)

	bell, _ := got.Shops.Get("cluckin_bell")
	require.Len(t, bell.Catalog, 2)
	assert.Equal(t, 40, bell.Catalog[0].Item.Hunger)
	assert.Equal(t, 10, bell.Catalog[1].Price)

	assert.Equal(t, []string{"gangster1", "gangster2", "police_officer"}, registryKeys(got.Enemies))
	assert.Len(t, got.Map.Items(), 2)
	assert.NoError(t, got.Validate())
}

func TestEncodeWritesCurrentVersion(t *testing.T) {
	data, err := Marshal(testWorld(t))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.EqualValues(t, CurrentVersion, raw["version"])
	assert.EqualValues(t, 80, raw["width"])
	assert.Contains(t, raw, "saved_at")

	shops := raw["shops"].(map[string]any)
	inv := shops["cluckin_bell"].(map[string]any)["inventory"].([]any)
	pair := inv[0].([]any)
	require.Len(t, pair, 2)
	assert.EqualValues(t, 15, pair[1])
}

func TestMissingFieldsTakeDefaults(t *testing.T) {
	doc := `{
		"version": 2,
		"player": {"type": "Player", "name": "CJ", "x": 1, "y": 1, "health": 80, "inventory": [{"name": "Bat", "type": "Weapon"}]},
		"npcs": {"sweet": {"type": "NPC", "name": "Sweet", "x": 5, "y": 5}},
		"enemies": {"thug": {"name": "Thug", "x": 9, "y": 9}},
		"shops": {"corner": {"name": "Corner Store", "x": 3, "y": 3, "inventory": [[{"name": "Chips", "type": "Food"}, 5]]}},
		"vehicles": {"bike": {"name": "BMX", "x": 7, "y": 7}},
		"items_on_map": [{"name": "Medkit", "type": "HealthPack", "x": 2, "y": 2}, {"name": "Junk", "x": 4, "y": 4}]
	}`

	s, err := Decode([]byte(doc), freshFor(t))
	require.NoError(t, err)

	p := s.Player
	assert.Equal(t, 80, p.MaxHealth)
	assert.InDelta(t, 100, p.Stamina, 1e-9)
	assert.InDelta(t, 100, p.MaxStamina, 1e-9)
	assert.Equal(t, 0, p.Money)
	assert.Equal(t, entity.MaxNeed, p.Hunger)
	assert.Equal(t, entity.MaxNeed, p.Thirst)
	assert.Equal(t, 1, p.DrivingSkill)
	assert.Equal(t, 1, p.WeaponSkill)
	assert.Zero(t, p.WantedLevel)
	assert.Empty(t, p.Completed)
	require.Len(t, p.Inventory, 1)
	assert.Equal(t, 1, p.Inventory[0].Damage)
	assert.Equal(t, "A weapon.", p.Inventory[0].Description)

	assert.Equal(t, "default", s.Scenario)
	assert.Equal(t, 80, s.Map.Width)
	assert.Equal(t, 25, s.Map.Height)

	sweet, _ := s.NPCs.Get("sweet")
	assert.Equal(t, "...", sweet.Dialogue)
	assert.Equal(t, 50, sweet.Health)
	assert.Nil(t, sweet.Mission)

	thug, _ := s.Enemies.Get("thug")
	assert.Equal(t, 40, thug.Health)
	assert.Equal(t, 10, thug.Damage)
	assert.Equal(t, "Gang", thug.Faction)

	corner, _ := s.Shops.Get("corner")
	assert.Equal(t, "General", corner.Category)
	assert.Equal(t, 20, corner.Catalog[0].Item.Hunger)

	bike, _ := s.Vehicles.Get("bike")
	assert.Equal(t, 100, bike.Health)
	assert.Equal(t, 100, bike.MaxHealth)
	assert.Equal(t, 1, bike.Speed)

	items := s.Map.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 25, items[0].Heal)
	assert.Equal(t, entity.KindItem, items[1].GetKind())
	assert.Equal(t, "A generic item.", items[1].Description)
}

func TestLoadFirstEdition(t *testing.T) {
	doc := `{
		"player": {
			"x": 6, "y": 5, "health": 70, "money": 650,
			"inventory": [["Pistol", "Weapon"], ["Mystery Box", "Item"]],
			"current_weapon": "Pistol",
			"missions_completed": ["Sweet's Mission"],
			"current_mission": null
		},
		"npcs": {"sweet": {"mission_completed": true}, "nobody": {"mission_completed": true}},
		"items_on_map": [{"name": "Cash Bundle", "x": 20, "y": 6, "type": "MoneyBundle"}],
		"enemies": [{"name": "Gangster", "x": 16, "y": 10, "health": 25}, {"name": "Biker", "x": 50, "y": 20, "health": 30}]
	}`

	s, err := Decode([]byte(doc), freshFor(t))
	require.NoError(t, err)

	p := s.Player
	assert.Equal(t, entity.Position{X: 6, Y: 5}, p.GetPosition())
	assert.Equal(t, 70, p.Health)
	assert.Equal(t, 650, p.Money)
	require.Len(t, p.Inventory, 2)
	assert.Equal(t, 15, p.Inventory[0].Damage)
	assert.Equal(t, "A basic handgun.", p.Inventory[0].Description)
	assert.Same(t, p.Inventory[0], p.Weapon)
	assert.Equal(t, entity.KindItem, p.Inventory[1].GetKind())
	assert.Nil(t, p.Mission)
	assert.True(t, p.HasCompleted(mission.SweetMission))
	assert.Len(t, p.Discovered, 25)

	sweet, _ := s.NPCs.Get("sweet")
	assert.True(t, sweet.MissionCompleted)
	_, ok := s.NPCs.Get("nobody")
	assert.False(t, ok)

	items := s.Map.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 200, items[0].Amount)

	assert.Equal(t, []string{"gangster1", "enemy_2"}, registryKeys(s.Enemies))
	g, _ := s.Enemies.Get("gangster1")
	assert.Equal(t, 25, g.Health)
	assert.Equal(t, "Ballaz", g.Faction)
	biker, _ := s.Enemies.Get("enemy_2")
	assert.Equal(t, 10, biker.Damage)
	assert.Equal(t, 30, biker.MaxHealth)

	assert.Equal(t, 3, s.NPCs.Len()+s.Shops.Len())
	assert.Equal(t, 1, s.Vehicles.Len())
}

func TestVersionSniffing(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    int
		wantErr error
	}{
		{name: "no version key", data: `{"player": {}}`, want: 1},
		{name: "current", data: `{"version": 3}`, want: 3},
		{name: "second edition", data: `{"version": 2}`, want: 2},
		{name: "newer than supported", data: `{"version": 9}`, want: 9, wantErr: ErrUnsupportedVersion},
		{name: "not json", data: `{"version": `, wantErr: ErrCorruptSave},
		{name: "version is text", data: `{"version": "three"}`, wantErr: ErrCorruptSave},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Version([]byte(tt.data))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	d := Encode(testWorld(t))
	d.Player.X = 500
	d.Player.WantedLevel = 9
	d.ItemsOnMap = append(d.ItemsOnMap, ItemState{Type: "Spaceship", Name: "Rocket"})

	errs := multierr.Errors(d.Validate())
	assert.Len(t, errs, 3)

	_, err := d.Restore(testWorld(t).Missions)
	assert.ErrorIs(t, err, ErrCorruptSave)
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()

	t.Run("save then load", func(t *testing.T) {
		store := NewFileStore(filepath.Join(dir, "nested", "game.json"), freshFor(t), zerolog.Nop())
		s := testWorld(t)
		s.Tick = 12
		require.NoError(t, store.Save(s))

		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, 12, got.Tick)
		_, err = os.Stat(store.Path() + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing file", func(t *testing.T) {
		store := NewFileStore(filepath.Join(dir, "nope.json"), freshFor(t), zerolog.Nop())
		_, err := store.Load()
		assert.ErrorIs(t, err, ErrNoSave)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		store := NewFileStore(path, freshFor(t), zerolog.Nop())
		_, err := store.Load()
		assert.ErrorIs(t, err, ErrCorruptSave)
	})
}

func TestEngineLoadWithoutSaveStartsFresh(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "none.json"), freshFor(t), zerolog.Nop())
	s := testWorld(t)
	s.Player.Money = 1
	eng, err := engine.NewEngine(s, engine.WithStore(store), engine.WithFreshWorld(freshFor(t)))
	require.NoError(t, err)

	res := eng.Step("l")
	assert.True(t, res.Has(engine.EventError))
	assert.False(t, res.TurnEnded)
	assert.Equal(t, 500, eng.GetState().Player.Money)
	assert.False(t, eng.IsGameOver())
}

func TestEngineSaveLoadThroughFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "game.json"), freshFor(t), zerolog.Nop())
	eng, err := engine.NewEngine(testWorld(t), engine.WithStore(store), engine.WithFreshWorld(freshFor(t)))
	require.NoError(t, err)

	eng.Step("d")
	pos := eng.GetState().Player.GetPosition()
	res := eng.Step("v")
	require.True(t, res.Has(engine.EventSaved))

	eng.Step("d")
	res = eng.Step("l")
	require.True(t, res.Has(engine.EventLoaded))
	assert.Equal(t, pos, eng.GetState().Player.GetPosition())
	assert.Equal(t, 1, eng.GetState().Tick)
}

func TestSchemaDescribesDocument(t *testing.T) {
	s := Schema()
	require.NotNil(t, s.Properties)
	_, ok := s.Properties.Get("player")
	assert.True(t, ok)
	npcs, ok := s.Properties.Get("npcs")
	require.True(t, ok)
	assert.Equal(t, "object", npcs.Type)
	require.NotNil(t, npcs.AdditionalProperties)
}

func TestInspect(t *testing.T) {
	data, err := Marshal(testWorld(t))
	require.NoError(t, err)
	r := Inspect(data, testWorld(t))
	assert.True(t, r.Valid(), r.Problems)
	assert.False(t, r.Upgraded)
	assert.Equal(t, 3, r.Enemies)

	r = Inspect([]byte(`{"player": {"x": 1}}`), testWorld(t))
	assert.True(t, r.Upgraded)
	assert.Equal(t, 1, r.Version)
}

func TestStyledGlyphsAreStripped(t *testing.T) {
	tests := []struct {
		stored string
		want   string
	}{
		{"\x1b[1mC\x1b[0m", "C"},
		{"\x1b[91mE\x1b[0m", "E"},
		{"S", "S"},
		{"", "?"},
		{"\x1b[1m\x1b[0m", "?"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, glyph(tt.stored, "?"), "%q", tt.stored)
	}
}

func TestRestoreStripsStyledGlyphs(t *testing.T) {
	doc := Encode(testWorld(t))
	doc.Player.Char = "\x1b[1mC\x1b[1m"
	for pair := doc.Shops.Oldest(); pair != nil; pair = pair.Next() {
		st := pair.Value
		st.Char = "\x1b[93m$\x1b[0m"
		doc.Shops.Set(pair.Key, st)
	}
	for pair := doc.Vehicles.Oldest(); pair != nil; pair = pair.Next() {
		st := pair.Value
		st.Char = "\x1b[94mV\x1b[0m"
		doc.Vehicles.Set(pair.Key, st)
	}

	s, err := doc.Restore(testWorld(t).Missions)
	require.NoError(t, err)
	assert.Equal(t, "C", s.Player.Glyph)
	for pair := s.Shops.Oldest(); pair != nil; pair = pair.Next() {
		assert.Equal(t, "$", pair.Value.Glyph)
	}
	for pair := s.Vehicles.Oldest(); pair != nil; pair = pair.Next() {
		assert.Equal(t, "V", pair.Value.Glyph)
	}
}
