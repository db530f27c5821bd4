package save

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/wricardo/sanandreas/game/entity"
)

// Validate checks the structure of a document and reports every problem
// it finds.
func (d *Document) Validate() error {
	d.ensureMaps()
	var errs error
	if d.Version < 1 || d.Version > CurrentVersion {
		errs = multierr.Append(errs, fmt.Errorf("version %d is not supported", d.Version))
	}
	if d.Width <= 0 || d.Height <= 0 {
		return multierr.Append(errs, fmt.Errorf("map size %dx%d is invalid", d.Width, d.Height))
	}
	if d.GameTime < 0 {
		errs = multierr.Append(errs, errors.New("game_time is negative"))
	}

	inside := func(what string, x, y int) {
		if x < 0 || y < 0 || x >= d.Width || y >= d.Height {
			errs = multierr.Append(errs, fmt.Errorf("%s at (%d,%d) is off the %dx%d map", what, x, y, d.Width, d.Height))
		}
	}
	character := func(what string, st CharacterState) {
		if st.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s has no name", what))
		}
		if st.MaxHealth <= 0 || st.Health < 0 || st.Health > st.MaxHealth {
			errs = multierr.Append(errs, fmt.Errorf("%s health %d/%d is invalid", what, st.Health, st.MaxHealth))
		}
		for i, it := range st.Inventory {
			errs = multierr.Append(errs, checkItem(fmt.Sprintf("%s inventory[%d]", what, i), it))
		}
		inside(what, st.X, st.Y)
	}

	p := d.Player
	character("player", p.CharacterState)
	if p.WantedLevel < 0 || p.WantedLevel > entity.MaxWanted {
		errs = multierr.Append(errs, fmt.Errorf("wanted level %d is out of range", p.WantedLevel))
	}
	if p.Hunger < 0 || p.Hunger > entity.MaxNeed || p.Thirst < 0 || p.Thirst > entity.MaxNeed {
		errs = multierr.Append(errs, fmt.Errorf("needs hunger=%d thirst=%d are out of range", p.Hunger, p.Thirst))
	}

	for pair := d.NPCs.Oldest(); pair != nil; pair = pair.Next() {
		what := "npc " + pair.Key
		st := pair.Value
		if !st.Type.IsNPC() {
			errs = multierr.Append(errs, fmt.Errorf("%s has type %q", what, st.Type))
		}
		character(what, st.CharacterState)
		if st.Type == entity.KindBigSmoke {
			inside(what, st.X+1, st.Y)
		}
	}
	for pair := d.Enemies.Oldest(); pair != nil; pair = pair.Next() {
		what := "enemy " + pair.Key
		if pair.Value.Type != entity.KindEnemy {
			errs = multierr.Append(errs, fmt.Errorf("%s has type %q", what, pair.Value.Type))
		}
		character(what, pair.Value.CharacterState)
	}
	for pair := d.Shops.Oldest(); pair != nil; pair = pair.Next() {
		what := "shop " + pair.Key
		st := pair.Value
		if st.Type != entity.KindShop {
			errs = multierr.Append(errs, fmt.Errorf("%s has type %q", what, st.Type))
		}
		inside(what, st.X, st.Y)
		for i, l := range st.Inventory {
			errs = multierr.Append(errs, checkItem(fmt.Sprintf("%s inventory[%d]", what, i), l.Item))
			if l.Price < 0 {
				errs = multierr.Append(errs, fmt.Errorf("%s inventory[%d] has negative price", what, i))
			}
		}
	}
	occupied := 0
	for pair := d.Vehicles.Oldest(); pair != nil; pair = pair.Next() {
		what := "vehicle " + pair.Key
		st := pair.Value
		if st.Type != entity.KindVehicle {
			errs = multierr.Append(errs, fmt.Errorf("%s has type %q", what, st.Type))
		}
		if st.MaxHealth <= 0 || st.Health < 0 || st.Health > st.MaxHealth {
			errs = multierr.Append(errs, fmt.Errorf("%s health %d/%d is invalid", what, st.Health, st.MaxHealth))
		}
		inside(what, st.X, st.Y)
		if st.Occupant != "" {
			occupied++
			if st.Occupant != p.Name {
				errs = multierr.Append(errs, fmt.Errorf("%s is driven by unknown %q", what, st.Occupant))
			}
		}
	}
	if occupied > 1 {
		errs = multierr.Append(errs, fmt.Errorf("player occupies %d vehicles", occupied))
	}
	for i, it := range d.ItemsOnMap {
		what := fmt.Sprintf("items_on_map[%d]", i)
		errs = multierr.Append(errs, checkItem(what, it))
		inside(what, it.X, it.Y)
	}
	return errs
}

func checkItem(what string, it ItemState) error {
	var errs error
	if !it.Type.IsItem() {
		errs = multierr.Append(errs, fmt.Errorf("%s has type %q", what, it.Type))
	}
	if it.Name == "" {
		errs = multierr.Append(errs, fmt.Errorf("%s has no name", what))
	}
	return errs
}
