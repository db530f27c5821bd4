package engine

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Rules holds the tunable constants of the simulation.
type Rules struct {
	NeedsInterval       int     `mapstructure:"needs_interval" json:"needs_interval"`
	WantedDecayInterval int     `mapstructure:"wanted_decay_interval" json:"wanted_decay_interval"`
	PoliceSpawnInterval int     `mapstructure:"police_spawn_interval" json:"police_spawn_interval"`
	StarvationDamage    int     `mapstructure:"starvation_damage" json:"starvation_damage"`
	VisionRadius        int     `mapstructure:"vision_radius" json:"vision_radius"`
	WalkStaminaCost     float64 `mapstructure:"walk_stamina_cost" json:"walk_stamina_cost"`
	DriveStaminaCost    float64 `mapstructure:"drive_stamina_cost" json:"drive_stamina_cost"`
	PoliceSpawnRadius   int     `mapstructure:"police_spawn_radius" json:"police_spawn_radius"`
	PoliceBaseHealth    int     `mapstructure:"police_base_health" json:"police_base_health"`
	PoliceHealthPerStar int     `mapstructure:"police_health_per_star" json:"police_health_per_star"`
	PoliceBaseDamage    int     `mapstructure:"police_base_damage" json:"police_base_damage"`
	PoliceDamagePerStar int     `mapstructure:"police_damage_per_star" json:"police_damage_per_star"`
	PoliceKillWanted    int     `mapstructure:"police_kill_wanted" json:"police_kill_wanted"`
	CrimeWanted         int     `mapstructure:"crime_wanted" json:"crime_wanted"`
	DefeatBonus         int     `mapstructure:"defeat_bonus" json:"defeat_bonus"`
}

// DefaultRules returns the stock balance.
func DefaultRules() Rules {
	return Rules{
		NeedsInterval:       10,
		WantedDecayInterval: 50,
		PoliceSpawnInterval: 20,
		StarvationDamage:    2,
		VisionRadius:        8,
		WalkStaminaCost:     1,
		DriveStaminaCost:    0.5,
		PoliceSpawnRadius:   5,
		PoliceBaseHealth:    60,
		PoliceHealthPerStar: 10,
		PoliceBaseDamage:    15,
		PoliceDamagePerStar: 5,
		PoliceKillWanted:    2,
		CrimeWanted:         1,
		DefeatBonus:         50,
	}
}

// ValidateRules reports every tunable that would break the simulation.
func ValidateRules(r Rules) error {
	var errs error
	for _, f := range []struct {
		name  string
		value int
	}{
		{"needs_interval", r.NeedsInterval},
		{"wanted_decay_interval", r.WantedDecayInterval},
		{"police_spawn_interval", r.PoliceSpawnInterval},
		{"police_base_health", r.PoliceBaseHealth},
	} {
		if f.value <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("rules validation: %s must be positive, got %d", f.name, f.value))
		}
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"starvation_damage", r.StarvationDamage},
		{"vision_radius", r.VisionRadius},
		{"police_spawn_radius", r.PoliceSpawnRadius},
		{"police_health_per_star", r.PoliceHealthPerStar},
		{"police_base_damage", r.PoliceBaseDamage},
		{"police_damage_per_star", r.PoliceDamagePerStar},
		{"police_kill_wanted", r.PoliceKillWanted},
		{"crime_wanted", r.CrimeWanted},
		{"defeat_bonus", r.DefeatBonus},
	} {
		if f.value < 0 {
			errs = multierr.Append(errs, fmt.Errorf("rules validation: %s must not be negative, got %d", f.name, f.value))
		}
	}
	if r.WalkStaminaCost < 0 || r.DriveStaminaCost < 0 {
		errs = multierr.Append(errs, errors.New("rules validation: stamina costs must not be negative"))
	}
	return errs
}
