package service

import (
	"slices"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/render"
	"github.com/wricardo/sanandreas/game/world"
)

// NewSnapshot builds the client view of a session's world.
func NewSnapshot(sess *Session) *Snapshot {
	eng := sess.Engine
	st := eng.GetState()
	p := st.Player

	pv := PlayerView{
		Name:         p.Name,
		Position:     p.GetPosition(),
		Health:       p.Health,
		MaxHealth:    p.MaxHealth,
		Stamina:      p.Stamina,
		MaxStamina:   p.MaxStamina,
		Money:        p.Money,
		WantedLevel:  p.WantedLevel,
		Hunger:       p.Hunger,
		Thirst:       p.Thirst,
		DrivingSkill: p.DrivingSkill,
		WeaponSkill:  p.WeaponSkill,
		Inventory:    make([]string, 0, len(p.Inventory)),
		Completed:    append([]string{}, p.Completed...),
		Discovered:   world.DiscoveredCount(p),
	}
	for _, it := range p.Inventory {
		pv.Inventory = append(pv.Inventory, it.Name)
	}
	if p.Weapon != nil {
		pv.Weapon = p.Weapon.Name
	}
	if p.Vehicle != nil {
		pv.Vehicle = p.Vehicle.Name
	}
	if p.Mission != nil {
		pv.Mission = p.Mission.Name
		pv.Objective = p.Mission.Objective.String()
	}

	snap := &Snapshot{
		SessionID: sess.ID,
		Scenario:  sess.Scenario,
		Tick:      st.Tick,
		Clock:     st.Clock(),
		Status:    eng.Status(),
		Player:    pv,
		Threat:    engine.ThreatLevel(st),
		Prompt:    eng.Prompt(),
		Map:       render.Rows(eng.View()),
		HUD:       render.HUD(st),
	}
	if en, d, ok := engine.NearestEnemy(st); ok {
		snap.Nearest = &EnemyView{
			Name:     en.Name,
			Faction:  en.Faction,
			Health:   en.Health,
			Position: en.GetPosition(),
			Distance: d,
		}
	}
	if st.Missions != nil {
		for _, m := range st.Missions.Missions() {
			snap.Missions = append(snap.Missions, MissionView{
				Name:          m.Name,
				Description:   m.Description,
				Objective:     m.Objective.String(),
				Prerequisites: m.Prerequisites,
				Completed:     slices.Contains(p.Completed, m.Name),
				Active:        p.Mission != nil && p.Mission.Name == m.Name,
			})
		}
	}
	return snap
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		Scenario:       sess.Scenario,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Commands:       len(sess.History),
		Snapshot:       NewSnapshot(sess),
	}
}
