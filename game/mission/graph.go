// Package mission implements the mission chain: prerequisite checks,
// objective evaluation, acceptance and completion bookkeeping.
package mission

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/wricardo/sanandreas/game/entity"
)

var (
	ErrUnknownMission     = errors.New("unknown mission")
	ErrPrerequisitesUnmet = errors.New("prerequisites not completed")
	ErrMissionActive      = errors.New("another mission is active")
	ErrAlreadyCompleted   = errors.New("mission already completed")
	ErrCycle              = errors.New("prerequisite cycle")
)

// Graph is the table of mission definitions of one world.
type Graph struct {
	byName map[string]*entity.Mission
	order  []string
}

// NewGraph validates and indexes missions. Names must be unique and every
// prerequisite must name a mission of the graph without forming a cycle.
func NewGraph(missions ...*entity.Mission) (*Graph, error) {
	g := &Graph{byName: make(map[string]*entity.Mission, len(missions))}
	var errs error
	for _, m := range missions {
		if m.Name == "" {
			errs = multierr.Append(errs, errors.New("mission without a name"))
			continue
		}
		if _, dup := g.byName[m.Name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("duplicate mission %q", m.Name))
			continue
		}
		g.byName[m.Name] = m
		g.order = append(g.order, m.Name)
	}
	for _, name := range g.order {
		for _, pre := range g.byName[name].Prerequisites {
			if _, ok := g.byName[pre]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("mission %q: prerequisite %q: %w", name, pre, ErrUnknownMission))
			}
		}
	}
	if errs != nil {
		return nil, errs
	}
	if _, err := g.Order(); err != nil {
		return nil, err
	}
	return g, nil
}

// Get looks a mission up by name.
func (g *Graph) Get(name string) (*entity.Mission, bool) {
	m, ok := g.byName[name]
	return m, ok
}

// Missions returns the definitions in declaration order.
func (g *Graph) Missions() []*entity.Mission {
	out := make([]*entity.Mission, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.byName[name])
	}
	return out
}

// Len returns the number of missions.
func (g *Graph) Len() int { return len(g.order) }

// Order returns mission names so that every mission comes after its
// prerequisites. Ties keep declaration order.
func (g *Graph) Order() ([]string, error) {
	done := make(map[string]bool, len(g.order))
	out := make([]string, 0, len(g.order))
	for len(out) < len(g.order) {
		progressed := false
		for _, name := range g.order {
			if done[name] || !allDone(g.byName[name].Prerequisites, done) {
				continue
			}
			done[name] = true
			out = append(out, name)
			progressed = true
		}
		if !progressed {
			return nil, ErrCycle
		}
	}
	return out, nil
}

// AllCompleted reports whether the player finished every mission.
func (g *Graph) AllCompleted(p *entity.Player) bool {
	if g == nil || len(g.order) == 0 {
		return false
	}
	for _, name := range g.order {
		if !p.HasCompleted(name) {
			return false
		}
	}
	return true
}

// Missing returns the prerequisites of m the player has not completed yet.
func Missing(m *entity.Mission, p *entity.Player) []string {
	var out []string
	for _, pre := range m.Prerequisites {
		if !p.HasCompleted(pre) {
			out = append(out, pre)
		}
	}
	return out
}

// CanOffer reports whether m may be offered to the player.
func CanOffer(m *entity.Mission, p *entity.Player) bool {
	return m != nil && len(Missing(m, p)) == 0 && !p.HasCompleted(m.Name)
}

// Accept makes m the player's active mission.
func Accept(m *entity.Mission, p *entity.Player) error {
	if p.HasCompleted(m.Name) {
		return ErrAlreadyCompleted
	}
	if missing := Missing(m, p); len(missing) > 0 {
		return fmt.Errorf("%s: %w: %v", m.Name, ErrPrerequisitesUnmet, missing)
	}
	if p.Mission != nil && p.Mission != m {
		return fmt.Errorf("%s: %w", p.Mission.Name, ErrMissionActive)
	}
	p.Mission = m
	return nil
}

// Complete pays out n's mission to the player and frees the mission slot,
// whichever mission held it. It reports false, and changes nothing, when the
// mission was already completed.
func Complete(n *entity.NPC, p *entity.Player) bool {
	m := n.Mission
	if m == nil || n.MissionCompleted || p.HasCompleted(m.Name) {
		return false
	}
	p.Earn(m.RewardMoney)
	if m.RewardItem != nil {
		p.AddItem(m.RewardItem.Clone())
	}
	p.MarkCompleted(m.Name)
	p.Mission = nil
	n.MissionCompleted = true
	return true
}

// Satisfied evaluates an objective against the player. It has no side effects.
func Satisfied(o entity.Objective, p *entity.Player) bool {
	switch o.Kind {
	case entity.ObjectiveHasItem:
		return p.HasItem(o.Item, o.ItemKind)
	case entity.ObjectiveMoneyAtLeast:
		return p.Money >= o.Amount
	}
	return false
}

func allDone(names []string, done map[string]bool) bool {
	for _, n := range names {
		if !done[n] {
			return false
		}
	}
	return true
}
