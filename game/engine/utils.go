package engine

import "github.com/wricardo/sanandreas/game/entity"

// NearestEnemy returns the closest live enemy by Chebyshev distance.
func NearestEnemy(s *State) (*entity.Enemy, int, bool) {
	var nearest *entity.Enemy
	best := -1
	for pair := s.Enemies.Oldest(); pair != nil; pair = pair.Next() {
		en := pair.Value
		if !en.Alive() {
			continue
		}
		d := en.GetPosition().Chebyshev(s.Player.GetPosition())
		if best == -1 || d < best {
			nearest, best = en, d
		}
	}
	return nearest, best, nearest != nil
}

// ThreatLevel summarizes danger around the player: "low", "medium" or "high".
func ThreatLevel(s *State) string {
	_, d, ok := NearestEnemy(s)
	p := s.Player
	switch {
	case p.WantedLevel >= 3 || (ok && d <= 1 && p.Health <= 30):
		return "high"
	case p.WantedLevel > 0 || (ok && d <= 3):
		return "medium"
	}
	return "low"
}

// StatusLine is the one-line HUD text of the player.
func StatusLine(s *State) string { return statusLine(s) }
