// Package entity defines the things that live on the San Andreas map.
//
// Every placed thing implements Object and reports a stable Kind tag used for
// rendering priority and save-file dispatch. Characters (the player, NPCs,
// Big Smoke and enemies) share Character for health, stamina, money and
// inventory bookkeeping. Items are a single tagged struct whose Kind selects
// which effect field is meaningful.
//
// All stat mutations clamp to their declared ranges:
//
//	p := entity.NewPlayer("CJ", entity.Position{X: 40, Y: 12}, 80, 25)
//	p.TakeDamage(150) // health is now 0, returns true
//	p.Heal(30)        // health is now 30
//
// Missions are plain data here; package mission owns their rules.
package entity
