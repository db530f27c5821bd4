// Package config provides scenario and settings management for the game.
//
// The config package handles:
//   - Loading scenarios (world content) from YAML files
//   - Scenario validation, reporting every problem at once
//   - Building a fresh engine state from a scenario
//   - Process settings from a config file and SANANDREAS_* variables
//
// Scenario Format:
//
// A scenario defines the map size, the player's start, NPCs with the
// missions they offer, items lying around, shops with their catalogs,
// enemies, vehicles and the mission chain itself. Two scenarios are built
// in: default (the Grove Street story on an 80x25 map) and short_story.
// Files in the scenario directory shadow built-ins of the same name.
//
// Usage:
//
//	manager, err := config.NewManager("scenarios")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Build a fresh world
//	state, err := manager.NewWorld("default")
//
//	// List available scenarios
//	infos, err := manager.ListScenarios()
package config
