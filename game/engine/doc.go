// Package engine runs the San Andreas turn loop.
//
// A GameEngine owns one State and advances it one command at a time:
//
//  1. Begin applies the periodic effects due at the current tick (needs
//     decay, wanted decay, police reinforcements).
//  2. Step parses a line of input and dispatches it to one handler, or feeds
//     it to the open Prompt (shop, inventory, mission offer).
//  3. When the action costs a turn, enemies act and the tick advances.
//
// Rejected actions and invalid input change nothing and cost no turn. Saving
// and loading are free actions as well.
//
// Usage:
//
//	eng, err := engine.NewEngine(state,
//		engine.WithRandom(engine.NewRandom(42)),
//		engine.WithStore(store))
//	if err != nil {
//		return err
//	}
//	for !eng.IsGameOver() {
//		printEvents(eng.Begin())
//		res := eng.Step(readLine())
//		printEvents(res.Events)
//	}
//
// All randomness flows through the Random interface so tests can script it.
package engine
