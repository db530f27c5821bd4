// Package mcp exposes the game service as a Model Context Protocol server.
//
// Agents start games with new_game, play them with send_command (one command
// or a list) and read the HUD and map with game_state. reset_game,
// command_history, list_sessions, list_scenarios and game_instructions cover
// the rest. Handlers call the GameService directly; no HTTP hop is involved.
//
// The server runs over stdio (ServeStdio) or behind an HTTP endpoint through
// HandleMessage.
//
// Usage:
//
//	srv := mcp.NewServer(gameService, logger)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
