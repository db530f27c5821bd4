// Package service provides the business logic layer for hosted games.
//
// The service package implements:
//   - Multi-session game management
//   - Command execution with auto-save
//   - Snapshots of a world for clients
//   - Command history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles session creation, retrieval and
// storage. ScenarioCatalog resolves scenario names to fresh worlds.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and
// the game engine. Every operation that touches a world runs under the
// service mutex, so two requests never interleave on one engine. After each
// command the session is saved and registered listeners receive the new
// snapshot.
//
// Usage:
//
//	svc := service.NewGameService(sessions, scenarios,
//		service.WithLogger(log),
//		service.WithListener(hub.Publish))
//
//	info, err := svc.NewGame(ctx, "default")
//	res, err := svc.Command(ctx, info.ID, "w")
package service
