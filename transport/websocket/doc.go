// Package websocket streams world snapshots to spectators of hosted games.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Snapshot broadcasting after every command
//   - Replay of the latest snapshot to new spectators
//   - Connection lifecycle management
//
// Architecture:
//
// A central Hub owns every connection. Registration, removal and fan-out all
// run on the goroutine executing Run, so the hub needs no locks. Each client
// has a read pump that only watches for pongs and close frames and a write
// pump that delivers queued messages and pings.
//
// Message Protocol:
//
// Spectators connect to /ws?session=ID and receive JSON messages:
//
//	{"session_id": "...", "event": "snapshot", "snapshot": {...}}
//
// Messages sent by clients are read and discarded.
//
// Usage:
//
//	hub := websocket.NewHub(log)
//	go hub.Run(ctx)
//
//	svc := service.NewGameService(sessions, scenarios,
//		service.WithListener(hub.Publish))
package websocket
