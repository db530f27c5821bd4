// Package api provides the HTTP REST API for hosted San Andreas games.
//
// The api package implements:
//   - Session management endpoints
//   - Command execution, single or batched
//   - World views as JSON snapshots or plain text
//   - Scenario listing
//   - WebSocket upgrade for spectators
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Start a game, body {"scenario": "default"}
//   - GET /api/sessions - List sessions (sort=created|accessed, order, limit)
//   - GET /api/sessions/{id} - Get one session with its snapshot
//   - DELETE /api/sessions/{id} - Delete a session and its files
//
// Game Operations:
//   - POST /api/sessions/{id}/commands - {"command": "w"} or {"commands": ["w", "d"]}
//   - POST /api/sessions/{id}/reset - Restart the session's scenario
//   - GET /api/sessions/{id}/view - Snapshot, or ?format=text for the map
//   - GET /api/sessions/{id}/history - Paginated command log
//
// Other:
//   - GET /api/scenarios - Available scenarios
//   - GET /healthz - Liveness check
//   - GET /ws?session={id} - Spectate a session over WebSocket
//
// Errors:
//
// Failures return {"error": "..."} with 404 for unknown sessions, 400 for
// unknown scenarios and malformed bodies, and 409 for commands sent to a
// finished game.
package api
