// Package session provides session management for hosted San Andreas games.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Session IDs generated from random UUIDs
//   - Lazy reload of sessions evicted from memory
//   - File persistence of session envelopes
//
// Core Types:
//
// Manager is the session manager. It builds one engine per session from the
// session's scenario and keeps the sessions in memory, keyed by lower-case
// ID. FilePersistence stores each session as a JSON envelope holding the
// session metadata and a save document of its world.
//
// Save Slots:
//
// With FilePersistence every session also gets a manual save slot next to its
// envelope. The in-game save and load commands write and read that slot; the
// envelope itself is rewritten after every command.
//
// Usage:
//
//	scenarios, err := config.NewManager("scenarios")
//	if err != nil {
//		log.Fatal(err)
//	}
//	store, err := session.NewFilePersistence("sessions", scenarios)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManager(scenarios, session.WithPersistence(store))
//
//	sess, err := manager.Create("", "default")
//
// Cleanup:
//
// CleanupExpiredSessions evicts idle sessions from memory after persisting
// them. Get reloads an evicted session from disk on demand.
package session
