package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/sanandreas/game/config"
	"github.com/wricardo/sanandreas/game/service"
	"github.com/wricardo/sanandreas/game/session"
)

func newTestServer(t *testing.T) (*Server, service.GameService) {
	t.Helper()
	scenarios, err := config.NewManager("")
	require.NoError(t, err)
	store, err := session.NewFilePersistence(t.TempDir(), scenarios)
	require.NoError(t, err)
	sessions := session.NewManager(scenarios, session.WithPersistence(store))
	svc := service.NewGameService(sessions, scenarios)
	return NewServer(svc, zerolog.Nop()), svc
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	var b strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}

func newSession(t *testing.T, svc service.GameService) string {
	t.Helper()
	info, err := svc.NewGame(context.Background(), "short_story")
	require.NoError(t, err)
	return info.ID
}

func TestNewServer(t *testing.T) {
	srv, _ := newTestServer(t)
	require.NotNil(t, srv.MCPServer())

	msg, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/list",
	})
	require.NoError(t, err)
	resp := srv.HandleMessage(context.Background(), msg)
	out, err := json.Marshal(resp)
	require.NoError(t, err)

	for _, name := range []string{
		"new_game", "send_command", "game_state", "reset_game",
		"command_history", "list_sessions", "list_scenarios", "game_instructions",
	} {
		assert.Contains(t, string(out), `"`+name+`"`)
	}
}

func TestHandleNewGame(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	res, err := srv.handleNewGame(ctx, callRequest("new_game", map[string]interface{}{"scenario": "short_story"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "Created session:")
	assert.Contains(t, text, "Scenario: short_story")
	assert.Contains(t, text, "Position: (15,6)")

	sessions, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	res, err = srv.handleNewGame(ctx, callRequest("new_game", map[string]interface{}{"scenario": "atlantis"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "atlantis")
}

func TestHandleSendCommand(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()
	id := newSession(t, svc)

	t.Run("single", func(t *testing.T) {
		res, err := srv.handleSendCommand(ctx, callRequest("send_command", map[string]interface{}{
			"session_id": id,
			"command":    "d",
		}))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Contains(t, resultText(t, res), "Position: (16,6) | Tick: 1")
	})

	t.Run("help is free", func(t *testing.T) {
		res, err := srv.handleSendCommand(ctx, callRequest("send_command", map[string]interface{}{
			"session_id": id,
			"command":    "?",
		}))
		require.NoError(t, err)
		assert.Contains(t, resultText(t, res), "(no turn passed)")
	})

	t.Run("batch", func(t *testing.T) {
		res, err := srv.handleSendCommand(ctx, callRequest("send_command", map[string]interface{}{
			"session_id": id,
			"commands":   []interface{}{"a", "a", "?"},
		}))
		require.NoError(t, err)
		assert.False(t, res.IsError)
		text := resultText(t, res)
		assert.Contains(t, text, "Executed 3/3 commands, 2 turns passed")
		assert.Contains(t, text, "Position: (14,6) | Tick: 3")
	})

	t.Run("missing arguments", func(t *testing.T) {
		res, err := srv.handleSendCommand(ctx, callRequest("send_command", map[string]interface{}{}))
		require.NoError(t, err)
		assert.True(t, res.IsError)

		res, err = srv.handleSendCommand(ctx, callRequest("send_command", map[string]interface{}{"session_id": id}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("unknown session", func(t *testing.T) {
		res, err := srv.handleSendCommand(ctx, callRequest("send_command", map[string]interface{}{
			"session_id": "nope",
			"command":    "w",
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), service.ErrSessionNotFound.Error())
	})

	t.Run("after quit", func(t *testing.T) {
		_, err := srv.handleSendCommand(ctx, callRequest("send_command", map[string]interface{}{
			"session_id": id,
			"command":    "q",
		}))
		require.NoError(t, err)
		res, err := srv.handleSendCommand(ctx, callRequest("send_command", map[string]interface{}{
			"session_id": id,
			"command":    "w",
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), service.ErrGameOver.Error())
	})
}

func TestHandleGameStateAndReset(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()
	id := newSession(t, svc)
	_, err := svc.Command(ctx, id, "w")
	require.NoError(t, err)

	res, err := srv.handleGameState(ctx, callRequest("game_state", map[string]interface{}{"session_id": id}))
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "Health: ")
	assert.Contains(t, text, "Map:")
	assert.Contains(t, text, "Missions:")
	assert.Contains(t, text, "Position: (15,5) | Tick: 1")

	res, err = srv.handleReset(ctx, callRequest("reset_game", map[string]interface{}{"session_id": id}))
	require.NoError(t, err)
	text = resultText(t, res)
	assert.Contains(t, text, "Game reset.")
	assert.Contains(t, text, "Position: (15,6) | Tick: 0")

	res, err = srv.handleGameState(ctx, callRequest("game_state", map[string]interface{}{"session_id": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleHistory(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()
	id := newSession(t, svc)
	_, err := svc.Commands(ctx, id, []string{"w", "s", "d"})
	require.NoError(t, err)

	res, err := srv.handleHistory(ctx, callRequest("command_history", map[string]interface{}{
		"session_id": id,
		"page":       float64(1),
		"limit":      "2",
	}))
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "Page 1/2, Total: 3")
	assert.Contains(t, text, "1. w (tick 1")
	assert.Contains(t, text, "More entries on the next page.")
}

func TestHandleListings(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()
	id := newSession(t, svc)

	res, err := srv.handleListSessions(ctx, callRequest("list_sessions", nil))
	require.NoError(t, err)
	text := resultText(t, res)
	assert.Contains(t, text, "Active Sessions (1):")
	assert.Contains(t, text, id)

	res, err = srv.handleListScenarios(ctx, callRequest("list_scenarios", nil))
	require.NoError(t, err)
	text = resultText(t, res)
	assert.Contains(t, text, "• default")
	assert.Contains(t, text, "• short_story")
	assert.Contains(t, text, "Map: 80x25")

	res, err = srv.handleGameInstructions(ctx, callRequest("game_instructions", nil))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "MAP LEGEND")
}
