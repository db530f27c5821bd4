package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/service"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// Server exposes a GameService as MCP tools
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
	log       zerolog.Logger
}

// NewServer builds the MCP server and registers every tool.
func NewServer(svc service.GameService, log zerolog.Logger) *Server {
	s := &Server{service: svc, log: log}
	s.mcpServer = server.NewMCPServer(
		"San Andreas",
		Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`San Andreas - MCP Interface

You play CJ on a grid map of Los Santos. Each tool call talks to the game service directly.

GETTING STARTED:
1. list_scenarios to see the available maps
2. new_game to start a session and note its session_id
3. send_command with single-letter commands (w/a/s/d, e, f, x, i, u N)
4. game_state to look at the map and HUD at any time

Call game_instructions for the full rules.`),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools over stdin and stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// HandleMessage processes one JSON-RPC message, for the HTTP endpoint.
func (s *Server) HandleMessage(ctx context.Context, body json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, body)
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID returned by new_game",
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game session on a scenario",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scenario": map[string]interface{}{
					"type":        "string",
					"description": "Scenario id (see list_scenarios). Empty means the default scenario",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "send_command",
		Description: "Send one command, or a list of commands, to a session. Menu prompts take their answer as the next command",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"command": map[string]interface{}{
					"type":        "string",
					"description": "A single command such as w, e, f or a menu answer such as 1 or y",
				},
				"commands": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": fmt.Sprintf("Commands to run in order, up to %d", service.MaxBatchCommands),
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleSendCommand)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the HUD, map and mission status of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Restart a session from a fresh world of the same scenario",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleReset)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "command_history",
		Description: "Get the command log of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleHistory)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_scenarios",
		Description: "List the scenarios a game can be started on",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListScenarios)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules, the map legend and the command list",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenario := cast.ToString(request.GetArguments()["scenario"])

	info, err := s.service.NewGame(ctx, scenario)
	if err != nil {
		return s.toolError("new_game", err), nil
	}
	s.log.Info().Str("session", info.ID).Str("scenario", info.Scenario).Msg("mcp game created")

	result := fmt.Sprintf("Created session: %s\nScenario: %s\n\n%s",
		info.ID, info.Scenario, formatSnapshot(info.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleSendCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])
	if sessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	if raw, ok := args["commands"]; ok && raw != nil {
		inputs, err := cast.ToStringSliceE(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("commands must be a list of strings: %v", err)), nil
		}
		if len(inputs) > 0 {
			batch, err := s.service.Commands(ctx, sessionID, inputs)
			if err != nil {
				return s.toolError("send_command", err), nil
			}
			return mcp.NewToolResultText(formatBatch(batch)), nil
		}
	}

	input, ok := args["command"]
	if !ok {
		return mcp.NewToolResultError("command or commands is required"), nil
	}
	res, err := s.service.Command(ctx, sessionID, cast.ToString(input))
	if err != nil {
		return s.toolError("send_command", err), nil
	}
	return mcp.NewToolResultText(formatCommand(res)), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(request.GetArguments()["session_id"])

	snap, err := s.service.Snapshot(ctx, sessionID)
	if err != nil {
		return s.toolError("game_state", err), nil
	}
	return mcp.NewToolResultText(formatSnapshot(snap)), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(request.GetArguments()["session_id"])

	snap, err := s.service.Reset(ctx, sessionID)
	if err != nil {
		return s.toolError("reset_game", err), nil
	}
	return mcp.NewToolResultText("Game reset.\n\n" + formatSnapshot(snap)), nil
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])
	opts := service.HistoryOptions{
		Page:  cast.ToInt(args["page"]),
		Limit: cast.ToInt(args["limit"]),
	}

	history, err := s.service.History(ctx, sessionID, opts)
	if err != nil {
		return s.toolError("command_history", err), nil
	}
	return mcp.NewToolResultText(formatHistory(history)), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.service.ListSessions(ctx)
	if err != nil {
		return s.toolError("list_sessions", err), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", len(sessions))
	for _, info := range sessions {
		status := engine.StatusPlaying
		tick := 0
		if info.Snapshot != nil {
			status = info.Snapshot.Status
			tick = info.Snapshot.Tick
		}
		fmt.Fprintf(&b, "- %s (Scenario: %s, Status: %s, Tick: %d, Created: %s)\n",
			info.ID, info.Scenario, status, tick, info.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenarios, err := s.service.ListScenarios(ctx)
	if err != nil {
		return s.toolError("list_scenarios", err), nil
	}

	var b strings.Builder
	b.WriteString("Available Scenarios:\n\n")
	for _, sc := range scenarios {
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n  Map: %dx%d, Missions: %d\n\n",
			sc.ID, sc.Name, sc.Description, sc.Width, sc.Height, sc.Missions)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

// toolError reports a service failure to the agent. Only unexpected errors
// are logged.
func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	if !errors.Is(err, service.ErrSessionNotFound) && !errors.Is(err, service.ErrGameOver) {
		s.log.Error().Err(err).Str("tool", tool).Msg("mcp tool failed")
	}
	return mcp.NewToolResultError(err.Error())
}
