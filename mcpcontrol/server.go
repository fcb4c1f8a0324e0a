// Package mcpcontrol exposes the engine as a set of Model Context
// Protocol tools, so an LLM agent can drive a chat session the same way
// an operator would. Grounded on the teacher's MCPServer in
// mcp_server.go: server.NewMCPServer plus a registerTools method adding
// one mcp.NewTool per capability, generalized from read-only SDR queries
// to the engine's mutating send/halt operations.
package mcpcontrol

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Philippe-Colt/ft8chat/chatproto"
)

// Server wraps a chatproto.Locked engine with an MCP tool surface.
type Server struct {
	engine    *chatproto.Locked
	mcpServer *server.MCPServer
}

// New creates a Server with every tool registered against engine.
func New(engine *chatproto.Locked) *Server {
	s := &Server{engine: engine}
	s.mcpServer = server.NewMCPServer("ft8chat", "1.0.0", server.WithToolCapabilities(true))
	s.registerTools()
	return s
}

// HTTPHandler wraps the MCP server for mounting under an HTTP mux.
func (s *Server) HTTPHandler() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("send_message",
			mcp.WithDescription("Send a free-text message to another station's two-digit ID over the echo-mode chat protocol. The call returns once the session starts; delivery completion arrives as a later state change, not from this call."),
			mcp.WithString("target", mcp.Required(), mcp.Description("Two-digit target station ID")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Free-text message, filtered to the FT8 free-text alphabet (A-Z, 0-9, space, + - . / ?)"))),
		s.handleSendMessage,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("send_broadcast",
			mcp.WithDescription("Broadcast a free-text message with no echo acknowledgement expected, terminated by the /AR sigil."),
			mcp.WithString("target", mcp.Required(), mcp.Description("Two-digit nominal target, typically a CQ group ID")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Free-text message to broadcast"))),
		s.handleSendBroadcast,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("halt_tx",
			mcp.WithDescription("Abort any transmission or reception in progress and return the engine to idle.")),
		s.handleHaltTx,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_state",
			mcp.WithDescription("Get the engine's current protocol state as a JSON object.")),
		s.handleGetState,
	)
}

func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := request.RequireString("target")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.engine.SendMessage(target, text)
	return mcp.NewToolResultText(fmt.Sprintf("session started to %s", target)), nil
}

func (s *Server) handleSendBroadcast(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := request.RequireString("target")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.engine.SendBroadcast(target, text)
	return mcp.NewToolResultText("broadcast started"), nil
}

func (s *Server) handleHaltTx(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.engine.HaltTx()
	return mcp.NewToolResultText("halted"), nil
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state := s.engine.State()
	data, err := json.Marshal(map[string]string{"state": state.String()})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal state: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
