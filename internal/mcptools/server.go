package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/erazemk/garderoba/internal/assistant"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

const instructions = `Garderoba keeps a personal wardrobe: items, outfits, laundry state and an outfit calendar.
Use outfit_suggest to propose an outfit from clean items, outfit_generate_new for an alternative,
outfit_save to keep it and outfit_wear once it was worn. Worn items become dirty until marked clean.`

// NewServer returns an MCP server with every wardrobe tool registered.
func NewServer(svc *wardrobe.Service, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"garderoba",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	session := &Session{}
	for _, tool := range []interface {
		Definition() mcp.Tool
		Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
	}{
		NewChatTool(assistant.New(svc, assistant.DefaultHistory)),
		NewSuggestTool(svc, session),
		NewGenerateNewTool(svc, session),
		NewSaveTool(svc, session),
		NewWearTool(svc),
		NewMarkDirtyTool(svc),
		NewMarkCleanTool(svc),
		NewScheduleTool(svc),
		NewTodayTool(svc),
		NewUpcomingTool(svc),
		NewLaundryStatsTool(svc),
		NewWearStatsTool(svc),
		NewColorStatsTool(svc),
	} {
		s.AddTool(tool.Definition(), tool.Handle)
	}
	return s
}
