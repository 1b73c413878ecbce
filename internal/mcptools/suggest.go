package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/erazemk/garderoba/internal/assistant"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// ChatTool handles the wardrobe_chat MCP tool.
type ChatTool struct {
	chat *assistant.Conversation
}

// NewChatTool creates a ChatTool over a conversation.
func NewChatTool(chat *assistant.Conversation) *ChatTool {
	return &ChatTool{chat: chat}
}

// Definition returns the MCP tool definition for wardrobe_chat.
func (t *ChatTool) Definition() mcp.Tool {
	return mcp.NewTool("wardrobe_chat",
		mcp.WithDescription(
			"Talk to the outfit assistant. It understands outfit requests (\"a casual outfit for summer\"), "+
				"feedback (\"try again\", \"love it\") and the commands save, wear and laundry.",
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The user's message"),
		),
	)
}

// Handle processes the wardrobe_chat tool call.
func (t *ChatTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msg := req.GetString("message", "")
	if msg == "" {
		return mcp.NewToolResultError("'message' is required"), nil
	}

	reply, err := t.chat.Process(ctx, msg)
	if err != nil {
		return engineResult("chat", err), nil
	}
	return mcp.NewToolResultText(reply.Message), nil
}

// SuggestTool handles the outfit_suggest MCP tool.
type SuggestTool struct {
	svc     *wardrobe.Service
	session *Session
}

// NewSuggestTool creates a SuggestTool.
func NewSuggestTool(svc *wardrobe.Service, session *Session) *SuggestTool {
	return &SuggestTool{svc: svc, session: session}
}

// Definition returns the MCP tool definition for outfit_suggest.
func (t *SuggestTool) Definition() mcp.Tool {
	return mcp.NewTool("outfit_suggest",
		mcp.WithDescription(
			"Propose an outfit from clean wardrobe items. Style, occasion, season and garment hints are read from the request text.",
		),
		mcp.WithString("request",
			mcp.Description("Free-text request, e.g. 'formal outfit for a winter wedding'. Empty means anything goes."),
		),
	)
}

// Handle processes the outfit_suggest tool call.
func (t *SuggestTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := t.svc.Request(ctx, req.GetString("request", ""))
	if err != nil {
		return engineResult("suggesting outfit", err), nil
	}
	t.session.remember(p)
	return mcp.NewToolResultText(fmt.Sprintf("%s\n\nProposal ID: %s", p.Message, p.ID)), nil
}

// GenerateNewTool handles the outfit_generate_new MCP tool.
type GenerateNewTool struct {
	svc     *wardrobe.Service
	session *Session
}

// NewGenerateNewTool creates a GenerateNewTool.
func NewGenerateNewTool(svc *wardrobe.Service, session *Session) *GenerateNewTool {
	return &GenerateNewTool{svc: svc, session: session}
}

// Definition returns the MCP tool definition for outfit_generate_new.
func (t *GenerateNewTool) Definition() mcp.Tool {
	return mcp.NewTool("outfit_generate_new",
		mcp.WithDescription(
			"Propose a different outfit than the last one, keeping its style, occasion and season.",
		),
	)
}

// Handle processes the outfit_generate_new tool call.
func (t *GenerateNewTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prev := t.session.Last()
	if prev == nil {
		return mcp.NewToolResultError("no outfit has been suggested yet; call outfit_suggest first"), nil
	}

	p, err := t.svc.GenerateNew(ctx, prev)
	if err != nil {
		return engineResult("generating outfit", err), nil
	}
	t.session.remember(p)
	return mcp.NewToolResultText(fmt.Sprintf("%s\n\nProposal ID: %s", p.Message, p.ID)), nil
}

// SaveTool handles the outfit_save MCP tool.
type SaveTool struct {
	svc     *wardrobe.Service
	session *Session
}

// NewSaveTool creates a SaveTool.
func NewSaveTool(svc *wardrobe.Service, session *Session) *SaveTool {
	return &SaveTool{svc: svc, session: session}
}

// Definition returns the MCP tool definition for outfit_save.
func (t *SaveTool) Definition() mcp.Tool {
	return mcp.NewTool("outfit_save",
		mcp.WithDescription("Save the last suggested outfit to the wardrobe."),
	)
}

// Handle processes the outfit_save tool call.
func (t *SaveTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := t.session.Last()
	if p == nil {
		return mcp.NewToolResultError("no outfit has been suggested yet; call outfit_suggest first"), nil
	}

	outfit, err := t.svc.SaveProposal(ctx, p)
	if err != nil {
		return engineResult("saving outfit", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Outfit %q saved with %d items.\nOutfit ID: %d", outfit.Name, len(outfit.ItemIDs), outfit.ID)), nil
}
