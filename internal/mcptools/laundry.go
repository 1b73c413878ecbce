package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// WearTool handles the outfit_wear MCP tool.
type WearTool struct {
	svc *wardrobe.Service
}

// NewWearTool creates a WearTool.
func NewWearTool(svc *wardrobe.Service) *WearTool {
	return &WearTool{svc: svc}
}

// Definition returns the MCP tool definition for outfit_wear.
func (t *WearTool) Definition() mcp.Tool {
	return mcp.NewTool("outfit_wear",
		mcp.WithDescription("Record that an outfit was worn. Every item in it becomes dirty."),
		mcp.WithNumber("outfit_id",
			mcp.Required(),
			mcp.Description("ID of the worn outfit"),
		),
		mcp.WithString("date",
			mcp.Description("Day worn as YYYY-MM-DD (default: today)"),
		),
		mcp.WithString("notes",
			mcp.Description("Optional notes"),
		),
	)
}

// Handle processes the outfit_wear tool call.
func (t *WearTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req, "outfit_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := t.svc.Wear(ctx, id, req.GetString("date", ""), req.GetString("notes", ""))
	if err != nil {
		return engineResult("recording wear", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Outfit %d worn on %s; %d items marked dirty.", id, event.WornOn, len(event.ItemIDs))), nil
}

// StatusTool handles the item_mark_dirty and item_mark_clean MCP tools.
type StatusTool struct {
	svc    *wardrobe.Service
	status string
}

// NewMarkDirtyTool creates the item_mark_dirty tool.
func NewMarkDirtyTool(svc *wardrobe.Service) *StatusTool {
	return &StatusTool{svc: svc, status: model.StatusDirty}
}

// NewMarkCleanTool creates the item_mark_clean tool.
func NewMarkCleanTool(svc *wardrobe.Service) *StatusTool {
	return &StatusTool{svc: svc, status: model.StatusClean}
}

// Definition returns the MCP tool definition.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("item_mark_"+t.status,
		mcp.WithDescription(fmt.Sprintf("Mark one wardrobe item as %s.", t.status)),
		mcp.WithNumber("item_id",
			mcp.Required(),
			mcp.Description("ID of the item"),
		),
	)
}

// Handle processes the tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req, "item_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if t.status == model.StatusDirty {
		err = t.svc.MarkDirty(ctx, id)
	} else {
		err = t.svc.MarkClean(ctx, id)
	}
	if err != nil {
		return engineResult("updating item", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Item %d is now %s.", id, t.status)), nil
}
