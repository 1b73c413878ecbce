package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/erazemk/garderoba/internal/wardrobe"
)

// StatsTool handles the stats_laundry, stats_wear and stats_colors MCP tools.
type StatsTool struct {
	svc  *wardrobe.Service
	kind string
}

// Stats kinds.
const (
	statsLaundry = "laundry"
	statsWear    = "wear"
	statsColors  = "colors"
)

// NewLaundryStatsTool creates the stats_laundry tool.
func NewLaundryStatsTool(svc *wardrobe.Service) *StatsTool {
	return &StatsTool{svc: svc, kind: statsLaundry}
}

// NewWearStatsTool creates the stats_wear tool.
func NewWearStatsTool(svc *wardrobe.Service) *StatsTool {
	return &StatsTool{svc: svc, kind: statsWear}
}

// NewColorStatsTool creates the stats_colors tool.
func NewColorStatsTool(svc *wardrobe.Service) *StatsTool {
	return &StatsTool{svc: svc, kind: statsColors}
}

// Definition returns the MCP tool definition.
func (t *StatsTool) Definition() mcp.Tool {
	switch t.kind {
	case statsWear:
		return mcp.NewTool("stats_wear",
			mcp.WithDescription("How often each outfit was worn, most worn first, with the last day worn."),
		)
	case statsColors:
		return mcp.NewTool("stats_colors",
			mcp.WithDescription("Color distribution of the wardrobe, optionally for one outfit or category."),
			mcp.WithNumber("outfit_id",
				mcp.Description("Only count the items of this outfit"),
			),
			mcp.WithString("category",
				mcp.Description("Only count items of this category (Shirt, Pants, Dress, Jacket, Shoes, Accessory, Jewelry)"),
			),
		)
	default:
		return mcp.NewTool("stats_laundry",
			mcp.WithDescription("How many items are clean and dirty, with percentages."),
		)
	}
}

// Handle processes the tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		v   any
		err error
	)
	switch t.kind {
	case statsWear:
		v, err = t.svc.StatsWear(ctx)
	case statsColors:
		v, err = t.svc.StatsColors(ctx, wardrobe.ColorFilter{
			OutfitID: int64(intArg(req, "outfit_id", 0)),
			Category: req.GetString("category", ""),
		})
	default:
		v, err = t.svc.StatsLaundry(ctx)
	}
	if err != nil {
		return engineResult("computing stats", err), nil
	}
	return jsonResult(v), nil
}
