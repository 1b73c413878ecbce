package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// ScheduleTool handles the calendar_schedule MCP tool.
type ScheduleTool struct {
	svc *wardrobe.Service
}

// NewScheduleTool creates a ScheduleTool.
func NewScheduleTool(svc *wardrobe.Service) *ScheduleTool {
	return &ScheduleTool{svc: svc}
}

// Definition returns the MCP tool definition for calendar_schedule.
func (t *ScheduleTool) Definition() mcp.Tool {
	return mcp.NewTool("calendar_schedule",
		mcp.WithDescription(
			"Plan an outfit for a day. A day holds one outfit; scheduling a taken day fails. "+
				"Pass an RRULE (e.g. FREQ=WEEKLY;BYDAY=MO) to repeat it, skipping taken days.",
		),
		mcp.WithNumber("outfit_id",
			mcp.Required(),
			mcp.Description("ID of the outfit"),
		),
		mcp.WithString("date",
			mcp.Description("Day as YYYY-MM-DD (default: today). With a rule this is the first day."),
		),
		mcp.WithString("rule",
			mcp.Description("Optional RRULE for repeating the outfit, up to one year ahead"),
		),
		mcp.WithString("notes",
			mcp.Description("Optional notes"),
		),
	)
}

// Handle processes the calendar_schedule tool call.
func (t *ScheduleTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req, "outfit_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date := req.GetString("date", "")
	notes := req.GetString("notes", "")

	if rule := req.GetString("rule", ""); rule != "" {
		res, err := t.svc.ScheduleRecurring(ctx, date, rule, id, notes)
		if err != nil {
			return engineResult("scheduling outfit", err), nil
		}
		msg := fmt.Sprintf("Scheduled outfit %d on %d days.", id, len(res.Scheduled))
		if len(res.Occupied) > 0 {
			msg += fmt.Sprintf(" Skipped taken days: %s.", strings.Join(res.Occupied, ", "))
		}
		return mcp.NewToolResultText(msg), nil
	}

	entry, err := t.svc.Schedule(ctx, date, id, notes)
	if err != nil {
		return engineResult("scheduling outfit", err), nil
	}
	return mcp.NewToolResultText("Scheduled: " + formatEntry(*entry)), nil
}

// TodayTool handles the calendar_today MCP tool.
type TodayTool struct {
	svc *wardrobe.Service
}

// NewTodayTool creates a TodayTool.
func NewTodayTool(svc *wardrobe.Service) *TodayTool {
	return &TodayTool{svc: svc}
}

// Definition returns the MCP tool definition for calendar_today.
func (t *TodayTool) Definition() mcp.Tool {
	return mcp.NewTool("calendar_today",
		mcp.WithDescription("Show the outfit planned for today."),
	)
}

// Handle processes the calendar_today tool call.
func (t *TodayTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entry, err := t.svc.TodayEntry(ctx)
	if err != nil {
		return engineResult("reading calendar", err), nil
	}
	if entry == nil {
		return mcp.NewToolResultText("Nothing is planned for today."), nil
	}
	return mcp.NewToolResultText("Today: " + formatEntry(*entry)), nil
}

// UpcomingTool handles the calendar_upcoming MCP tool.
type UpcomingTool struct {
	svc *wardrobe.Service
}

// NewUpcomingTool creates an UpcomingTool.
func NewUpcomingTool(svc *wardrobe.Service) *UpcomingTool {
	return &UpcomingTool{svc: svc}
}

// Definition returns the MCP tool definition for calendar_upcoming.
func (t *UpcomingTool) Definition() mcp.Tool {
	return mcp.NewTool("calendar_upcoming",
		mcp.WithDescription("List planned outfits from today on, in date order."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries (default from configuration)"),
		),
	)
}

// Handle processes the calendar_upcoming tool call.
func (t *UpcomingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := t.svc.Upcoming(ctx, intArg(req, "limit", 0))
	if err != nil {
		return engineResult("reading calendar", err), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("No upcoming outfits planned."), nil
	}

	var b strings.Builder
	b.WriteString("Upcoming outfits:\n")
	for _, e := range entries {
		b.WriteString("- " + formatEntry(e) + "\n")
	}
	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}

func formatEntry(e model.CalendarEntry) string {
	s := fmt.Sprintf("%s %s (outfit %d)", e.Date, e.OutfitName, e.OutfitID)
	if e.Notes != "" {
		s += ": " + e.Notes
	}
	return s
}
