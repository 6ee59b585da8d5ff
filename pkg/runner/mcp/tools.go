package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/plancal/pkg/event"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListStoriesTool(srv, svc)
	registerCalendarViewTool(srv, svc)
	registerNavigateTool(srv, svc)
	registerAddEventTool(srv, svc)
	registerListEventsTool(srv, svc)
	registerGetEventTool(srv, svc)
}

func registerListStoriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_stories",
		mcp.WithDescription("List the stored story records that calendars can be built from."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stories, err := svc.ListStories(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"stories": stories,
			"count":   len(stories),
		})
	})
}

func registerCalendarViewTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"calendar_view",
		mcp.WithDescription("Compute the calendar window. Optionally load a story, switch granularity or jump to a date first."),
		mcp.WithNumber("story",
			mcp.Description("Story id whose deadline and features become events."),
		),
		mcp.WithString("view",
			mcp.Description("Granularity of the window."),
			mcp.Enum("day", "week", "month"),
		),
		mcp.WithString("on",
			mcp.Description("Reference date: YYYY-MM-DD, M/D, today, tomorrow or an offset like +1w."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w, err := svc.CalendarView(ctx, ViewOptions{
			StoryID:     request.GetInt("story", 0),
			Granularity: request.GetString("view", ""),
			On:          request.GetString("on", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(w)
	})
}

func registerNavigateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"navigate",
		mcp.WithDescription("Move the calendar one unit of the current granularity, or back to today."),
		mcp.WithString("direction",
			mcp.Required(),
			mcp.Description("Where to move."),
			mcp.Enum("next", "prev", "today"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		direction, err := request.RequireString("direction")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		w, err := svc.Navigate(ctx, direction)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(w)
	})
}

func registerAddEventTool(srv *server.MCPServer, svc *Service) {
	types := make([]string, 0, len(event.AllTypes()))
	for _, t := range event.AllTypes() {
		types = append(types, t.String())
	}
	priorities := make([]string, 0, len(event.AllPriorities()))
	for _, p := range event.AllPriorities() {
		priorities = append(priorities, p.String())
	}

	tool := mcp.NewTool(
		"add_event",
		mcp.WithDescription("Add an event to this server session. Title, date and start time are required."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title."),
		),
		mcp.WithString("description",
			mcp.Description("Optional free text."),
		),
		mcp.WithString("date",
			mcp.Description("YYYY-MM-DD; defaults to the current reference date."),
		),
		mcp.WithString("startTime",
			mcp.Required(),
			mcp.Description("Start time as HH:MM."),
		),
		mcp.WithString("endTime",
			mcp.Description("Optional end time as HH:MM."),
		),
		mcp.WithString("type",
			mcp.Description("Event type."),
			mcp.Enum(types...),
		),
		mcp.WithString("priority",
			mcp.Description("Event priority."),
			mcp.Enum(priorities...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args AddEventOptions
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddEvent(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListEventsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_events",
		mcp.WithDescription("List every event on the board: story deadline, features, samples and events added in this session."),
		mcp.WithString("on",
			mcp.Description("Only events on this date."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		on := request.GetString("on", "")
		events, err := svc.ListEvents(ctx, on)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"on":     on,
			"events": events,
			"count":  len(events),
		})
	})
}

func registerGetEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_event",
		mcp.WithDescription("Fetch a single event by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Event identifier such as story-7, feature-3 or event-<uuid>."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.EventByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
