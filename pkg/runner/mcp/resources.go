package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerStoriesResource(srv, svc)
	registerWindowResource(srv, svc)
	registerEventTemplate(srv, svc)
}

func registerStoriesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"plancal://stories",
		"Stories",
		mcp.WithResourceDescription("All stored stories with their feature counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		stories, err := svc.ListStories(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"stories": stories,
			"count":   len(stories),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerWindowResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"plancal://calendar",
		"Calendar",
		mcp.WithResourceDescription("The calendar window at the current reference date and granularity."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		w, err := svc.CalendarView(ctx, ViewOptions{})
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, w)
	})
}

func registerEventTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"plancal://events/{id}",
		"Event Details",
		mcp.WithTemplateDescription("Detailed information about a single event."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments, "id")
		if id == "" {
			return nil, fmt.Errorf("event id is required")
		}

		dto, err := svc.EventByID(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"event": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg reads a URI template variable. The server binds variables as
// []string; a plain string is accepted too.
func templateArg(args map[string]any, name string) string {
	switch v := args[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
