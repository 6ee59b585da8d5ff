package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/plancal/pkg/event"
)

type rpcReply struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func call(t *testing.T, srv *server.MCPServer, id int, method string, params any) rpcReply {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp := srv.HandleMessage(context.Background(), raw)
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	var reply rpcReply
	if err := json.Unmarshal(data, &reply); err != nil {
		t.Fatalf("decode response %s: %v", data, err)
	}
	if reply.Error != nil {
		t.Fatalf("%s failed: %d %s", method, reply.Error.Code, reply.Error.Message)
	}
	return reply
}

func toolText(t *testing.T, reply rpcReply) (string, bool) {
	t.Helper()
	var result struct {
		IsError bool `json:"isError"`
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(reply.Result, &result); err != nil {
		t.Fatalf("decode tool result: %v", err)
	}
	if len(result.Content) == 0 {
		t.Fatalf("tool result has no content")
	}
	return result.Content[0].Text, result.IsError
}

func resourceText(t *testing.T, reply rpcReply) string {
	t.Helper()
	var result struct {
		Contents []struct {
			URI  string `json:"uri"`
			Text string `json:"text"`
		} `json:"contents"`
	}
	if err := json.Unmarshal(reply.Result, &result); err != nil {
		t.Fatalf("decode resource result: %v", err)
	}
	if len(result.Contents) == 0 {
		t.Fatalf("resource result has no contents")
	}
	return result.Contents[0].Text
}

func TestServerAddEventTool(t *testing.T) {
	svc := newTestService(t, false)
	srv := newServer("plancal", "test", svc)

	reply := call(t, srv, 1, "tools/call", map[string]any{
		"name": "add_event",
		"arguments": map[string]any{
			"title":     "Retro",
			"date":      "2025-07-18",
			"startTime": "16:00",
			"endTime":   "17:00",
			"type":      "review",
			"priority":  "low",
		},
	})
	text, isErr := toolText(t, reply)
	if isErr {
		t.Fatalf("add_event returned a tool error: %s", text)
	}
	var dto EventDTO
	if err := json.Unmarshal([]byte(text), &dto); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if dto.Title != "Retro" || dto.Date != "2025-07-18" || dto.Type != event.Review || dto.Priority != event.Low {
		t.Fatalf("unexpected event %+v", dto.Event)
	}

	reply = call(t, srv, 2, "tools/call", map[string]any{
		"name":      "add_event",
		"arguments": map[string]any{"title": "No time"},
	})
	if _, isErr := toolText(t, reply); !isErr {
		t.Fatalf("expected a tool error for a missing start time")
	}
}

func TestServerEventTemplate(t *testing.T) {
	svc := newTestService(t, true)
	srv := newServer("plancal", "test", svc)

	reply := call(t, srv, 1, "resources/read", map[string]any{"uri": "plancal://events/sample-1"})
	var payload struct {
		Event EventDTO `json:"event"`
	}
	if err := json.Unmarshal([]byte(resourceText(t, reply)), &payload); err != nil {
		t.Fatalf("decode event resource: %v", err)
	}
	if payload.Event.ID != "sample-1" {
		t.Fatalf("expected sample-1, got %+v", payload.Event.Event)
	}
}

func TestServerCalendarViewMissingStory(t *testing.T) {
	svc := newTestService(t, true, launch())
	srv := newServer("plancal", "test", svc)

	reply := call(t, srv, 1, "tools/call", map[string]any{
		"name":      "calendar_view",
		"arguments": map[string]any{"story": 99, "view": "month"},
	})
	text, isErr := toolText(t, reply)
	if isErr {
		t.Fatalf("calendar_view returned a tool error: %s", text)
	}
	var w WindowDTO
	if err := json.Unmarshal([]byte(text), &w); err != nil {
		t.Fatalf("decode window: %v", err)
	}
	if w.Found || w.Note != fmt.Sprintf("story %d not found", 99) {
		t.Fatalf("expected a not found window, got found=%v note=%q", w.Found, w.Note)
	}
	if len(w.Days) == 0 {
		t.Fatalf("expected the month to render")
	}
}
