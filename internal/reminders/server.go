// Package reminders exposes the macOS Reminders store as MCP tools.
//
// The Store adapter turns the framework's asynchronous call surface into
// plain blocking calls; the Server registers one tool per operation and
// maps tool parameters onto the adapter. This process owns no state of
// its own: every read goes back to the OS store.
package reminders

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "reminders"
	serverVersion = "1.0.0"
)

// Server is the MCP server for macOS Reminders.
type Server struct {
	mcpServer    *server.MCPServer
	store        *Store
	defaultLimit int
}

// NewServer creates the Reminders MCP server backed by the given store.
// defaultLimit caps list-returning tools when the caller passes no limit;
// zero means unlimited.
func NewServer(store *Store, defaultLimit int) *Server {
	s := &Server{
		store:        store,
		defaultLimit: defaultLimit,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerListTools()
	s.registerReminderTools()
	s.registerBatchTools()
	s.registerSearchTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// jsonResult marshals v as the tool's text content.
func jsonResult(v any) *mcp.CallToolResult {
	output, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(output))
}

// parseDate accepts RFC3339 or a bare calendar date.
func parseDate(field, value string) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, &ValidationError{Field: field, Reason: "use RFC3339 (2025-01-15T09:00:00Z) or YYYY-MM-DD"}
	}
	return &t, nil
}

// parsePriority validates the framework's fixed priority set. Any other
// integer is rejected, never coerced.
func parsePriority(v int) (Priority, error) {
	p := Priority(v)
	if !p.Valid() {
		return 0, &ValidationError{
			Field:  "priority",
			Reason: fmt.Sprintf("%d is not one of 0 (none), 1 (high), 5 (medium), 9 (low)", v),
		}
	}
	return p, nil
}

// parseLocation decodes and validates the optional location argument.
// Returns (nil, nil) when the argument is absent.
func parseLocation(req mcp.CallToolRequest) (*LocationTrigger, error) {
	args := req.GetArguments()
	raw, ok := args["location"]
	if !ok || raw == nil {
		return nil, nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, &ValidationError{Field: "location", Reason: "must be an object"}
	}
	var loc LocationTrigger
	if err := json.Unmarshal(encoded, &loc); err != nil {
		return nil, &ValidationError{Field: "location", Reason: "must be an object with title, latitude, longitude, radius, proximity"}
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return &loc, nil
}

// requiredString fetches a parameter that must be present and non-blank.
func requiredString(req mcp.CallToolRequest, field string) (string, error) {
	v := req.GetString(field, "")
	if strings.TrimSpace(v) == "" {
		return "", &ValidationError{Field: field, Reason: "is required"}
	}
	return v, nil
}

func (s *Server) page(req mcp.CallToolRequest) (limit, offset int) {
	return req.GetInt("limit", s.defaultLimit), req.GetInt("offset", 0)
}
