package reminders

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerSearchTools() {
	// search_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("search_reminders",
			mcp.WithDescription("Search reminders whose title or notes contain the query, case-insensitive. Fetches the candidate set and filters here; narrow with list_id for large stores."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Text to search for")),
			mcp.WithString("list_id", mcp.Description("Limit search to this list")),
			mcp.WithBoolean("include_completed", mcp.Description("Include completed reminders (default false)")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results to return")),
			mcp.WithNumber("offset", mcp.Description("Number of results to skip for pagination")),
		),
		s.handleSearchReminders,
	)
}

func (s *Server) handleSearchReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := requiredString(req, "query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit, offset := s.page(req)

	// The store has no full-text predicate, so this is a fetch followed
	// by an O(n) substring scan over the candidate set.
	reminders, err := s.store.QueryReminders(ReminderQuery{
		ListID:           req.GetString("list_id", ""),
		IncludeCompleted: req.GetBool("include_completed", false),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to search reminders: %v", err)), nil
	}

	needle := strings.ToLower(query)
	matching := make([]Reminder, 0, len(reminders))
	for _, r := range reminders {
		if strings.Contains(strings.ToLower(r.Title), needle) ||
			strings.Contains(strings.ToLower(r.Notes), needle) {
			matching = append(matching, r)
		}
	}

	page, info := paginate(matching, limit, offset)
	return jsonResult(struct {
		Reminders  []Reminder `json:"reminders"`
		Pagination PageInfo   `json:"pagination"`
	}{Reminders: page, Pagination: info}), nil
}
