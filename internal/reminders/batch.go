package reminders

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerBatchTools() {
	// complete_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("complete_reminders",
			mcp.WithDescription("Mark multiple reminders as complete. Individual failures are tallied, not fatal."),
			mcp.WithArray("reminder_ids", mcp.Required(),
				mcp.Description("Reminder identifiers to complete"),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		s.handleCompleteReminders,
	)

	// delete_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminders",
			mcp.WithDescription("Delete multiple reminders. Individual failures are tallied, not fatal."),
			mcp.WithArray("reminder_ids", mcp.Required(),
				mcp.Description("Reminder identifiers to delete"),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		s.handleDeleteReminders,
	)

	// add_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminders",
			mcp.WithDescription("Quick-add multiple reminders by title, all into the same list"),
			mcp.WithArray("titles", mcp.Required(),
				mcp.Description("Titles of the reminders to create"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithString("list_id", mcp.Description("List to add to (default list when omitted)")),
		),
		s.handleAddReminders,
	)
}

// Batch tools apply the single-item operation per ID and keep going past
// failures: a batch must not abort on one bad identifier.

func (s *Server) handleCompleteReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids := req.GetStringSlice("reminder_ids", nil)
	if len(ids) == 0 {
		return mcp.NewToolResultError("reminder_ids is required and must not be empty"), nil
	}

	var result BatchResult
	for _, id := range ids {
		if _, err := s.store.CompleteReminder(id, true); err != nil {
			result.fail(id, err)
			continue
		}
		result.Successes++
	}
	return jsonResult(result), nil
}

func (s *Server) handleDeleteReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids := req.GetStringSlice("reminder_ids", nil)
	if len(ids) == 0 {
		return mcp.NewToolResultError("reminder_ids is required and must not be empty"), nil
	}

	var result BatchResult
	for _, id := range ids {
		if err := s.store.DeleteReminder(id); err != nil {
			result.fail(id, err)
			continue
		}
		result.Successes++
	}
	return jsonResult(result), nil
}

func (s *Server) handleAddReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	titles := req.GetStringSlice("titles", nil)
	if len(titles) == 0 {
		return mcp.NewToolResultError("titles is required and must not be empty"), nil
	}
	listID := req.GetString("list_id", "")

	created := make([]Reminder, 0, len(titles))
	var result BatchResult
	for _, title := range titles {
		reminder, err := s.store.CreateReminder(CreateFields{Title: title, ListID: listID})
		if err != nil {
			result.fail(title, err)
			continue
		}
		result.Successes++
		created = append(created, *reminder)
	}

	return jsonResult(struct {
		Created []Reminder `json:"created"`
		BatchResult
	}{Created: created, BatchResult: result}), nil
}
