package reminders

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerReminderTools() {
	// get_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("get_reminders",
			mcp.WithDescription("Get reminders with optional filters. Due-date bounds only apply when completed reminders are excluded."),
			mcp.WithString("list_id", mcp.Description("Only reminders from this list")),
			mcp.WithBoolean("include_completed", mcp.Description("Include completed reminders (default false)")),
			mcp.WithString("due_before", mcp.Description("Only reminders due before this date (RFC3339 or YYYY-MM-DD)")),
			mcp.WithString("due_after", mcp.Description("Only reminders due after this date (RFC3339 or YYYY-MM-DD)")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of reminders to return")),
			mcp.WithNumber("offset", mcp.Description("Number of reminders to skip for pagination")),
		),
		s.handleGetReminders,
	)

	// get_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("get_reminder",
			mcp.WithDescription("Get a single reminder by ID"),
			mcp.WithString("reminder_id", mcp.Required(), mcp.Description("Reminder identifier from a prior call")),
		),
		s.handleGetReminder,
	)

	// create_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("create_reminder",
			mcp.WithDescription("Create a new reminder with a title and optional notes, URL, dates, priority, and location trigger"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Reminder title")),
			mcp.WithString("list_id", mcp.Description("List to add to (default list when omitted)")),
			mcp.WithString("notes", mcp.Description("Additional notes")),
			mcp.WithString("url", mcp.Description("Associated URL")),
			mcp.WithString("due_date", mcp.Description("Due date (RFC3339 or YYYY-MM-DD)")),
			mcp.WithString("start_date", mcp.Description("Start date (RFC3339 or YYYY-MM-DD)")),
			mcp.WithNumber("priority", mcp.Description("Priority: 0 none, 1 high, 5 medium, 9 low")),
			mcp.WithObject("location",
				mcp.Description("Location trigger: fires when entering or leaving a place"),
				mcp.Properties(map[string]any{
					"title":     map[string]any{"type": "string", "description": "Display name, e.g. Home"},
					"latitude":  map[string]any{"type": "number", "description": "-90 to 90"},
					"longitude": map[string]any{"type": "number", "description": "-180 to 180"},
					"radius":    map[string]any{"type": "number", "description": "Geofence radius in meters (default 100)"},
					"proximity": map[string]any{"type": "string", "description": "enter or leave (default enter)"},
				}),
			),
		),
		s.handleCreateReminder,
	)

	// update_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("update_reminder",
			mcp.WithDescription("Update a reminder's fields; only provided fields change"),
			mcp.WithString("reminder_id", mcp.Required(), mcp.Description("Reminder identifier")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("notes", mcp.Description("New notes")),
			mcp.WithString("url", mcp.Description("New URL")),
			mcp.WithString("due_date", mcp.Description("New due date (RFC3339 or YYYY-MM-DD)")),
			mcp.WithString("start_date", mcp.Description("New start date (RFC3339 or YYYY-MM-DD)")),
			mcp.WithNumber("priority", mcp.Description("New priority: 0 none, 1 high, 5 medium, 9 low")),
			mcp.WithObject("location",
				mcp.Description("New location trigger; replaces any existing one"),
				mcp.Properties(map[string]any{
					"title":     map[string]any{"type": "string"},
					"latitude":  map[string]any{"type": "number"},
					"longitude": map[string]any{"type": "number"},
					"radius":    map[string]any{"type": "number"},
					"proximity": map[string]any{"type": "string"},
				}),
			),
			mcp.WithBoolean("clear_location", mcp.Description("Remove any existing location trigger")),
		),
		s.handleUpdateReminder,
	)

	// complete_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("complete_reminder",
			mcp.WithDescription("Mark a reminder as complete or incomplete. The store stamps the completion time itself."),
			mcp.WithString("reminder_id", mcp.Required(), mcp.Description("Reminder identifier")),
			mcp.WithBoolean("completed", mcp.Description("true to complete, false to reopen (default true)")),
		),
		s.handleCompleteReminder,
	)

	// delete_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder permanently"),
			mcp.WithString("reminder_id", mcp.Required(), mcp.Description("Reminder identifier")),
		),
		s.handleDeleteReminder,
	)

	// move_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("move_reminder",
			mcp.WithDescription("Move a reminder to a different list"),
			mcp.WithString("reminder_id", mcp.Required(), mcp.Description("Reminder identifier")),
			mcp.WithString("list_id", mcp.Required(), mcp.Description("Destination list identifier")),
		),
		s.handleMoveReminder,
	)
}

func (s *Server) handleGetReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit, offset := s.page(req)

	q := ReminderQuery{
		ListID:           req.GetString("list_id", ""),
		IncludeCompleted: req.GetBool("include_completed", false),
	}
	if v := req.GetString("due_before", ""); v != "" {
		t, err := parseDate("due_before", v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		q.DueBefore = t
	}
	if v := req.GetString("due_after", ""); v != "" {
		t, err := parseDate("due_after", v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		q.DueAfter = t
	}

	reminders, err := s.store.QueryReminders(q)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get reminders: %v", err)), nil
	}

	page, info := paginate(reminders, limit, offset)
	return jsonResult(struct {
		Reminders  []Reminder `json:"reminders"`
		Pagination PageInfo   `json:"pagination"`
	}{Reminders: page, Pagination: info}), nil
}

func (s *Server) handleGetReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(req, "reminder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reminder, err := s.store.GetReminder(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get reminder: %v", err)), nil
	}
	return jsonResult(reminder), nil
}

func (s *Server) handleCreateReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := requiredString(req, "title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	priority, err := parsePriority(req.GetInt("priority", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	location, err := parseLocation(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := CreateFields{
		Title:    title,
		ListID:   req.GetString("list_id", ""),
		Notes:    req.GetString("notes", ""),
		URL:      req.GetString("url", ""),
		Priority: priority,
		Location: location,
	}
	if v := req.GetString("due_date", ""); v != "" {
		t, err := parseDate("due_date", v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in.DueDate = t
	}
	if v := req.GetString("start_date", ""); v != "" {
		t, err := parseDate("start_date", v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in.StartDate = t
	}

	reminder, err := s.store.CreateReminder(in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create reminder: %v", err)), nil
	}
	return jsonResult(reminder), nil
}

func (s *Server) handleUpdateReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(req, "reminder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var in UpdateFields
	if v := req.GetString("title", ""); v != "" {
		in.Title = &v
	}
	if v := req.GetString("notes", ""); v != "" {
		in.Notes = &v
	}
	if v := req.GetString("url", ""); v != "" {
		in.URL = &v
	}
	if v := req.GetString("due_date", ""); v != "" {
		t, err := parseDate("due_date", v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in.DueDate = t
	}
	if v := req.GetString("start_date", ""); v != "" {
		t, err := parseDate("start_date", v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in.StartDate = t
	}
	if v := req.GetInt("priority", -1); v >= 0 {
		p, err := parsePriority(v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in.Priority = &p
	}
	in.ClearLocation = req.GetBool("clear_location", false)
	if !in.ClearLocation {
		location, err := parseLocation(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in.Location = location
	}

	reminder, err := s.store.UpdateReminder(id, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update reminder: %v", err)), nil
	}
	return jsonResult(reminder), nil
}

func (s *Server) handleCompleteReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(req, "reminder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	completed := req.GetBool("completed", true)

	reminder, err := s.store.CompleteReminder(id, completed)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete reminder: %v", err)), nil
	}
	return jsonResult(reminder), nil
}

func (s *Server) handleDeleteReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(req, "reminder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.store.DeleteReminder(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete reminder: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %s deleted.", id)), nil
}

func (s *Server) handleMoveReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(req, "reminder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	listID, err := requiredString(req, "list_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reminder, err := s.store.MoveReminder(id, listID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to move reminder: %v", err)), nil
	}
	return jsonResult(reminder), nil
}
