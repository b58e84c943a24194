package reminders

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerListTools() {
	// list_reminder_lists
	s.mcpServer.AddTool(
		mcp.NewTool("list_reminder_lists",
			mcp.WithDescription("Get all reminder lists with their IDs, titles, colors, and which one is the default for new reminders"),
			mcp.WithNumber("limit", mcp.Description("Maximum number of lists to return")),
			mcp.WithNumber("offset", mcp.Description("Number of lists to skip for pagination")),
		),
		s.handleListLists,
	)

	// get_reminder_list
	s.mcpServer.AddTool(
		mcp.NewTool("get_reminder_list",
			mcp.WithDescription("Get a specific reminder list by ID"),
			mcp.WithString("list_id", mcp.Required(), mcp.Description("List identifier from a prior list_reminder_lists call")),
		),
		s.handleGetList,
	)

	// create_reminder_list
	s.mcpServer.AddTool(
		mcp.NewTool("create_reminder_list",
			mcp.WithDescription("Create a new reminder list. Colors may shift slightly (~30 per RGB channel) after an iCloud sync round-trip."),
			mcp.WithString("title", mcp.Required(), mcp.Description("Name for the new list")),
			mcp.WithString("color", mcp.Description("Hex color like #FF5733")),
		),
		s.handleCreateList,
	)

	// update_reminder_list
	s.mcpServer.AddTool(
		mcp.NewTool("update_reminder_list",
			mcp.WithDescription("Update a reminder list's title and/or color"),
			mcp.WithString("list_id", mcp.Required(), mcp.Description("List identifier")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("color", mcp.Description("New hex color like #FF5733")),
		),
		s.handleUpdateList,
	)

	// delete_reminder_list
	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder_list",
			mcp.WithDescription("Delete a reminder list and every reminder in it"),
			mcp.WithString("list_id", mcp.Required(), mcp.Description("List identifier")),
		),
		s.handleDeleteList,
	)
}

func (s *Server) handleListLists(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit, offset := s.page(req)

	lists, err := s.store.Lists()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminder lists: %v", err)), nil
	}

	page, info := paginate(lists, limit, offset)
	return jsonResult(struct {
		Lists      []List   `json:"lists"`
		Pagination PageInfo `json:"pagination"`
	}{Lists: page, Pagination: info}), nil
}

func (s *Server) handleGetList(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listID, err := requiredString(req, "list_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list, err := s.store.GetList(listID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get list: %v", err)), nil
	}
	return jsonResult(list), nil
}

func (s *Server) handleCreateList(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := requiredString(req, "title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	color := req.GetString("color", "")
	if color != "" {
		if color, err = normalizeHexColor(color); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	list, err := s.store.CreateList(title, color)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create list: %v", err)), nil
	}
	return jsonResult(list), nil
}

func (s *Server) handleUpdateList(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listID, err := requiredString(req, "list_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var title, color *string
	if v := req.GetString("title", ""); v != "" {
		title = &v
	}
	if v := req.GetString("color", ""); v != "" {
		norm, err := normalizeHexColor(v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		color = &norm
	}

	list, err := s.store.UpdateList(listID, title, color)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update list: %v", err)), nil
	}
	return jsonResult(list), nil
}

func (s *Server) handleDeleteList(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listID, err := requiredString(req, "list_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.store.DeleteList(listID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete list: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("List %s deleted.", listID)), nil
}
