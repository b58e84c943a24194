package reminders

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/remindkit/mcp-reminders/internal/eventkit"
	"github.com/remindkit/mcp-reminders/internal/eventkit/eventkittest"
)

func newTestServer(fake *eventkittest.Fake) *Server {
	return NewServer(NewStore(fake, zerolog.Nop()), 20)
}

func callWith(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected one content block, got %d", len(res.Content))
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}

func decodeResult(t *testing.T, res *mcp.CallToolResult, v any) {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned error: %s", resultText(t, res))
	}
	// json.Unmarshal leaves fields absent from the JSON untouched, so
	// zero the destination first in case the caller reuses it.
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv.Elem().SetZero()
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), v); err != nil {
		t.Fatalf("decode result: %v", err)
	}
}

func TestHandleCreateReminder(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	fake.AddCalendar("Inbox")
	s := newTestServer(fake)

	res, err := s.handleCreateReminder(context.Background(), callWith(map[string]any{
		"title":    "Buy milk",
		"notes":    "skim",
		"due_date": "2025-01-15T09:00:00Z",
		"priority": float64(1),
	}))
	assert.Nil(err)

	var got Reminder
	decodeResult(t, res, &got)
	assert.NotEmpty(got.ID)
	assert.Equal("Buy milk", got.Title)
	assert.Equal("Inbox", got.ListTitle)
	assert.Equal(PriorityHigh, got.Priority)
	assert.NotNil(got.DueDate)
}

func TestHandleCreateReminderMissingTitle(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	fake.AddCalendar("Inbox")
	s := newTestServer(fake)

	res, err := s.handleCreateReminder(context.Background(), callWith(map[string]any{}))
	assert.Nil(err)
	assert.True(res.IsError)
	assert.Contains(resultText(t, res), "title")
	assert.Equal(0, fake.ItemSaves)
}

func TestHandleCreateReminderInvalidPriority(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	fake.AddCalendar("Inbox")
	s := newTestServer(fake)

	res, err := s.handleCreateReminder(context.Background(), callWith(map[string]any{
		"title":    "x",
		"priority": float64(3),
	}))
	assert.Nil(err)
	assert.True(res.IsError)
	assert.Contains(resultText(t, res), "priority")

	// Validation rejects before anything reaches the store.
	assert.Equal(0, fake.ItemSaves)
}

func TestHandleCreateReminderBadDate(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	fake.AddCalendar("Inbox")
	s := newTestServer(fake)

	res, err := s.handleCreateReminder(context.Background(), callWith(map[string]any{
		"title":    "x",
		"due_date": "next tuesday",
	}))
	assert.Nil(err)
	assert.True(res.IsError)
	assert.Contains(resultText(t, res), "due_date")
	assert.Equal(0, fake.ItemSaves)
}

func TestHandleCreateReminderLocation(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	fake.AddCalendar("Inbox")
	s := newTestServer(fake)

	res, err := s.handleCreateReminder(context.Background(), callWith(map[string]any{
		"title": "pick up keys",
		"location": map[string]any{
			"title":     "Home",
			"latitude":  37.33,
			"longitude": -122.03,
		},
	}))
	assert.Nil(err)

	var got Reminder
	decodeResult(t, res, &got)
	if assert.NotNil(got.Location) {
		assert.Equal("Home", got.Location.Title)
		assert.Equal(100.0, got.Location.Radius)
		assert.Equal(ProximityEnter, got.Location.Proximity)
	}

	res, err = s.handleCreateReminder(context.Background(), callWith(map[string]any{
		"title": "bad geofence",
		"location": map[string]any{
			"title":    "Nowhere",
			"latitude": 120.0,
		},
	}))
	assert.Nil(err)
	assert.True(res.IsError)
	assert.Contains(resultText(t, res), "latitude")
}

func TestHandleGetRemindersPagination(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	cal := fake.AddCalendar("Inbox")
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		fake.PutItem(eventkit.Item{Title: title, CalendarID: cal.ID})
	}
	s := newTestServer(fake)

	res, err := s.handleGetReminders(context.Background(), callWith(map[string]any{
		"limit":  float64(2),
		"offset": float64(1),
	}))
	assert.Nil(err)

	var got struct {
		Reminders  []Reminder `json:"reminders"`
		Pagination PageInfo   `json:"pagination"`
	}
	decodeResult(t, res, &got)
	assert.Len(got.Reminders, 2)
	assert.Equal(5, got.Pagination.TotalItems)
	assert.True(got.Pagination.HasMore)
	if assert.NotNil(got.Pagination.NextOffset) {
		assert.Equal(3, *got.Pagination.NextOffset)
	}
}

func TestHandleCompleteReminderRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	cal := fake.AddCalendar("Inbox")
	item := fake.PutItem(eventkit.Item{Title: "water plants", CalendarID: cal.ID})
	s := newTestServer(fake)

	res, err := s.handleCompleteReminder(context.Background(), callWith(map[string]any{
		"reminder_id": item.ID,
	}))
	assert.Nil(err)

	var got Reminder
	decodeResult(t, res, &got)
	assert.True(got.IsCompleted)
	assert.NotNil(got.CompletionDate)

	res, err = s.handleCompleteReminder(context.Background(), callWith(map[string]any{
		"reminder_id": item.ID,
		"completed":   false,
	}))
	assert.Nil(err)
	decodeResult(t, res, &got)
	assert.False(got.IsCompleted)
	assert.Nil(got.CompletionDate)
}

func TestHandleCompleteRemindersPartialFailure(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	cal := fake.AddCalendar("Inbox")
	item := fake.PutItem(eventkit.Item{Title: "real", CalendarID: cal.ID})
	s := newTestServer(fake)

	res, err := s.handleCompleteReminders(context.Background(), callWith(map[string]any{
		"reminder_ids": []any{item.ID, "bogus"},
	}))
	assert.Nil(err)

	var got BatchResult
	decodeResult(t, res, &got)
	assert.Equal(1, got.Successes)
	assert.Equal(1, got.Failures)
	assert.Equal([]string{"bogus"}, got.FailedIDs)
	if assert.Len(got.Errors, 1) {
		assert.Contains(got.Errors[0], "not found")
	}
}

func TestHandleDeleteRemindersEmpty(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	s := newTestServer(eventkittest.New())

	res, err := s.handleDeleteReminders(context.Background(), callWith(map[string]any{}))
	assert.Nil(err)
	assert.True(res.IsError)
	assert.Contains(resultText(t, res), "reminder_ids")
}

func TestHandleAddReminders(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	fake.AddCalendar("Inbox")
	s := newTestServer(fake)

	res, err := s.handleAddReminders(context.Background(), callWith(map[string]any{
		"titles": []any{"eggs", "bread", "coffee"},
	}))
	assert.Nil(err)

	var got struct {
		Created []Reminder `json:"created"`
		BatchResult
	}
	decodeResult(t, res, &got)
	assert.Equal(3, got.Successes)
	assert.Equal(0, got.Failures)
	if assert.Len(got.Created, 3) {
		assert.Equal("eggs", got.Created[0].Title)
		assert.Equal("Inbox", got.Created[0].ListTitle)
	}
}

func TestHandleAddRemindersNoDefaultList(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	s := newTestServer(eventkittest.New())

	res, err := s.handleAddReminders(context.Background(), callWith(map[string]any{
		"titles": []any{"a", "b"},
	}))
	assert.Nil(err)

	var got struct {
		BatchResult
	}
	decodeResult(t, res, &got)
	assert.Equal(0, got.Successes)
	assert.Equal(2, got.Failures)
}

func TestHandleSearchReminders(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	cal := fake.AddCalendar("Inbox")
	fake.PutItem(eventkit.Item{Title: "Buy MILK", CalendarID: cal.ID})
	fake.PutItem(eventkit.Item{Title: "Call mom", Notes: "ask about the milk bread recipe", CalendarID: cal.ID})
	fake.PutItem(eventkit.Item{Title: "Walk dog", CalendarID: cal.ID})
	s := newTestServer(fake)

	res, err := s.handleSearchReminders(context.Background(), callWith(map[string]any{
		"query": "milk",
	}))
	assert.Nil(err)

	var got struct {
		Reminders  []Reminder `json:"reminders"`
		Pagination PageInfo   `json:"pagination"`
	}
	decodeResult(t, res, &got)
	assert.Len(got.Reminders, 2)
	assert.Equal(2, got.Pagination.TotalItems)

	res, err = s.handleSearchReminders(context.Background(), callWith(map[string]any{
		"query": "zucchini",
	}))
	assert.Nil(err)
	decodeResult(t, res, &got)
	assert.Empty(got.Reminders)
	assert.Equal(0, got.Pagination.TotalItems)
}

func TestHandleSearchRemindersMissingQuery(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	s := newTestServer(eventkittest.New())

	res, err := s.handleSearchReminders(context.Background(), callWith(map[string]any{}))
	assert.Nil(err)
	assert.True(res.IsError)
	assert.Contains(resultText(t, res), "query")
}

func TestHandleListLists(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	fake.AddCalendar("Inbox")
	fake.AddCalendar("Work")
	s := newTestServer(fake)

	res, err := s.handleListLists(context.Background(), callWith(map[string]any{}))
	assert.Nil(err)

	var got struct {
		Lists      []List   `json:"lists"`
		Pagination PageInfo `json:"pagination"`
	}
	decodeResult(t, res, &got)
	if assert.Len(got.Lists, 2) {
		assert.True(got.Lists[0].IsDefault)
		assert.False(got.Lists[1].IsDefault)
	}
}

func TestHandleCreateListColorNormalized(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	s := newTestServer(fake)

	res, err := s.handleCreateList(context.Background(), callWith(map[string]any{
		"title": "Errands",
		"color": "f00",
	}))
	assert.Nil(err)

	var got List
	decodeResult(t, res, &got)
	assert.Equal("Errands", got.Title)
	assert.Equal("#FF0000", got.Color)

	res, err = s.handleCreateList(context.Background(), callWith(map[string]any{
		"title": "Bad",
		"color": "not-a-color",
	}))
	assert.Nil(err)
	assert.True(res.IsError)
	assert.Contains(resultText(t, res), "color")
}

func TestHandleUpdateReminderPrioritySentinel(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	cal := fake.AddCalendar("Inbox")
	item := fake.PutItem(eventkit.Item{Title: "triage", CalendarID: cal.ID, Priority: 5})
	s := newTestServer(fake)

	// Omitting priority leaves it as is.
	res, err := s.handleUpdateReminder(context.Background(), callWith(map[string]any{
		"reminder_id": item.ID,
		"title":       "triage bugs",
	}))
	assert.Nil(err)

	var got Reminder
	decodeResult(t, res, &got)
	assert.Equal("triage bugs", got.Title)
	assert.Equal(PriorityMedium, got.Priority)

	// Zero is a real value, not "unset".
	res, err = s.handleUpdateReminder(context.Background(), callWith(map[string]any{
		"reminder_id": item.ID,
		"priority":    float64(0),
	}))
	assert.Nil(err)
	decodeResult(t, res, &got)
	assert.Equal(PriorityNone, got.Priority)
}

func TestHandleDeleteList(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	cal := fake.AddCalendar("Inbox")
	s := newTestServer(fake)

	res, err := s.handleDeleteList(context.Background(), callWith(map[string]any{
		"list_id": cal.ID,
	}))
	assert.Nil(err)
	assert.False(res.IsError)
	assert.Contains(resultText(t, res), "deleted")

	res, err = s.handleDeleteList(context.Background(), callWith(map[string]any{
		"list_id": cal.ID,
	}))
	assert.Nil(err)
	assert.True(res.IsError)
	assert.Contains(resultText(t, res), "not found")
}

func TestHandleMoveReminder(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := eventkittest.New()
	inbox := fake.AddCalendar("Inbox")
	work := fake.AddCalendar("Work")
	item := fake.PutItem(eventkit.Item{Title: "send invoice", CalendarID: inbox.ID})
	s := newTestServer(fake)

	res, err := s.handleMoveReminder(context.Background(), callWith(map[string]any{
		"reminder_id": item.ID,
		"list_id":     work.ID,
	}))
	assert.Nil(err)

	var got Reminder
	decodeResult(t, res, &got)
	assert.Equal(work.ID, got.ListID)
	assert.Equal("Work", got.ListTitle)
}
