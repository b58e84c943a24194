package reminders

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/remindkit/mcp-reminders/internal/eventkit"
)

// Store wraps the single process-wide EventKit handle and presents each
// of the framework's operations as a blocking call. The framework's
// asynchronous calls are bridged by pairing the completion handler with
// a one-shot channel: the handler writes the result exactly once, the
// caller blocks on the receive. The framework guarantees at most one
// completion per request, so no two outcomes can race.
//
// No operation retries, times out, or supports cancellation; once a
// request is issued the caller waits for its one completion.
type Store struct {
	api eventkit.API
	log zerolog.Logger

	accessOnce sync.Once
	accessErr  error
}

// NewStore wraps the given EventKit handle.
func NewStore(api eventkit.API, logger zerolog.Logger) *Store {
	return &Store{api: api, log: logger}
}

// EnsureAccess requests Reminders access on first use and caches the
// outcome for the process lifetime. The first call may block until the
// user answers the system permission prompt; the prompt has no deadline
// and none is imposed here. A revocation after an initial grant is not
// re-detected: the framework does not re-prompt, and subsequent
// operations surface its errors directly.
func (s *Store) EnsureAccess() error {
	s.accessOnce.Do(func() {
		type outcome struct {
			granted bool
			err     error
		}
		done := make(chan outcome, 1)
		s.api.RequestAccess(func(granted bool, err error) {
			done <- outcome{granted: granted, err: err}
		})

		s.log.Debug().Msg("requesting reminders access")
		res := <-done
		switch {
		case res.err != nil:
			s.accessErr = &AccessDeniedError{Reason: res.err.Error()}
		case !res.granted:
			s.accessErr = &AccessDeniedError{}
		}
		s.log.Debug().Bool("granted", res.granted).Msg("reminders access result")
	})
	return s.accessErr
}

// fetch bridges the framework's asynchronous reminder fetch into a
// blocking call.
func (s *Store) fetch(p eventkit.Predicate) ([]eventkit.Item, error) {
	type outcome struct {
		items []eventkit.Item
		err   error
	}
	done := make(chan outcome, 1)
	s.api.FetchItems(p, func(items []eventkit.Item, err error) {
		done <- outcome{items: items, err: err}
	})
	res := <-done
	if res.err != nil {
		return nil, fmt.Errorf("fetch reminders: %w", res.err)
	}
	return res.items, nil
}

func (s *Store) lookupCalendar(id string) (*eventkit.Calendar, error) {
	cal, err := s.api.CalendarWithIdentifier(id)
	if err != nil {
		return nil, fmt.Errorf("look up list: %w", err)
	}
	if cal == nil {
		return nil, &NotFoundError{Resource: "List", ID: id}
	}
	return cal, nil
}

func (s *Store) lookupItem(id string) (*eventkit.Item, error) {
	item, err := s.api.ItemWithIdentifier(id)
	if err != nil {
		return nil, fmt.Errorf("look up reminder: %w", err)
	}
	if item == nil {
		return nil, &NotFoundError{Resource: "Reminder", ID: id}
	}
	return item, nil
}

func (s *Store) defaultCalendarID() (string, error) {
	cal, err := s.api.DefaultCalendar()
	if err != nil {
		return "", fmt.Errorf("look up default list: %w", err)
	}
	if cal == nil {
		return "", nil
	}
	return cal.ID, nil
}

// List operations

// Lists returns every reminder list.
func (s *Store) Lists() ([]List, error) {
	if err := s.EnsureAccess(); err != nil {
		return nil, err
	}

	cals, err := s.api.Calendars()
	if err != nil {
		return nil, fmt.Errorf("list reminder lists: %w", err)
	}
	defaultID, err := s.defaultCalendarID()
	if err != nil {
		return nil, err
	}

	lists := make([]List, 0, len(cals))
	for _, cal := range cals {
		lists = append(lists, listFromCalendar(cal, cal.ID == defaultID))
	}
	return lists, nil
}

// GetList returns a single list by ID.
func (s *Store) GetList(id string) (*List, error) {
	if err := s.EnsureAccess(); err != nil {
		return nil, err
	}

	cal, err := s.lookupCalendar(id)
	if err != nil {
		return nil, err
	}
	defaultID, err := s.defaultCalendarID()
	if err != nil {
		return nil, err
	}
	list := listFromCalendar(*cal, cal.ID == defaultID)
	return &list, nil
}

// CreateList creates a new reminder list. Color is an optional hex
// string; the stored color may shift slightly after a sync round-trip.
func (s *Store) CreateList(title, color string) (*List, error) {
	if err := s.EnsureAccess(); err != nil {
		return nil, err
	}

	cal := &eventkit.Calendar{Title: title}
	if color != "" {
		c, err := hexToColor(color)
		if err != nil {
			return nil, err
		}
		cal.Color = c
	}

	if err := s.api.SaveCalendar(cal); err != nil {
		return nil, &SaveError{Op: "create_list", Reason: err.Error()}
	}
	s.log.Debug().Str("list_id", cal.ID).Str("title", title).Msg("created list")

	list := listFromCalendar(*cal, false)
	return &list, nil
}

// UpdateList updates a list's title and/or color. Nil fields are left
// unchanged.
func (s *Store) UpdateList(id string, title, color *string) (*List, error) {
	if err := s.EnsureAccess(); err != nil {
		return nil, err
	}

	cal, err := s.lookupCalendar(id)
	if err != nil {
		return nil, err
	}
	if title != nil {
		cal.Title = *title
	}
	if color != nil {
		c, err := hexToColor(*color)
		if err != nil {
			return nil, err
		}
		cal.Color = c
	}

	if err := s.api.SaveCalendar(cal); err != nil {
		return nil, &SaveError{Op: "update_list", Reason: err.Error()}
	}

	defaultID, err := s.defaultCalendarID()
	if err != nil {
		return nil, err
	}
	list := listFromCalendar(*cal, cal.ID == defaultID)
	return &list, nil
}

// DeleteList deletes a list and everything in it.
func (s *Store) DeleteList(id string) error {
	if err := s.EnsureAccess(); err != nil {
		return err
	}

	if _, err := s.lookupCalendar(id); err != nil {
		return err
	}
	if err := s.api.RemoveCalendar(id); err != nil {
		return &SaveError{Op: "delete_list", Reason: err.Error()}
	}
	s.log.Debug().Str("list_id", id).Msg("deleted list")
	return nil
}

// Reminder operations

// ReminderQuery filters a reminder fetch. Due bounds apply only when
// completed reminders are excluded; this mirrors the framework, whose
// date-bounded predicate exists solely for incomplete reminders.
type ReminderQuery struct {
	ListID           string
	IncludeCompleted bool
	DueBefore        *time.Time
	DueAfter         *time.Time
}

// QueryReminders fetches reminders matching the query.
func (s *Store) QueryReminders(q ReminderQuery) ([]Reminder, error) {
	if err := s.EnsureAccess(); err != nil {
		return nil, err
	}

	pred := eventkit.Predicate{IncludeCompleted: q.IncludeCompleted}
	if q.ListID != "" {
		if _, err := s.lookupCalendar(q.ListID); err != nil {
			return nil, err
		}
		pred.CalendarIDs = []string{q.ListID}
	}
	if !q.IncludeCompleted {
		if q.DueAfter != nil {
			e := timeToEpoch(*q.DueAfter)
			pred.DueStarting = &e
		}
		if q.DueBefore != nil {
			e := timeToEpoch(*q.DueBefore)
			pred.DueEnding = &e
		}
	}

	items, err := s.fetch(pred)
	if err != nil {
		return nil, err
	}

	reminders := make([]Reminder, 0, len(items))
	for _, item := range items {
		reminders = append(reminders, reminderFromItem(item))
	}
	return reminders, nil
}

// GetReminder returns a single reminder by ID.
func (s *Store) GetReminder(id string) (*Reminder, error) {
	if err := s.EnsureAccess(); err != nil {
		return nil, err
	}

	item, err := s.lookupItem(id)
	if err != nil {
		return nil, err
	}
	r := reminderFromItem(*item)
	return &r, nil
}

// CreateFields holds the fields for a new reminder. Only Title is
// required; an empty ListID files the reminder into the default list.
type CreateFields struct {
	Title     string
	ListID    string
	Notes     string
	URL       string
	DueDate   *time.Time
	StartDate *time.Time
	Priority  Priority
	Location  *LocationTrigger
}

// CreateReminder creates a new reminder.
func (s *Store) CreateReminder(in CreateFields) (*Reminder, error) {
	if err := s.EnsureAccess(); err != nil {
		return nil, err
	}

	item := &eventkit.Item{
		Title:    in.Title,
		Notes:    in.Notes,
		URL:      in.URL,
		Priority: int(in.Priority),
	}

	if in.ListID != "" {
		if _, err := s.lookupCalendar(in.ListID); err != nil {
			return nil, err
		}
		item.CalendarID = in.ListID
	} else {
		defaultID, err := s.defaultCalendarID()
		if err != nil {
			return nil, err
		}
		if defaultID == "" {
			return nil, &SaveError{Op: "create_reminder", Reason: "no default list available; configure a reminder account in System Settings > Internet Accounts"}
		}
		item.CalendarID = defaultID
	}

	if in.DueDate != nil {
		item.DueDate = timeToComponents(*in.DueDate)
	}
	if in.StartDate != nil {
		item.StartDate = timeToComponents(*in.StartDate)
	}
	if in.Location != nil {
		item.Alarms = []eventkit.Alarm{alarmFromLocation(*in.Location)}
	}

	if err := s.api.SaveItem(item); err != nil {
		return nil, &SaveError{Op: "create_reminder", Reason: err.Error()}
	}
	s.log.Debug().Str("reminder_id", item.ID).Str("title", in.Title).Msg("created reminder")

	r := reminderFromItem(*item)
	return &r, nil
}

// UpdateFields holds a partial update; nil fields are left unchanged.
// ClearLocation removes any location trigger and wins over Location.
type UpdateFields struct {
	Title         *string
	Notes         *string
	URL           *string
	DueDate       *time.Time
	StartDate     *time.Time
	Priority      *Priority
	Location      *LocationTrigger
	ClearLocation bool
}

// UpdateReminder applies a partial update to a reminder.
func (s *Store) UpdateReminder(id string, in UpdateFields) (*Reminder, error) {
	if err := s.EnsureAccess(); err != nil {
		return nil, err
	}

	item, err := s.lookupItem(id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	if in.URL != nil {
		item.URL = *in.URL
	}
	if in.DueDate != nil {
		item.DueDate = timeToComponents(*in.DueDate)
	}
	if in.StartDate != nil {
		item.StartDate = timeToComponents(*in.StartDate)
	}
	if in.Priority != nil {
		item.Priority = int(*in.Priority)
	}
	switch {
	case in.ClearLocation:
		item.Alarms = nil
	case in.Location != nil:
		item.Alarms = []eventkit.Alarm{alarmFromLocation(*in.Location)}
	}

	if err := s.api.SaveItem(item); err != nil {
		return nil, &SaveError{Op: "update_reminder", Reason: err.Error()}
	}

	r := reminderFromItem(*item)
	return &r, nil
}

// CompleteReminder flips a reminder's completion flag. The store
// stamps the completion time itself on the false-to-true transition and
// clears it when the reminder is reopened.
func (s *Store) CompleteReminder(id string, completed bool) (*Reminder, error) {
	if err := s.EnsureAccess(); err != nil {
		return nil, err
	}

	item, err := s.lookupItem(id)
	if err != nil {
		return nil, err
	}
	item.Completed = completed

	if err := s.api.SaveItem(item); err != nil {
		return nil, &SaveError{Op: "complete_reminder", Reason: err.Error()}
	}

	r := reminderFromItem(*item)
	return &r, nil
}

// DeleteReminder deletes a reminder.
func (s *Store) DeleteReminder(id string) error {
	if err := s.EnsureAccess(); err != nil {
		return err
	}

	if _, err := s.lookupItem(id); err != nil {
		return err
	}
	if err := s.api.RemoveItem(id); err != nil {
		return &SaveError{Op: "delete_reminder", Reason: err.Error()}
	}
	s.log.Debug().Str("reminder_id", id).Msg("deleted reminder")
	return nil
}

// MoveReminder reassigns a reminder to a different list.
func (s *Store) MoveReminder(id, listID string) (*Reminder, error) {
	if err := s.EnsureAccess(); err != nil {
		return nil, err
	}

	item, err := s.lookupItem(id)
	if err != nil {
		return nil, err
	}
	cal, err := s.lookupCalendar(listID)
	if err != nil {
		return nil, err
	}
	item.CalendarID = cal.ID
	item.CalendarTitle = cal.Title

	if err := s.api.SaveItem(item); err != nil {
		return nil, &SaveError{Op: "move_reminder", Reason: err.Error()}
	}

	r := reminderFromItem(*item)
	return &r, nil
}
