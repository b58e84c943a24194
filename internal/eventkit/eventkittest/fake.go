// Package eventkittest provides an in-memory API implementation for
// tests. It mimics the observable behavior of the real store: assigned
// identifiers, completion-date stamping, denormalized calendar titles,
// and the incomplete-only scope of date-bounded fetch predicates.
package eventkittest

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/remindkit/mcp-reminders/internal/eventkit"
)

// Fake is an in-memory eventkit.API. Zero value is not usable; call New.
type Fake struct {
	mu sync.Mutex

	// Granted and AccessErr control what RequestAccess reports.
	Granted   bool
	AccessErr error

	// DefaultID is the calendar new reminders fall into when none is
	// given. The first calendar added becomes the default.
	DefaultID string

	// SaveItemErr and SaveCalendarErr force the next saves to fail.
	SaveItemErr     error
	SaveCalendarErr error

	// Call counters, for asserting that validation short-circuits
	// before any store traffic.
	AccessRequests int
	Fetches        int
	ItemSaves      int
	CalendarSaves  int

	calendars []*eventkit.Calendar
	items     []*eventkit.Item

	now func() time.Time
}

// New returns a Fake that grants access.
func New() *Fake {
	return &Fake{Granted: true, now: time.Now}
}

// SetNow overrides the clock used for stamped dates.
func (f *Fake) SetNow(now func() time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// AddCalendar seeds a calendar and returns a copy of it.
func (f *Fake) AddCalendar(title string) eventkit.Calendar {
	f.mu.Lock()
	defer f.mu.Unlock()

	cal := &eventkit.Calendar{ID: uuid.NewString(), Title: title}
	f.calendars = append(f.calendars, cal)
	if f.DefaultID == "" {
		f.DefaultID = cal.ID
	}
	return *cal
}

// PutItem seeds an item directly, bypassing save-time stamping. An empty
// ID is assigned. Returns a copy of the stored item.
func (f *Fake) PutItem(item eventkit.Item) eventkit.Item {
	f.mu.Lock()
	defer f.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if cal := f.findCalendar(item.CalendarID); cal != nil {
		item.CalendarTitle = cal.Title
	}
	stored := item
	f.items = append(f.items, &stored)
	return item
}

func (f *Fake) RequestAccess(fn func(granted bool, err error)) {
	f.mu.Lock()
	f.AccessRequests++
	granted, err := f.Granted, f.AccessErr
	f.mu.Unlock()
	fn(granted, err)
}

func (f *Fake) Calendars() ([]eventkit.Calendar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]eventkit.Calendar, 0, len(f.calendars))
	for _, cal := range f.calendars {
		out = append(out, *cal)
	}
	return out, nil
}

func (f *Fake) DefaultCalendar() (*eventkit.Calendar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if cal := f.findCalendar(f.DefaultID); cal != nil {
		out := *cal
		return &out, nil
	}
	return nil, nil
}

func (f *Fake) CalendarWithIdentifier(id string) (*eventkit.Calendar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if cal := f.findCalendar(id); cal != nil {
		out := *cal
		return &out, nil
	}
	return nil, nil
}

func (f *Fake) SaveCalendar(cal *eventkit.Calendar) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CalendarSaves++
	if f.SaveCalendarErr != nil {
		return f.SaveCalendarErr
	}

	if cal.ID == "" {
		cal.ID = uuid.NewString()
		stored := *cal
		f.calendars = append(f.calendars, &stored)
		if f.DefaultID == "" {
			f.DefaultID = cal.ID
		}
		return nil
	}

	existing := f.findCalendar(cal.ID)
	if existing == nil {
		return errors.New("calendar not found")
	}
	*existing = *cal

	// Keep denormalized titles in step with the rename.
	for _, item := range f.items {
		if item.CalendarID == cal.ID {
			item.CalendarTitle = cal.Title
		}
	}
	return nil
}

func (f *Fake) RemoveCalendar(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := -1
	for i, cal := range f.calendars {
		if cal.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.New("calendar not found")
	}
	f.calendars = append(f.calendars[:idx], f.calendars[idx+1:]...)

	// Deleting a list deletes its reminders, as the real store does.
	kept := f.items[:0]
	for _, item := range f.items {
		if item.CalendarID != id {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func (f *Fake) FetchItems(p eventkit.Predicate, fn func(items []eventkit.Item, err error)) {
	f.mu.Lock()
	f.Fetches++

	var out []eventkit.Item
	for _, item := range f.items {
		if f.matches(p, item) {
			out = append(out, *item)
		}
	}
	f.mu.Unlock()

	fn(out, nil)
}

func (f *Fake) ItemWithIdentifier(id string) (*eventkit.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if item := f.findItem(id); item != nil {
		out := *item
		return &out, nil
	}
	return nil, nil
}

func (f *Fake) SaveItem(item *eventkit.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ItemSaves++
	if f.SaveItemErr != nil {
		return f.SaveItemErr
	}

	if item.CalendarID == "" {
		if f.DefaultID == "" {
			return errors.New("no writable source available for reminders")
		}
		item.CalendarID = f.DefaultID
	}
	if cal := f.findCalendar(item.CalendarID); cal != nil {
		item.CalendarTitle = cal.Title
	} else {
		return errors.New("calendar not found")
	}

	now := f.now().Unix()
	epoch := float64(now)

	var prev *eventkit.Item
	if item.ID != "" {
		prev = f.findItem(item.ID)
		if prev == nil {
			return errors.New("reminder not found")
		}
	}

	// The store stamps completion and modification dates itself.
	if item.Completed {
		wasCompleted := prev != nil && prev.Completed
		if !wasCompleted || item.CompletionDate == nil {
			item.CompletionDate = &epoch
		}
	} else {
		item.CompletionDate = nil
	}
	item.LastModifiedDate = &epoch

	if prev == nil {
		item.ID = uuid.NewString()
		item.CreationDate = &epoch
		stored := *item
		f.items = append(f.items, &stored)
		return nil
	}

	item.CreationDate = prev.CreationDate
	*prev = *item
	return nil
}

func (f *Fake) RemoveItem(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errors.New("reminder not found")
}

func (f *Fake) findCalendar(id string) *eventkit.Calendar {
	for _, cal := range f.calendars {
		if cal.ID == id {
			return cal
		}
	}
	return nil
}

func (f *Fake) findItem(id string) *eventkit.Item {
	for _, item := range f.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (f *Fake) matches(p eventkit.Predicate, item *eventkit.Item) bool {
	if p.CalendarIDs != nil {
		found := false
		for _, id := range p.CalendarIDs {
			if id == item.CalendarID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if p.IncludeCompleted {
		// Completed-inclusive fetches ignore due bounds entirely.
		return true
	}
	if item.Completed {
		return false
	}
	if p.DueStarting == nil && p.DueEnding == nil {
		return true
	}

	due, ok := componentsEpoch(item.DueDate)
	if !ok {
		// Date-bounded incomplete predicates skip undated reminders.
		return false
	}
	if p.DueStarting != nil && due < *p.DueStarting {
		return false
	}
	if p.DueEnding != nil && due > *p.DueEnding {
		return false
	}
	return true
}

func componentsEpoch(c *eventkit.DateComponents) (float64, bool) {
	if c == nil || c.Year == eventkit.Undefined ||
		c.Month == eventkit.Undefined || c.Day == eventkit.Undefined {
		return 0, false
	}
	defined := func(v int) int {
		if v == eventkit.Undefined {
			return 0
		}
		return v
	}
	t := time.Date(c.Year, time.Month(c.Month), c.Day,
		defined(c.Hour), defined(c.Minute), defined(c.Second), 0, time.Local)
	return float64(t.Unix()), true
}
