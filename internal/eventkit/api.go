package eventkit

// Predicate selects which reminder items a fetch returns.
//
// Due bounds are only honored for incomplete fetches: EventKit's
// date-bounded reminder predicate exists solely for incomplete items,
// and a fetch that includes completed reminders ignores the bounds.
type Predicate struct {
	// CalendarIDs limits the fetch to the given lists. Nil means all.
	CalendarIDs []string
	// IncludeCompleted fetches every reminder instead of incomplete only.
	IncludeCompleted bool
	// DueStarting and DueEnding bound the due date, epoch seconds.
	DueStarting *float64
	DueEnding   *float64
}

// API is the narrow surface of the EventKit framework this adapter uses.
//
// RequestAccess and FetchItems mirror the framework's asynchronous
// completion-handler calls: the handler is invoked exactly once, possibly
// on a framework-owned thread. Everything else is synchronous.
//
// Lookup calls return (nil, nil) when the identifier does not resolve;
// callers decide whether that is an error. Save calls assign an ID to
// records that have none.
type API interface {
	// RequestAccess asks the user for Reminders access. The handler may
	// fire only after the user answers the system prompt; there is no
	// deadline on that.
	RequestAccess(fn func(granted bool, err error))

	Calendars() ([]Calendar, error)
	DefaultCalendar() (*Calendar, error)
	CalendarWithIdentifier(id string) (*Calendar, error)
	SaveCalendar(cal *Calendar) error
	RemoveCalendar(id string) error

	// FetchItems runs the predicate against the store and hands the
	// matching items to fn exactly once.
	FetchItems(p Predicate, fn func(items []Item, err error))

	// ItemWithIdentifier looks a reminder up by its item identifier,
	// falling back to the external identifier for synced accounts.
	ItemWithIdentifier(id string) (*Item, error)
	SaveItem(item *Item) error
	RemoveItem(id string) error
}
