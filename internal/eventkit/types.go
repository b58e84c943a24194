// Package eventkit is the boundary to the macOS EventKit framework.
//
// It exposes the framework's reminder records as plain Go structs and its
// call surface as the callback-shaped API interface. On darwin the
// interface is implemented by a cgo bridge over EKEventStore; everywhere
// else New returns an error. Higher layers never touch the framework
// directly.
package eventkit

// Undefined marks a date component the framework reports as unset.
// Mirrors NSUndefinedDateComponent (NSIntegerMax truncated to 32 bits):
// EventKit uses it as a sentinel for "field absent", never as a real value.
const Undefined = 0x7FFFFFFF

// DateComponents is a partial calendar date-time. Any field may be
// Undefined; a due date with only a calendar day carries Undefined hour,
// minute and second rather than zeros.
type DateComponents struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// NewDateComponents returns components with every field unset.
func NewDateComponents() *DateComponents {
	return &DateComponents{
		Year:   Undefined,
		Month:  Undefined,
		Day:    Undefined,
		Hour:   Undefined,
		Minute: Undefined,
		Second: Undefined,
	}
}

// Color holds raw CGColor components in the 0..1 range. Length 4 for RGBA,
// 2 for grayscale+alpha. Empty means the framework reported no color.
type Color []float64

// Calendar is a reminder list as EventKit reports it.
type Calendar struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color Color  `json:"color,omitempty"`
}

// StructuredLocation is the geofence attached to a location alarm.
type StructuredLocation struct {
	Title     string  `json:"title"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

// Alarm proximity values as EventKit reports them.
const (
	ProximityNone  = ""
	ProximityEnter = "enter"
	ProximityLeave = "leave"
)

// Alarm is a reminder alarm. Only location alarms carry a structured
// location; time alarms come through with a nil Location and are ignored
// by this adapter.
type Alarm struct {
	Proximity string              `json:"proximity,omitempty"`
	Location  *StructuredLocation `json:"location,omitempty"`
}

// Item is a reminder as EventKit reports it. Timestamps are epoch seconds
// (the store is UTC-based internally); due and start dates are floating
// date components. CalendarID and CalendarTitle are denormalized from the
// owning calendar and may be empty if the store returns a dangling
// reference.
type Item struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	CalendarID       string          `json:"calendar_id"`
	CalendarTitle    string          `json:"calendar_title,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	URL              string          `json:"url,omitempty"`
	Completed        bool            `json:"completed"`
	CompletionDate   *float64        `json:"completion_date,omitempty"`
	DueDate          *DateComponents `json:"due_date,omitempty"`
	StartDate        *DateComponents `json:"start_date,omitempty"`
	Priority         int             `json:"priority"`
	CreationDate     *float64        `json:"creation_date,omitempty"`
	LastModifiedDate *float64        `json:"last_modified_date,omitempty"`
	Alarms           []Alarm         `json:"alarms,omitempty"`
}
