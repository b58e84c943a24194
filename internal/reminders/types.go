package reminders

import (
	"fmt"
	"time"
)

// Priority levels matching EKReminderPriority. The values are fixed by
// the framework and map to the Reminders app UI (1 = "!!!", 5 = "!!",
// 9 = "!"); they must never be renumbered.
type Priority int

const (
	PriorityNone   Priority = 0
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 5
	PriorityLow    Priority = 9
)

// Valid reports whether p is one of the framework's priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Proximity values for location triggers.
const (
	ProximityEnter = "enter"
	ProximityLeave = "leave"
)

// List is a reminder list (an EventKit calendar).
type List struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Color     string `json:"color,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// LocationTrigger is a geofence that fires a reminder when the user
// enters or leaves a location.
type LocationTrigger struct {
	Title     string  `json:"title"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius,omitempty"`
	Proximity string  `json:"proximity,omitempty"`
}

// Validate checks coordinate and radius ranges and fills in the defaults
// (100m radius, trigger on enter).
func (l *LocationTrigger) Validate() error {
	if l.Title == "" {
		return &ValidationError{Field: "location.title", Reason: "must not be empty"}
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return &ValidationError{Field: "location.latitude", Reason: "must be between -90 and 90"}
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return &ValidationError{Field: "location.longitude", Reason: "must be between -180 and 180"}
	}
	if l.Radius < 0 || l.Radius > 10000 {
		return &ValidationError{Field: "location.radius", Reason: "must be between 0 and 10000 meters"}
	}
	if l.Radius == 0 {
		l.Radius = 100
	}
	switch l.Proximity {
	case "":
		l.Proximity = ProximityEnter
	case ProximityEnter, ProximityLeave:
	default:
		return &ValidationError{Field: "location.proximity", Reason: fmt.Sprintf("must be %q or %q", ProximityEnter, ProximityLeave)}
	}
	return nil
}

// Reminder is a single reminder item. ListID and ListTitle are
// denormalized from the owning list and may be empty if the store
// returned a dangling list reference.
type Reminder struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	ListID           string           `json:"list_id,omitempty"`
	ListTitle        string           `json:"list_title,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	URL              string           `json:"url,omitempty"`
	IsCompleted      bool             `json:"is_completed"`
	CompletionDate   *time.Time       `json:"completion_date,omitempty"`
	DueDate          *time.Time       `json:"due_date,omitempty"`
	StartDate        *time.Time       `json:"start_date,omitempty"`
	Priority         Priority         `json:"priority"`
	CreationDate     *time.Time       `json:"creation_date,omitempty"`
	LastModifiedDate *time.Time       `json:"last_modified_date,omitempty"`
	Location         *LocationTrigger `json:"location,omitempty"`
}

// BatchResult tallies a batch operation. Per-item failures are captured
// here instead of aborting the batch.
type BatchResult struct {
	Successes int      `json:"successes"`
	Failures  int      `json:"failures"`
	FailedIDs []string `json:"failed_ids,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

func (r *BatchResult) fail(id string, err error) {
	r.Failures++
	r.FailedIDs = append(r.FailedIDs, id)
	r.Errors = append(r.Errors, err.Error())
}
