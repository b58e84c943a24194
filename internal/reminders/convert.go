package reminders

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/remindkit/mcp-reminders/internal/eventkit"
)

// Converters between the framework's record shapes and the wire model.
// All of them are pure; the date-components and color conversions mirror
// how the framework itself treats partial and lossy values.

// componentsToTime maps date components to a calendar date-time. A
// missing year means the whole value is unset, not year zero; missing
// time-of-day fields default to 0, matching how the Reminders UI shows
// day-granularity due dates.
func componentsToTime(c *eventkit.DateComponents) *time.Time {
	if c == nil || c.Year == eventkit.Undefined {
		return nil
	}
	if c.Month == eventkit.Undefined || c.Day == eventkit.Undefined {
		return nil
	}

	defined := func(v int) int {
		if v == eventkit.Undefined {
			return 0
		}
		return v
	}
	t := time.Date(c.Year, time.Month(c.Month), c.Day,
		defined(c.Hour), defined(c.Minute), defined(c.Second), 0, time.Local)
	return &t
}

func timeToComponents(t time.Time) *eventkit.DateComponents {
	return &eventkit.DateComponents{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// epochToTime converts the store's epoch-seconds timestamps. The store
// is UTC-based internally, so there is no timezone ambiguity.
func epochToTime(epoch *float64) *time.Time {
	if epoch == nil {
		return nil
	}
	t := time.Unix(int64(*epoch), 0).UTC()
	return &t
}

func timeToEpoch(t time.Time) float64 {
	return float64(t.Unix())
}

// normalizeHexColor validates a hex color and normalizes it to
// "#RRGGBB" uppercase. Three-digit shorthand is expanded.
func normalizeHexColor(s string) (string, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 3 && len(hex) != 6 {
		return "", &ValidationError{Field: "color", Reason: "must be 3 or 6 hex digits"}
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", &ValidationError{Field: "color", Reason: "must contain valid hex digits"}
	}
	if len(hex) == 3 {
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	}
	return "#" + strings.ToUpper(hex), nil
}

// hexToColor converts a hex string to raw RGBA components for the
// framework. The round trip is best-effort only: the upstream store
// shifts colors through color-space conversion during sync.
func hexToColor(s string) (eventkit.Color, error) {
	norm, err := normalizeHexColor(s)
	if err != nil {
		return nil, err
	}
	hex := norm[1:]

	channel := func(i int) float64 {
		v, _ := strconv.ParseUint(hex[i:i+2], 16, 16)
		return float64(v) / 255.0
	}
	return eventkit.Color{channel(0), channel(2), channel(4), 1.0}, nil
}

// colorToHex converts raw color components to a hex string. Grayscale
// colors (two components) are widened to RGB. Returns "" when the
// components are unusable.
func colorToHex(c eventkit.Color) string {
	byteOf := func(v float64) int {
		b := int(v * 255)
		if b < 0 {
			b = 0
		}
		if b > 255 {
			b = 255
		}
		return b
	}

	switch {
	case len(c) >= 3:
		return fmt.Sprintf("#%02X%02X%02X", byteOf(c[0]), byteOf(c[1]), byteOf(c[2]))
	case len(c) == 2:
		gray := byteOf(c[0])
		return fmt.Sprintf("#%02X%02X%02X", gray, gray, gray)
	}
	return ""
}

func priorityFromInt(v int) Priority {
	p := Priority(v)
	if !p.Valid() {
		return PriorityNone
	}
	return p
}

func listFromCalendar(cal eventkit.Calendar, isDefault bool) List {
	return List{
		ID:        cal.ID,
		Title:     cal.Title,
		Color:     colorToHex(cal.Color),
		IsDefault: isDefault,
	}
}

func reminderFromItem(item eventkit.Item) Reminder {
	return Reminder{
		ID:               item.ID,
		Title:            item.Title,
		ListID:           item.CalendarID,
		ListTitle:        item.CalendarTitle,
		Notes:            item.Notes,
		URL:              item.URL,
		IsCompleted:      item.Completed,
		CompletionDate:   epochToTime(item.CompletionDate),
		DueDate:          componentsToTime(item.DueDate),
		StartDate:        componentsToTime(item.StartDate),
		Priority:         priorityFromInt(item.Priority),
		CreationDate:     epochToTime(item.CreationDate),
		LastModifiedDate: epochToTime(item.LastModifiedDate),
		Location:         locationFromAlarms(item.Alarms),
	}
}

func alarmFromLocation(loc LocationTrigger) eventkit.Alarm {
	return eventkit.Alarm{
		Proximity: loc.Proximity,
		Location: &eventkit.StructuredLocation{
			Title:     loc.Title,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Radius:    loc.Radius,
		},
	}
}

// locationFromAlarms extracts the first location alarm, if any.
func locationFromAlarms(alarms []eventkit.Alarm) *LocationTrigger {
	for _, alarm := range alarms {
		if alarm.Location == nil || alarm.Proximity == eventkit.ProximityNone {
			continue
		}
		loc := &LocationTrigger{
			Title:     alarm.Location.Title,
			Latitude:  alarm.Location.Latitude,
			Longitude: alarm.Location.Longitude,
			Radius:    alarm.Location.Radius,
			Proximity: alarm.Proximity,
		}
		if loc.Title == "" {
			loc.Title = "Location"
		}
		if loc.Radius <= 0 {
			loc.Radius = 100
		}
		return loc
	}
	return nil
}
