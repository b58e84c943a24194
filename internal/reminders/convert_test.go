package reminders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/remindkit/mcp-reminders/internal/eventkit"
)

func TestComponentsToTime(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c := &eventkit.DateComponents{Year: 2025, Month: 1, Day: 15, Hour: 9, Minute: 30, Second: 0}
	got := componentsToTime(c)
	if assert.NotNil(got) {
		assert.Equal(time.Date(2025, 1, 15, 9, 30, 0, 0, time.Local), *got)
	}
}

func TestComponentsToTimeDayGranularity(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	// Day-granularity due dates carry unset time-of-day fields; they
	// resolve to midnight rather than being dropped.
	c := eventkit.NewDateComponents()
	c.Year, c.Month, c.Day = 2025, 6, 1
	got := componentsToTime(c)
	if assert.NotNil(got) {
		assert.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), *got)
	}
}

func TestComponentsToTimeUnset(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Nil(componentsToTime(nil))
	assert.Nil(componentsToTime(&eventkit.DateComponents{
		Year: eventkit.Undefined, Month: 1, Day: 15,
	}))
	assert.Nil(componentsToTime(&eventkit.DateComponents{
		Year: 2025, Month: eventkit.Undefined, Day: eventkit.Undefined,
	}))
}

func TestTimeToComponentsRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	orig := time.Date(2025, 3, 20, 18, 45, 30, 0, time.Local)
	got := componentsToTime(timeToComponents(orig))
	if assert.NotNil(got) {
		assert.True(orig.Equal(*got))
	}
}

func TestEpochToTime(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Nil(epochToTime(nil))

	epoch := float64(1736931600) // 2025-01-15T09:00:00Z
	got := epochToTime(&epoch)
	if assert.NotNil(got) {
		assert.Equal(time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC), *got)
	}
}

func TestNormalizeHexColor(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	got, err := normalizeHexColor("#ff5733")
	assert.Nil(err)
	assert.Equal("#FF5733", got)

	got, err = normalizeHexColor("abc")
	assert.Nil(err)
	assert.Equal("#AABBCC", got)

	got, err = normalizeHexColor("  #1E90FF ")
	assert.Nil(err)
	assert.Equal("#1E90FF", got)
}

func TestNormalizeHexColorInvalid(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	for _, bad := range []string{"", "#12345", "xyzxyz", "#gggggg", "#1234567"} {
		_, err := normalizeHexColor(bad)
		assert.NotNil(err, "input %q", bad)
		var verr *ValidationError
		assert.ErrorAs(err, &verr, "input %q", bad)
	}
}

func TestHexToColor(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c, err := hexToColor("#FF0000")
	assert.Nil(err)
	assert.Equal(eventkit.Color{1.0, 0.0, 0.0, 1.0}, c)
}

func TestColorToHex(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal("#FF0000", colorToHex(eventkit.Color{1.0, 0.0, 0.0, 1.0}))
	assert.Equal("#000000", colorToHex(eventkit.Color{0, 0, 0}))

	// Grayscale colors carry only white and alpha components.
	assert.Equal("#FFFFFF", colorToHex(eventkit.Color{1.0, 1.0}))
	assert.Equal("#000000", colorToHex(eventkit.Color{0.0, 1.0}))

	assert.Equal("", colorToHex(nil))
	assert.Equal("", colorToHex(eventkit.Color{0.5}))
}

func TestPriorityFromInt(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(PriorityNone, priorityFromInt(0))
	assert.Equal(PriorityHigh, priorityFromInt(1))
	assert.Equal(PriorityMedium, priorityFromInt(5))
	assert.Equal(PriorityLow, priorityFromInt(9))

	// Out-of-set values from the store read back as none.
	assert.Equal(PriorityNone, priorityFromInt(3))
	assert.Equal(PriorityNone, priorityFromInt(-1))
	assert.Equal(PriorityNone, priorityFromInt(42))
}

func TestLocationFromAlarms(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Nil(locationFromAlarms(nil))
	assert.Nil(locationFromAlarms([]eventkit.Alarm{{Proximity: eventkit.ProximityNone}}))

	loc := locationFromAlarms([]eventkit.Alarm{{
		Proximity: ProximityEnter,
		Location:  &eventkit.StructuredLocation{Latitude: 37.7749, Longitude: -122.4194},
	}})
	if assert.NotNil(loc) {
		assert.Equal("Location", loc.Title)
		assert.Equal(100.0, loc.Radius)
		assert.Equal(ProximityEnter, loc.Proximity)
		assert.Equal(37.7749, loc.Latitude)
	}
}

func TestLocationAlarmRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	in := LocationTrigger{
		Title:     "Office",
		Latitude:  40.7128,
		Longitude: -74.0060,
		Radius:    250,
		Proximity: ProximityLeave,
	}
	got := locationFromAlarms([]eventkit.Alarm{alarmFromLocation(in)})
	if assert.NotNil(got) {
		assert.Equal(in, *got)
	}
}
