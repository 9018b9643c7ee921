package launchd

// CalendarInterval is one cron-like firing rule for StartCalendarInterval.
// A nil field is a wildcard. Ranges are not checked:
// Minute 0-59, Hour 0-23, Day 1-31, Weekday 0-7 (0 and 7 are Sunday),
// Month 1-12.
type CalendarInterval struct {
	Minute  *int `plist:"Minute,omitempty"`
	Hour    *int `plist:"Hour,omitempty"`
	Day     *int `plist:"Day,omitempty"`
	Weekday *int `plist:"Weekday,omitempty"`
	Month   *int `plist:"Month,omitempty"`
}

// CalendarIntervalBuilder assembles a CalendarInterval.
type CalendarIntervalBuilder struct {
	interval CalendarInterval
}

// NewCalendarIntervalBuilder returns a builder with every field a wildcard.
func NewCalendarIntervalBuilder() *CalendarIntervalBuilder {
	return &CalendarIntervalBuilder{}
}

// Minute sets the minute, 0-59.
func (b *CalendarIntervalBuilder) Minute(n int) *CalendarIntervalBuilder {
	b.interval.Minute = &n
	return b
}

// Hour sets the hour, 0-23.
func (b *CalendarIntervalBuilder) Hour(n int) *CalendarIntervalBuilder {
	b.interval.Hour = &n
	return b
}

// Day sets the day of the month, 1-31.
func (b *CalendarIntervalBuilder) Day(n int) *CalendarIntervalBuilder {
	b.interval.Day = &n
	return b
}

// Weekday sets the day of the week; 0 and 7 are Sunday.
func (b *CalendarIntervalBuilder) Weekday(n int) *CalendarIntervalBuilder {
	b.interval.Weekday = &n
	return b
}

// Month sets the month, 1-12.
func (b *CalendarIntervalBuilder) Month(n int) *CalendarIntervalBuilder {
	b.interval.Month = &n
	return b
}

// Build returns the assembled interval.
func (b *CalendarIntervalBuilder) Build() CalendarInterval {
	return b.interval
}
