// Package schedule turns cron expressions into launchd start triggers.
package schedule

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/robfig/cron/v3"

	"launchkit/internal/launchd"
)

// MaxIntervals bounds how many calendar entries one expression may expand to.
const MaxIntervals = 256

// ErrTooManyIntervals is returned when an expression expands past MaxIntervals.
var ErrTooManyIntervals = errors.New("schedule: expression expands to too many calendar intervals")

// ErrIntervalTooLong is returned when an "@every" delay does not fit
// StartInterval's 32-bit seconds.
var ErrIntervalTooLong = errors.New("schedule: interval exceeds the largest StartInterval")

// starBit marks a field written as "*" or "?" in robfig/cron's bit sets.
const starBit = 1 << 63

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Trigger is what one expression becomes: either calendar intervals or, for
// "@every", a fixed StartInterval in seconds.
type Trigger struct {
	Intervals []launchd.CalendarInterval
	Every     uint32
}

// Parse converts a standard five-field cron expression or descriptor.
func Parse(expr string) (Trigger, error) {
	sched, err := parser.Parse(expr)
	if err != nil {
		return Trigger{}, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}

	switch s := sched.(type) {
	case cron.ConstantDelaySchedule:
		secs, err := every(s.Delay)
		if err != nil {
			return Trigger{}, fmt.Errorf("cron expression %q: %w", expr, err)
		}
		return Trigger{Every: secs}, nil
	case *cron.SpecSchedule:
		intervals, err := expand(s)
		if err != nil {
			return Trigger{}, fmt.Errorf("cron expression %q: %w", expr, err)
		}
		return Trigger{Intervals: intervals}, nil
	default:
		return Trigger{}, fmt.Errorf("unsupported cron schedule %T for %q", sched, expr)
	}
}

func every(d time.Duration) (uint32, error) {
	secs := d / time.Second
	if secs > math.MaxUint32 {
		return 0, ErrIntervalTooLong
	}
	if secs < 1 {
		secs = 1
	}
	return uint32(secs), nil
}

type field struct {
	bits     uint64
	min, max int
	set      func(*launchd.CalendarIntervalBuilder, int) *launchd.CalendarIntervalBuilder
}

func expand(s *cron.SpecSchedule) ([]launchd.CalendarInterval, error) {
	minute := field{s.Minute, 0, 59, (*launchd.CalendarIntervalBuilder).Minute}
	hour := field{s.Hour, 0, 23, (*launchd.CalendarIntervalBuilder).Hour}
	dom := field{s.Dom, 1, 31, (*launchd.CalendarIntervalBuilder).Day}
	month := field{s.Month, 1, 12, (*launchd.CalendarIntervalBuilder).Month}
	dow := field{s.Dow, 0, 6, (*launchd.CalendarIntervalBuilder).Weekday}

	// cron fires when either day field matches if both are restricted, so
	// each gets its own set of entries.
	if dom.bits&starBit == 0 && dow.bits&starBit == 0 {
		byDay, err := product(minute, hour, dom, month)
		if err != nil {
			return nil, err
		}
		byWeekday, err := product(minute, hour, month, dow)
		if err != nil {
			return nil, err
		}
		out := append(byDay, byWeekday...)
		if len(out) > MaxIntervals {
			return nil, ErrTooManyIntervals
		}
		return out, nil
	}
	return product(minute, hour, dom, month, dow)
}

func product(fields ...field) ([]launchd.CalendarInterval, error) {
	builders := []*launchd.CalendarIntervalBuilder{launchd.NewCalendarIntervalBuilder()}
	for _, f := range fields {
		if f.bits&starBit != 0 {
			continue
		}
		values := f.values()
		if len(builders)*len(values) > MaxIntervals {
			return nil, ErrTooManyIntervals
		}
		next := make([]*launchd.CalendarIntervalBuilder, 0, len(builders)*len(values))
		for _, b := range builders {
			for _, v := range values {
				nb := launchd.NewCalendarIntervalBuilder()
				*nb = *b
				f.set(nb, v)
				next = append(next, nb)
			}
		}
		builders = next
	}

	out := make([]launchd.CalendarInterval, 0, len(builders))
	for _, b := range builders {
		out = append(out, b.Build())
	}
	return out, nil
}

func (f field) values() []int {
	var out []int
	for v := f.min; v <= f.max; v++ {
		if f.bits&(1<<uint(v)) != 0 {
			out = append(out, v)
		}
	}
	return out
}
