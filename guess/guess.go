// Package guess infers the frequency of a collection of date strings.
package guess

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/sartorproj/tsfreq/dates"
	"github.com/sartorproj/tsfreq/freq"
)

// ErrAmbiguousFrequency is returned when fewer than two distinct instants
// are available.
var ErrAmbiguousFrequency = errors.New("ambiguous frequency")

const day = 24 * time.Hour

// Guess parses texts and returns the frequency that best describes them.
// The result does not depend on the order of texts.
func Guess(texts []string) (freq.Frequency, error) {
	ts := make([]time.Time, len(texts))
	for i, text := range texts {
		d, err := dates.FromString(freq.Second, text)
		if err != nil {
			return freq.Undefined, err
		}
		ts[i] = d.Time()
	}
	return GuessTimes(ts)
}

// GuessTimes returns the frequency that best describes ts.
func GuessTimes(ts []time.Time) (freq.Frequency, error) {
	uniq := make([]time.Time, len(ts))
	for i, t := range ts {
		uniq[i] = t.UTC()
	}
	slices.SortFunc(uniq, func(a, b time.Time) int { return a.Compare(b) })
	uniq = slices.CompactFunc(uniq, func(a, b time.Time) bool { return a.Equal(b) })
	if len(uniq) < 2 {
		return freq.Undefined, fmt.Errorf("%w: %d distinct dates", ErrAmbiguousFrequency, len(uniq))
	}

	f := classify(uniq)
	log.Debug().Int("dates", len(uniq)).Str("freq", f.Code()).Msg("guessed frequency")
	return f, nil
}

func classify(ts []time.Time) freq.Frequency {
	minGap := ts[1].Sub(ts[0])
	for i := 2; i < len(ts); i++ {
		if g := ts[i].Sub(ts[i-1]); g < minGap {
			minGap = g
		}
	}

	var hasSecond, hasMinute, hasHour bool
	for _, t := range ts {
		hasSecond = hasSecond || t.Second() != 0
		hasMinute = hasMinute || t.Minute() != 0
		hasHour = hasHour || t.Hour() != 0
	}
	if minGap < day || hasSecond || hasMinute || hasHour {
		switch {
		case hasSecond:
			return freq.Second
		case hasMinute:
			return freq.Minute
		default:
			return freq.Hour
		}
	}

	if minGap == day {
		return businessOrDay(ts)
	}
	if sameDayOfMonth(ts) && distinctMonths(ts) {
		return monthly(ts)
	}
	if anchor, ok := sameWeekday(ts); ok {
		return freq.WeekOn(anchor)
	}
	if distinctMonths(ts) {
		return monthly(ts)
	}
	return businessOrDay(ts)
}

func businessOrDay(ts []time.Time) freq.Frequency {
	for _, t := range ts {
		if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return freq.Day
		}
	}
	return freq.Business
}

func sameWeekday(ts []time.Time) (time.Weekday, bool) {
	for _, t := range ts[1:] {
		if t.Weekday() != ts[0].Weekday() {
			return 0, false
		}
	}
	return ts[0].Weekday(), true
}

func sameDayOfMonth(ts []time.Time) bool {
	for _, t := range ts[1:] {
		if t.Day() != ts[0].Day() {
			return false
		}
	}
	return true
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func distinctMonths(ts []time.Time) bool {
	for i := 1; i < len(ts); i++ {
		if monthIndex(ts[i]) == monthIndex(ts[i-1]) {
			return false
		}
	}
	return true
}

// monthly picks the coarsest of annual, quarterly and monthly whose period
// divides every month gap.
func monthly(ts []time.Time) freq.Frequency {
	annual, quarterly := true, true
	for i := 1; i < len(ts); i++ {
		gap := monthIndex(ts[i]) - monthIndex(ts[i-1])
		annual = annual && gap%12 == 0
		quarterly = quarterly && gap%3 == 0
	}
	switch {
	case annual:
		return freq.Annual
	case quarterly:
		return freq.Quarter
	default:
		return freq.Month
	}
}
