package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CandidateTimes sweeps the opening hours with the given step
// A start is kept only if start+step <= close, so a slot never runs past closing
func CandidateTimes(hours OpeningHours, step int) []types.TimeString {
	if step <= 0 {
		step = SlotGranularityMinutes
	}

	open, closing := hours.Open.Minutes(), hours.Close.Minutes()
	if open < 0 || closing < 0 {
		return []types.TimeString{}
	}

	result := make([]types.TimeString, 0, (closing-open)/step)
	for start := open; start+step <= closing; start += step {
		t, err := types.FromMinutes(start)
		if err != nil {
			break
		}
		result = append(result, t)
	}
	return result
}

// BookingWindow limits which dates and start times are still bookable at a moment
// The zero value accepts every candidate on any date, past dates included
type BookingWindow struct {
	RejectPast       bool           // past dates and started slots are not bookable
	MinNoticeMinutes int            // today's slots must start at or after now+notice; only with RejectPast
	Location         *time.Location // shop time zone that defines "today"; nil means now's own zone
}

func (w BookingWindow) local(now time.Time) time.Time {
	if w.Location == nil {
		return now
	}
	return now.In(w.Location)
}

// IsPast reports whether the whole date is already over for the shop
func (w BookingWindow) IsPast(date time.Time, now time.Time) bool {
	if !w.RejectPast {
		return false
	}
	return IsPastDate(date, w.local(now))
}

// SlotsForDate candidate start times for a calendar date as seen at moment now
func SlotsForDate(hours OpeningHours, date time.Time, now time.Time, window BookingWindow) []types.TimeString {
	candidates := CandidateTimes(hours, SlotGranularityMinutes)
	if !window.RejectPast {
		return candidates
	}

	now = window.local(now)
	today := truncateDay(now)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case day.Before(today):
		return []types.TimeString{}
	case day.After(today):
		return candidates
	}

	earliest := now.Hour()*60 + now.Minute() + window.MinNoticeMinutes
	result := make([]types.TimeString, 0, len(candidates))
	for _, t := range candidates {
		if t.Minutes() >= earliest {
			result = append(result, t)
		}
	}
	return result
}

// ContainsTime checks membership in an ordered slot list
func ContainsTime(times []types.TimeString, t types.TimeString) bool {
	for _, candidate := range times {
		if candidate == t {
			return true
		}
	}
	return false
}

// IsPastDate reports whether date is before the day of now
func IsPastDate(date time.Time, now time.Time) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	return day.Before(truncateDay(now))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
