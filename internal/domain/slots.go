package domain

import "time"

// Slot is a candidate bookable time range produced by GenerateSlots. Slots
// are generated fresh on every call and never persisted; the persisted
// record is the Appointment.
type Slot struct {
	Interval
	Label string
}

// IsWorkingDay reports whether t falls on a weekday. Weekend exclusion is a
// fixed policy constant, not per-seller configuration.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// StartOfDay truncates t to midnight in the reference frame.
func StartOfDay(t time.Time) time.Time {
	t = t.In(ReferenceLocation)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ReferenceLocation)
}

// GenerateSlots enumerates candidate slots over the policy horizon, in
// chronological order. For each weekday within [0, HorizonDays) of now's day
// a cursor walks the working-hours window in slot-duration steps. A step is
// dropped when the slot would run past the end of the window (no partial
// trailing slot), when it has already ended (slotEnd <= now; the walk
// continues, later slots the same day may still be valid), or when it
// overlaps a busy interval. Ordering of the result is significant: consumers
// rely on "first slot" semantics.
//
// The function is pure modulo reading now and does not mutate busy.
func GenerateSlots(busy []Interval, policy GenerationPolicy, now time.Time) []Slot {
	slots := make([]Slot, 0)
	now = now.In(ReferenceLocation)
	step := time.Duration(policy.SlotDurationMinutes) * time.Minute
	firstDay := StartOfDay(now)

	for d := 0; d < policy.HorizonDays; d++ {
		day := firstDay.AddDate(0, 0, d)
		if !IsWorkingDay(day) {
			continue
		}

		dayStart := day.Add(time.Duration(policy.WorkingHours.StartHour) * time.Hour)
		dayEnd := day.Add(time.Duration(policy.WorkingHours.EndHour) * time.Hour)

		for t := dayStart; t.Before(dayEnd); t = t.Add(step) {
			slotEnd := t.Add(step)
			if slotEnd.After(dayEnd) {
				break
			}
			if !slotEnd.After(now) {
				continue
			}

			candidate := Interval{Start: t, End: slotEnd}
			if candidate.OverlapsAny(busy) {
				continue
			}

			slots = append(slots, Slot{
				Interval: candidate,
				Label:    t.Format(SlotLabelFormat),
			})
		}
	}

	return slots
}

// IsIntervalAvailable is the pre-commit availability check: false when the
// candidate has already started (candidate.Start <= now), otherwise true iff
// no busy interval overlaps the candidate. Touching edges are fine.
//
// The caller invokes this twice per booking lifecycle: loosely during
// listing (possibly stale busy data) and authoritatively with a freshly
// fetched busy set immediately before the booking is committed. The second
// call is the double-booking guard.
func IsIntervalAvailable(candidate Interval, busy []Interval, now time.Time) bool {
	if !candidate.Start.After(now) {
		return false
	}
	return !candidate.OverlapsAny(busy)
}
