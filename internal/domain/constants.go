package domain

import "time"

// Default generation policy values
const (
	DefaultHorizonDays          = 14
	DefaultSlotDurationMinutes  = 30
	DefaultWorkingHoursStart    = 9
	DefaultWorkingHoursEnd      = 17
	DefaultDirectoryHorizonDays = 7
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MaxHorizonDays         = 365 // 1 year
)

// SlotLabelFormat is the layout for the human-readable slot label,
// e.g. "Oct 15, 2025 at 9:30 AM".
const SlotLabelFormat = "Jan 2, 2006 at 3:04 PM"

// DefaultCalendarID is the calendar used when a user has not picked one.
const DefaultCalendarID = "primary"

// ReferenceLocation is the fixed reference frame for slot generation and
// labels. Working hours are not timezone-aware.
var ReferenceLocation = time.UTC
