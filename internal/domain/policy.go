package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidPolicy is returned when a generation policy fails validation.
var ErrInvalidPolicy = errors.New("domain: invalid generation policy")

// WorkingHours is the daily bookable window [StartHour:00, EndHour:00) in the
// reference frame.
type WorkingHours struct {
	StartHour int // 0-23
	EndHour   int // 0-23, must be greater than StartHour
}

// Validate checks hour ranges and ordering. StartHour == EndHour is allowed
// and yields an empty daily range.
func (w WorkingHours) Validate() error {
	if w.StartHour < 0 || w.StartHour > 23 {
		return fmt.Errorf("%w: start hour %d out of range", ErrInvalidPolicy, w.StartHour)
	}
	if w.EndHour < 0 || w.EndHour > 23 {
		return fmt.Errorf("%w: end hour %d out of range", ErrInvalidPolicy, w.EndHour)
	}
	if w.EndHour < w.StartHour {
		return fmt.Errorf("%w: end hour %d before start hour %d", ErrInvalidPolicy, w.EndHour, w.StartHour)
	}
	return nil
}

// GenerationPolicy configures one slot-generation run. Constructed per
// request, no shared mutable state.
type GenerationPolicy struct {
	HorizonDays         int
	SlotDurationMinutes int
	WorkingHours        WorkingHours
}

// DefaultGenerationPolicy returns the service-wide default policy:
// 14 days ahead, 30-minute slots, 09:00-17:00.
func DefaultGenerationPolicy() GenerationPolicy {
	return GenerationPolicy{
		HorizonDays:         DefaultHorizonDays,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		WorkingHours: WorkingHours{
			StartHour: DefaultWorkingHoursStart,
			EndHour:   DefaultWorkingHoursEnd,
		},
	}
}

// Validate rejects non-positive durations and out-of-range horizons before
// any I/O happens. HorizonDays == 0 is valid and yields no slots.
func (p GenerationPolicy) Validate() error {
	if p.HorizonDays < 0 {
		return fmt.Errorf("%w: horizon days must not be negative", ErrInvalidPolicy)
	}
	if p.HorizonDays > MaxHorizonDays {
		return fmt.Errorf("%w: horizon days must not exceed %d", ErrInvalidPolicy, MaxHorizonDays)
	}
	if p.SlotDurationMinutes < MinSlotDurationMinutes || p.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidPolicy, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	return p.WorkingHours.Validate()
}
