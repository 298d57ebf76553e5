package domain

import (
	"errors"
	"time"
)

// ErrInvalidInterval is returned for intervals where start is not strictly
// before end.
var ErrInvalidInterval = errors.New("domain: invalid interval")

// Interval is a half-open time range [Start, End). Immutable value type.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds a validated interval.
func NewInterval(start, end time.Time) (Interval, error) {
	i := Interval{Start: start, End: end}
	if err := i.Validate(); err != nil {
		return Interval{}, err
	}
	return i, nil
}

// Validate checks the start < end invariant.
func (i Interval) Validate() error {
	if !i.Start.Before(i.End) {
		return ErrInvalidInterval
	}
	return nil
}

// Overlaps reports whether i and other truly intersect. The test is open:
// intervals that merely touch at an endpoint (i.End == other.Start) do NOT
// overlap, so adjacent slots stay bookable back-to-back against adjacent
// busy periods.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// OverlapsAny reports whether i overlaps at least one interval in busy.
func (i Interval) OverlapsAny(busy []Interval) bool {
	for _, b := range busy {
		if i.Overlaps(b) {
			return true
		}
	}
	return false
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
