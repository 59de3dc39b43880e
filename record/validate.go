package record

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/goliatone/go-health/units"
)

func RequireNotLess[T units.Comparable[T]](field string, value, bound T) error {
	if value.Compare(bound) < 0 {
		return validationError(field, fmt.Sprintf("%v must not be less than %v", value, bound))
	}
	return nil
}

func RequireNotMore[T units.Comparable[T]](field string, value, bound T) error {
	if value.Compare(bound) > 0 {
		return validationError(field, fmt.Sprintf("%v must not be more than %v", value, bound))
	}
	return nil
}

func RequireInRange[T units.Comparable[T]](field string, value, lower, upper T) error {
	if err := RequireNotLess(field, value, lower); err != nil {
		return err
	}
	return RequireNotMore(field, value, upper)
}

func requireNumberInRange[T cmp.Ordered](field string, value, lower, upper T) error {
	// value != value catches NaN.
	if value != value || value < lower || value > upper {
		return validationError(field, fmt.Sprintf("%v must be in [%v, %v]", value, lower, upper))
	}
	return nil
}

func requireTime(field string, value time.Time) error {
	if value.IsZero() {
		return validationError(field, "time is required")
	}
	return nil
}

func requireInterval(start, end time.Time) error {
	if err := requireTime("start_time", start); err != nil {
		return err
	}
	if err := requireTime("end_time", end); err != nil {
		return err
	}
	if !start.Before(end) {
		return validationError("end_time", "start time must be before end time")
	}
	return nil
}

func requireSpan(start, end time.Time) error {
	if err := requireTime("start_time", start); err != nil {
		return err
	}
	if err := requireTime("end_time", end); err != nil {
		return err
	}
	if end.Before(start) {
		return validationError("end_time", "end time must not be before start time")
	}
	return nil
}

// sortChildren returns a copy of children sorted by start time after checking
// each child is a non-empty span, adjacent children do not overlap, and the
// run is contained in [start, end].
func sortChildren[C any](field string, start, end time.Time, children []C, span func(C) (time.Time, time.Time)) ([]C, error) {
	if len(children) == 0 {
		return nil, nil
	}
	sorted := slices.Clone(children)
	slices.SortStableFunc(sorted, func(a, b C) int {
		aStart, _ := span(a)
		bStart, _ := span(b)
		return aStart.Compare(bStart)
	})

	for idx, child := range sorted {
		childStart, childEnd := span(child)
		if !childStart.Before(childEnd) {
			return nil, validationError(field, fmt.Sprintf("entry %d start time must be before end time", idx))
		}
		if idx == 0 {
			continue
		}
		_, prevEnd := span(sorted[idx-1])
		if prevEnd.After(childStart) {
			return nil, validationError(field, fmt.Sprintf("entry %d overlaps entry %d", idx-1, idx))
		}
	}

	firstStart, _ := span(sorted[0])
	if firstStart.Before(start) {
		return nil, validationError(field, "entries must not start before the session")
	}
	_, lastEnd := span(sorted[len(sorted)-1])
	if lastEnd.After(end) {
		return nil, validationError(field, "entries must not end after the session")
	}
	return sorted, nil
}
