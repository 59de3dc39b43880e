package units

import "cmp"

// Comparable is satisfied by every quantity in this package.
type Comparable[T any] interface {
	Compare(other T) int
}

type conversion struct {
	factor float64
	offset float64
}

func (c conversion) toCanonical(value float64) float64 {
	return value*c.factor + c.offset
}

func (c conversion) fromCanonical(value float64) float64 {
	return (value - c.offset) / c.factor
}

type measure[U ~uint8] struct {
	value float64
	unit  U
}

func (m measure[U]) canonical(table []conversion) float64 {
	return table[m.unit].toCanonical(m.value)
}

func (m measure[U]) in(table []conversion, target U) float64 {
	if m.unit == target {
		return m.value
	}
	return table[target].fromCanonical(m.canonical(table))
}

func compareMeasures[U ~uint8](a, b measure[U], table []conversion) int {
	if a.unit == b.unit {
		return cmp.Compare(a.value, b.value)
	}
	return cmp.Compare(a.canonical(table), b.canonical(table))
}

func zeroTable[Q any, U ~uint8](size int, build func(U) Q) []Q {
	out := make([]Q, size)
	for idx := range out {
		out[idx] = build(U(idx))
	}
	return out
}

// zeroOf falls back to the canonical unit's zero, at index 0, for a unit
// outside the table.
func zeroOf[Q any, U ~uint8](zeros []Q, unit U) Q {
	if int(unit) >= len(zeros) {
		return zeros[0]
	}
	return zeros[unit]
}
