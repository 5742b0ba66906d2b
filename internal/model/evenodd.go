package model

// EvenOdd classifies how a lesson recurs across alternating academic weeks:
// only on even weeks, only on odd weeks, or every week.
type EvenOdd string

const (
	EvenOddEven   EvenOdd = "EVEN"
	EvenOddOdd    EvenOdd = "ODD"
	EvenOddWeekly EvenOdd = "WEEKLY"
)

// Valid reports whether the value is one of EVEN, ODD, WEEKLY.
func (e EvenOdd) Valid() bool {
	switch e {
	case EvenOddEven, EvenOddOdd, EvenOddWeekly:
		return true
	}
	return false
}

// Overlaps reports whether two recurrences ever land on the same week.
// WEEKLY covers both halves of the cycle, so it overlaps everything
// (including itself); EVEN and ODD overlap only themselves.
//
// Every conflict and cell-resolution query in the engine goes through this
// predicate; nothing re-derives the rule inline.
func (e EvenOdd) Overlaps(other EvenOdd) bool {
	return e == EvenOddWeekly || other == EvenOddWeekly || e == other
}
