package airbt

import "github.com/nptlab/portento/interval"

// PlainValue is the payload for a plain augmented interval tree (C2):
// every stored interval merges with any other overlapping interval,
// with no further tag to distinguish them.
type PlainValue struct {
	Span_ interval.Interval
}

// NewPlainValue wraps span as a PlainValue.
func NewPlainValue(span interval.Interval) PlainValue { return PlainValue{Span_: span} }

func (v PlainValue) Span() interval.Interval { return v.Span_ }

func (v PlainValue) WithSpan(span interval.Interval) PlainValue {
	v.Span_ = span
	return v
}

// SameSeries is always true: a plain tree has no tag to distinguish
// series, so every pair of overlapping intervals merges.
func (v PlainValue) SameSeries(PlainValue) bool { return true }

func (v PlainValue) Less(other PlainValue) bool {
	a, b := v.Span_, other.Span_
	if a.Lo != b.Lo {
		return a.Lo < b.Lo
	}
	if a.ClosedLo != b.ClosedLo {
		return a.ClosedLo // closed-left sorts before open-left at the same bound
	}
	if a.Hi != b.Hi {
		return a.Hi < b.Hi
	}
	return !a.ClosedHi && b.ClosedHi
}
