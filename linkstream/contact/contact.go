// Package contact implements the ordered contact-event stream (C8): the
// lazy, pull-driven enumeration of every instant at which some link is
// active within a time window, in ascending or descending time order.
// Each link contributes one event per instant it covers; undirected
// links contribute an event in both directions, since path algorithms
// need to treat an undirected contact as usable in either direction.
package contact

import (
	"container/heap"
	"iter"

	"github.com/nptlab/portento/interval"
	"github.com/nptlab/portento/linkstream"
)

// Event is one contact at a single instant: node U in contact with node
// V (in that direction) at time T.
type Event struct {
	T    float64
	U, V any
}

// cursor tracks one link's own instant enumeration: the next instant it
// will yield, and a pull function to advance it.
type cursor struct {
	t    float64
	u, v any
	next func() (float64, bool)
}

type cursorHeap struct {
	items []*cursor
	desc  bool
}

func (h *cursorHeap) Len() int { return len(h.items) }
func (h *cursorHeap) Less(i, j int) bool {
	if h.desc {
		return h.items[i].t > h.items[j].t
	}
	return h.items[i].t < h.items[j].t
}
func (h *cursorHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *cursorHeap) Push(x any)    { h.items = append(h.items, x.(*cursor)) }
func (h *cursorHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// Stream lazily yields every (t, Event) pair for links in s that overlap
// window, ordered ascending (desc=false) or descending (desc=true) by
// t. Instants are spaced at s.InstantDuration(). The sequence is
// pull-driven and the caller may stop early. In ascending order each
// link's instants are generated lazily; in descending order every
// overlapping link's instants are collected when iteration begins, so
// they can be replayed back to front.
func Stream(s *linkstream.Stream, window interval.Interval, desc bool) iter.Seq2[float64, Event] {
	return func(yield func(float64, Event) bool) {
		h := &cursorHeap{desc: desc}
		heap.Init(h)

		push := func(u, v any, span interval.Interval) {
			cut, err := interval.Cut(span, window)
			if err != nil {
				return // disjoint from window
			}
			seq := interval.SplitInInstants(cut, s.InstantDuration())
			if desc {
				seq = reverseSeq(seq)
			}
			next, _ := iter.Pull(seq)
			if t, ok := next(); ok {
				heap.Push(h, &cursor{t: t, u: u, v: v, next: next})
			}
		}

		for l := range s.AllLinks() {
			if !l.Interval.Overlaps(window) {
				continue
			}
			push(l.U, l.V, l.Interval)
			if !s.Directed() {
				push(l.V, l.U, l.Interval)
			}
		}

		for h.Len() > 0 {
			top := h.items[0]
			if !yield(top.t, Event{T: top.t, U: top.u, V: top.v}) {
				return
			}
			if t, ok := top.next(); ok {
				top.t = t
				heap.Fix(h, 0)
			} else {
				heap.Pop(h)
			}
		}
	}
}

// reverseSeq materializes seq and replays it back to front. Instant
// sequences are bounded by a link's own interval, so this is a small,
// local reversal, not a whole-stream materialization.
func reverseSeq(seq iter.Seq[float64]) iter.Seq[float64] {
	var vals []float64
	for v := range seq {
		vals = append(vals, v)
	}
	return func(yield func(float64) bool) {
		for i := len(vals) - 1; i >= 0; i-- {
			if !yield(vals[i]) {
				return
			}
		}
	}
}
