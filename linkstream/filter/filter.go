// Package filter implements the time and node filters used to slice a
// Link Stream (C7): NoFilter (accepts everything), TimeFilter (keeps
// only the portions of a link's interval that fall in a set of allowed
// windows), and NodeFilter (keeps only links whose both endpoints
// satisfy a predicate). Slice applies a pair of filters to a stream
// using either of two equivalent strategies — time-first or node-first
// — which must agree on the resulting set of links (Testable Property
// 7 in the spec this package implements).
package filter

import (
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/nptlab/portento/airbt"
	"github.com/nptlab/portento/interval"
	"github.com/nptlab/portento/linkstream"
)

// ErrArgument indicates Slice was called with an unrecognized ordering
// strategy name.
var ErrArgument = errors.New("filter: first must be \"time\" or \"node\"")

// TimeFilter decides which portions of a given interval survive a
// slicing operation.
type TimeFilter interface {
	// Overlaps reports whether any part of iv is allowed, used to prune
	// whole links (or whole subtrees) before computing exact cuts.
	Overlaps(iv interval.Interval) bool

	// Cuts lazily yields the allowed portions of iv, in order.
	Cuts(iv interval.Interval) iter.Seq[interval.Interval]
}

// NodeFilter decides which nodes survive a slicing operation.
type NodeFilter interface {
	Allows(node any) bool
}

// noFilter accepts every interval and every node unchanged.
type noFilter struct{}

// NoFilter is the identity filter: it keeps every link exactly as is.
var NoFilter TimeFilter = noFilter{}

// NoNodeFilter is the identity node filter: it keeps every node.
var NoNodeFilter NodeFilter = noFilter{}

func (noFilter) Overlaps(interval.Interval) bool { return true }

func (noFilter) Cuts(iv interval.Interval) iter.Seq[interval.Interval] {
	return func(yield func(interval.Interval) bool) { yield(iv) }
}

func (noFilter) Allows(any) bool { return true }

// timeFilter keeps only the portions of an interval overlapping one of
// a fixed set of allowed windows, backed by an augmented tree so
// whole-subtree pruning is O(log n) via the full-interval aggregate.
type timeFilter struct {
	windows *airbt.Tree[airbt.PlainValue]
}

// NewTimeFilter builds a TimeFilter that keeps only the portions of a
// link's interval overlapping one of the given windows. Overlapping
// windows are merged, matching the augmented tree's own semantics.
func NewTimeFilter(windows ...interval.Interval) TimeFilter {
	tree := airbt.New[airbt.PlainValue](0)
	for _, w := range windows {
		tree.Add(airbt.NewPlainValue(w))
	}
	return &timeFilter{windows: tree}
}

func (f *timeFilter) Overlaps(iv interval.Interval) bool {
	for range f.windows.Overlapping(iv) {
		return true
	}
	return false
}

func (f *timeFilter) Cuts(iv interval.Interval) iter.Seq[interval.Interval] {
	return func(yield func(interval.Interval) bool) {
		for w := range f.windows.Overlapping(iv) {
			cut, err := interval.Cut(iv, w.Span())
			if err != nil {
				continue
			}
			if !yield(cut) {
				return
			}
		}
	}
}

// nodeFilter keeps only nodes for which predicate returns true.
type nodeFilter struct {
	predicate func(any) bool
}

// NewNodeFilter builds a NodeFilter from a boolean predicate over node
// identifiers.
func NewNodeFilter(predicate func(any) bool) NodeFilter {
	return &nodeFilter{predicate: predicate}
}

func (f *nodeFilter) Allows(node any) bool { return f.predicate(node) }

// Slice filters stream's links by nf and tf, using one of two
// equivalent strategies: "time" applies the time filter first (walking
// every link of the stream's tagged tree in order, skipping links whose
// interval the time filter rejects, then discarding links whose
// endpoints fail nf), or "node" applies the node
// filter first (only visiting edges whose both endpoints satisfy nf,
// then cutting each to the time filter's allowed windows). Both
// strategies yield the same multiset of links in interval-start order;
// an unrecognized first value returns ErrArgument.
func Slice(stream *linkstream.Stream, nf NodeFilter, tf TimeFilter, first string) ([]linkstream.Link, error) {
	if nf == nil {
		nf = NoNodeFilter
	}
	if tf == nil {
		tf = NoFilter
	}

	var out []linkstream.Link
	switch first {
	case "time":
		for l := range stream.AllLinks() {
			if !tf.Overlaps(l.Interval) {
				continue
			}
			if !nf.Allows(l.U) || !nf.Allows(l.V) {
				continue
			}
			for cut := range tf.Cuts(l.Interval) {
				out = append(out, linkstream.Link{Interval: cut, U: l.U, V: l.V})
			}
		}

	case "node":
		for e := range stream.AllEdges() {
			if !nf.Allows(e.U) || !nf.Allows(e.V) {
				continue
			}
			for iv := range e.Intervals {
				if !tf.Overlaps(iv) {
					continue
				}
				for cut := range tf.Cuts(iv) {
					out = append(out, linkstream.Link{Interval: cut, U: e.U, V: e.V})
				}
			}
		}

	default:
		return nil, fmt.Errorf("%w: got %q", ErrArgument, first)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Interval.Lo < out[j].Interval.Lo
	})
	return out, nil
}
