// Package airbt implements the augmented interval red-black tree: a
// merge-on-insert interval container where every node's subtree carries
// two maintained aggregates — the bounding envelope of every interval in
// the subtree (fullInterval) and the total covered duration
// (timeInstants, floored per node at the tree's instant duration).
//
// Nodes live in a flat arena (storage []node[V]) addressed by integer
// index rather than pointer, following the same layout a from-scratch
// Go red-black tree uses when it wants predictable memory locality and
// no per-node heap allocation. Index 0 is the permanent nil sentinel.
//
// Tree is generic over a Payload, which lets the same engine back both
// the plain interval tree (every insert merges with any overlap) and the
// link-tagged variant (inserts only merge across intervals carrying the
// same (u, v) pair).
package airbt

import (
	"errors"
	"fmt"
	"iter"

	"github.com/nptlab/portento/interval"
)

// Payload is the per-node value an augmented tree manages. V is
// self-referential so Less and SameSeries can compare two payloads of
// the same concrete type.
type Payload[V any] interface {
	// Span returns the interval this payload occupies.
	Span() interval.Interval

	// WithSpan returns a copy of the payload with its span replaced,
	// used when two overlapping payloads are merged into one.
	WithSpan(span interval.Interval) V

	// SameSeries reports whether this payload and other belong to the
	// same merge-on-insert series (always true for a plain interval
	// tree; for the link-tagged tree, true only when both carry the
	// same node pair).
	SameSeries(other V) bool

	// Less is the order the tree inserts by: it orders payloads by span
	// and breaks ties between equal spans, so insertion is
	// deterministic.
	Less(other V) bool
}

// ErrInvariant marks a violated internal precondition of the
// merge-on-insert algorithm: reaching this means the tree's overlap
// bookkeeping is broken, not that the caller did anything wrong. It is
// never returned to callers of Add; Add panics with it instead, since a
// tree in this state cannot be used safely and there is nothing a caller
// can do to recover it.
var ErrInvariant = errors.New("airbt: internal invariant violated")

type color bool

const (
	red   color = false
	black color = true
)

const nilIdx uint32 = 0

type node[V Payload[V]] struct {
	value                V
	parent, left, right  uint32
	color                color
	fullInterval         interval.Interval
	timeInstants         float64
}

// Tree is an augmented interval red-black tree over payload type V.
type Tree[V Payload[V]] struct {
	storage         []node[V]
	free            []uint32
	root            uint32
	instantDuration float64
	count           int
}

// New creates an empty Tree. instantDuration is the floor duration a
// zero-length (instant) interval contributes to the timeInstants
// aggregate, and the step SplitInInstants-driven callers use elsewhere
// in the module.
func New[V Payload[V]](instantDuration float64) *Tree[V] {
	t := &Tree[V]{instantDuration: instantDuration}
	t.storage = make([]node[V], 1) // index 0 reserved as nil
	return t
}

// Len returns the number of stored (possibly already-merged) intervals.
func (t *Tree[V]) Len() int { return t.count }

// TotalPresence returns the sum of covered durations across the whole
// tree (the root's timeInstants aggregate), or 0 for an empty tree.
func (t *Tree[V]) TotalPresence() float64 {
	if t.root == nilIdx {
		return 0
	}
	return t.storage[t.root].timeInstants
}

// FullSpan returns the bounding envelope of every interval in the tree.
func (t *Tree[V]) FullSpan() (interval.Interval, bool) {
	if t.root == nilIdx {
		return interval.Interval{}, false
	}
	return t.storage[t.root].fullInterval, true
}

func (t *Tree[V]) alloc(v V) uint32 {
	n := node[V]{value: v, color: red, fullInterval: v.Span()}
	var idx uint32
	if len(t.free) > 0 {
		idx = t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.storage[idx] = n
	} else {
		t.storage = append(t.storage, n)
		idx = uint32(len(t.storage) - 1)
	}
	t.computeTimeInstants(idx)
	return idx
}

func (t *Tree[V]) release(idx uint32) {
	t.storage[idx] = node[V]{}
	t.free = append(t.free, idx)
}

func (t *Tree[V]) length(idx uint32) float64 {
	l := t.storage[idx].value.Span().Length()
	if l < t.instantDuration {
		return t.instantDuration
	}
	return l
}

func (t *Tree[V]) colorOf(idx uint32) color {
	if idx == nilIdx {
		return black
	}
	return t.storage[idx].color
}

func (t *Tree[V]) isLeft(idx uint32) bool {
	p := t.storage[idx].parent
	if p == nilIdx {
		return false
	}
	return t.storage[p].left == idx
}

func (t *Tree[V]) sibling(idx uint32) uint32 {
	p := t.storage[idx].parent
	if p == nilIdx {
		return nilIdx
	}
	if t.isLeft(idx) {
		return t.storage[p].right
	}
	return t.storage[p].left
}

func (t *Tree[V]) minimum(idx uint32) uint32 {
	for t.storage[idx].left != nilIdx {
		idx = t.storage[idx].left
	}
	return idx
}

func (t *Tree[V]) overlaps(a, b uint32) bool {
	av, bv := t.storage[a].value, t.storage[b].value
	return av.SameSeries(bv) && av.Span().Overlaps(bv.Span())
}

func (t *Tree[V]) computeTimeInstants(idx uint32) {
	ti := t.length(idx)
	if l := t.storage[idx].left; l != nilIdx {
		ti += t.storage[l].timeInstants
	}
	if r := t.storage[idx].right; r != nilIdx {
		ti += t.storage[r].timeInstants
	}
	t.storage[idx].timeInstants = ti
}

func (t *Tree[V]) computeFullInterval(idx uint32) {
	spans := []interval.Interval{t.storage[idx].value.Span()}
	if l := t.storage[idx].left; l != nilIdx {
		spans = append(spans, t.storage[l].fullInterval)
	}
	if r := t.storage[idx].right; r != nilIdx {
		spans = append(spans, t.storage[r].fullInterval)
	}
	t.storage[idx].fullInterval = interval.Envelope(spans...)
}

func (t *Tree[V]) computeData(idx uint32) {
	t.computeTimeInstants(idx)
	t.computeFullInterval(idx)
}

// updateTimeInstantsPath adds (or subtracts, via sign) length(idx)
// along the path from idx's parent up to the root.
func (t *Tree[V]) updateTimeInstantsPath(idx uint32, sign float64) {
	delta := sign * t.length(idx)
	for p := t.storage[idx].parent; p != nilIdx; p = t.storage[p].parent {
		t.storage[p].timeInstants += delta
	}
}

// updateFullIntervalPath recomputes fullInterval for every ancestor of
// idx, from its parent up to the root, using each ancestor's current
// children — valid after idx was freshly inserted as a leaf, since no
// ancestor's child set changed other than gaining idx.
func (t *Tree[V]) updateFullIntervalPath(idx uint32) {
	for p := t.storage[idx].parent; p != nilIdx; p = t.storage[p].parent {
		t.computeFullInterval(p)
	}
}

func (t *Tree[V]) updateDataAdd(idx uint32) {
	t.updateTimeInstantsPath(idx, 1)
	t.updateFullIntervalPath(idx)
}

// updateDataDeletePre runs before idx is spliced out of the tree, while
// its parent/left/right links still describe its original position. It
// subtracts idx's length along the path to the root, and folds idx's
// own children's full intervals directly into idx's parent (since idx
// is about to disappear and one of its children, or nothing, will take
// its place).
func (t *Tree[V]) updateDataDeletePre(idx uint32) {
	t.updateTimeInstantsPath(idx, -1)

	parent := t.storage[idx].parent
	if parent == nilIdx {
		return
	}
	sib := t.sibling(idx)
	spans := []interval.Interval{t.storage[parent].value.Span()}
	if sib != nilIdx {
		spans = append(spans, t.storage[sib].fullInterval)
	}
	if l := t.storage[idx].left; l != nilIdx {
		spans = append(spans, t.storage[l].fullInterval)
	}
	if r := t.storage[idx].right; r != nilIdx {
		spans = append(spans, t.storage[r].fullInterval)
	}
	t.storage[parent].fullInterval = interval.Envelope(spans...)
	t.updateFullIntervalPath(parent)
}

// Add inserts v into the tree. Any existing interval whose SameSeries
// payload overlaps v's span is absorbed: the stored value becomes the
// envelope union of v and every overlapping payload's span (taking v's
// own WithSpan to carry over v's non-span fields, e.g. its link tag),
// and the absorbed nodes are removed. Add never returns an error for
// ordinary use; it panics with ErrInvariant if the merge-on-insert
// bookkeeping is violated, which indicates a bug rather than bad input.
func (t *Tree[V]) Add(v V) {
	idx := t.newDetachedNode(v)
	idx = t.mergeAllOverlap(idx)

	if t.root == nilIdx {
		t.root = idx
	} else {
		t.addInSubtree(t.root, idx)
	}
	t.rbInsertFixup(idx)
	t.count++
}

// newDetachedNode allocates a node not yet linked into the tree, used
// both for real inserts and for the synthetic merge results produced by
// mergeAllOverlap.
func (t *Tree[V]) newDetachedNode(v V) uint32 {
	return t.alloc(v)
}

func (t *Tree[V]) mergeAllOverlap(idx uint32) uint32 {
	overlap := t.findOverlap(idx)
	for overlap != nilIdx {
		overlapSpan := t.storage[overlap].value.Span()
		t.deleteNode(overlap) // releases overlap's slot
		merged, err := interval.Merge(t.storage[idx].value.Span(), overlapSpan)
		if err != nil {
			panic(fmt.Errorf("%w: merge-on-insert claimed overlap that does not merge: %v", ErrInvariant, err))
		}
		mergedValue := t.storage[idx].value.WithSpan(merged)
		t.release(idx)
		idx = t.alloc(mergedValue)
		overlap = t.findOverlap(idx)
	}
	return idx
}

func (t *Tree[V]) findOverlap(idx uint32) uint32 {
	return t.findOverlapInSubtree(t.root, idx)
}

func (t *Tree[V]) findOverlapInSubtree(subtree, idx uint32) uint32 {
	if subtree == nilIdx {
		return nilIdx
	}
	if !t.storage[subtree].fullInterval.Overlaps(t.storage[idx].value.Span()) {
		return nilIdx
	}
	if t.overlaps(subtree, idx) {
		return subtree
	}
	if found := t.findOverlapInSubtree(t.storage[subtree].left, idx); found != nilIdx {
		return found
	}
	return t.findOverlapInSubtree(t.storage[subtree].right, idx)
}

func (t *Tree[V]) addInSubtree(subtree, idx uint32) {
	if t.overlaps(subtree, idx) {
		panic(fmt.Errorf("%w: overlapping node found after merge-all-overlap pass", ErrInvariant))
	}
	if !t.storage[subtree].value.Less(t.storage[idx].value) { // idx <= subtree
		if t.storage[subtree].left == nilIdx {
			t.storage[idx].parent = subtree
			t.storage[subtree].left = idx
		} else {
			t.addInSubtree(t.storage[subtree].left, idx)
			return
		}
	} else {
		if t.storage[subtree].right == nilIdx {
			t.storage[idx].parent = subtree
			t.storage[subtree].right = idx
		} else {
			t.addInSubtree(t.storage[subtree].right, idx)
			return
		}
	}
	t.updateDataAdd(idx)
}

// All returns an in-order, lazy, restartable iterator over every stored
// payload.
func (t *Tree[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		var visit func(idx uint32) bool
		visit = func(idx uint32) bool {
			if idx == nilIdx {
				return true
			}
			if !visit(t.storage[idx].left) {
				return false
			}
			if !yield(t.storage[idx].value) {
				return false
			}
			return visit(t.storage[idx].right)
		}
		visit(t.root)
	}
}

// Overlapping lazily yields every stored payload whose span overlaps
// query, pruned via the fullInterval aggregate.
func (t *Tree[V]) Overlapping(query interval.Interval) iter.Seq[V] {
	return func(yield func(V) bool) {
		var visit func(idx uint32) bool
		visit = func(idx uint32) bool {
			if idx == nilIdx {
				return true
			}
			if !t.storage[idx].fullInterval.Overlaps(query) {
				return true
			}
			if !visit(t.storage[idx].left) {
				return false
			}
			if t.storage[idx].value.Span().Overlaps(query) {
				if !yield(t.storage[idx].value) {
					return false
				}
			}
			return visit(t.storage[idx].right)
		}
		visit(t.root)
	}
}
