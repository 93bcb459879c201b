package linkstream

import (
	"iter"

	"github.com/nptlab/portento/airbt"
	"github.com/nptlab/portento/interval"
)

// container holds either the presence intervals of a single node or the
// presence intervals of a single (u, v) edge, merging overlapping
// intervals on every add (C4). Its condition (cond) is normally fixed
// at construction; when constructed with no condition at all, the first
// successful add lazily fixes it from that link's endpoints.
type container struct {
	tree     *airbt.Tree[airbt.PlainValue]
	cond     []any
	condSet  bool
	directed bool
}

func newContainer(instantDuration float64, directed bool, cond ...any) *container {
	c := &container{
		tree:     airbt.New[airbt.PlainValue](instantDuration),
		directed: directed,
	}
	if len(cond) > 0 {
		c.cond = c.initializeCond(cond)
		c.condSet = true
	}
	return c
}

// initializeCond canonicalizes a 1- or 2-element condition: undirected
// containers sort a 2-element condition by node representation so the
// edge (u, v) and (v, u) share one container; directed containers keep
// the given order.
func (c *container) initializeCond(args []any) []any {
	if len(args) == 2 && !c.directed {
		u, v := sortNodes(args[0], args[1])
		return []any{u, v}
	}
	cp := make([]any, len(args))
	copy(cp, args)
	return cp
}

func endpoints(link any) (iv interval.Interval, u, v any) {
	switch l := link.(type) {
	case Link:
		return l.Interval, l.U, l.V
	case DiLink:
		return l.Interval, l.U, l.V
	default:
		panic("linkstream: container.add called with neither Link nor DiLink")
	}
}

// add inserts link's interval if link's endpoints satisfy this
// container's condition, reporting whether it did.
func (c *container) add(link any) bool {
	iv, u, v := endpoints(link)

	if !c.condSet {
		c.cond = c.initializeCond([]any{u, v})
		c.condSet = true
	}

	switch len(c.cond) {
	case 1:
		if u != c.cond[0] && v != c.cond[0] {
			return false
		}
	case 2:
		refU, refV := c.cond[0], c.cond[1]
		if !c.directed {
			u, v = sortNodes(u, v)
		}
		if u != refU || v != refV {
			return false
		}
	default:
		return false
	}

	c.tree.Add(airbt.NewPlainValue(iv))
	return true
}

// Length returns the total covered duration in this container.
func (c *container) Length() float64 { return c.tree.TotalPresence() }

// Intervals lazily yields every merged presence interval in this
// container, in order.
func (c *container) Intervals() iter.Seq[interval.Interval] {
	return func(yield func(interval.Interval) bool) {
		for v := range c.tree.All() {
			if !yield(v.Span()) {
				return
			}
		}
	}
}
