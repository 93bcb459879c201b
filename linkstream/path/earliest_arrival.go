package path

import (
	"math"

	"github.com/nptlab/portento/interval"
	"github.com/nptlab/portento/linkstream"
	"github.com/nptlab/portento/linkstream/contact"
)

// EarliestArrival computes, for every node, the earliest time it can be
// reached from source within timeBound (the whole stream if nil).
// Unreachable nodes map to +Inf; source itself maps to start plus one
// instant_duration, the same "departure instant plus travel time"
// shape every other node's arrival has — the source is not treated as
// already present at the window's first instant, it becomes available
// to a contact one instant_duration later, exactly like arriving
// anywhere else.
func EarliestArrival(s *linkstream.Stream, source any, timeBound *interval.Interval) (map[any]float64, error) {
	if err := requireNode(s, source); err != nil {
		return nil, err
	}
	window, err := resolveWindow(s, timeBound)
	if err != nil {
		return nil, err
	}
	start, end, ok := interval.GetStartEnd(window, s.InstantDuration())
	if !ok {
		return initNodeMap(s, source, 0, math.Inf(1)), nil
	}

	arrival := initNodeMap(s, source, start+s.InstantDuration(), math.Inf(1))

	for t, ev := range contact.Stream(s, window, false) {
		tPlusTrav := t + s.InstantDuration()
		if tPlusTrav > end {
			break
		}
		u, v := ev.U, ev.V
		if arrival[u] <= t && tPlusTrav < arrival[v] {
			arrival[v] = tPlusTrav
		}
	}
	return arrival, nil
}
