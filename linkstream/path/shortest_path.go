package path

import (
	"math"

	"github.com/nptlab/portento/interval"
	"github.com/nptlab/portento/linkstream"
	"github.com/nptlab/portento/linkstream/contact"
)

// ShortestPathDistance computes, for every node, the number of hops on
// the shortest temporal path from source within timeBound (the whole
// stream if nil). Unreachable nodes map to +Inf; source maps to 0.
//
// Per node it keeps a Pareto front of (hop-distance, arrival-time)
// pairs: a contact (u, v) at t is only usable if some front entry for u
// arrived no later than t, and among those the one with the most recent
// arrival gives the best (smallest) distance, by the front's monotonic
// shape.
func ShortestPathDistance(s *linkstream.Stream, source any, timeBound *interval.Interval) (map[any]float64, error) {
	if err := requireNode(s, source); err != nil {
		return nil, err
	}
	window, err := resolveWindow(s, timeBound)
	if err != nil {
		return nil, err
	}
	_, end, ok := interval.GetStartEnd(window, s.InstantDuration())
	if !ok {
		return initNodeMap(s, source, 0, math.Inf(1)), nil
	}

	distance := initNodeMap(s, source, 0, math.Inf(1))
	fronts := make(map[any]*paretoFront, len(s.Nodes()))
	for _, n := range s.Nodes() {
		fronts[n] = newParetoFront(false)
	}

	instantDuration := s.InstantDuration()
	for t, ev := range contact.Stream(s, window, false) {
		tPlusTrav := t + instantDuration
		if tPlusTrav > end {
			break
		}
		u, v := ev.U, ev.V
		if u == source {
			// The source becomes usable one instant_duration after any
			// contact touches it, same as arriving anywhere else (see
			// EarliestArrival), not at the contact's own raw time.
			fronts[source].update(paretoEntry{metric: 0, refTime: t + instantDuration})
		}

		best, ok := fronts[u].bestFeasible(t)
		if !ok {
			continue
		}
		if best.refTime >= tPlusTrav {
			continue
		}
		newDistance := best.metric + 1
		fronts[v].update(paretoEntry{metric: newDistance, refTime: tPlusTrav})
		if newDistance < distance[v] {
			distance[v] = newDistance
		}
	}
	return distance, nil
}
