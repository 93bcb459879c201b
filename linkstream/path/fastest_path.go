package path

import (
	"math"

	"github.com/nptlab/portento/interval"
	"github.com/nptlab/portento/linkstream"
	"github.com/nptlab/portento/linkstream/contact"
)

// FastestPathDuration computes, for every node, the shortest duration
// (arrival minus departure) of any temporal path from source within
// timeBound (the whole stream if nil). Unreachable nodes map to +Inf;
// source maps to 0.
//
// Per node it keeps a Pareto front of (departure-time, arrival-time)
// pairs: a contact at u at time t can only be used by sub-paths that
// have actually reached u by t, i.e. whose front entry has
// refTime (arrival) <= t, and among those, a later departure always
// yields a smaller eventual duration, so the front prefers larger
// metric (departure) the way ShortestPathDistance's front prefers
// smaller metric (hop count).
func FastestPathDuration(s *linkstream.Stream, source any, timeBound *interval.Interval) (map[any]float64, error) {
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

	duration := initNodeMap(s, source, 0, math.Inf(1))
	fronts := make(map[any]*paretoFront, len(s.Nodes()))
	for _, n := range s.Nodes() {
		fronts[n] = newParetoFront(true)
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
			// EarliestArrival): metric keeps the raw departure instant,
			// but refTime (arrival/feasibility gate) lags it by one
			// instant_duration.
			fronts[source].update(paretoEntry{metric: t, refTime: t + instantDuration})
		}

		best, ok := fronts[u].bestFeasible(t)
		if !ok {
			continue
		}
		departure := best.metric
		newDuration := tPlusTrav - departure
		fronts[v].update(paretoEntry{metric: departure, refTime: tPlusTrav})
		if newDuration < duration[v] {
			duration[v] = newDuration
		}
	}
	return duration, nil
}

// FastestPathDurationMultipass is a deprecated, quadratic reference
// implementation of FastestPathDuration kept only so tests can check
// the Pareto-front version against it: it reruns EarliestArrival once
// per candidate departure instant and takes the minimum duration to
// each node across all runs, rather than maintaining a Pareto front in
// a single pass.
func FastestPathDurationMultipass(s *linkstream.Stream, source any, timeBound *interval.Interval) (map[any]float64, error) {
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

	duration := initNodeMap(s, source, 0, math.Inf(1))
	step := s.InstantDuration()
	for depart := start; depart <= end; depart += step {
		sub := interval.Interval{Lo: depart, Hi: window.Hi, ClosedLo: true, ClosedHi: window.ClosedHi}
		arrival, err := EarliestArrival(s, source, &sub)
		if err != nil {
			return nil, err
		}
		for n, a := range arrival {
			if math.IsInf(a, 1) {
				continue
			}
			d := a - depart
			if d < duration[n] {
				duration[n] = d
			}
		}
	}
	return duration, nil
}
