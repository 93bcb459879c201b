package path

import (
	"math"

	"github.com/nptlab/portento/interval"
	"github.com/nptlab/portento/linkstream"
	"github.com/nptlab/portento/linkstream/contact"
)

// LatestDeparture computes, for every node, the latest time it can be
// left while still reaching target by the end of timeBound (the whole
// stream if nil). Nodes that cannot reach target map to -Inf; target
// itself maps to the window's end.
func LatestDeparture(s *linkstream.Stream, target any, timeBound *interval.Interval) (map[any]float64, error) {
	if err := requireNode(s, target); err != nil {
		return nil, err
	}
	window, err := resolveWindow(s, timeBound)
	if err != nil {
		return nil, err
	}
	start, end, ok := interval.GetStartEnd(window, s.InstantDuration())
	if !ok {
		return initNodeMap(s, target, 0, math.Inf(-1)), nil
	}

	latest := initNodeMap(s, target, end, math.Inf(-1))

	for t, ev := range contact.Stream(s, window, true) {
		if t < start {
			break
		}
		u, v := ev.U, ev.V
		if t+s.InstantDuration() <= latest[v] && t > latest[u] {
			latest[u] = t
		}
	}
	return latest, nil
}
