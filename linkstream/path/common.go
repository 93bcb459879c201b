package path

import (
	"fmt"

	"github.com/nptlab/portento/interval"
	"github.com/nptlab/portento/linkstream"
)

// resolveWindow returns timeBound if given, or the stream's whole
// presence span otherwise.
func resolveWindow(s *linkstream.Stream, timeBound *interval.Interval) (interval.Interval, error) {
	if timeBound != nil {
		return *timeBound, nil
	}
	full, ok := s.StreamFullSpan()
	if !ok {
		return interval.Interval{}, fmt.Errorf("stream has no contacts to bound a path computation")
	}
	return full, nil
}

func requireNode(s *linkstream.Stream, node any) error {
	if !s.HasNode(node) {
		return fmt.Errorf("%w: %v", ErrUnknownNode, node)
	}
	return nil
}

func initNodeMap(s *linkstream.Stream, source any, sourceValue, defaultValue float64) map[any]float64 {
	out := make(map[any]float64, len(s.Nodes()))
	for _, n := range s.Nodes() {
		if n == source {
			out[n] = sourceValue
		} else {
			out[n] = defaultValue
		}
	}
	return out
}
