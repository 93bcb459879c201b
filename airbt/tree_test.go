package airbt_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nptlab/portento/airbt"
	"github.com/nptlab/portento/interval"
)

func mustInterval(t require.TestingT, lo, hi float64, cl, ch bool) interval.Interval {
	iv, err := interval.New(lo, hi, cl, ch)
	require.New(t).NoError(err)
	return iv
}

type TreeSuite struct {
	suite.Suite
}

func TestTreeSuite(t *testing.T) {
	suite.Run(t, new(TreeSuite))
}

func (s *TreeSuite) TestAddMergesOverlapping() {
	require := require.New(s.T())
	tree := airbt.New[airbt.PlainValue](1)

	tree.Add(airbt.NewPlainValue(mustInterval(s.T(), 0, 5, true, false)))
	tree.Add(airbt.NewPlainValue(mustInterval(s.T(), 3, 9, true, false)))

	require.Equal(1, tree.Len(), "overlapping intervals should merge into a single node")
	var spans []interval.Interval
	for v := range tree.All() {
		spans = append(spans, v.Span())
	}
	require.Len(spans, 1)
	require.Equal(0.0, spans[0].Lo)
	require.Equal(9.0, spans[0].Hi)
}

func (s *TreeSuite) TestAddKeepsDisjointIntervalsSeparate() {
	require := require.New(s.T())
	tree := airbt.New[airbt.PlainValue](1)

	tree.Add(airbt.NewPlainValue(mustInterval(s.T(), 0, 1, true, false)))
	tree.Add(airbt.NewPlainValue(mustInterval(s.T(), 5, 6, true, false)))

	require.Equal(2, tree.Len())
}

func (s *TreeSuite) TestAggregatesStayConsistentUnderRandomInserts() {
	require := require.New(s.T())
	rng := rand.New(rand.NewSource(42))
	tree := airbt.New[airbt.PlainValue](1)

	var totalDisjointLength float64
	var placed []interval.Interval
	for i := 0; i < 200; i++ {
		lo := float64(rng.Intn(1000))
		hi := lo + float64(rng.Intn(5)+1)
		iv := mustInterval(s.T(), lo, hi, true, false)
		tree.Add(airbt.NewPlainValue(iv))
		placed = append(placed, iv)
	}
	_ = totalDisjointLength

	// Every stored interval must be disjoint from every other (Testable
	// Property: disjointness after merge-on-insert).
	var stored []interval.Interval
	for v := range tree.All() {
		stored = append(stored, v.Span())
	}
	for i := range stored {
		for j := range stored {
			if i == j {
				continue
			}
			require.False(stored[i].Overlaps(stored[j]), "stored intervals must not overlap after merging")
		}
	}

	full, ok := tree.FullSpan()
	require.True(ok)
	for _, iv := range placed {
		require.True(full.Contains(iv) || full.Overlaps(iv), "full span must bound every inserted interval")
	}
}

func (s *TreeSuite) TestOverlappingQuery() {
	require := require.New(s.T())
	tree := airbt.New[airbt.PlainValue](1)
	tree.Add(airbt.NewPlainValue(mustInterval(s.T(), 0, 2, true, false)))
	tree.Add(airbt.NewPlainValue(mustInterval(s.T(), 10, 12, true, false)))
	tree.Add(airbt.NewPlainValue(mustInterval(s.T(), 20, 22, true, false)))

	query := mustInterval(s.T(), 9, 11, true, false)
	var hits int
	for range tree.Overlapping(query) {
		hits++
	}
	require.Equal(1, hits)
}

func (s *TreeSuite) TestTotalPresenceFloorsZeroLengthIntervals() {
	require := require.New(s.T())
	tree := airbt.New[airbt.PlainValue](2) // instant duration floor of 2
	tree.Add(airbt.NewPlainValue(mustInterval(s.T(), 5, 5, true, true)))
	require.Equal(2.0, tree.TotalPresence())
}

// Spec §8's concrete merge-on-insert scenario: inserting [1,3), [2,5),
// [7,8) must collapse the first two (idempotence + union) while
// leaving the third disjoint, for a total length of 5.
func (s *TreeSuite) TestScenarioMergeOnInsertIdempotenceAndUnion() {
	require := require.New(s.T())
	tree := airbt.New[airbt.PlainValue](1)
	tree.Add(airbt.NewPlainValue(mustInterval(s.T(), 1, 3, true, false)))
	tree.Add(airbt.NewPlainValue(mustInterval(s.T(), 2, 5, true, false)))
	tree.Add(airbt.NewPlainValue(mustInterval(s.T(), 7, 8, true, false)))

	require.Equal(2, tree.Len())
	var spans []interval.Interval
	for v := range tree.All() {
		spans = append(spans, v.Span())
	}
	require.Len(spans, 2)
	require.Equal(1.0, spans[0].Lo)
	require.Equal(5.0, spans[0].Hi)
	require.Equal(7.0, spans[1].Lo)
	require.Equal(8.0, spans[1].Hi)
	require.Equal(5.0, tree.TotalPresence())

	// Re-inserting the already-covered [2,5] must be a no-op (idempotence).
	tree.Add(airbt.NewPlainValue(mustInterval(s.T(), 2, 5, true, false)))
	require.Equal(2, tree.Len())
	require.Equal(5.0, tree.TotalPresence())
}

func (s *TreeSuite) TestDeleteUnderlyingMergeKeepsBalance() {
	require := require.New(s.T())
	tree := airbt.New[airbt.PlainValue](1)
	// Insert a run of closed intervals that each share an endpoint with
	// the growing run, so each one merges with it, repeatedly exercising
	// the internal delete path used by merge-on-insert (_merge_all_overlap).
	for i := 0; i < 50; i++ {
		lo := float64(i)
		tree.Add(airbt.NewPlainValue(mustInterval(s.T(), lo, lo+1, true, true)))
	}
	require.Equal(1, tree.Len())
	full, ok := tree.FullSpan()
	require.True(ok)
	require.Equal(0.0, full.Lo)
	require.Equal(50.0, full.Hi)
	require.Equal(50.0, tree.TotalPresence())
}
