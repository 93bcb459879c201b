package interval_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nptlab/portento/interval"
)

type IntervalSuite struct {
	suite.Suite
}

func TestIntervalSuite(t *testing.T) {
	suite.Run(t, new(IntervalSuite))
}

func (s *IntervalSuite) TestNewRejectsDegenerateOpenInstant() {
	require := require.New(s.T())
	_, err := interval.New(3, 3, true, false)
	require.ErrorIs(err, interval.ErrEmptyInterval)

	iv, err := interval.New(3, 3, true, true)
	require.NoError(err)
	require.Equal(0.0, iv.Length())
}

func (s *IntervalSuite) TestOverlapsRespectsClosure() {
	require := require.New(s.T())
	a, _ := interval.New(0, 5, true, false) // [0,5)
	b, _ := interval.New(5, 10, true, false) // [5,10)
	require.False(a.Overlaps(b), "half-open intervals touching at 5 should not overlap")

	c, _ := interval.New(5, 10, true, false)
	d, _ := interval.New(0, 5, true, true) // [0,5]
	require.True(d.Overlaps(c), "closed right bound at 5 should overlap closed left bound at 5")
}

func (s *IntervalSuite) TestMergeTakesOuterBounds() {
	require := require.New(s.T())
	a, _ := interval.New(0, 5, true, false)
	b, _ := interval.New(3, 9, false, true)
	merged, err := interval.Merge(a, b)
	require.NoError(err)
	require.Equal(0.0, merged.Lo)
	require.Equal(9.0, merged.Hi)
	require.True(merged.ClosedLo)
	require.True(merged.ClosedHi)
}

func (s *IntervalSuite) TestMergeRejectsDisjoint() {
	require := require.New(s.T())
	a, _ := interval.New(0, 1, true, false)
	b, _ := interval.New(5, 6, true, false)
	_, err := interval.Merge(a, b)
	require.True(errors.Is(err, interval.ErrNonOverlapping))
}

func (s *IntervalSuite) TestCutTakesLessPermissiveClosure() {
	require := require.New(s.T())
	a, _ := interval.New(0, 10, true, true)
	b, _ := interval.New(0, 10, false, false)
	cut, err := interval.Cut(a, b)
	require.NoError(err)
	require.False(cut.ClosedLo)
	require.False(cut.ClosedHi)
}

func (s *IntervalSuite) TestCutDisjointErrors() {
	require := require.New(s.T())
	a, _ := interval.New(0, 1, true, false)
	b, _ := interval.New(5, 6, true, false)
	_, err := interval.Cut(a, b)
	require.True(errors.Is(err, interval.ErrDisjoint))
}

func (s *IntervalSuite) TestContains() {
	require := require.New(s.T())
	outer, _ := interval.New(0, 10, true, true)
	inner, _ := interval.New(2, 8, false, false)
	require.True(outer.Contains(inner))
	require.False(inner.Contains(outer))
}

func (s *IntervalSuite) TestSplitInInstantsIsRestartable() {
	require := require.New(s.T())
	iv, _ := interval.New(0, 1, true, true)
	var first, second []float64
	for v := range interval.SplitInInstants(iv, 0.25) {
		first = append(first, v)
	}
	for v := range interval.SplitInInstants(iv, 0.25) {
		second = append(second, v)
	}
	require.Equal(first, second)
	require.Equal([]float64{0, 0.25, 0.5, 0.75, 1}, first)
}

func (s *IntervalSuite) TestSplitInInstantsHonorsOpenBounds() {
	require := require.New(s.T())
	iv, _ := interval.New(0, 1, false, false)
	var got []float64
	for v := range interval.SplitInInstants(iv, 0.5) {
		got = append(got, v)
	}
	require.Equal([]float64{0.5}, got)
}

func (s *IntervalSuite) TestParseRoundTrips() {
	require := require.New(s.T())
	iv, err := interval.Parse("[2, 5)")
	require.NoError(err)
	require.Equal(2.0, iv.Lo)
	require.Equal(5.0, iv.Hi)
	require.True(iv.ClosedLo)
	require.False(iv.ClosedHi)
	require.Equal("[2, 5)", iv.String())
}

func (s *IntervalSuite) TestParseRejectsMalformed() {
	require := require.New(s.T())
	_, err := interval.Parse("2, 5")
	require.True(errors.Is(err, interval.ErrParse))
}
