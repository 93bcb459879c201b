package linkstream_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nptlab/portento/interval"
	"github.com/nptlab/portento/linkstream"
)

type StreamSuite struct {
	suite.Suite
}

func TestStreamSuite(t *testing.T) {
	suite.Run(t, new(StreamSuite))
}

func (s *StreamSuite) iv(lo, hi float64) interval.Interval {
	i, err := interval.New(lo, hi, true, true)
	require.NoError(s.T(), err)
	return i
}

func (s *StreamSuite) TestUndirectedLinkCanonicalizesEndpointOrder() {
	str := linkstream.New(false)
	s.Require().NoError(str.Add("b", "a", s.iv(0, 1)))
	links, err := str.LinksBetween("a", "b")
	s.Require().NoError(err)
	s.Require().Len(links, 1)
	s.Require().Equal("a", links[0].U)
	s.Require().Equal("b", links[0].V)
}

func (s *StreamSuite) TestDirectedStreamRejectsAddLink() {
	str := linkstream.New(true)
	l, err := linkstream.NewLink(s.iv(0, 1), "a", "b")
	s.Require().NoError(err)
	err = str.AddLink(l)
	s.Require().ErrorIs(err, linkstream.ErrWrongVariant)
}

func (s *StreamSuite) TestUndirectedStreamRejectsAddDiLink() {
	str := linkstream.New(false)
	l, err := linkstream.NewDiLink(s.iv(0, 1), "a", "b")
	s.Require().NoError(err)
	err = str.AddDiLink(l)
	s.Require().ErrorIs(err, linkstream.ErrWrongVariant)
}

func (s *StreamSuite) TestNonHashableNodeIsRejected() {
	str := linkstream.New(false)
	err := str.Add([]int{1, 2}, "b", s.iv(0, 1))
	s.Require().ErrorIs(err, linkstream.ErrNonHashableNode)
}

func (s *StreamSuite) TestNilNodeIsRejected() {
	str := linkstream.New(false)
	err := str.Add(nil, "b", s.iv(0, 1))
	s.Require().ErrorIs(err, linkstream.ErrNilNode)
}

func (s *StreamSuite) TestFailingAddNeverPartiallyMutatesStream() {
	str := linkstream.New(false)
	before := str.Version()
	err := str.Add(nil, "b", s.iv(0, 1))
	s.Require().Error(err)
	s.Require().Equal(before, str.Version())
	s.Require().False(str.HasNode("b"))
}

func (s *StreamSuite) TestOverlappingContactsMergeInPresence() {
	str := linkstream.New(false)
	s.Require().NoError(str.Add("a", "b", s.iv(0, 2)))
	s.Require().NoError(str.Add("a", "b", s.iv(1, 3)))
	length, err := str.LinkPresenceLen("a", "b")
	s.Require().NoError(err)
	s.Require().Equal(3.0, length)
}

func (s *StreamSuite) TestLinkPresenceLenIgnoresEndpointOrder() {
	str := linkstream.New(false)
	s.Require().NoError(str.Add("a", "b", s.iv(0, 1)))
	s.Require().NoError(str.Add("a", "b", s.iv(2, 3)))

	forward, err := str.LinkPresenceLen("a", "b")
	s.Require().NoError(err)
	backward, err := str.LinkPresenceLen("b", "a")
	s.Require().NoError(err)
	s.Require().Equal(forward, backward)
}

func (s *StreamSuite) TestLinkPresenceLenOfUnlinkedKnownNodesIsZero() {
	str := linkstream.New(false)
	s.Require().NoError(str.Add("a", "b", s.iv(0, 1)))
	s.Require().NoError(str.Add("c", "d", s.iv(0, 1)))
	length, err := str.LinkPresenceLen("a", "c")
	s.Require().NoError(err)
	s.Require().Equal(0.0, length)
}

func (s *StreamSuite) TestNeighborhoodIsolatesTouchingLinks() {
	str := linkstream.New(false)
	s.Require().NoError(str.Add("a", "b", s.iv(0, 1)))
	s.Require().NoError(str.Add("c", "d", s.iv(0, 1)))

	nb, err := str.Neighborhood("a")
	s.Require().NoError(err)
	s.Require().True(nb.HasNode("a"))
	s.Require().True(nb.HasNode("b"))
	s.Require().False(nb.HasNode("c"))
}

func (s *StreamSuite) TestVersionIncrementsOnEverySuccessfulAdd() {
	str := linkstream.New(false)
	s.Require().Equal(uint64(0), str.Version())
	s.Require().NoError(str.Add("a", "b", s.iv(0, 1)))
	s.Require().Equal(uint64(1), str.Version())
	s.Require().NoError(str.Add("a", "c", s.iv(0, 1)))
	s.Require().Equal(uint64(2), str.Version())
}
