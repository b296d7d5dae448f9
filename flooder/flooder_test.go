package flooder_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/blossomdecode/sparseblossom/events"
	"github.com/blossomdecode/sparseblossom/flooder"
	"github.com/blossomdecode/sparseblossom/graph"
	"github.com/blossomdecode/sparseblossom/region"
)

func newMatchingGraph(numNodes int) *graph.MatchingGraph {
	return graph.New[graph.MatchingMask](numNodes, graph.MatchingMask(0))
}

type FlooderSuite struct {
	suite.Suite
}

func (s *FlooderSuite) TestTwoGrowingRegionsCollide() {
	require := require.New(s.T())

	g := newMatchingGraph(2)
	_, err := g.AddEdge(0, 1, 4, 0)
	require.NoError(err)

	f := flooder.New[graph.MatchingMask](g, flooder.NoOpRecorder[graph.MatchingMask]{})
	_, err = f.CreateRegion(0)
	require.NoError(err)
	_, err = f.CreateRegion(1)
	require.NoError(err)

	ev, err := f.NextEvent()
	require.NoError(err)
	require.Equal(flooder.RegionHitRegion, ev.Kind)
	require.Equal(events.Time(2), ev.Time)
	require.NotEqual(ev.RegionA, ev.RegionB)
}

func (s *FlooderSuite) TestRegionHitsBoundary() {
	require := require.New(s.T())

	g := newMatchingGraph(1)
	_, err := g.AddBoundaryEdge(0, 3, 0)
	require.NoError(err)

	f := flooder.New[graph.MatchingMask](g, flooder.NoOpRecorder[graph.MatchingMask]{})
	_, err = f.CreateRegion(0)
	require.NoError(err)

	ev, err := f.NextEvent()
	require.NoError(err)
	require.Equal(flooder.RegionHitBoundary, ev.Kind)
	require.Equal(events.Time(3), ev.Time)
	require.Equal(graph.NodeID(0), ev.Node)
}

func (s *FlooderSuite) TestAbsorptionIsNotDriverVisible() {
	require := require.New(s.T())

	g := newMatchingGraph(2)
	_, err := g.AddEdge(0, 1, 2, graph.MatchingMask(0b1))
	require.NoError(err)

	f := flooder.New[graph.MatchingMask](g, flooder.NoOpRecorder[graph.MatchingMask]{})
	_, err = f.CreateRegion(0)
	require.NoError(err)

	_, err = f.NextEvent()
	require.ErrorIs(err, flooder.ErrQueueEmpty)

	require.Equal(graph.MatchingMask(0b1), f.ObservableMask(1))
	require.Equal(f.HomeLeaf(0), f.HomeLeaf(1))
}

func (s *FlooderSuite) TestShrinkingLeafDegenerateImplosion() {
	require := require.New(s.T())

	g := newMatchingGraph(1)
	f := flooder.New[graph.MatchingMask](g, flooder.NoOpRecorder[graph.MatchingMask]{})

	id, err := f.CreateRegion(0)
	require.NoError(err)

	// Freeze at creation time, while the radius is still 0.
	require.NoError(f.SetRegionGrowth(id, region.Frozen))
	// directly flip to shrinking without growth; radius is 0 already so it
	// should implode immediately on the next event.
	require.NoError(f.SetRegionGrowth(id, region.Shrinking))

	ev, err := f.NextEvent()
	require.NoError(err)
	require.Equal(flooder.DegenerateImplosion, ev.Kind)
	require.Equal(id, ev.RegionA)
}

func (s *FlooderSuite) TestCreateBlossomRequiresOddCycle() {
	require := require.New(s.T())

	g := newMatchingGraph(2)
	f := flooder.New[graph.MatchingMask](g, flooder.NoOpRecorder[graph.MatchingMask]{})

	a, _ := f.CreateRegion(0)
	b, _ := f.CreateRegion(1)

	_, err := f.CreateBlossom([]region.Child{{Region: a}, {Region: b}})
	require.ErrorIs(err, flooder.ErrInvalidCycle)
}

func (s *FlooderSuite) TestCreateRegionRejectsAlreadyCovered() {
	require := require.New(s.T())

	g := newMatchingGraph(1)
	f := flooder.New[graph.MatchingMask](g, flooder.NoOpRecorder[graph.MatchingMask]{})

	_, err := f.CreateRegion(0)
	require.NoError(err)

	_, err = f.CreateRegion(0)
	require.ErrorIs(err, flooder.ErrNodeAlreadyCovered)
}

func TestFlooderSuite(t *testing.T) {
	suite.Run(t, new(FlooderSuite))
}
