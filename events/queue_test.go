package events_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/blossomdecode/sparseblossom/events"
)

type QueueSuite struct {
	suite.Suite
	q   *events.Queue
	seq events.Sequencer
}

func (s *QueueSuite) SetupTest() {
	s.q = events.NewQueue()
	s.seq = events.Sequencer{}
}

func (s *QueueSuite) push(t events.Time) *events.Event {
	ev := &events.Event{
		Kind: events.RegionShrink,
		Time: t,
		Seq:  s.seq.Next(),
		Shrink: &events.ShrinkPayload{
			Region: events.AuthorityID(1),
			Token:  events.Token(0),
		},
	}
	s.q.Schedule(ev)
	return ev
}

func (s *QueueSuite) TestOrdersByTimeThenSeq() {
	require := require.New(s.T())

	s.push(10)
	first := s.push(5)
	s.push(5) // pushed after 'first' at the same time; should still pop after it

	got := s.q.PopNext()
	require.Same(first, got, "equal-time events must pop in FIFO insertion order")
	require.Equal(events.Time(5), got.Time)

	got = s.q.PopNext()
	require.Equal(events.Time(5), got.Time)

	got = s.q.PopNext()
	require.Equal(events.Time(10), got.Time)

	require.Nil(s.q.PopNext())
}

func (s *QueueSuite) TestPeekDoesNotRemove() {
	require := require.New(s.T())

	s.push(3)
	require.NotNil(s.q.Peek())
	require.Equal(1, s.q.Len())
	s.q.PopNext()
	require.Equal(0, s.q.Len())
	require.Nil(s.q.Peek())
}

func TestQueueSuite(t *testing.T) {
	suite.Run(t, new(QueueSuite))
}

func TestSequencerMonotonic(t *testing.T) {
	require := require.New(t)
	var seq events.Sequencer
	require.Equal(uint64(0), seq.Next())
	require.Equal(uint64(1), seq.Next())
	require.Equal(uint64(2), seq.Next())
}
