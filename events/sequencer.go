package events

// Sequencer issues the strictly increasing Seq values used as the FIFO
// tie-break for events sharing a Time. Its zero value is ready to use.
type Sequencer struct {
	next uint64
}

// Next returns the next sequence number, starting at zero.
func (s *Sequencer) Next() uint64 {
	v := s.next
	s.next++
	return v
}
