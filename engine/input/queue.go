package input

// Queue buffers events reported by platform callbacks until the frame loop drains them.
// It is not safe for concurrent use; callbacks and draining happen on the window's thread.
type Queue struct {
	events []Event
}

// Push appends an event to the back of the queue.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain removes and returns every pending event in arrival order.
//
// Returns:
//   - []Event: the pending events, or nil if none are queued
func (q *Queue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
