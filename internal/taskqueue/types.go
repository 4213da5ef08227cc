package taskqueue

// Status is a snapshot of the queue's counters.
type Status struct {
	// Pending is the number of tasks waiting to be dequeued.
	Pending int `json:"pending"`

	// Enqueued is the number of tasks ever accepted.
	Enqueued int `json:"enqueued"`

	// Dequeued is the number of tasks handed to consumers.
	Dequeued int `json:"dequeued"`

	// Waiting is the number of consumers currently blocked in Dequeue.
	Waiting int `json:"waiting"`

	// Closed reports whether Shutdown has been called.
	Closed bool `json:"closed"`
}

// Drained returns true when the queue is closed and every accepted task has
// been handed out.
func (s Status) Drained() bool {
	return s.Closed && s.Pending == 0
}
