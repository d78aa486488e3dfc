package scheduler

import (
	"container/heap"
	"time"
)

// schedule is one periodic registration on a Loop.
type schedule struct {
	loop     *Loop
	due      time.Duration
	period   time.Duration
	seq      uint64
	fn       Func
	index    int
	canceled bool
}

// Cancel removes the schedule from its loop. A schedule canceled from inside
// its own callback is not rescheduled.
func (s *schedule) Cancel() {
	l := s.loop
	l.mu.Lock()
	defer l.mu.Unlock()

	if s.canceled {
		return
	}
	s.canceled = true
	if s.index >= 0 {
		heap.Remove(&l.queue, s.index)
	}
}

// schedules is a min-heap ordered by due time, then registration order.
type schedules []*schedule

func (q schedules) Len() int { return len(q) }

func (q schedules) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q schedules) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *schedules) Push(x any) {
	s := x.(*schedule)
	s.index = len(*q)
	*q = append(*q, s)
}

func (q *schedules) Pop() any {
	old := *q
	n := len(old)
	s := old[n-1]
	old[n-1] = nil
	s.index = -1
	*q = old[:n-1]
	return s
}
