package whale

import "time"

// Task is a periodic job registered with a Scheduler.
type Task struct {
	interval  time.Duration
	next      time.Duration
	seq       int
	fn        func()
	cancelled bool
}

// Cancel stops all future runs of the task, including a run that is
// already due within the Advance call currently in progress.
func (t *Task) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Cancelled reports whether the task was cancelled.
func (t *Task) Cancelled() bool {
	return t == nil || t.cancelled
}

// Scheduler is a cooperative scheduler driven by a virtual clock.
// Tasks run one at a time on the caller's goroutine, in due-time order
// (registration order breaks ties), so no task ever observes another
// half-finished.
type Scheduler struct {
	now   time.Duration
	seq   int
	tasks []*Task
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every registers fn to run each interval, first at Now()+interval.
// A non-positive interval yields a task that never runs.
func (s *Scheduler) Every(interval time.Duration, fn func()) *Task {
	s.seq++
	t := &Task{
		interval: interval,
		next:     s.now + interval,
		seq:      s.seq,
		fn:       fn,
	}
	if interval <= 0 {
		t.cancelled = true
		return t
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every task that falls due.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.next
		t.next += t.interval
		t.fn()
	}
	s.now = target
	s.prune()
}

// Pending returns the number of live tasks.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (s *Scheduler) nextDue(target time.Duration) *Task {
	var best *Task
	for _, t := range s.tasks {
		if t.cancelled || t.next > target {
			continue
		}
		if best == nil || t.next < best.next || (t.next == best.next && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) prune() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}
