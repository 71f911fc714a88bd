package schedule

import "time"

// State is the lifecycle position of a Task.
type State int

const (
	// Unscheduled means the task has never been requested.
	Unscheduled State = iota
	// Pending means a run is scheduled and has not fired yet.
	Pending
	// Fired means the last scheduled run has fired.
	Fired
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Unscheduled:
		return "unscheduled"
	case Pending:
		return "pending"
	case Fired:
		return "fired"
	default:
		return "unknown"
	}
}

// Scheduler runs fn once, no earlier than d from now.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// TaskOption configures a Task.
type TaskOption func(*Task)

// WhenReady gates the task's run on ready. If ready reports false when the
// task fires, wait is called once with a callback that runs the task; wait
// must invoke that callback at most once, when the condition becomes true.
func WhenReady(ready func() bool, wait func(fn func())) TaskOption {
	return func(t *Task) {
		t.ready = ready
		t.wait = wait
	}
}

// Task is a debounced, deferred callback.
type Task struct {
	sched   Scheduler
	delay   time.Duration
	run     func()
	ready   func() bool
	wait    func(fn func())
	state   State
	waiting bool
	runs    int
}

// NewTask returns an unscheduled task that calls run delay after a request.
func NewTask(s Scheduler, delay time.Duration, run func(), opts ...TaskOption) *Task {
	t := &Task{sched: s, delay: delay, run: run}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Request schedules a run unless one is already pending.
// It reports whether a new run was scheduled.
func (t *Task) Request() bool {
	if t.state == Pending {
		return false
	}
	t.state = Pending
	t.sched.After(t.delay, t.fire)
	return true
}

// State returns the task's current state.
func (t *Task) State() State { return t.state }

// Waiting reports whether the task fired early and is waiting for readiness.
func (t *Task) Waiting() bool { return t.waiting }

// Runs returns how many times the callback has run.
func (t *Task) Runs() int { return t.runs }

func (t *Task) fire() {
	t.state = Fired
	if t.ready == nil || t.ready() {
		t.exec()
		return
	}
	if t.waiting || t.wait == nil {
		return
	}
	t.waiting = true
	t.wait(func() {
		t.waiting = false
		t.exec()
	})
}

func (t *Task) exec() {
	t.runs++
	t.run()
}
