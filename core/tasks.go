package core

import "time"

// Task is a named periodic job run from the cooperative main loop:
// config autosave, memory reclaim, status reports.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(now time.Time)
	Enabled  bool

	nextDue time.Time
}

// TaskRunner dispatches due tasks without blocking the loop. A
// panicking task is isolated: the panic is logged and the remaining
// tasks still run.
type TaskRunner struct {
	tasks []*Task
	now   Clock
}

// NewTaskRunner creates a runner on the given clock. A nil clock means
// real time.
func NewTaskRunner(now Clock) *TaskRunner {
	if now == nil {
		now = SystemClock
	}
	return &TaskRunner{now: now}
}

// Add registers t. Its first run is due one interval from now.
func (r *TaskRunner) Add(t *Task) {
	t.nextDue = r.now().Add(t.Interval)
	r.tasks = append(r.tasks, t)
}

// SetEnabled toggles the named task and reports whether it was found.
func (r *TaskRunner) SetEnabled(name string, enabled bool) bool {
	for _, t := range r.tasks {
		if t.Name == name {
			t.Enabled = enabled
			return true
		}
	}
	return false
}

// RunDue runs every enabled task whose interval has elapsed and
// returns how many ran.
func (r *TaskRunner) RunDue() int {
	now := r.now()
	ran := 0
	for _, t := range r.tasks {
		if !t.Enabled || now.Before(t.nextDue) {
			continue
		}
		runTask(t, now)
		t.nextDue = now.Add(t.Interval)
		ran++
	}
	return ran
}

func runTask(t *Task, now time.Time) {
	defer func() {
		if rec := recover(); rec != nil {
			Logln("[TASKS] recovered from panic in " + t.Name)
		}
	}()
	t.Run(now)
}
