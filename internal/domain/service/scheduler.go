package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// TaskState is the lifecycle of one recurring task between fires.
type TaskState int

const (
	StateIdle TaskState = iota
	StateScheduled
	StateFiring
	StateCompleted
	StateFailed
	StateRescheduled
)

func (s TaskState) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateFiring:
		return "firing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateRescheduled:
		return "rescheduled"
	default:
		return "idle"
	}
}

// Task is one recurring job. Next computes the fire time from the current
// instant; a fixed interval cannot express "last day of month", so every task
// reschedules itself after each run.
type Task struct {
	Name string
	Next func(now time.Time) time.Time
	Run  func(ctx context.Context) error
}

type pendingTimer struct {
	timer  *time.Timer
	fireAt time.Time
}

// Scheduler drives self-rescheduling one-shot timers, one per task name in
// steady state. A failed run never prevents the reschedule, and duplicate
// pending timers under one name are self-correcting within one cycle.
type Scheduler struct {
	logger *slog.Logger

	mu      sync.Mutex
	tasks   map[string]*Task
	pending map[string][]*pendingTimer
	states  map[string]TaskState
	stopped bool

	// settleDelay separates a fired timer's cleanup from arming its
	// replacement. Tests shrink it.
	settleDelay time.Duration
	now         func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newScheduler(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		logger:      logger,
		tasks:       make(map[string]*Task),
		pending:     make(map[string][]*pendingTimer),
		states:      make(map[string]TaskState),
		settleDelay: time.Second,
		now:         time.Now,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds a task. Must be called before Start.
func (s *Scheduler) Register(task *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.Name] = task
	s.states[task.Name] = StateIdle
}

// Start arms one timer per registered task.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.tasks {
		s.armLocked(name)
	}
	s.logger.Info("scheduler started", "tasks", len(s.tasks))
}

// Stop cancels all pending timers and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for name, timers := range s.pending {
		for _, pt := range timers {
			pt.timer.Stop()
		}
		s.pending[name] = nil
	}
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

// State reports the task's current lifecycle state.
func (s *Scheduler) State(name string) TaskState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[name]
}

// PendingCount reports how many timers are armed for the task. Steady state
// is exactly one.
func (s *Scheduler) PendingCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending[name])
}

// armLocked computes the next fire time and arms exactly one timer.
// Caller holds s.mu.
func (s *Scheduler) armLocked(name string) {
	if s.stopped {
		return
	}

	task := s.tasks[name]
	fireAt := task.Next(s.now())
	delay := fireAt.Sub(s.now())
	if delay < 0 {
		delay = 0
	}

	pt := &pendingTimer{fireAt: fireAt}
	pt.timer = time.AfterFunc(delay, func() {
		s.fire(name, pt)
	})
	s.pending[name] = append(s.pending[name], pt)
	s.states[name] = StateScheduled

	s.logger.Info("task scheduled", "task", name, "fire_at", fireAt.Format(time.RFC3339))
}

// fire runs the task body and unconditionally hands over to reschedule.
// Errors and panics are logged, never propagated: a failed run must not kill
// the schedule.
func (s *Scheduler) fire(name string, fired *pendingTimer) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	task := s.tasks[name]
	s.states[name] = StateFiring
	// Registered under the lock so Stop either sees stopped set first or
	// waits for this run to finish.
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()

	err := s.runTask(task)

	s.mu.Lock()
	if err != nil {
		s.states[name] = StateFailed
		s.logger.Error("task run failed", "task", name, "error", err)
	} else {
		s.states[name] = StateCompleted
	}
	s.mu.Unlock()

	s.reschedule(name, fired)
}

func (s *Scheduler) runTask(task *Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{task: task.Name, value: r}
		}
	}()
	return task.Run(s.ctx)
}

// reschedule removes the fired timer, clears a single stray duplicate, and
// arms the next one after the settling delay. Two or more duplicates mean
// something is actively double-scheduling; adding another timer would
// compound the problem, so that cycle skips the reschedule and the warning
// asks for attention.
func (s *Scheduler) reschedule(name string, fired *pendingTimer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	remaining := s.removeTimerLocked(name, fired)

	if len(remaining) >= 2 {
		s.logger.Warn("multiple duplicate timers detected, skipping reschedule",
			"task", name, "duplicates", len(remaining))
		return
	}
	if len(remaining) == 1 {
		s.logger.Warn("duplicate pending timer removed", "task", name)
		remaining[0].timer.Stop()
		s.pending[name] = nil
	}

	s.states[name] = StateRescheduled

	time.AfterFunc(s.settleDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.armLocked(name)
	})
}

// removeTimerLocked drops the fired timer from the pending list and returns
// what is left. Caller holds s.mu.
func (s *Scheduler) removeTimerLocked(name string, fired *pendingTimer) []*pendingTimer {
	var remaining []*pendingTimer
	for _, pt := range s.pending[name] {
		if pt != fired {
			remaining = append(remaining, pt)
		}
	}
	s.pending[name] = remaining
	return remaining
}

type panicError struct {
	task  string
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("task %s panicked: %v", e.task, e.value)
}
