package script

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Runner executes interaction scripts, at most one live task per pawn.
// Scripts run cooperatively: control is handed to a script's goroutine
// only while the calling runner method blocks, so script bodies never
// run concurrently with each other or with the caller.
//
// Start, Deliver, Interrupt and Tick serialize on one mutex and must not
// be called from inside a script body.
type Runner struct {
	mu    sync.Mutex
	tasks map[string]*Task

	// ready holds tasks that received a result and resume on the next
	// tick.
	ready []*Task
}

func NewRunner() *Runner {
	return &Runner{
		tasks: make(map[string]*Task),
	}
}

// Start launches fn as owner's interaction task, first interrupting any
// task the owner already has. It runs the script until its first
// suspension or completion and returns the task.
func (r *Runner) Start(owner string, fn Func) *Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev := r.tasks[owner]; prev != nil {
		r.interruptLocked(prev)
	}

	t := newTask(owner)
	r.tasks[owner] = t

	go func() {
		defer func() {
			if v := recover(); v != nil {
				// A script failure is confined to its own interaction.
				slog.Error("interaction script panicked", "owner", owner, "panic", v, "stack", string(debug.Stack()))
			}
			t.state.Store(int32(StateTerminated))
			t.yield <- struct{}{}
		}()

		if err := fn(&Context{task: t}); err != nil && !errors.Is(err, ErrInterrupted) {
			t.err = err
			slog.Warn("interaction script failed", "owner", owner, "error", err)
		}
	}()

	r.waitLocked(t)
	return t
}

// Deliver hands a result to owner's awaiting task. The task resumes on
// the next Tick. If no task is awaiting for that owner the delivery is a
// stale or duplicate reply and is dropped.
func (r *Runner) Deliver(owner string, v Value) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.tasks[owner]
	if t == nil || !t.compareAndSwap(StateAwaiting, StateResumed) {
		slog.Debug("dropping result with no awaiting task", "owner", owner)
		return
	}

	t.pending = v
	r.ready = append(r.ready, t)
}

// Interrupt cancels owner's current task: the registered interrupt
// action runs exactly once, then the script unwinds without executing
// anything past its suspension point. A no-op when the owner has no
// live task.
func (r *Runner) Interrupt(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t := r.tasks[owner]; t != nil {
		r.interruptLocked(t)
	}
}

// Active reports whether owner has a live (suspended or resuming) task.
func (r *Runner) Active(owner string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.tasks[owner]
	return t != nil && t.State() != StateTerminated
}

// Tick resumes every task that received a result since the last tick.
func (r *Runner) Tick(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ready := r.ready
	r.ready = nil

	for _, t := range ready {
		// Skip tasks interrupted after their result was delivered.
		if t.State() != StateResumed {
			continue
		}
		t.resume <- resumption{value: t.pending}
		r.waitLocked(t)
	}

	return nil
}

// waitLocked blocks until the task hands control back, then cleans up
// if it ran to completion.
func (r *Runner) waitLocked(t *Task) {
	<-t.yield
	if t.State() == StateTerminated {
		r.removeLocked(t)
	}
}

func (r *Runner) interruptLocked(t *Task) {
	switch t.State() {
	case StateTerminated:
		// Already finished; a second interrupt is a no-op.
		return

	case StateAwaiting, StateResumed:
		t.interrupt.Load().run()
		t.state.Store(int32(StateTerminated))
		t.resume <- resumption{interrupted: true}
		<-t.yield
		r.removeLocked(t)

	case StateRunning:
		// Unreachable: scripts only run while a runner method holds the
		// lock, and nothing interrupts a task from inside its own body.
	}
}

func (r *Runner) removeLocked(t *Task) {
	if cur, ok := r.tasks[t.owner]; ok && cur == t {
		delete(r.tasks, t.owner)
	}
}
