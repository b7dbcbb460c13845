package script

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrInterrupted is returned from Suspend when the task was cancelled
// instead of resumed. Scripts propagate it out; nothing after the
// suspension point runs.
var ErrInterrupted = errors.New("task interrupted")

// State is the lifecycle of a task.
//
//	Running → Awaiting → Resumed → Running ...
//	                   → Terminated (interrupt)
//	Running → Terminated (completion)
type State int32

const (
	StateRunning State = iota
	StateAwaiting
	StateResumed
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateAwaiting:
		return "awaiting"
	case StateResumed:
		return "resumed"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Func is a script body. It runs cooperatively: the runner hands it
// control and it hands control back by suspending or returning.
type Func func(ctx *Context) error

// interruptAction is a one-shot cleanup callback. Each registration gets
// its own once so a script that prompts repeatedly can re-register after
// every natural resume.
type interruptAction struct {
	fn   func()
	once sync.Once
}

func (a *interruptAction) run() {
	if a == nil {
		return
	}
	a.once.Do(a.fn)
}

// resumption is what a parked script wakes up to.
type resumption struct {
	value       Value
	interrupted bool
}

// Task is one resumable script execution owned by a single pawn. The
// script body runs on its own goroutine, but only while the runner
// blocks on the yield channel, so script code never runs concurrently
// with the simulation tick.
type Task struct {
	owner string
	state atomic.Int32

	// resume wakes the parked script; yield hands control back to the
	// runner when the script suspends or finishes.
	resume chan resumption
	yield  chan struct{}

	pending   Value
	interrupt atomic.Pointer[interruptAction]
	err       error
}

func newTask(owner string) *Task {
	t := &Task{
		owner:  owner,
		resume: make(chan resumption),
		yield:  make(chan struct{}),
	}
	t.state.Store(int32(StateRunning))
	return t
}

// State returns the task's current lifecycle state.
func (t *Task) State() State {
	return State(t.state.Load())
}

func (t *Task) compareAndSwap(from, to State) bool {
	return t.state.CompareAndSwap(int32(from), int32(to))
}

// Err returns the error the script body completed with, if any.
func (t *Task) Err() error {
	return t.err
}

// Context is the handle a script body uses to suspend and to register
// cleanup for the case where it never resumes.
type Context struct {
	task *Task
}

// OnInterrupt registers fn to run if the task is cancelled while
// suspended. It replaces any previously registered action and runs at
// most once however many times the task is interrupted. Register it
// before suspending; an interrupt can arrive at any suspension point.
func (c *Context) OnInterrupt(fn func()) {
	c.task.interrupt.Store(&interruptAction{fn: fn})
}

// RunInterruptAction runs the registered interrupt action now, through
// the same once as the cancellation path. Helpers call this after a
// natural resume so the cleanup happens exactly once either way.
func (c *Context) RunInterruptAction() {
	c.task.interrupt.Load().run()
}

// Suspend parks the script until a result is delivered or the task is
// interrupted. It returns the delivered value, or ErrInterrupted.
func (c *Context) Suspend() (Value, error) {
	t := c.task
	if !t.compareAndSwap(StateRunning, StateAwaiting) {
		// Already torn down; behave like an interrupt.
		return Value{}, ErrInterrupted
	}

	t.yield <- struct{}{}
	r := <-t.resume

	if r.interrupted {
		return Value{}, ErrInterrupted
	}

	t.state.Store(int32(StateRunning))
	return r.value, nil
}
