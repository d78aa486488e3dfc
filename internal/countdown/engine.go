package countdown

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/npratt/countdown/internal/scheduler"
)

// Scheduler registers periodic callbacks. Callbacks must run one at a time.
type Scheduler interface {
	Every(period time.Duration, fn scheduler.Func) scheduler.Handle
}

// Engine owns the countdown counters and the two tick schedules of a session.
// Ticks and StartSession are expected to run on the scheduler's goroutine;
// the read accessors are safe from any goroutine.
type Engine struct {
	display  Display
	sched    Scheduler
	logger   *slog.Logger
	observer func(Transition)

	mu        sync.Mutex
	state     State
	status    Status
	started   bool
	sessionID string

	minuteTick scheduler.Handle
	secondTick scheduler.Handle
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithObserver sets a callback invoked after every status change.
// It runs on the scheduler goroutine and must not block.
func WithObserver(fn func(Transition)) Option {
	return func(e *Engine) {
		e.observer = fn
	}
}

// New creates an idle engine writing to display and ticking on sched.
func New(display Display, sched Scheduler, opts ...Option) *Engine {
	e := &Engine{
		display: display,
		sched:   sched,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a copy of the current counters.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Status returns the current session status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// SessionID returns the ID of the current or last session, or "" when idle.
func (e *Engine) SessionID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessionID
}

// InitializeDisplay writes the counters to the display without starting a
// session. Before the first session it shows 25:00.
func (e *Engine) InitializeDisplay() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	minutes, seconds := IdleMinutesText, IdleSecondsText
	if e.started {
		minutes = strconv.Itoa(e.state.Minutes)
		seconds = strconv.Itoa(e.state.Seconds)
	}

	if err := e.write(SlotMinutes, minutes); err != nil {
		return err
	}
	return e.write(SlotSeconds, seconds)
}

// StartSession resets the counters to 24:59, writes them, and schedules the
// minute and second ticks. Calling it during a running session cancels the
// old ticks first, so the counters never decrement at double speed.
func (e *Engine) StartSession() error {
	e.mu.Lock()

	e.cancelBoth()
	e.started = true
	e.state = State{Minutes: InitialMinutes, Seconds: InitialSeconds}

	if err := e.write(SlotMinutes, strconv.Itoa(e.state.Minutes)); err != nil {
		e.mu.Unlock()
		return err
	}
	if err := e.write(SlotSeconds, strconv.Itoa(e.state.Seconds)); err != nil {
		e.mu.Unlock()
		return err
	}

	from := e.status
	e.status = StatusRunning
	e.sessionID = uuid.NewString()
	e.minuteTick = e.sched.Every(MinutePeriod, e.onMinuteTick)
	e.secondTick = e.sched.Every(SecondPeriod, e.onSecondTick)

	t := Transition{SessionID: e.sessionID, From: from, To: StatusRunning, State: e.state}
	e.mu.Unlock()

	e.logger.Info("session started", "session_id", t.SessionID, "restart", from == StatusRunning)
	e.notify(t)
	return nil
}

// Stop cancels both ticks without changing the status. Safe to call at any time.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelBoth()
}

// onMinuteTick decrements minutes with no lower bound; ending the session is
// left to onSecondTick.
func (e *Engine) onMinuteTick() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusRunning {
		return nil
	}
	e.state.Minutes--
	return e.write(SlotMinutes, strconv.Itoa(e.state.Minutes))
}

func (e *Engine) onSecondTick() error {
	e.mu.Lock()

	if e.status != StatusRunning {
		e.mu.Unlock()
		return nil
	}

	e.state.Seconds--
	shown := e.state.Seconds

	finished := false
	if e.state.Seconds <= 0 {
		if e.state.Minutes <= 0 {
			finished = true
			e.cancelBoth()
			e.status = StatusFinished
		} else {
			e.state.Seconds = SecondsReset
		}
	}

	err := e.write(SlotSeconds, strconv.Itoa(shown))
	if err == nil && finished {
		err = e.write(SlotDone, DoneMessage)
		if err == nil {
			err = e.addClass(SlotDone, ShowMessageClass)
		}
	}

	t := Transition{SessionID: e.sessionID, From: StatusRunning, To: StatusFinished, State: e.state}
	e.mu.Unlock()

	if finished {
		e.logger.Info("session finished", "session_id", t.SessionID, "minutes", t.State.Minutes)
		e.notify(t)
	}
	return err
}

// cancelBoth cancels the tick schedules. Caller holds mu.
func (e *Engine) cancelBoth() {
	if e.minuteTick != nil {
		e.minuteTick.Cancel()
		e.minuteTick = nil
	}
	if e.secondTick != nil {
		e.secondTick.Cancel()
		e.secondTick = nil
	}
}

func (e *Engine) write(slot, value string) error {
	if err := e.display.SetText(slot, value); err != nil {
		return fmt.Errorf("write %s: %w", slot, err)
	}
	return nil
}

func (e *Engine) addClass(slot, class string) error {
	if err := e.display.AddClass(slot, class); err != nil {
		return fmt.Errorf("add class %s to %s: %w", class, slot, err)
	}
	return nil
}

func (e *Engine) notify(t Transition) {
	if e.observer != nil {
		e.observer(t)
	}
}
