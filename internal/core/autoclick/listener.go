package autoclick

import (
	"fmt"
	"sync"
	"time"
)

// pollInterval is the cadence at which Run rechecks the shutdown signal
// while the source delivers events on its own goroutine.
const pollInterval = 100 * time.Millisecond

// Listener wires a key event source to the held-key tracker and the click
// worker and encodes the exit > stop > start hotkey state machine. The
// worker's own running state is the single source of truth for which
// branch applies; the listener keeps no shadow flag.
type Listener struct {
	combos  Combos
	worker  *Worker
	source  Source
	tracker *Tracker
	logger  Logger

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

func NewListener(combos Combos, worker *Worker, source Source, logger Logger) (*Listener, error) {
	if combos.Start.Empty() || combos.Stop.Empty() || combos.Exit.Empty() {
		return nil, fmt.Errorf("all three key combos must be non-empty")
	}
	if worker == nil {
		return nil, fmt.Errorf("worker is nil")
	}
	if source == nil {
		return nil, fmt.Errorf("source is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	return &Listener{
		combos:     combos,
		worker:     worker,
		source:     source,
		tracker:    NewTracker(),
		logger:     logger,
		shutdownCh: make(chan struct{}),
	}, nil
}

// HandlePress records the key and evaluates the hotkey branches. The exit
// combo always wins over stop and start, and only the branch matching the
// worker's current state is considered, so re-pressing the start combo
// while already clicking does nothing.
func (l *Listener) HandlePress(ev KeyEvent) {
	if _, ok := l.tracker.Press(ev); !ok {
		return
	}
	held := l.tracker.Held()

	if l.combos.Exit.MatchedBy(held) {
		if l.worker.Running() {
			l.worker.Stop()
		}
		l.signalShutdown()
		return
	}

	if l.worker.Running() {
		if l.combos.Stop.MatchedBy(held) {
			l.worker.Stop()
			l.logger.Info("Auto clicker stopped")
		}
		return
	}
	if l.combos.Start.MatchedBy(held) {
		l.worker.Start()
		l.logger.Info("Auto clicker started")
	}
}

// HandleRelease only updates the held-key set; hotkeys never fire on
// release.
func (l *Listener) HandleRelease(ev KeyEvent) {
	l.tracker.Release(ev)
}

// Run starts the source and blocks, rechecking the shutdown signal every
// poll tick, until the exit combo or Shutdown fires. The source is stopped
// before Run returns.
func (l *Listener) Run() error {
	if err := l.source.Start(l.HandlePress, l.HandleRelease); err != nil {
		return fmt.Errorf("failed to start key event source: %w", err)
	}

	for sleepWithStop(l.shutdownCh, pollInterval) {
	}
	return l.source.Stop()
}

// Shutdown requests the same teardown the exit combo performs: stop a
// running worker, then end the listening loop.
func (l *Listener) Shutdown() {
	if l.worker.Running() {
		l.worker.Stop()
	}
	l.signalShutdown()
}

// Listening reports whether the shutdown signal has not fired yet.
func (l *Listener) Listening() bool {
	select {
	case <-l.shutdownCh:
		return false
	default:
		return true
	}
}

func (l *Listener) signalShutdown() {
	l.shutdownOnce.Do(func() {
		close(l.shutdownCh)
		l.logger.Info("Shutting down listener")
	})
}
