package autoclick

import (
	"fmt"
	"sync"
	"time"
)

// clickHold is how long each synthetic click stays down.
const clickHold = 5 * time.Millisecond

// minInterval is the smallest configurable wait between click cycles; the
// config layer rejects anything lower before a Worker is ever built.
const minInterval = clickHold + time.Millisecond

// Worker owns the click loop: wait the configured interval, press the left
// button, hold briefly, release, until stopped. Start and Stop are safe
// from any goroutine and are no-ops when the worker is already in the
// requested state.
type Worker struct {
	interval time.Duration
	injector Injector
	logger   Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewWorker(interval time.Duration, injector Injector, logger Logger) (*Worker, error) {
	if interval < minInterval {
		return nil, fmt.Errorf("click interval %v is below the minimum %v", interval, minInterval)
	}
	if injector == nil {
		return nil, fmt.Errorf("injector is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	return &Worker{interval: interval, injector: injector, logger: logger}, nil
}

// Start arms the click loop. The loop goroutine is running when Start
// returns; the first click follows up to one interval later.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}

	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true
	go w.clickLoop(w.stopCh, w.doneCh)
	w.logger.Debug("Click worker started", "interval", w.interval)
}

// Stop cancels the loop and waits until it has fully exited, so no click
// side effect can occur after Stop returns. The wait is bounded by one
// click cycle. Stopping an already stopped worker waits for any exit still
// in flight and returns.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		doneCh := w.doneCh
		w.mu.Unlock()
		if doneCh != nil {
			<-doneCh
		}
		return
	}
	w.running = false
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()

	close(stopCh)
	<-doneCh
	w.logger.Debug("Click worker stopped")
}

// Running reports whether the click loop is armed. This is the single
// source of truth for clicker liveness.
func (w *Worker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Worker) clickLoop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	for {
		if !sleepWithStop(stopCh, w.interval) {
			return
		}

		if err := w.injector.WriteEvents(
			Event{Type: EventTypeKey, Code: LeftButtonCode, Value: 1},
			Event{Type: EventTypeSyn, Code: SynReportCode, Value: 0},
		); err != nil {
			w.logger.Warn("Failed to press left button", "err", err)
		}

		// Even when cancelled during the hold, the release below still
		// runs so the virtual button is never left down.
		stopping := !sleepWithStop(stopCh, clickHold)

		if err := w.injector.WriteEvents(
			Event{Type: EventTypeKey, Code: LeftButtonCode, Value: 0},
			Event{Type: EventTypeSyn, Code: SynReportCode, Value: 0},
		); err != nil {
			w.logger.Warn("Failed to release left button", "err", err)
		}

		if stopping {
			return
		}
	}
}

func sleepWithStop(stopCh <-chan struct{}, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-stopCh:
		return false
	case <-timer.C:
		return true
	}
}
