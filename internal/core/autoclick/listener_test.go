package autoclick

import (
	"sync"
	"testing"
	"time"
)

type fakeSource struct {
	mu      sync.Mutex
	started bool
	stopped bool
	press   func(KeyEvent)
	release func(KeyEvent)
}

func (s *fakeSource) Start(press, release func(KeyEvent)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	s.press = press
	s.release = release
	return nil
}

func (s *fakeSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

func (s *fakeSource) isStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *fakeSource) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func testCombos(t *testing.T) Combos {
	t.Helper()
	return Combos{
		Start: mustCombo(t, "shift", "s"),
		Stop:  mustCombo(t, "shift", "s"),
		Exit:  mustCombo(t, "shift", "e"),
	}
}

func newTestListener(t *testing.T) (*Listener, *Worker, *fakeSource) {
	t.Helper()
	worker, _ := newTestWorker(t, 10*time.Millisecond)
	source := &fakeSource{}
	listener, err := NewListener(testCombos(t), worker, source, noopLogger{})
	if err != nil {
		t.Fatalf("NewListener() error = %v", err)
	}
	return listener, worker, source
}

func press(l *Listener, symbols ...string) {
	for _, symbol := range symbols {
		if len(symbol) == 1 {
			l.HandlePress(KeyEvent{Rune: rune(symbol[0])})
		} else {
			l.HandlePress(KeyEvent{Name: symbol})
		}
	}
}

func release(l *Listener, symbols ...string) {
	for _, symbol := range symbols {
		if len(symbol) == 1 {
			l.HandleRelease(KeyEvent{Rune: rune(symbol[0])})
		} else {
			l.HandleRelease(KeyEvent{Name: symbol})
		}
	}
}

func TestNewListenerRejectsEmptyCombos(t *testing.T) {
	worker, _ := newTestWorker(t, 10*time.Millisecond)
	combos := testCombos(t)
	combos.Exit = Combo{}

	if _, err := NewListener(combos, worker, &fakeSource{}, noopLogger{}); err == nil {
		t.Fatalf("expected error for empty exit combo")
	}
}

func TestStartStopToggle(t *testing.T) {
	listener, worker, _ := newTestListener(t)

	// Pressing only part of the combo fires nothing.
	press(listener, "shift")
	if worker.Running() {
		t.Fatalf("worker started before combo was complete")
	}

	// Completing the combo starts the worker once.
	press(listener, "s")
	if !worker.Running() {
		t.Fatalf("expected worker to start on full combo")
	}

	// Start and stop share a combo here, so the next press stops again.
	press(listener, "s")
	if worker.Running() {
		t.Fatalf("expected worker to stop on repeated combo press")
	}
}

func TestExitStopsWorkerAndEndsListening(t *testing.T) {
	listener, worker, _ := newTestListener(t)

	press(listener, "shift", "s")
	if !worker.Running() {
		t.Fatalf("expected worker running")
	}
	release(listener, "s")

	press(listener, "e")
	if worker.Running() {
		t.Fatalf("expected exit combo to stop the worker")
	}
	if listener.Listening() {
		t.Fatalf("expected listener to leave the listening state")
	}
}

func TestExitTakesPriorityOverStart(t *testing.T) {
	worker, _ := newTestWorker(t, 10*time.Millisecond)
	combos := Combos{
		Start: mustCombo(t, "shift", "e"),
		Stop:  mustCombo(t, "shift", "e"),
		Exit:  mustCombo(t, "shift", "e"),
	}
	listener, err := NewListener(combos, worker, &fakeSource{}, noopLogger{})
	if err != nil {
		t.Fatalf("NewListener() error = %v", err)
	}

	press(listener, "shift", "e")

	if worker.Running() {
		t.Fatalf("start must not fire when the exit combo is satisfied")
	}
	if listener.Listening() {
		t.Fatalf("expected shutdown on exit combo")
	}
}

func TestStartFiresOncePerComboCompletion(t *testing.T) {
	worker, _ := newTestWorker(t, 10*time.Millisecond)
	combos := Combos{
		Start: mustCombo(t, "shift", "s"),
		Stop:  mustCombo(t, "shift", "q"),
		Exit:  mustCombo(t, "shift", "e"),
	}
	listener, err := NewListener(combos, worker, &fakeSource{}, noopLogger{})
	if err != nil {
		t.Fatalf("NewListener() error = %v", err)
	}

	press(listener, "shift", "s")
	if !worker.Running() {
		t.Fatalf("expected worker running after full combo")
	}

	// Key repeat of a combo key while already running is ignored.
	press(listener, "s")
	press(listener, "shift")
	if !worker.Running() {
		t.Fatalf("expected worker to stay running on repeated presses")
	}
	worker.Stop()
}

func TestReleaseNeverTriggersActions(t *testing.T) {
	listener, worker, _ := newTestListener(t)

	press(listener, "shift")
	press(listener, "s")
	worker.Stop()

	// Both combo keys still held; releases alone must not restart.
	release(listener, "shift", "s")
	if worker.Running() {
		t.Fatalf("release events must not trigger hotkey actions")
	}
}

func TestRunStopsSourceOnExitCombo(t *testing.T) {
	listener, _, source := newTestListener(t)

	done := make(chan error, 1)
	go func() {
		done <- listener.Run()
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !source.isStarted() {
		if time.Now().After(deadline) {
			t.Fatalf("source never started")
		}
		time.Sleep(time.Millisecond)
	}

	press(listener, "shift", "e")

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after exit combo")
	}
	if !source.isStopped() {
		t.Fatalf("expected source to be stopped")
	}
}

func TestShutdownStopsRunningWorker(t *testing.T) {
	listener, worker, _ := newTestListener(t)

	press(listener, "shift", "s")
	if !worker.Running() {
		t.Fatalf("expected worker running")
	}

	listener.Shutdown()
	listener.Shutdown()

	if worker.Running() {
		t.Fatalf("expected Shutdown to stop the worker")
	}
	if listener.Listening() {
		t.Fatalf("expected Shutdown to end listening")
	}
}
