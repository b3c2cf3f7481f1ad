//go:build linux

package linuxinput

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"time"

	evdev "github.com/holoplot/go-evdev"

	"github.com/sora7672/snakepit-clicker/internal/core/autoclick"
)

// Runtime reads raw key events from the opened keyboard devices and
// delivers them to the listener callbacks, one reader goroutine per
// device.
type Runtime struct {
	devices []*evdev.InputDevice
	logger  autoclick.Logger

	stopCh    chan struct{}
	stopOnce  sync.Once
	readersWG sync.WaitGroup
}

func NewRuntime(devicePath string, logger autoclick.Logger) (*Runtime, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	devices, err := openKeyboardDevices(devicePath)
	if err != nil {
		return nil, err
	}
	return &Runtime{
		devices: devices,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

func (r *Runtime) Start(press, release func(autoclick.KeyEvent)) error {
	for _, dev := range r.devices {
		if err := dev.NonBlock(); err != nil {
			return fmt.Errorf("failed to set nonblocking mode for %s: %w", dev.Path(), err)
		}
	}

	for _, dev := range r.devices {
		name, _ := dev.Name()
		r.logger.Info("Listening on keyboard device", "path", dev.Path(), "name", name)
		r.readersWG.Add(1)
		go r.readLoop(dev, press, release)
	}
	return nil
}

func (r *Runtime) Stop() error {
	r.stopOnce.Do(func() {
		close(r.stopCh)
		for _, dev := range r.devices {
			_ = dev.Close()
		}
		r.readersWG.Wait()
	})
	return nil
}

func (r *Runtime) readLoop(dev *evdev.InputDevice, press, release func(autoclick.KeyEvent)) {
	defer r.readersWG.Done()

	path := dev.Path()
	for {
		events, err := dev.ReadSlice(64)
		if err != nil {
			if r.stopped() || isDeviceClosedError(err) {
				return
			}
			if isWouldBlockError(err) {
				if !r.sleepWithStop(10 * time.Millisecond) {
					return
				}
				continue
			}
			r.logger.Warn("Read failed", "path", path, "err", err)
			if !r.sleepWithStop(100 * time.Millisecond) {
				return
			}
			continue
		}

		for _, event := range events {
			if event.Type != evdev.EV_KEY {
				continue
			}
			keyEvent, ok := KeyEventFromCode(event.Code)
			if !ok {
				r.logger.Debug("Ignoring unmapped key event", "path", path, "code", FormatCodeName(event.Code))
				continue
			}
			switch event.Value {
			case 1, 2: // initial press and autorepeat both re-enter evaluation
				press(keyEvent)
			case 0:
				release(keyEvent)
			}
		}
	}
}

func (r *Runtime) stopped() bool {
	select {
	case <-r.stopCh:
		return true
	default:
		return false
	}
}

func (r *Runtime) sleepWithStop(duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-r.stopCh:
		return false
	case <-timer.C:
		return true
	}
}

type evdevInjector struct {
	dev *evdev.InputDevice
}

// NewInjector creates the uinput device the click worker writes through.
// It only ever needs the left mouse button.
func NewInjector() (autoclick.Injector, error) {
	capabilities := map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: {evdev.BTN_LEFT},
	}
	id := evdev.InputID{
		BusType: uint16(evdev.BUS_VIRTUAL),
		Vendor:  0x1,
		Product: 0x1,
		Version: 1,
	}

	dev, err := evdev.CreateDevice("snakepit-clicker", id, capabilities)
	if err != nil {
		return nil, fmt.Errorf("failed to create uinput device: %w", err)
	}
	return &evdevInjector{dev: dev}, nil
}

func (e *evdevInjector) WriteEvents(events ...autoclick.Event) error {
	for _, event := range events {
		ev := evdev.InputEvent{
			Type:  evdev.EvType(event.Type),
			Code:  evdev.EvCode(event.Code),
			Value: event.Value,
		}
		if err := e.dev.WriteOne(&ev); err != nil {
			return err
		}
	}
	return nil
}

func (e *evdevInjector) Close() error {
	if e.dev == nil {
		return nil
	}
	return e.dev.Close()
}

func isDeviceClosedError(err error) bool {
	return errors.Is(err, syscall.EBADF) || errors.Is(err, syscall.ENODEV)
}

func isWouldBlockError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
