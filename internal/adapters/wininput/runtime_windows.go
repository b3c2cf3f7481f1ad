//go:build windows

package wininput

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/sora7672/snakepit-clicker/internal/core/autoclick"
)

const (
	whKeyboardLL = 13

	wmQuit       = 0x0012
	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105

	llkhfInjected        = 0x00000010
	llkhfLowerILInjected = 0x00000002

	inputMouse          = 0
	mouseeventfLeftDown = 0x0002
	mouseeventfLeftUp   = 0x0004
)

var (
	user32 = syscall.NewLazyDLL("user32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procSendInput           = user32.NewProc("SendInput")

	kernel32 = syscall.NewLazyDLL("kernel32.dll")

	procGetCurrentThreadID = kernel32.NewProc("GetCurrentThreadId")

	keyboardHookCallback = syscall.NewCallback(keyboardLLCallback)

	activeRuntime atomic.Pointer[Runtime]
)

type point struct {
	X int32
	Y int32
}

type keyboardLLHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type message struct {
	Hwnd     uintptr
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       point
	LPrivate uint32
}

type mouseInput struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type input struct {
	Type uint32
	Mi   mouseInput
}

// Runtime delivers global keyboard events through a WH_KEYBOARD_LL hook.
// The hook requires a message pump on the installing thread, so Start
// spawns a locked OS thread running one until Stop posts WM_QUIT.
type Runtime struct {
	logger autoclick.Logger

	press   func(autoclick.KeyEvent)
	release func(autoclick.KeyEvent)

	stopOnce sync.Once
	stopCh   chan struct{}

	threadID atomic.Uint32
	loopDone chan struct{}
}

func NewRuntime(logger autoclick.Logger) (*Runtime, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	return &Runtime{
		logger:   logger,
		stopCh:   make(chan struct{}),
		loopDone: make(chan struct{}),
	}, nil
}

func (r *Runtime) Start(press, release func(autoclick.KeyEvent)) error {
	if press == nil || release == nil {
		return fmt.Errorf("press/release callbacks are nil")
	}
	r.press = press
	r.release = release

	if !activeRuntime.CompareAndSwap(nil, r) {
		return fmt.Errorf("windows runtime is already active")
	}

	ready := make(chan error, 1)
	go r.hookLoop(ready)

	if err := <-ready; err != nil {
		activeRuntime.CompareAndSwap(r, nil)
		return err
	}
	return nil
}

func (r *Runtime) Stop() error {
	r.stopOnce.Do(func() {
		close(r.stopCh)
		threadID := r.threadID.Load()
		if threadID != 0 {
			_, _, _ = procPostThreadMessageW.Call(uintptr(threadID), uintptr(wmQuit), 0, 0)
			<-r.loopDone
		}
		activeRuntime.CompareAndSwap(r, nil)
	})
	return nil
}

func (r *Runtime) hookLoop(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(r.loopDone)
	defer activeRuntime.CompareAndSwap(r, nil)

	threadID, _, _ := procGetCurrentThreadID.Call()
	r.threadID.Store(uint32(threadID))

	keyboardHook, _, keyboardErr := procSetWindowsHookExW.Call(uintptr(whKeyboardLL), keyboardHookCallback, 0, 0)
	if keyboardHook == 0 {
		ready <- fmt.Errorf("failed to install keyboard hook: %w", keyboardErr)
		return
	}
	defer func() {
		_, _, _ = procUnhookWindowsHookEx.Call(keyboardHook)
	}()

	ready <- nil
	r.logger.Info("Listening on global keyboard hook")

	var msg message
	for {
		ret, _, callErr := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			r.logger.Warn("Windows message loop failed", "err", callErr)
			return
		case 0:
			return
		default:
			_, _, _ = procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
			_, _, _ = procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))
		}
	}
}

func keyboardLLCallback(code int, wParam uintptr, lParam uintptr) uintptr {
	if code >= 0 {
		if r := activeRuntime.Load(); r != nil {
			r.handleKeyboardHook(wParam, lParam)
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(code), wParam, lParam)
	return ret
}

func (r *Runtime) handleKeyboardHook(wParam uintptr, lParam uintptr) {
	if lParam == 0 {
		return
	}

	event := (*keyboardLLHookStruct)(unsafe.Pointer(lParam))
	if event.Flags&llkhfInjected != 0 || event.Flags&llkhfLowerILInjected != 0 {
		return
	}

	keyEvent, ok := KeyEventFromVK(event.VkCode)
	if !ok {
		return
	}

	switch uint32(wParam) {
	case wmKeyDown, wmSysKeyDown:
		r.press(keyEvent)
	case wmKeyUp, wmSysKeyUp:
		r.release(keyEvent)
	}
}

type windowsInjector struct{}

// NewInjector returns a click injector backed by SendInput.
func NewInjector() (autoclick.Injector, error) {
	return &windowsInjector{}, nil
}

func (i *windowsInjector) WriteEvents(events ...autoclick.Event) error {
	inputs := make([]input, 0, len(events))
	for _, event := range events {
		if event.Type != autoclick.EventTypeKey || event.Code != autoclick.LeftButtonCode {
			continue
		}

		var flags uint32
		switch event.Value {
		case 1:
			flags = mouseeventfLeftDown
		case 0:
			flags = mouseeventfLeftUp
		default:
			continue
		}

		inputs = append(inputs, input{
			Type: inputMouse,
			Mi:   mouseInput{DwFlags: flags},
		})
	}

	if len(inputs) == 0 {
		return nil
	}

	sent, _, callErr := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if sent != uintptr(len(inputs)) {
		if callErr != nil && callErr != syscall.Errno(0) {
			return callErr
		}
		return fmt.Errorf("SendInput sent %d of %d inputs", sent, len(inputs))
	}
	return nil
}

func (i *windowsInjector) Close() error {
	return nil
}
