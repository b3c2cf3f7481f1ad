//go:build linux

package x11input

import (
	"fmt"
	"sort"
	"sync"
	"unicode"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/sora7672/snakepit-clicker/internal/core/autoclick"
)

// Runtime watches exactly the keys the configured combos mention by
// grabbing them on the root window. Keys outside the combos are never
// delivered, which the subset match tolerates: the held-key set only
// needs the combo-relevant keys.
type Runtime struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	rootWin xproto.Window
	logger  autoclick.Logger

	keyToEvent  map[xproto.Keycode]autoclick.KeyEvent
	grabbedKeys []xproto.Keycode

	injectMu sync.Mutex

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewRuntime(combos autoclick.Combos, logger autoclick.Logger) (*Runtime, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	conn := xu.Conn()
	if conn == nil {
		return nil, fmt.Errorf("failed to open X11 connection")
	}

	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, err
	}
	keybind.Initialize(xu)

	r := &Runtime{
		xu:      xu,
		conn:    conn,
		rootWin: xu.RootWin(),
		logger:  logger,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}

	if err := r.resolveComboKeys(combos); err != nil {
		conn.Close()
		return nil, err
	}
	return r, nil
}

// Injector returns the click injector sharing this runtime's connection.
func (r *Runtime) Injector() autoclick.Injector {
	return &x11Injector{r: r}
}

func (r *Runtime) Start(press, release func(autoclick.KeyEvent)) error {
	if err := r.grabAll(); err != nil {
		r.ungrabAll()
		return err
	}
	go r.eventLoop(press, release)
	return nil
}

func (r *Runtime) Stop() error {
	r.stopOnce.Do(func() {
		close(r.stopCh)
		r.ungrabAll()
		r.conn.Close()
		<-r.doneCh
	})
	return nil
}

func (r *Runtime) eventLoop(press, release func(autoclick.KeyEvent)) {
	defer close(r.doneCh)

	for {
		event, xerr := r.conn.WaitForEvent()
		if xerr != nil {
			select {
			case <-r.stopCh:
				return
			default:
			}
			r.logger.Warn("X11 event error", "err", xerr)
			continue
		}
		if event == nil {
			return
		}

		switch ev := event.(type) {
		case xproto.KeyPressEvent:
			if keyEvent, ok := r.keyToEvent[ev.Detail]; ok {
				press(keyEvent)
			}
			_ = xproto.AllowEventsChecked(r.conn, xproto.AllowReplayKeyboard, xproto.TimeCurrentTime).Check()
		case xproto.KeyReleaseEvent:
			if keyEvent, ok := r.keyToEvent[ev.Detail]; ok {
				release(keyEvent)
			}
			_ = xproto.AllowEventsChecked(r.conn, xproto.AllowReplayKeyboard, xproto.TimeCurrentTime).Check()
		}
	}
}

func (r *Runtime) resolveComboKeys(combos autoclick.Combos) error {
	symbols := make(map[string]struct{})
	for _, combo := range []autoclick.Combo{combos.Start, combos.Stop, combos.Exit} {
		for _, symbol := range combo.Symbols() {
			symbols[symbol] = struct{}{}
		}
	}

	keyToEvent := make(map[xproto.Keycode]autoclick.KeyEvent)
	for symbol := range symbols {
		keyNames, ok := symbolToXKeyStrings(symbol)
		if !ok {
			return fmt.Errorf("combo key %q has no X11 mapping", symbol)
		}

		keyEvent := autoclick.KeyEvent{Name: symbol}
		if runes := []rune(symbol); len(runes) == 1 {
			keyEvent = autoclick.KeyEvent{Rune: runes[0]}
		}

		resolved := 0
		for _, keyName := range keyNames {
			for _, keycode := range keybind.StrToKeycodes(r.xu, keyName) {
				keyToEvent[keycode] = keyEvent
				resolved++
			}
		}
		if resolved == 0 {
			return fmt.Errorf("failed to resolve X11 key for combo key %q", symbol)
		}
	}

	r.keyToEvent = keyToEvent
	return nil
}

func (r *Runtime) grabAll() error {
	keys := make([]xproto.Keycode, 0, len(r.keyToEvent))
	for keycode := range r.keyToEvent {
		keys = append(keys, keycode)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, keycode := range keys {
		if err := xproto.GrabKeyChecked(
			r.conn,
			false,
			r.rootWin,
			xproto.ModMaskAny,
			keycode,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
		).Check(); err != nil {
			return err
		}
		r.grabbedKeys = append(r.grabbedKeys, keycode)
	}
	return nil
}

func (r *Runtime) ungrabAll() {
	for _, keycode := range r.grabbedKeys {
		xproto.UngrabKey(r.conn, keycode, r.rootWin, xproto.ModMaskAny)
	}
	r.grabbedKeys = nil
}

type x11Injector struct {
	r *Runtime
}

func (i *x11Injector) WriteEvents(events ...autoclick.Event) error {
	i.r.injectMu.Lock()
	defer i.r.injectMu.Unlock()

	dirty := false
	for _, event := range events {
		if event.Type != autoclick.EventTypeKey || event.Code != autoclick.LeftButtonCode {
			continue
		}

		var eventType byte
		switch event.Value {
		case 1:
			eventType = xproto.ButtonPress
		case 0:
			eventType = xproto.ButtonRelease
		default:
			continue
		}

		if err := xtest.FakeInputChecked(
			i.r.conn,
			eventType,
			byte(xproto.ButtonIndex1),
			xproto.TimeCurrentTime,
			i.r.rootWin,
			0,
			0,
			0,
		).Check(); err != nil {
			return err
		}
		dirty = true
	}

	if dirty {
		i.r.conn.Sync()
	}
	return nil
}

func (i *x11Injector) Close() error {
	return nil
}

var punctuationKeyNames = map[rune]string{
	'-':  "minus",
	'=':  "equal",
	'[':  "bracketleft",
	']':  "bracketright",
	';':  "semicolon",
	'\'': "apostrophe",
	'`':  "grave",
	'\\': "backslash",
	',':  "comma",
	'.':  "period",
	'/':  "slash",
	'+':  "plus",
	'*':  "asterisk",
}

var namedXKeyStrings = map[string][]string{
	"shift":       {"Shift_L", "Shift_R"},
	"ctrl":        {"Control_L", "Control_R"},
	"alt":         {"Alt_L"},
	"altgr":       {"Alt_R", "ISO_Level3_Shift"},
	"cmd":         {"Super_L", "Super_R"},
	"esc":         {"Escape"},
	"enter":       {"Return"},
	"tab":         {"Tab"},
	"space":       {"space"},
	"backspace":   {"BackSpace"},
	"delete":      {"Delete"},
	"insert":      {"Insert"},
	"home":        {"Home"},
	"end":         {"End"},
	"pageup":      {"Page_Up"},
	"pagedown":    {"Page_Down"},
	"up":          {"Up"},
	"down":        {"Down"},
	"left":        {"Left"},
	"right":       {"Right"},
	"capslock":    {"Caps_Lock"},
	"numlock":     {"Num_Lock"},
	"scrolllock":  {"Scroll_Lock"},
	"pause":       {"Pause"},
	"printscreen": {"Print"},
	"menu":        {"Menu"},
}

func symbolToXKeyStrings(symbol string) ([]string, bool) {
	runes := []rune(symbol)
	if len(runes) == 1 {
		r := runes[0]
		if name, ok := punctuationKeyNames[r]; ok {
			return []string{name}, true
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return []string{string(r)}, true
		}
		return nil, false
	}

	if names, ok := namedXKeyStrings[symbol]; ok {
		return names, true
	}
	if len(symbol) > 1 && symbol[0] == 'f' && isDigits(symbol[1:]) {
		return []string{"F" + symbol[1:]}, true
	}
	return nil, false
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
