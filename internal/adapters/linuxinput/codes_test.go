package linuxinput

import (
	"testing"

	evdev "github.com/holoplot/go-evdev"

	"github.com/sora7672/snakepit-clicker/internal/core/autoclick"
)

func TestKeyEventFromCode(t *testing.T) {
	tests := []struct {
		code evdev.EvCode
		want autoclick.KeyEvent
	}{
		{code: evdev.KEY_A, want: autoclick.KeyEvent{Rune: 'a'}},
		{code: evdev.KEY_9, want: autoclick.KeyEvent{Rune: '9'}},
		{code: evdev.KEY_DOT, want: autoclick.KeyEvent{Rune: '.'}},
		{code: evdev.KEY_KP5, want: autoclick.KeyEvent{Rune: '5'}},
		{code: evdev.KEY_LEFTSHIFT, want: autoclick.KeyEvent{Name: "leftshift"}},
		{code: evdev.KEY_ESC, want: autoclick.KeyEvent{Name: "esc"}},
		{code: evdev.KEY_F8, want: autoclick.KeyEvent{Name: "f8"}},
		{code: evdev.KEY_SYSRQ, want: autoclick.KeyEvent{Name: "printscreen"}},
		{code: evdev.KEY_KPENTER, want: autoclick.KeyEvent{Name: "enter"}},
	}

	for _, tc := range tests {
		got, ok := KeyEventFromCode(tc.code)
		if !ok || got != tc.want {
			t.Fatalf("KeyEventFromCode(%s) = %#v, %v, want %#v, true", FormatCodeName(tc.code), got, ok, tc.want)
		}
	}
}

func TestKeyEventFromCodeRejectsButtons(t *testing.T) {
	if ev, ok := KeyEventFromCode(evdev.BTN_LEFT); ok {
		t.Fatalf("KeyEventFromCode(BTN_LEFT) = %#v, true, want rejected", ev)
	}
}

func TestNormalizedMappingsResolveInCore(t *testing.T) {
	// Every named mapping the adapter emits must survive core
	// normalization, otherwise the key silently disappears.
	codes := []evdev.EvCode{
		evdev.KEY_LEFTSHIFT, evdev.KEY_RIGHTSHIFT,
		evdev.KEY_LEFTCTRL, evdev.KEY_RIGHTCTRL,
		evdev.KEY_LEFTALT, evdev.KEY_RIGHTALT,
		evdev.KEY_LEFTMETA, evdev.KEY_RIGHTMETA,
		evdev.KEY_ESC, evdev.KEY_SPACE, evdev.KEY_ENTER, evdev.KEY_TAB,
		evdev.KEY_BACKSPACE, evdev.KEY_DELETE, evdev.KEY_INSERT,
		evdev.KEY_HOME, evdev.KEY_END, evdev.KEY_PAGEUP, evdev.KEY_PAGEDOWN,
		evdev.KEY_UP, evdev.KEY_DOWN, evdev.KEY_LEFT, evdev.KEY_RIGHT,
		evdev.KEY_CAPSLOCK, evdev.KEY_NUMLOCK, evdev.KEY_SCROLLLOCK,
		evdev.KEY_PAUSE, evdev.KEY_SYSRQ, evdev.KEY_COMPOSE,
		evdev.KEY_F1, evdev.KEY_F12,
	}

	for _, code := range codes {
		ev, ok := KeyEventFromCode(code)
		if !ok {
			t.Fatalf("KeyEventFromCode(%s) rejected", FormatCodeName(code))
		}
		if _, ok := autoclick.NormalizeKey(ev); !ok {
			t.Fatalf("core cannot normalize %s mapping %#v", FormatCodeName(code), ev)
		}
	}
}
