package linuxinput

import (
	"strings"
	"unicode"

	evdev "github.com/holoplot/go-evdev"

	"github.com/sora7672/snakepit-clicker/internal/core/autoclick"
)

// punctuationRunes maps evdev key name tokens (after the KEY_ prefix) that
// stand for printable punctuation onto their characters.
var punctuationRunes = map[string]rune{
	"MINUS":      '-',
	"EQUAL":      '=',
	"LEFTBRACE":  '[',
	"RIGHTBRACE": ']',
	"SEMICOLON":  ';',
	"APOSTROPHE": '\'',
	"GRAVE":      '`',
	"BACKSLASH":  '\\',
	"COMMA":      ',',
	"DOT":        '.',
	"SLASH":      '/',
	"KPPLUS":     '+',
	"KPMINUS":    '-',
	"KPASTERISK": '*',
	"KPSLASH":    '/',
	"KPDOT":      '.',
}

// KeyEventFromCode translates an evdev key code into the raw key identity
// the core normalizes. Codes without a printable character or a named-key
// mapping report false and are skipped by the read loop.
func KeyEventFromCode(code evdev.EvCode) (autoclick.KeyEvent, bool) {
	name := evdev.CodeName(evdev.EV_KEY, code)
	if !strings.HasPrefix(name, "KEY_") {
		return autoclick.KeyEvent{}, false
	}
	token := strings.TrimPrefix(name, "KEY_")

	if r, ok := punctuationRunes[token]; ok {
		return autoclick.KeyEvent{Rune: r}, true
	}
	if len(token) == 1 {
		return autoclick.KeyEvent{Rune: unicode.ToLower(rune(token[0]))}, true
	}
	if strings.HasPrefix(token, "KP") && len(token) == 3 && token[2] >= '0' && token[2] <= '9' {
		return autoclick.KeyEvent{Rune: rune(token[2])}, true
	}

	switch token {
	case "SYSRQ":
		return autoclick.KeyEvent{Name: "printscreen"}, true
	case "COMPOSE":
		return autoclick.KeyEvent{Name: "menu"}, true
	case "KPENTER":
		return autoclick.KeyEvent{Name: "enter"}, true
	}

	// Tokens like LEFTSHIFT, ESC or F8: the core's alias table folds them
	// into canonical symbols and drops anything it does not know.
	return autoclick.KeyEvent{Name: strings.ToLower(token)}, true
}

// FormatCodeName names a key code for log output.
func FormatCodeName(code evdev.EvCode) string {
	name := evdev.CodeName(evdev.EV_KEY, code)
	if name != "" {
		return name
	}
	return "unknown"
}
