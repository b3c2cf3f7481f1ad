package autoclick

import (
	"strings"
	"unicode"
)

// namedKeys is the canonical vocabulary of non-character key symbols.
// Combo entries longer than one character must appear here.
var namedKeys = map[string]struct{}{
	"shift":       {},
	"ctrl":        {},
	"alt":         {},
	"altgr":       {},
	"cmd":         {},
	"esc":         {},
	"space":       {},
	"enter":       {},
	"tab":         {},
	"backspace":   {},
	"delete":      {},
	"insert":      {},
	"home":        {},
	"end":         {},
	"pageup":      {},
	"pagedown":    {},
	"up":          {},
	"down":        {},
	"left":        {},
	"right":       {},
	"capslock":    {},
	"numlock":     {},
	"scrolllock":  {},
	"pause":       {},
	"printscreen": {},
	"menu":        {},
	"f1":          {},
	"f2":          {},
	"f3":          {},
	"f4":          {},
	"f5":          {},
	"f6":          {},
	"f7":          {},
	"f8":          {},
	"f9":          {},
	"f10":         {},
	"f11":         {},
	"f12":         {},
}

// keyAliases folds platform spellings and sided modifiers into the
// canonical names above.
var keyAliases = map[string]string{
	"shift_l":      "shift",
	"shift_r":      "shift",
	"leftshift":    "shift",
	"rightshift":   "shift",
	"control":      "ctrl",
	"ctrl_l":       "ctrl",
	"ctrl_r":       "ctrl",
	"leftctrl":     "ctrl",
	"rightctrl":    "ctrl",
	"alt_l":        "alt",
	"alt_r":        "alt",
	"leftalt":      "alt",
	"rightalt":     "altgr",
	"alt_gr":       "altgr",
	"cmd_l":        "cmd",
	"cmd_r":        "cmd",
	"super":        "cmd",
	"super_l":      "cmd",
	"super_r":      "cmd",
	"leftmeta":     "cmd",
	"rightmeta":    "cmd",
	"win":          "cmd",
	"meta":         "cmd",
	"escape":       "esc",
	"return":       "enter",
	"page_up":      "pageup",
	"page_down":    "pagedown",
	"caps_lock":    "capslock",
	"num_lock":     "numlock",
	"scroll_lock":  "scrolllock",
	"print_screen": "printscreen",
}

// NormalizeKey reduces a raw key event to its combo symbol. The second
// return is false when the event carries nothing resolvable, such as a
// modifier with no printable character and no known name.
func NormalizeKey(ev KeyEvent) (string, bool) {
	if ev.Rune != 0 {
		r := unicode.ToLower(ev.Rune)
		if unicode.IsGraphic(r) && !unicode.IsSpace(r) {
			return string(r), true
		}
	}

	name := strings.ToLower(strings.TrimSpace(ev.Name))
	if name == "" {
		return "", false
	}
	if alias, ok := keyAliases[name]; ok {
		name = alias
	}
	if _, ok := namedKeys[name]; ok {
		return name, true
	}
	return "", false
}

// IsComboSymbol reports whether value is valid inside a configured combo:
// exactly one lowercase printable character, or a canonical named key.
func IsComboSymbol(value string) bool {
	runes := []rune(value)
	if len(runes) == 1 {
		r := runes[0]
		return unicode.IsGraphic(r) && !unicode.IsSpace(r) && !unicode.IsUpper(r)
	}
	_, ok := namedKeys[value]
	return ok
}
