package autoclick

import (
	"fmt"
	"sort"
	"strings"
)

// Combo is a validated set of key symbols that must all be held at once to
// trigger an action. Immutable after ParseCombo.
type Combo struct {
	symbols map[string]struct{}
}

func ParseCombo(symbols []string) (Combo, error) {
	if len(symbols) == 0 {
		return Combo{}, fmt.Errorf("key combo is empty")
	}

	set := make(map[string]struct{}, len(symbols))
	for _, symbol := range symbols {
		if !IsComboSymbol(symbol) {
			return Combo{}, fmt.Errorf("invalid combo key %q: want one lowercase character or a named key", symbol)
		}
		set[symbol] = struct{}{}
	}
	return Combo{symbols: set}, nil
}

// MatchedBy reports whether every combo symbol is present in held. Held
// keys outside the combo do not prevent a match. An empty combo never
// matches.
func (c Combo) MatchedBy(held map[string]struct{}) bool {
	if len(c.symbols) == 0 {
		return false
	}
	for symbol := range c.symbols {
		if _, ok := held[symbol]; !ok {
			return false
		}
	}
	return true
}

func (c Combo) Empty() bool {
	return len(c.symbols) == 0
}

// Symbols returns the combo's symbols in sorted order.
func (c Combo) Symbols() []string {
	symbols := make([]string, 0, len(c.symbols))
	for symbol := range c.symbols {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// String renders the combo the way the startup banner shows it, upper-cased
// and joined with " + ".
func (c Combo) String() string {
	symbols := c.Symbols()
	for i, symbol := range symbols {
		symbols[i] = strings.ToUpper(symbol)
	}
	return strings.Join(symbols, " + ")
}

// Combos carries the three validated hotkey combinations the listener
// reacts to.
type Combos struct {
	Start Combo
	Stop  Combo
	Exit  Combo
}
