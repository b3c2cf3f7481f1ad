//go:build linux

package x11input

import "testing"

func TestSymbolToXKeyStrings(t *testing.T) {
	cases := []struct {
		symbol string
		want   []string
	}{
		{"s", []string{"s"}},
		{"7", []string{"7"}},
		{"-", []string{"minus"}},
		{".", []string{"period"}},
		{"shift", []string{"Shift_L", "Shift_R"}},
		{"altgr", []string{"Alt_R", "ISO_Level3_Shift"}},
		{"esc", []string{"Escape"}},
		{"pageup", []string{"Page_Up"}},
		{"f8", []string{"F8"}},
		{"f12", []string{"F12"}},
	}

	for _, tc := range cases {
		got, ok := symbolToXKeyStrings(tc.symbol)
		if !ok {
			t.Fatalf("symbolToXKeyStrings(%q) not resolved", tc.symbol)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("symbolToXKeyStrings(%q) = %v, want %v", tc.symbol, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("symbolToXKeyStrings(%q) = %v, want %v", tc.symbol, got, tc.want)
			}
		}
	}
}

func TestSymbolToXKeyStringsUnknown(t *testing.T) {
	for _, symbol := range []string{"", "fn", "f", "f0x", "hyper", " "} {
		if _, ok := symbolToXKeyStrings(symbol); ok {
			t.Fatalf("symbolToXKeyStrings(%q) resolved unexpectedly", symbol)
		}
	}
}
