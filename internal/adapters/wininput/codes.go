package wininput

import "github.com/sora7672/snakepit-clicker/internal/core/autoclick"

const (
	vkBACK     uint32 = 0x08
	vkTAB      uint32 = 0x09
	vkRETURN   uint32 = 0x0D
	vkSHIFT    uint32 = 0x10
	vkCONTROL  uint32 = 0x11
	vkMENU     uint32 = 0x12
	vkPAUSE    uint32 = 0x13
	vkCAPITAL  uint32 = 0x14
	vkESCAPE   uint32 = 0x1B
	vkSPACE    uint32 = 0x20
	vkPRIOR    uint32 = 0x21
	vkNEXT     uint32 = 0x22
	vkEND      uint32 = 0x23
	vkHOME     uint32 = 0x24
	vkLEFT     uint32 = 0x25
	vkUP       uint32 = 0x26
	vkRIGHT    uint32 = 0x27
	vkDOWN     uint32 = 0x28
	vkSNAPSHOT uint32 = 0x2C
	vkINSERT   uint32 = 0x2D
	vkDELETE   uint32 = 0x2E

	vk0 uint32 = 0x30
	vk9 uint32 = 0x39
	vkA uint32 = 0x41
	vkZ uint32 = 0x5A

	vkLWIN uint32 = 0x5B
	vkRWIN uint32 = 0x5C
	vkAPPS uint32 = 0x5D

	vkNUMPAD0  uint32 = 0x60
	vkNUMPAD9  uint32 = 0x69
	vkMULTIPLY uint32 = 0x6A
	vkADD      uint32 = 0x6B
	vkSUBTRACT uint32 = 0x6D
	vkDECIMAL  uint32 = 0x6E
	vkDIVIDE   uint32 = 0x6F

	vkF1  uint32 = 0x70
	vkF12 uint32 = 0x7B

	vkNUMLOCK  uint32 = 0x90
	vkSCROLL   uint32 = 0x91
	vkLSHIFT   uint32 = 0xA0
	vkRSHIFT   uint32 = 0xA1
	vkLCONTROL uint32 = 0xA2
	vkRCONTROL uint32 = 0xA3
	vkLMENU    uint32 = 0xA4
	vkRMENU    uint32 = 0xA5

	vkOEM1      uint32 = 0xBA
	vkOEMPLUS   uint32 = 0xBB
	vkOEMCOMMA  uint32 = 0xBC
	vkOEMMINUS  uint32 = 0xBD
	vkOEMPERIOD uint32 = 0xBE
	vkOEM2      uint32 = 0xBF
	vkOEM3      uint32 = 0xC0
	vkOEM4      uint32 = 0xDB
	vkOEM5      uint32 = 0xDC
	vkOEM6      uint32 = 0xDD
	vkOEM7      uint32 = 0xDE
)

var namedVKEvents = map[uint32]string{
	vkBACK:     "backspace",
	vkTAB:      "tab",
	vkRETURN:   "enter",
	vkSHIFT:    "shift",
	vkCONTROL:  "ctrl",
	vkMENU:     "alt",
	vkPAUSE:    "pause",
	vkCAPITAL:  "capslock",
	vkESCAPE:   "esc",
	vkPRIOR:    "pageup",
	vkNEXT:     "pagedown",
	vkEND:      "end",
	vkHOME:     "home",
	vkLEFT:     "left",
	vkUP:       "up",
	vkRIGHT:    "right",
	vkDOWN:     "down",
	vkSNAPSHOT: "printscreen",
	vkINSERT:   "insert",
	vkDELETE:   "delete",
	vkLWIN:     "cmd",
	vkRWIN:     "cmd",
	vkAPPS:     "menu",
	vkNUMLOCK:  "numlock",
	vkSCROLL:   "scrolllock",
	vkLSHIFT:   "shift",
	vkRSHIFT:   "shift",
	vkLCONTROL: "ctrl",
	vkRCONTROL: "ctrl",
	vkLMENU:    "alt",
	vkRMENU:    "altgr",
}

// US layout values for the OEM punctuation keys.
var oemVKRunes = map[uint32]rune{
	vkOEM1:      ';',
	vkOEMPLUS:   '=',
	vkOEMCOMMA:  ',',
	vkOEMMINUS:  '-',
	vkOEMPERIOD: '.',
	vkOEM2:      '/',
	vkOEM3:      '`',
	vkOEM4:      '[',
	vkOEM5:      '\\',
	vkOEM6:      ']',
	vkOEM7:      '\'',
	vkMULTIPLY:  '*',
	vkADD:       '+',
	vkSUBTRACT:  '-',
	vkDECIMAL:   '.',
	vkDIVIDE:    '/',
}

// KeyEventFromVK maps a Windows virtual-key code from the low-level
// keyboard hook to a key event. Mouse buttons and keys with no mapping
// are rejected.
func KeyEventFromVK(vk uint32) (autoclick.KeyEvent, bool) {
	switch {
	case vk >= vkA && vk <= vkZ:
		return autoclick.KeyEvent{Rune: rune('a' + (vk - vkA))}, true
	case vk >= vk0 && vk <= vk9:
		return autoclick.KeyEvent{Rune: rune('0' + (vk - vk0))}, true
	case vk >= vkNUMPAD0 && vk <= vkNUMPAD9:
		return autoclick.KeyEvent{Rune: rune('0' + (vk - vkNUMPAD0))}, true
	case vk >= vkF1 && vk <= vkF12:
		return autoclick.KeyEvent{Name: fKeyNames[vk-vkF1]}, true
	case vk == vkSPACE:
		return autoclick.KeyEvent{Name: "space"}, true
	}

	if name, ok := namedVKEvents[vk]; ok {
		return autoclick.KeyEvent{Name: name}, true
	}
	if r, ok := oemVKRunes[vk]; ok {
		return autoclick.KeyEvent{Rune: r}, true
	}
	return autoclick.KeyEvent{}, false
}

var fKeyNames = [12]string{
	"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12",
}
