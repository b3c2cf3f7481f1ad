//go:build linux

package linuxinput

import (
	"fmt"
	"os"
	"sort"
	"strings"

	evdev "github.com/holoplot/go-evdev"
)

// openKeyboardDevices opens the devices the key listener reads from. With
// an explicit path only that device is used; otherwise every non-virtual
// device with keyboard keys is opened, so chords split across multiple
// keyboards still register.
func openKeyboardDevices(devicePath string) ([]*evdev.InputDevice, error) {
	if devicePath != "" {
		dev, err := openInputDevice(devicePath)
		if err != nil {
			return nil, err
		}
		if !deviceIsKeyboard(dev) {
			_ = dev.Close()
			return nil, fmt.Errorf("%s does not expose keyboard keys", devicePath)
		}
		return []*evdev.InputDevice{dev}, nil
	}

	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	devices := make([]*evdev.InputDevice, 0, len(paths))
	for _, path := range paths {
		dev, err := openInputDevice(path.Path)
		if err != nil {
			continue
		}

		name := path.Name
		if actualName, nameErr := dev.Name(); nameErr == nil && actualName != "" {
			name = actualName
		}
		if deviceIsVirtual(dev, name) || !deviceIsKeyboard(dev) {
			_ = dev.Close()
			continue
		}
		devices = append(devices, dev)
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no readable keyboard input devices found")
	}
	return devices, nil
}

func openInputDevice(path string) (*evdev.InputDevice, error) {
	return evdev.OpenWithFlags(path, os.O_RDONLY)
}

func deviceIsKeyboard(device *evdev.InputDevice) bool {
	var hasLetters, hasModifier bool
	for _, code := range device.CapableEvents(evdev.EV_KEY) {
		switch code {
		case evdev.KEY_A:
			hasLetters = true
		case evdev.KEY_LEFTSHIFT:
			hasModifier = true
		}
	}
	return hasLetters && hasModifier
}

func deviceIsVirtual(device *evdev.InputDevice, name string) bool {
	id, err := device.InputID()
	if err == nil && id.BusType == uint16(evdev.BUS_VIRTUAL) {
		return true
	}
	lower := strings.ToLower(name)
	for _, token := range []string{"virtual", "uinput", "ydotool", "snakepit"} {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
