//go:build linux

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/sora7672/snakepit-clicker/internal/adapters/linuxinput"
	"github.com/sora7672/snakepit-clicker/internal/adapters/x11input"
	"github.com/sora7672/snakepit-clicker/internal/core/autoclick"
)

func openBackend(combos autoclick.Combos, logger *slog.Logger) (autoclick.Source, autoclick.Injector, error) {
	switch backend := resolveLinuxBackend(); backend {
	case "x11":
		runtime, err := x11input.NewRuntime(combos, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Backend", "name", "x11")
		return runtime, runtime.Injector(), nil
	case "wayland":
		runtime, err := linuxinput.NewRuntime(os.Getenv("SNAKEPIT_DEVICE"), logger)
		if err != nil {
			return nil, nil, err
		}
		injector, err := linuxinput.NewInjector()
		if err != nil {
			_ = runtime.Stop()
			return nil, nil, err
		}
		logger.Info("Backend", "name", "wayland")
		return runtime, injector, nil
	default:
		return nil, nil, fmt.Errorf("invalid SNAKEPIT_BACKEND %q (linux supports auto|wayland|x11)", backend)
	}
}

func resolveLinuxBackend() string {
	choice := strings.ToLower(strings.TrimSpace(os.Getenv("SNAKEPIT_BACKEND")))
	if choice == "" {
		choice = "auto"
	}
	if choice == "evdev" {
		choice = "wayland"
	}
	if choice != "auto" {
		return choice
	}

	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	switch sessionType {
	case "wayland":
		return "wayland"
	case "x11":
		return "x11"
	}

	if strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) != "" {
		return "wayland"
	}
	if strings.TrimSpace(os.Getenv("DISPLAY")) != "" {
		return "x11"
	}
	return "wayland"
}

func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES)
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend. On Wayland use root/udev for /dev/input + /dev/uinput. On X11 ensure an active X11 session and DISPLAY is set."
}
