//go:build windows

package main

import (
	"errors"
	"log/slog"
	"os"
	"syscall"

	"github.com/sora7672/snakepit-clicker/internal/adapters/wininput"
	"github.com/sora7672/snakepit-clicker/internal/core/autoclick"
)

func openBackend(_ autoclick.Combos, logger *slog.Logger) (autoclick.Source, autoclick.Injector, error) {
	runtime, err := wininput.NewRuntime(logger)
	if err != nil {
		return nil, nil, err
	}
	injector, err := wininput.NewInjector()
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Backend", "name", "windows")
	return runtime, injector, nil
}

func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM)
}

func permissionDeniedHint() string {
	return "Permission denied registering global input hooks. Run as Administrator and ensure input-hooking is allowed."
}
