//go:build !linux && !windows

package main

import (
	"fmt"
	"log/slog"

	"github.com/sora7672/snakepit-clicker/internal/core/autoclick"
)

func openBackend(_ autoclick.Combos, _ *slog.Logger) (autoclick.Source, autoclick.Injector, error) {
	return nil, nil, fmt.Errorf("input backend is not supported on this platform")
}

func isPermissionError(_ error) bool {
	return false
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend."
}
