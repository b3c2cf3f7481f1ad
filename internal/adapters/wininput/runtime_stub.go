//go:build !windows

package wininput

import (
	"fmt"

	"github.com/sora7672/snakepit-clicker/internal/core/autoclick"
)

type Runtime struct{}

func NewRuntime(logger autoclick.Logger) (*Runtime, error) {
	return nil, fmt.Errorf("windows input runtime is only available on Windows")
}

func (r *Runtime) Start(press, release func(autoclick.KeyEvent)) error {
	return fmt.Errorf("windows input runtime is only available on Windows")
}

func (r *Runtime) Stop() error {
	return nil
}

func NewInjector() (autoclick.Injector, error) {
	return nil, fmt.Errorf("windows input runtime is only available on Windows")
}
