package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sora7672/snakepit-clicker/internal/config"
	"github.com/sora7672/snakepit-clicker/internal/core/autoclick"
)

func newSlogLogger() *slog.Logger {
	if !debugLogsEnabled() {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func debugLogsEnabled() bool {
	return strings.TrimSpace(os.Getenv("SNAKEPIT_DEBUG")) == "1"
}

func printBanner(cfg config.Config, combos autoclick.Combos) {
	fmt.Println("Starting SnakePit...")
	fmt.Println()
	fmt.Printf("Click interval(ms): %d + 5ms between push+release (%dms)\n", cfg.IntervalClicks, cfg.IntervalClicks+5)
	fmt.Println("Key Bindings:")
	fmt.Printf("Start Auto Clicker [%s]\n", combos.Start)
	fmt.Printf("Stop Auto Clicker [%s]\n", combos.Stop)
	fmt.Printf("Exit SnakePit [%s]\n", combos.Exit)
}

func run(stderr io.Writer) int {
	logger := newSlogLogger()

	cfg, err := config.Load(config.DefaultPath(), logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	combos, err := cfg.Combos()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	source, injector, err := openBackend(combos, logger)
	if err != nil {
		if isPermissionError(err) {
			fmt.Fprintln(stderr, permissionDeniedHint())
			return 1
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer injector.Close()

	worker, err := autoclick.NewWorker(cfg.Interval(), injector, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	listener, err := autoclick.NewListener(combos, worker, source, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	printBanner(cfg, combos)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		listener.Shutdown()
	}()

	if err := listener.Run(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Println("...SnakePit gracefully shut down.")
	return 0
}

func main() {
	os.Exit(run(os.Stderr))
}
