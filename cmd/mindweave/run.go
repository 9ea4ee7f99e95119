package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	log "charm.land/log/v2"
	"github.com/adrg/xdg"

	"github.com/mindweave/mindweave/internal/config"
	"github.com/mindweave/mindweave/pkg/mindweave"
)

// newLogger builds the application logger. The TUI owns the terminal, so
// debug output goes to a file; without --debug everything is discarded.
func newLogger() (*log.Logger, func(), error) {
	if !debugMode {
		return log.New(io.Discard), func() {}, nil
	}

	path := debugLogPath
	if path == "" {
		var err error
		path, err = xdg.StateFile("mindweave/debug.log")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve debug log path: %w", err)
		}
	} else if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create debug log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}

	logger := log.New(f)
	logger.SetLevel(log.DebugLevel)
	return logger, func() { _ = f.Close() }, nil
}

func runLocal() error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	userConfig, err := config.LoadUserConfig()
	if err != nil {
		logger.Error("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	animations := config.AnimationsEnabled
	if noAnimations {
		animations = false
	}

	if debugMode {
		configPath, _ := config.GetConfigPath()
		logger.Debug("starting mindweave", "version", version, "config", configPath)
	}

	model := mindweave.New(
		mindweave.WithUserConfig(userConfig),
		mindweave.WithLogger(logger),
		mindweave.WithAnimations(animations),
	)

	p := tea.NewProgram(
		model,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
