package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/1broseidon/flextile/internal/config"
	"github.com/1broseidon/flextile/internal/daemon"
	"github.com/1broseidon/flextile/internal/hotkeys"
	"github.com/1broseidon/flextile/internal/ipc"
	"github.com/1broseidon/flextile/internal/movemode"
	"github.com/1broseidon/flextile/internal/platform"
	"github.com/1broseidon/flextile/internal/wm"
)

// newDaemonLogger builds the daemon's structured logger on a charm handler.
func newDaemonLogger(w io.Writer, level string) *slog.Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           charmLevel(level),
		Prefix:          "flextile",
	})
	return slog.New(handler)
}

func charmLevel(level string) charmlog.Level {
	switch level {
	case "debug":
		return charmlog.DebugLevel
	case "warning":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

func reconcileInterval(cfg *config.Config) time.Duration {
	return time.Duration(cfg.ReconcileInterval) * time.Second
}

func moveModeTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.MoveModeTimeout) * time.Second
}

func runDaemon() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := newDaemonLogger(os.Stderr, cfg.LogLevel)
	logger.Info("configuration loaded", "border_width", cfg.BorderWidth, "margin", cfg.Margin, "keybindings", len(cfg.Keybindings))

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer backend.Disconnect()

	manager, err := wm.NewManager(backend, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create window manager: %v", err)
	}

	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: reconcileInterval(cfg),
		Logger:   logger,
	}, manager)

	// Tile whatever is already open before taking events.
	reconciler.ReconcileNow()

	moveMode := movemode.NewMode(backend, manager, manager, moveModeTimeout(cfg), logger)
	enterMoveMode := func() {
		if err := moveMode.Enter(); err != nil {
			logger.Warn("move mode unavailable", "error", err)
		}
	}

	hotkeyHandler := hotkeys.NewHandler(backend, manager, logger)
	hotkeyHandler.SetModeKey(cfg.MoveModeKey, enterMoveMode)
	if err := hotkeyHandler.Bind(cfg.Keybindings); err != nil {
		logger.Warn("some keybindings were skipped", "error", err)
	}

	reloadChan := make(chan struct{}, 1)

	ipcServer, err := ipc.NewServer(manager, backend, reloadChan, logger)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	synchronizer := daemon.NewStateSynchronizer(manager, backend, reconciler, logger)
	if err := backend.WatchWindows(synchronizer.HandlePropertyChange); err != nil {
		log.Fatalf("Failed to watch windows: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reconciler.Run(ctx)

	// Keybindings and the reconcile period follow the manager's config.
	applyReloaded := func() {
		newCfg := manager.Config()
		moveMode.SetTimeout(moveModeTimeout(newCfg))
		hotkeyHandler.SetModeKey(newCfg.MoveModeKey, enterMoveMode)
		if err := hotkeyHandler.Bind(newCfg.Keybindings); err != nil {
			logger.Warn("some keybindings were skipped", "error", err)
		}
		reconciler.SetInterval(reconcileInterval(newCfg))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					logger.Info("received SIGHUP, reloading config")
					newCfg, err := config.Load()
					if err != nil {
						logger.Error("config reload failed", "error", err)
						continue
					}
					if err := manager.UpdateConfig(newCfg); err != nil {
						logger.Error("config reload failed", "error", err)
						continue
					}
					applyReloaded()
					logger.Info("config reloaded")

				case os.Interrupt, syscall.SIGTERM:
					logger.Info("shutting down flextile daemon")
					cancel()
					ipcServer.Stop()
					os.Exit(0)
				}

			case <-reloadChan:
				// Config was reloaded via IPC; the manager already has it.
				applyReloaded()
			}
		}
	}()

	logger.Info("entering event loop")
	backend.EventLoop()
}
