package daemon

import (
	"context"
	"log/slog"
	"time"
)

// Syncer reconciles tracked layouts with the live window list.
type Syncer interface {
	SyncAll() error
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically checks for state drift and corrects it. Window
// events request an extra pass through Trigger.
type Reconciler struct {
	interval time.Duration
	syncer   Syncer
	logger   *slog.Logger
	trigger  chan struct{}
	reset    chan time.Duration
}

// NewReconciler creates a new reconciler with the given configuration. An
// interval <= 0 disables polling; passes then run only on Trigger.
func NewReconciler(cfg ReconcilerConfig, syncer Syncer) *Reconciler {
	interval := cfg.Interval
	if interval < 0 {
		interval = 0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		interval: interval,
		syncer:   syncer,
		logger:   logger,
		trigger:  make(chan struct{}, 1),
		reset:    make(chan time.Duration, 1),
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	var ticker *time.Ticker
	var tick <-chan time.Time
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
		}
		tick = nil
	}
	startTicker := func(d time.Duration) {
		stopTicker()
		if d > 0 {
			ticker = time.NewTicker(d)
			tick = ticker.C
		}
	}
	startTicker(r.interval)
	defer stopTicker()

	r.logger.Info("reconciler started", "interval", r.interval, "polling", r.interval > 0)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case d := <-r.reset:
			r.interval = d
			startTicker(d)
			r.logger.Info("reconciler interval changed", "interval", d, "polling", d > 0)
		case <-r.trigger:
			r.reconcile()
		case <-tick:
			r.reconcile()
		}
	}
}

// Trigger asks the running loop for a pass as soon as possible. Requests
// made while one is already pending are coalesced.
func (r *Reconciler) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// SetInterval changes the period of the running loop. A value <= 0 stops
// polling.
func (r *Reconciler) SetInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}
	select {
	case <-r.reset:
	default:
	}
	r.reset <- d
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	if err := r.syncer.SyncAll(); err != nil {
		r.logger.Warn("reconciler: sync failed", "error", err)
	}
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}
