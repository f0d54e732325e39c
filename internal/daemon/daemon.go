package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/notishift/notishift/internal/config"
	"github.com/notishift/notishift/internal/control"
	"github.com/notishift/notishift/internal/element"
	"github.com/notishift/notishift/internal/engine"
	"github.com/notishift/notishift/internal/geometry"
	"github.com/notishift/notishift/internal/store"
)

// Daemon wires the engine to its event sources. The engine holds no locks,
// so every mutation is funneled through Run's single loop: window-creation
// events, poll ticks, control requests, and config reloads never execute
// concurrently.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	engine    *engine.Engine
	statePath string

	events chan element.Handle
	calls  chan func()
}

// New creates a daemon around an already-constructed engine.
func New(cfg *config.Config, eng *engine.Engine, statePath string, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	return &Daemon{
		cfg:       cfg,
		logger:    logger,
		engine:    eng,
		statePath: statePath,
		events:    make(chan element.Handle, 32),
		calls:     make(chan func(), 8),
	}
}

// Events returns the channel window-creation handles are delivered on.
func (d *Daemon) Events() chan<- element.Handle {
	return d.events
}

// Run drives the event loop until ctx is done.
func (d *Daemon) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.cfg.Engine.PollInterval.Duration())
	defer ticker.Stop()

	d.logger.Info("event loop started",
		"process", d.cfg.Engine.Process,
		"anchor", string(d.engine.Anchor()),
		"poll_interval", d.cfg.Engine.PollInterval.Duration())

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("event loop stopped")
			return nil
		case h := <-d.events:
			d.engine.OnWindowCreated(h, time.Now())
		case <-ticker.C:
			d.engine.OnPollTick(time.Now())
		case fn := <-d.calls:
			fn()
		}
	}
}

// do executes fn on the event loop and waits for it to finish.
func (d *Daemon) do(fn func()) {
	done := make(chan struct{})
	d.calls <- func() {
		fn()
		close(done)
	}
	<-done
}

// ControlHandlers returns the control-surface callbacks, each marshaled
// onto the event loop.
func (d *Daemon) ControlHandlers() control.Handlers {
	return control.Handlers{
		GetAnchor: func() string {
			var a geometry.Anchor
			d.do(func() { a = d.engine.Anchor() })
			return string(a)
		},
		SetAnchor: func(s string) error {
			a, err := geometry.ParseAnchor(s)
			if err != nil {
				return err
			}
			d.do(func() { d.applyAnchor(a) })
			return nil
		},
		Reprocess: func() {
			d.do(func() { d.engine.ReprocessAll(time.Now()) })
		},
		Status: func() control.StatusInfo {
			var info control.StatusInfo
			d.do(func() {
				info = control.StatusInfo{
					Anchor:         string(d.engine.Anchor()),
					CachePopulated: d.engine.CachePopulated(),
					OverlayVisible: d.engine.OverlayVisible(),
					ReassertUntil:  d.engine.ReassertUntil(),
				}
			})
			return info
		},
	}
}

// applyAnchor switches the anchor, reprocesses visible windows, and
// persists the selection. Must run on the event loop.
func (d *Daemon) applyAnchor(a geometry.Anchor) {
	if a == d.engine.Anchor() {
		return
	}
	d.engine.SetAnchor(a)
	d.engine.ReprocessAll(time.Now())
	d.logger.Info("anchor changed", "anchor", string(a))

	st := &store.State{Anchor: string(a)}
	if err := store.SaveState(d.statePath, st); err != nil {
		d.logger.Warn("failed to persist anchor", "error", err)
	}
}
