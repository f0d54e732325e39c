package engine

import (
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/notishift/notishift/internal/element"
	"github.com/notishift/notishift/internal/geometry"
)

// Banner subrole values. The movable card inside a notification window is
// the sub-element carrying one of these, nested several levels deep.
const (
	SubroleBanner = "banner"
	SubroleAlert  = "alert"
)

// DefaultReassertFor is how long placement is re-asserted after a
// successful move.
const DefaultReassertFor = 6500 * time.Millisecond

// Options configures an Engine.
type Options struct {
	// Process is the name of the notification process whose windows are
	// repositioned.
	Process string

	// Anchor is the initial anchor selection.
	Anchor geometry.Anchor

	// ReassertFor is the length of the re-assertion window opened after
	// each successful move. Zero means DefaultReassertFor.
	ReassertFor time.Duration
}

// Engine owns all mutable repositioning state: the anchor selection, the
// one-shot layout cache, the last-seen overlay surface state, and the
// re-assertion deadline. All methods must be called from a single event
// loop; the engine holds no locks.
type Engine struct {
	acc     element.Accessor
	windows element.WindowSource
	screens geometry.ScreenSource
	logger  *slog.Logger

	process     string
	reassertFor time.Duration

	anchor         geometry.Anchor
	cache          geometry.LayoutCache
	overlayVisible bool
	reassertUntil  time.Time
}

// New creates an engine over the given tree accessor, window source and
// screen source.
func New(acc element.Accessor, windows element.WindowSource, screens geometry.ScreenSource, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ReassertFor == 0 {
		opts.ReassertFor = DefaultReassertFor
	}
	if opts.Anchor == "" {
		opts.Anchor = geometry.AnchorTopRight
	}
	return &Engine{
		acc:         acc,
		windows:     windows,
		screens:     screens,
		logger:      logger,
		process:     opts.Process,
		reassertFor: opts.ReassertFor,
		anchor:      opts.Anchor,
	}
}

// Anchor returns the current anchor selection.
func (e *Engine) Anchor() geometry.Anchor {
	return e.anchor
}

// SetAnchor changes the anchor selection. The layout cache is deliberately
// kept: the captured source geometry stays valid, only the computed target
// changes. Callers reprocess visible windows separately.
func (e *Engine) SetAnchor(a geometry.Anchor) {
	e.anchor = a
}

// CachePopulated reports whether the initial banner geometry has been
// captured.
func (e *Engine) CachePopulated() bool {
	return e.cache.Populated()
}

// ReassertUntil returns the expiry of the current re-assertion window.
// The zero time means no window is open.
func (e *Engine) ReassertUntil() time.Time {
	return e.reassertUntil
}

// OverlayVisible returns the last-seen overlay surface state.
func (e *Engine) OverlayVisible() bool {
	return e.overlayVisible
}

// OnWindowCreated processes one newly-created notification window.
func (e *Engine) OnWindowCreated(h element.Handle, now time.Time) {
	e.reposition(h, now, e.logger.With("trace", ulid.Make().String()))
}

// reposition runs the per-window state machine. Failures at any geometry
// read step abandon this window only: they are logged and never propagate,
// since the entry points have no caller to report to.
func (e *Engine) reposition(h element.Handle, now time.Time, log *slog.Logger) {
	if e.anchor.IsDefault() {
		log.Debug("anchor is OS default, leaving window untouched")
		return
	}

	// Never fight the desktop's own layout pass while the overlay surface
	// is open.
	visible, err := e.hasOverlaySurface()
	if err != nil {
		log.Debug("overlay check failed, skipping window", "error", err)
		return
	}
	if visible {
		log.Debug("overlay surface open, skipping window")
		return
	}

	banner, ok := element.FindFirst(e.acc, h, isBanner)
	if !ok {
		log.Debug("no banner sub-element in window")
		return
	}

	notifSize, err := e.acc.Size(banner)
	if err != nil {
		log.Debug("banner size read failed", "error", err)
		return
	}
	pos, err := e.acc.Position(banner)
	if err != nil {
		log.Debug("banner position read failed", "error", err)
		return
	}
	winSize, err := e.acc.Size(h)
	if err != nil {
		log.Debug("window size read failed", "error", err)
		return
	}

	screen, err := e.screens.Primary()
	if err != nil {
		log.Debug("primary screen unavailable", "error", err)
		return
	}

	if !e.cache.Populated() {
		// First sighting calibrates the baseline; the anchor correction is
		// applied from the next window on.
		e.cache.Populate(winSize, notifSize, pos, screen.Frame.Width)
		g, _ := e.cache.Geometry()
		log.Debug("captured initial banner geometry",
			"x", g.Position.X, "y", g.Position.Y,
			"width", g.NotifSize.Width, "height", g.NotifSize.Height,
			"padding", g.Padding)
		return
	}

	g, _ := e.cache.Geometry()
	if pos != g.Position {
		// The desktop moved the banner since capture; restore the baseline
		// before applying the anchor correction.
		if err := e.acc.SetPosition(banner, g.Position); err != nil {
			log.Debug("drift correction failed", "error", err)
			return
		}
	}

	target := geometry.Compute(e.anchor, screen.Frame, screen.Visible, g)
	if err := e.acc.SetPosition(banner, target); err != nil {
		log.Debug("position write failed", "error", err)
		return
	}

	e.reassertUntil = now.Add(e.reassertFor)
	log.Debug("banner repositioned",
		"anchor", string(e.anchor), "x", target.X, "y", target.Y)
}

// isBanner matches the movable banner card inside a notification window.
func isBanner(acc element.Accessor, h element.Handle) bool {
	subrole, ok := acc.Attribute(h, element.AttrSubrole)
	if !ok {
		return false
	}
	return subrole == SubroleBanner || subrole == SubroleAlert
}
