package engine

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/notishift/notishift/internal/element"
)

// WidgetLocalPrefix marks the notification process's overlay surface
// windows (the widgets panel) in their identifier attribute.
const WidgetLocalPrefix = "widget-local"

// OnPollTick drives the overlay monitor. Ticks outside an open
// re-assertion window are no-ops. Within the window, a transition of the
// overlay surface from open to closed reprocesses every visible
// notification window, correcting positions shifted by the surface's
// closing animation.
func (e *Engine) OnPollTick(now time.Time) {
	if now.After(e.reassertUntil) {
		return
	}

	visible, err := e.hasOverlaySurface()
	if err != nil {
		e.logger.Debug("overlay poll skipped", "error", err)
		return
	}

	if visible != e.overlayVisible && !visible {
		e.logger.Debug("overlay surface closed, reprocessing visible windows")
		e.ReprocessAll(now)
	}
	e.overlayVisible = visible
}

// ReprocessAll re-runs the repositioner across every currently-visible
// window of the notification process, in the platform's reported order.
// Windows without a banner sub-element (including the overlay surface's
// own windows) pass through untouched.
func (e *Engine) ReprocessAll(now time.Time) {
	wins, err := e.windows.Windows(e.process)
	if err != nil {
		e.logger.Debug("window enumeration failed", "error", err)
		return
	}
	for _, w := range wins {
		e.reposition(w, now, e.logger.With("trace", ulid.Make().String()))
	}
}

// hasOverlaySurface reports whether the overlay surface is open. One
// widget-local window is known to persist even while the surface is
// logically closed, so the threshold is a strict count above one rather
// than presence.
func (e *Engine) hasOverlaySurface() (bool, error) {
	wins, err := e.windows.Windows(e.process)
	if err != nil {
		return false, err
	}
	count := 0
	for _, w := range wins {
		id, ok := e.acc.Attribute(w, element.AttrIdentifier)
		if ok && strings.HasPrefix(id, WidgetLocalPrefix) {
			count++
		}
	}
	return count > 1, nil
}
