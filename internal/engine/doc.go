// Package engine implements the notification repositioning engine: the
// per-window repositioner state machine and the overlay-surface monitor
// that re-asserts placement after the desktop perturbs it.
package engine
