// Package geometry provides screen and window geometry primitives, the
// anchor placement policy, and the one-shot layout cache used by the
// repositioning engine.
package geometry

import "errors"

// ErrNoPrimaryScreen is returned when no primary screen can be determined.
// It is recoverable: the current computation is abandoned and retried on
// the next event or poll tick.
var ErrNoPrimaryScreen = errors.New("no primary screen available")

// Point is a position in screen coordinates.
type Point struct {
	X int
	Y int
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

// Rect is an axis-aligned rectangle in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Intersect returns the overlapping region of r and other.
// The zero Rect is returned when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X+r.Width, other.X+other.Width)
	y2 := min(r.Y+r.Height, other.Y+other.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Screen describes one attached display.
// Frame is the full pixel area; Visible excludes space reserved by
// persistent system bars (dock, taskbar, panels).
type Screen struct {
	Frame   Rect
	Visible Rect
}

// DockInset returns the vertical space reserved by a persistent system bar.
func (s Screen) DockInset() int {
	return s.Frame.Height - s.Visible.Height
}

// ScreenSource enumerates attached screens.
type ScreenSource interface {
	// Primary returns the primary screen, or ErrNoPrimaryScreen.
	Primary() (Screen, error)
}
