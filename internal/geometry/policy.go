package geometry

// DockGap is the fixed gap kept between a bottom-anchored banner and the
// top of the dock/taskbar.
const DockGap = 16

// Compute maps an anchor selection and the cached banner geometry to the
// coordinate written back to the live banner element. The result is an
// absolute replacement position, so repeated calls with identical inputs
// are idempotent.
//
// frame is the primary screen's full pixel area and visible the area left
// after persistent system bars; their height difference is the dock inset.
func Compute(anchor Anchor, frame, visible Rect, g Geometry) Point {
	dockInset := frame.Height - visible.Height

	var p Point

	switch anchor.horizontal() {
	case "left":
		p.X = g.Padding - g.Position.X
	case "center":
		p.X = (frame.Width-g.NotifSize.Width)/2 - g.Position.X
	case "right":
		// OS default is already right-aligned; no horizontal correction.
		p.X = 0
	}

	switch anchor.vertical() {
	case "top":
		p.Y = 0
	case "middle":
		p.Y = (frame.Height-g.NotifSize.Height)/2 - dockInset
	case "bottom":
		p.Y = frame.Height - g.NotifSize.Height - dockInset - DockGap
	}

	return p
}
