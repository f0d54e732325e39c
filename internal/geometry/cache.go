package geometry

// OverflowPadding is the right-edge padding assumed when the first observed
// banner position overflows the screen. The notification process sometimes
// reports the very first banner of its lifetime at an off-screen coordinate;
// the cache corrects it to a right-aligned position with this padding.
const OverflowPadding = 16

// Geometry captures the banner layout observed on a notification window:
// the window's outer size, the banner sub-element's size, its screen-space
// top-left position, and the gap between the banner's right edge and the
// screen's right edge at first observation.
type Geometry struct {
	WindowSize Size
	NotifSize  Size
	Position   Point
	Padding    int
}

// LayoutCache holds the Geometry captured from the first successfully
// observed notification window. It is populated exactly once and never
// invalidated for the lifetime of the process; later windows reuse the
// frozen sizes and padding, and only their current reported position is
// compared against the cached one to detect drift.
//
// The cache is either fully empty or fully populated; no partial state is
// observable.
type LayoutCache struct {
	geo       Geometry
	populated bool
}

// Populated reports whether the cache holds a captured geometry.
func (c *LayoutCache) Populated() bool {
	return c.populated
}

// Geometry returns the cached geometry. The second return is false while
// the cache is empty.
func (c *LayoutCache) Geometry() (Geometry, bool) {
	return c.geo, c.populated
}

// Populate freezes the first observed geometry into the cache. Calls after
// the first are no-ops.
//
// If the reported position overflows the screen's right edge, the position
// is corrected to right-aligned with OverflowPadding; otherwise the actual
// right-edge gap is recorded as the padding.
func (c *LayoutCache) Populate(windowSize, notifSize Size, position Point, screenWidth int) {
	if c.populated {
		return
	}

	padding := screenWidth - (position.X + notifSize.Width)
	if position.X+notifSize.Width > screenWidth {
		position.X = screenWidth - notifSize.Width - OverflowPadding
		padding = OverflowPadding
	}

	c.geo = Geometry{
		WindowSize: windowSize,
		NotifSize:  notifSize,
		Position:   position,
		Padding:    padding,
	}
	c.populated = true
}
