package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	testFrame   = Rect{Width: 1920, Height: 1080}
	testVisible = Rect{Width: 1920, Height: 1050} // 30px dock inset
	testGeo     = Geometry{
		WindowSize: Size{Width: 360, Height: 100},
		NotifSize:  Size{Width: 300, Height: 80},
		Position:   Point{X: 1604, Y: 20},
		Padding:    16,
	}
)

func TestCompute_Horizontal(t *testing.T) {
	left := Compute(AnchorTopLeft, testFrame, testVisible, testGeo)
	assert.Equal(t, 16-1604, left.X)

	center := Compute(AnchorTopCenter, testFrame, testVisible, testGeo)
	assert.Equal(t, (1920-300)/2-1604, center.X)

	right := Compute(AnchorMiddleRight, testFrame, testVisible, testGeo)
	assert.Equal(t, 0, right.X)
}

func TestCompute_Vertical(t *testing.T) {
	top := Compute(AnchorTopLeft, testFrame, testVisible, testGeo)
	assert.Equal(t, 0, top.Y)

	middle := Compute(AnchorMiddleLeft, testFrame, testVisible, testGeo)
	assert.Equal(t, (1080-80)/2-30, middle.Y)

	bottom := Compute(AnchorBottomLeft, testFrame, testVisible, testGeo)
	assert.Equal(t, 1080-80-30-DockGap, bottom.Y)
}

// Scenario: middle-left on a 1920x1080 screen with a 30px dock inset and
// the calibrated geometry from an overflowing first observation.
func TestCompute_MiddleLeftScenario(t *testing.T) {
	p := Compute(AnchorMiddleLeft, testFrame, testVisible, testGeo)
	assert.Equal(t, -1588, p.X)
	assert.Equal(t, 470, p.Y)
}

func TestCompute_Deterministic(t *testing.T) {
	for _, a := range ValidAnchors() {
		if a.IsDefault() {
			continue
		}
		first := Compute(a, testFrame, testVisible, testGeo)
		second := Compute(a, testFrame, testVisible, testGeo)
		assert.Equal(t, first, second, "anchor %s", a)
	}
}

func TestRectIntersect(t *testing.T) {
	frame := Rect{Width: 1920, Height: 1080}
	workArea := Rect{Y: 0, Width: 1920, Height: 1050}

	assert.Equal(t, workArea, frame.Intersect(workArea))
	assert.Equal(t, Rect{}, frame.Intersect(Rect{X: 5000, Y: 0, Width: 10, Height: 10}))
}

func TestScreenDockInset(t *testing.T) {
	s := Screen{Frame: testFrame, Visible: testVisible}
	assert.Equal(t, 30, s.DockInset())
}
