package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notishift/notishift/internal/element"
	"github.com/notishift/notishift/internal/geometry"
)

// moveAndCalibrate runs a full calibration plus one anchored move so a
// re-assertion window is open. Returns the number of recorded moves.
func moveAndCalibrate(t *testing.T, e *Engine, tree *element.StaticTree) int {
	t.Helper()
	calibrate(t, e, tree)

	w2, _ := bannerWindow(geometry.Point{X: 1604, Y: 20},
		geometry.Size{Width: 300, Height: 80}, geometry.Size{Width: 360, Height: 100})
	tree.AddWindow(testProcess, w2)
	e.OnWindowCreated(w2, t0)
	require.False(t, e.ReassertUntil().IsZero())
	return len(tree.Moves())
}

func TestMonitor_NoActionBeforeFirstMove(t *testing.T) {
	tree := element.NewStaticTree()
	e := newTestEngine(tree, geometry.AnchorMiddleLeft)
	tree.AddWindow(testProcess, widgetWindow("widget-local-a"))
	tree.AddWindow(testProcess, widgetWindow("widget-local-b"))

	e.OnPollTick(t0)

	assert.False(t, e.OverlayVisible(), "ticks outside a re-assertion window are no-ops")
}

func TestMonitor_NoActionWhenExpired(t *testing.T) {
	tree := element.NewStaticTree()
	e := newTestEngine(tree, geometry.AnchorMiddleLeft)
	baseline := moveAndCalibrate(t, e, tree)

	tree.AddWindow(testProcess, widgetWindow("widget-local-a"))
	tree.AddWindow(testProcess, widgetWindow("widget-local-b"))

	e.OnPollTick(t0.Add(time.Minute))

	assert.Len(t, tree.Moves(), baseline)
	assert.False(t, e.OverlayVisible())
}

// A single widget-local window persists even while the surface is closed,
// so the open threshold is a count strictly above one.
func TestMonitor_SingleWidgetWindowIsClosed(t *testing.T) {
	tree := element.NewStaticTree()
	e := newTestEngine(tree, geometry.AnchorMiddleLeft)
	baseline := moveAndCalibrate(t, e, tree)

	tree.AddWindow(testProcess, widgetWindow("widget-local-persistent"))
	e.OnPollTick(t0.Add(200 * time.Millisecond))

	assert.False(t, e.OverlayVisible())
	assert.Len(t, tree.Moves(), baseline)
}

func TestMonitor_TwoWidgetWindowsIsOpen(t *testing.T) {
	tree := element.NewStaticTree()
	e := newTestEngine(tree, geometry.AnchorMiddleLeft)
	baseline := moveAndCalibrate(t, e, tree)

	tree.AddWindow(testProcess, widgetWindow("widget-local-persistent"))
	tree.AddWindow(testProcess, widgetWindow("widget-local-panel"))
	e.OnPollTick(t0.Add(200 * time.Millisecond))

	assert.True(t, e.OverlayVisible())
	assert.Len(t, tree.Moves(), baseline, "opening the surface triggers no reprocess")
}

// Scenario: the overlay surface opens and later closes while the
// re-assertion window is live; the close edge reprocesses every visible
// window exactly once.
func TestMonitor_ReprocessOnCloseEdge(t *testing.T) {
	tree := element.NewStaticTree()
	e := newTestEngine(tree, geometry.AnchorMiddleLeft)
	moveAndCalibrate(t, e, tree)

	persistent := widgetWindow("widget-local-persistent")
	panel := widgetWindow("widget-local-panel")
	tree.AddWindow(testProcess, persistent)
	tree.AddWindow(testProcess, panel)

	e.OnPollTick(t0.Add(200 * time.Millisecond))
	require.True(t, e.OverlayVisible())
	opened := len(tree.Moves())

	// Surface closes: its second window goes away.
	tree.RemoveWindow(testProcess, panel)
	e.OnPollTick(t0.Add(400 * time.Millisecond))

	assert.False(t, e.OverlayVisible())
	// Both notification windows drifted off the anchored position, so the
	// reprocess writes a drift correction plus the anchor target for each.
	closed := len(tree.Moves())
	assert.Equal(t, opened+4, closed)

	// Steady state afterwards: no further writes.
	e.OnPollTick(t0.Add(600 * time.Millisecond))
	assert.Len(t, tree.Moves(), closed)
}

func TestMonitor_NoActionWhenStateUnchanged(t *testing.T) {
	tree := element.NewStaticTree()
	e := newTestEngine(tree, geometry.AnchorMiddleLeft)
	baseline := moveAndCalibrate(t, e, tree)

	e.OnPollTick(t0.Add(200 * time.Millisecond))
	e.OnPollTick(t0.Add(400 * time.Millisecond))

	assert.Len(t, tree.Moves(), baseline)
}

// The process disappearing from the tree is recoverable: the cycle is
// skipped and retried naturally on the next event.
func TestRepositioner_ProcessGoneSkipsCycle(t *testing.T) {
	tree := element.NewStaticTree()
	e := New(tree, tree, testScreens(), Options{
		Process: "vanished",
		Anchor:  geometry.AnchorMiddleLeft,
	}, nil)

	w, _ := bannerWindow(geometry.Point{X: 1604, Y: 20},
		geometry.Size{Width: 300, Height: 80}, geometry.Size{Width: 360, Height: 100})
	tree.AddWindow(testProcess, w) // registered under a different name

	e.OnWindowCreated(w, t0)

	assert.Empty(t, tree.Moves())
	assert.False(t, e.CachePopulated())
}
