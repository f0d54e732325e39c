package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutCache_Empty(t *testing.T) {
	var c LayoutCache
	assert.False(t, c.Populated())
	_, ok := c.Geometry()
	assert.False(t, ok)
}

// The notification process sometimes reports the first banner of its
// lifetime off-screen; the cache must correct it to right-aligned with the
// fixed padding.
func TestLayoutCache_OverflowingFirstObservation(t *testing.T) {
	var c LayoutCache
	c.Populate(Size{Width: 360, Height: 100}, Size{Width: 300, Height: 80},
		Point{X: 1900, Y: 20}, 1920)

	g, ok := c.Geometry()
	require.True(t, ok)
	assert.Equal(t, OverflowPadding, g.Padding)
	assert.Equal(t, 1920-300-16, g.Position.X)
	assert.Equal(t, 20, g.Position.Y)
}

func TestLayoutCache_WellFormedFirstObservation(t *testing.T) {
	var c LayoutCache
	c.Populate(Size{Width: 360, Height: 100}, Size{Width: 300, Height: 80},
		Point{X: 1600, Y: 20}, 1920)

	g, ok := c.Geometry()
	require.True(t, ok)
	assert.Equal(t, 1920-1600-300, g.Padding)
	assert.Equal(t, Point{X: 1600, Y: 20}, g.Position, "position must be kept as observed")
}

func TestLayoutCache_NeverOverwritten(t *testing.T) {
	var c LayoutCache
	c.Populate(Size{Width: 360, Height: 100}, Size{Width: 300, Height: 80},
		Point{X: 1600, Y: 20}, 1920)
	first, _ := c.Geometry()

	c.Populate(Size{Width: 500, Height: 200}, Size{Width: 400, Height: 150},
		Point{X: 100, Y: 100}, 1920)
	second, _ := c.Geometry()

	assert.Equal(t, first, second)
}

func TestLayoutCache_PopulatedAtomically(t *testing.T) {
	var c LayoutCache
	c.Populate(Size{Width: 360, Height: 100}, Size{Width: 300, Height: 80},
		Point{X: 1600, Y: 20}, 1920)

	g, ok := c.Geometry()
	require.True(t, ok)
	assert.NotZero(t, g.WindowSize)
	assert.NotZero(t, g.NotifSize)
	assert.NotZero(t, g.Position)
	assert.NotZero(t, g.Padding)
}
