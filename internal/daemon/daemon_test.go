package daemon

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notishift/notishift/internal/config"
	"github.com/notishift/notishift/internal/element"
	"github.com/notishift/notishift/internal/engine"
	"github.com/notishift/notishift/internal/geometry"
	"github.com/notishift/notishift/internal/store"
)

const testProcess = "noticenter"

type fakeScreens struct{}

func (fakeScreens) Primary() (geometry.Screen, error) {
	return geometry.Screen{
		Frame:   geometry.Rect{Width: 1920, Height: 1080},
		Visible: geometry.Rect{Width: 1920, Height: 1050},
	}, nil
}

func notificationWindow(pos geometry.Point) *element.StaticElement {
	banner := &element.StaticElement{
		Attrs: map[string]string{element.AttrSubrole: engine.SubroleBanner},
		Size:  geometry.Size{Width: 300, Height: 80},
		Pos:   pos,
	}
	return &element.StaticElement{
		Size: geometry.Size{Width: 360, Height: 100},
		Kids: []*element.StaticElement{{Kids: []*element.StaticElement{banner}}},
	}
}

func startTestDaemon(t *testing.T, tree *element.StaticTree, statePath string) *Daemon {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Engine.Process = testProcess

	eng := engine.New(tree, tree, fakeScreens{}, engine.Options{
		Process: testProcess,
		Anchor:  geometry.AnchorMiddleLeft,
	}, nil)
	d := New(cfg, eng, statePath, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = d.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return d
}

func TestDaemon_ProcessesWindowEvents(t *testing.T) {
	tree := element.NewStaticTree()
	statePath := filepath.Join(t.TempDir(), "state.json")
	d := startTestDaemon(t, tree, statePath)

	w := notificationWindow(geometry.Point{X: 1900, Y: 20})
	tree.AddWindow(testProcess, w)
	d.Events() <- w

	handlers := d.ControlHandlers()
	require.Eventually(t, func() bool {
		return handlers.Status().CachePopulated
	}, time.Second, 10*time.Millisecond)
}

func TestDaemon_ControlHandlersRunOnLoop(t *testing.T) {
	tree := element.NewStaticTree()
	statePath := filepath.Join(t.TempDir(), "state.json")
	d := startTestDaemon(t, tree, statePath)
	tree.AddWindow(testProcess, notificationWindow(geometry.Point{X: 1604, Y: 20}))

	handlers := d.ControlHandlers()
	assert.Equal(t, "middle-left", handlers.GetAnchor())

	require.NoError(t, handlers.SetAnchor("bottom-left"))
	assert.Equal(t, "bottom-left", handlers.GetAnchor())

	// The selection is persisted for the next daemon start.
	state, err := store.LoadState(statePath)
	require.NoError(t, err)
	assert.Equal(t, "bottom-left", state.Anchor)
}

func TestDaemon_SetAnchorRejectsInvalid(t *testing.T) {
	tree := element.NewStaticTree()
	d := startTestDaemon(t, tree, filepath.Join(t.TempDir(), "state.json"))

	err := d.ControlHandlers().SetAnchor("somewhere")
	assert.Error(t, err)
}
