package element

import (
	"github.com/notishift/notishift/internal/geometry"
)

// StaticElement is a node in an in-memory element tree.
type StaticElement struct {
	Attrs map[string]string
	Size  geometry.Size
	Pos   geometry.Point
	Kids  []*StaticElement
}

// Move records one SetPosition write applied to a StaticTree.
type Move struct {
	Element *StaticElement
	To      geometry.Point
}

// StaticTree is an in-memory Accessor and WindowSource. It records every
// position write, which makes it the substrate for engine tests.
type StaticTree struct {
	roots map[string][]*StaticElement
	moves []Move
}

// NewStaticTree returns an empty tree.
func NewStaticTree() *StaticTree {
	return &StaticTree{roots: make(map[string][]*StaticElement)}
}

// AddWindow appends a top-level window to the named process.
func (t *StaticTree) AddWindow(process string, w *StaticElement) {
	t.roots[process] = append(t.roots[process], w)
}

// RemoveWindow removes a previously added top-level window.
func (t *StaticTree) RemoveWindow(process string, w *StaticElement) {
	wins := t.roots[process]
	for i, cur := range wins {
		if cur == w {
			t.roots[process] = append(wins[:i:i], wins[i+1:]...)
			return
		}
	}
}

// Moves returns every position write applied so far, in order.
func (t *StaticTree) Moves() []Move {
	return t.moves
}

// Windows implements WindowSource.
func (t *StaticTree) Windows(process string) ([]Handle, error) {
	wins, ok := t.roots[process]
	if !ok {
		return nil, ErrProcessNotFound
	}
	handles := make([]Handle, len(wins))
	for i, w := range wins {
		handles[i] = w
	}
	return handles, nil
}

// Children implements Accessor.
func (t *StaticTree) Children(h Handle) ([]Handle, error) {
	el := h.(*StaticElement)
	children := make([]Handle, len(el.Kids))
	for i, k := range el.Kids {
		children[i] = k
	}
	return children, nil
}

// Attribute implements Accessor.
func (t *StaticTree) Attribute(h Handle, key string) (string, bool) {
	el := h.(*StaticElement)
	v, ok := el.Attrs[key]
	return v, ok
}

// Size implements Accessor.
func (t *StaticTree) Size(h Handle) (geometry.Size, error) {
	return h.(*StaticElement).Size, nil
}

// Position implements Accessor.
func (t *StaticTree) Position(h Handle) (geometry.Point, error) {
	return h.(*StaticElement).Pos, nil
}

// SetPosition implements Accessor, mutating the element and recording the
// write.
func (t *StaticTree) SetPosition(h Handle, p geometry.Point) error {
	el := h.(*StaticElement)
	el.Pos = p
	t.moves = append(t.moves, Move{Element: el, To: p})
	return nil
}
