package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notishift/notishift/internal/geometry"
)

func named(name string, kids ...*StaticElement) *StaticElement {
	return &StaticElement{Attrs: map[string]string{"name": name}, Kids: kids}
}

func hasName(want string) Predicate {
	return func(acc Accessor, h Handle) bool {
		v, ok := acc.Attribute(h, "name")
		return ok && v == want
	}
}

func TestFindFirst_RootBeforeChildren(t *testing.T) {
	tree := NewStaticTree()
	root := named("target", named("target"))

	h, ok := FindFirst(tree, root, hasName("target"))
	require.True(t, ok)
	assert.Same(t, root, h.(*StaticElement))
}

func TestFindFirst_PreOrderShortCircuit(t *testing.T) {
	tree := NewStaticTree()
	deep := named("target")
	later := named("target")
	root := named("root",
		named("a", named("a1", deep)),
		later,
	)

	h, ok := FindFirst(tree, root, hasName("target"))
	require.True(t, ok)
	assert.Same(t, deep, h.(*StaticElement), "the leftmost depth-first match wins")
}

func TestFindFirst_NotFound(t *testing.T) {
	tree := NewStaticTree()
	root := named("root", named("a"), named("b", named("b1")))

	_, ok := FindFirst(tree, root, hasName("missing"))
	assert.False(t, ok)
}

func TestFindFirst_MissingAttributeIsNonMatch(t *testing.T) {
	tree := NewStaticTree()
	bare := &StaticElement{} // exposes no attributes at all
	target := named("target")
	root := &StaticElement{Kids: []*StaticElement{bare, target}}

	h, ok := FindFirst(tree, root, hasName("target"))
	require.True(t, ok)
	assert.Same(t, target, h.(*StaticElement))
}

func TestFindFirst_ChildlessRootIsLeaf(t *testing.T) {
	tree := NewStaticTree()
	_, ok := FindFirst(tree, named("lonely"), hasName("other"))
	assert.False(t, ok)
}

func TestStaticTree_WindowsUnknownProcess(t *testing.T) {
	tree := NewStaticTree()
	_, err := tree.Windows("ghost")
	assert.ErrorIs(t, err, ErrProcessNotFound)
}

func TestStaticTree_RecordsMoves(t *testing.T) {
	tree := NewStaticTree()
	w := named("win")
	tree.AddWindow("proc", w)

	require.NoError(t, tree.SetPosition(w, geometry.Point{X: 5, Y: 7}))

	moves := tree.Moves()
	require.Len(t, moves, 1)
	assert.Equal(t, geometry.Point{X: 5, Y: 7}, moves[0].To)
	assert.Equal(t, geometry.Point{X: 5, Y: 7}, w.Pos)
}

func TestStaticTree_RemoveWindow(t *testing.T) {
	tree := NewStaticTree()
	a, b := named("a"), named("b")
	tree.AddWindow("proc", a)
	tree.AddWindow("proc", b)
	tree.RemoveWindow("proc", a)

	wins, err := tree.Windows("proc")
	require.NoError(t, err)
	require.Len(t, wins, 1)
	assert.Same(t, b, wins[0].(*StaticElement))
}
