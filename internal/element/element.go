// Package element provides generic traversal over an externally-owned UI
// element tree exposed through a narrow accessor capability. The engine
// depends only on the interfaces here, so the real accessibility adapter
// can be substituted by an in-memory tree in tests.
package element

import (
	"errors"

	"github.com/notishift/notishift/internal/geometry"
)

// Well-known attribute keys.
const (
	// AttrSubrole identifies what kind of surface an element represents.
	AttrSubrole = "subrole"
	// AttrIdentifier is the element's toolkit-assigned identifier.
	AttrIdentifier = "identifier"
)

// ErrProcessNotFound is returned when the named process has no presence in
// the element tree. It is recoverable: the current cycle is skipped and
// retried naturally on the next event or poll tick.
var ErrProcessNotFound = errors.New("process not found in element tree")

// Handle is an opaque reference to a single node in an externally-owned
// element tree. Only the Accessor that produced it can interpret it.
type Handle any

// Accessor is the capability interface over a live element tree. Every
// read or write is a synchronous round-trip to the owning process and may
// fail independently.
type Accessor interface {
	// Children returns the element's direct children. An element with no
	// children is a leaf, not an error.
	Children(h Handle) ([]Handle, error)

	// Attribute returns the value of a named attribute. Elements that do
	// not expose the attribute report ok=false.
	Attribute(h Handle, key string) (value string, ok bool)

	// Size returns the element's current size.
	Size(h Handle) (geometry.Size, error)

	// Position returns the element's current screen-space top-left position.
	Position(h Handle) (geometry.Point, error)

	// SetPosition moves the element to an absolute screen-space position.
	SetPosition(h Handle, p geometry.Point) error
}

// WindowSource enumerates the top-level windows of a named process, in the
// stable order reported by the platform.
type WindowSource interface {
	Windows(process string) ([]Handle, error)
}

// Predicate decides whether an element matches during a tree search.
type Predicate func(acc Accessor, h Handle) bool

// FindFirst searches the subtree rooted at root depth-first in pre-order:
// the root is tested before its children, and the search short-circuits on
// the first match. Elements whose children cannot be read are treated as
// leaves.
func FindFirst(acc Accessor, root Handle, match Predicate) (Handle, bool) {
	if match(acc, root) {
		return root, true
	}
	children, err := acc.Children(root)
	if err != nil {
		return nil, false
	}
	for _, child := range children {
		if h, ok := FindFirst(acc, child, match); ok {
			return h, true
		}
	}
	return nil, false
}
