package geometry

import "fmt"

// Anchor is the user-selected screen zone for notification placement,
// one of a 3x3 grid of positions. The selection persists across daemon
// restarts.
type Anchor string

const (
	AnchorTopLeft      Anchor = "top-left"
	AnchorTopCenter    Anchor = "top-center"
	AnchorTopRight     Anchor = "top-right"
	AnchorMiddleLeft   Anchor = "middle-left"
	AnchorMiddleCenter Anchor = "middle-center"
	AnchorMiddleRight  Anchor = "middle-right"
	AnchorBottomLeft   Anchor = "bottom-left"
	AnchorBottomCenter Anchor = "bottom-center"
	AnchorBottomRight  Anchor = "bottom-right"
)

// ValidAnchors returns all valid anchor values in grid order.
func ValidAnchors() []Anchor {
	return []Anchor{
		AnchorTopLeft, AnchorTopCenter, AnchorTopRight,
		AnchorMiddleLeft, AnchorMiddleCenter, AnchorMiddleRight,
		AnchorBottomLeft, AnchorBottomCenter, AnchorBottomRight,
	}
}

// ParseAnchor validates s and returns it as an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	for _, a := range ValidAnchors() {
		if Anchor(s) == a {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid anchor %q: must be one of %v", s, ValidAnchors())
}

// IsDefault reports whether a is the OS-default placement (top-right),
// for which the engine must not intervene at all.
func (a Anchor) IsDefault() bool {
	return a == AnchorTopRight
}

// vertical returns the row component: "top", "middle" or "bottom".
func (a Anchor) vertical() string {
	switch a {
	case AnchorTopLeft, AnchorTopCenter, AnchorTopRight:
		return "top"
	case AnchorMiddleLeft, AnchorMiddleCenter, AnchorMiddleRight:
		return "middle"
	default:
		return "bottom"
	}
}

// horizontal returns the column component: "left", "center" or "right".
func (a Anchor) horizontal() string {
	switch a {
	case AnchorTopLeft, AnchorMiddleLeft, AnchorBottomLeft:
		return "left"
	case AnchorTopCenter, AnchorMiddleCenter, AnchorBottomCenter:
		return "center"
	default:
		return "right"
	}
}
