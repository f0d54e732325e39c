// Package screens resolves the primary display's full and visible frames.
// The full frame comes from the RandR primary output; the visible frame
// subtracts panel/dock space using the EWMH _NET_WORKAREA root property.
package screens

import (
	"fmt"
	"log/slog"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"

	"github.com/notishift/notishift/internal/geometry"
)

// X11Source implements geometry.ScreenSource over an X connection.
type X11Source struct {
	conn   *xgb.Conn
	root   xproto.Window
	logger *slog.Logger
}

// NewX11Source connects to the X display.
func NewX11Source(logger *slog.Logger) (*X11Source, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X display: %w", err)
	}
	if err := randr.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("RandR extension unavailable: %w", err)
	}

	root := xproto.Setup(conn).DefaultScreen(conn).Root
	return &X11Source{conn: conn, root: root, logger: logger}, nil
}

// Close shuts down the X connection.
func (s *X11Source) Close() {
	s.conn.Close()
}

// Primary implements geometry.ScreenSource. Every call re-reads the live
// monitor layout, so hotplug changes are picked up without a watcher.
func (s *X11Source) Primary() (geometry.Screen, error) {
	frame, err := s.primaryFrame()
	if err != nil {
		return geometry.Screen{}, err
	}

	visible := frame
	if wa, err := s.workArea(); err == nil {
		if clipped := frame.Intersect(wa); clipped.Width > 0 {
			visible = clipped
		}
	} else {
		s.logger.Debug("workarea unavailable, assuming no reserved space", "error", err)
	}

	return geometry.Screen{Frame: frame, Visible: visible}, nil
}

// primaryFrame returns the CRTC geometry of the RandR primary output,
// falling back to the first active CRTC when no primary is set.
func (s *X11Source) primaryFrame() (geometry.Rect, error) {
	prim, err := randr.GetOutputPrimary(s.conn, s.root).Reply()
	if err == nil && prim.Output != 0 {
		info, err := randr.GetOutputInfo(s.conn, prim.Output, 0).Reply()
		if err == nil && info.Crtc != 0 {
			if r, err := s.crtcRect(info.Crtc); err == nil {
				return r, nil
			}
		}
	}

	res, err := randr.GetScreenResourcesCurrent(s.conn, s.root).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("%w: %v", geometry.ErrNoPrimaryScreen, err)
	}
	for _, crtc := range res.Crtcs {
		r, err := s.crtcRect(crtc)
		if err == nil && r.Width > 0 && r.Height > 0 {
			return r, nil
		}
	}
	return geometry.Rect{}, geometry.ErrNoPrimaryScreen
}

func (s *X11Source) crtcRect(crtc randr.Crtc) (geometry.Rect, error) {
	info, err := randr.GetCrtcInfo(s.conn, crtc, 0).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}
	return geometry.Rect{
		X:      int(info.X),
		Y:      int(info.Y),
		Width:  int(info.Width),
		Height: int(info.Height),
	}, nil
}

// workArea reads the first desktop's _NET_WORKAREA rectangle.
func (s *X11Source) workArea() (geometry.Rect, error) {
	const atomName = "_NET_WORKAREA"
	atom, err := xproto.InternAtom(s.conn, true, uint16(len(atomName)), atomName).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}
	if atom.Atom == xproto.AtomNone {
		return geometry.Rect{}, fmt.Errorf("window manager does not publish %s", atomName)
	}

	prop, err := xproto.GetProperty(s.conn, false, s.root, atom.Atom,
		xproto.AtomCardinal, 0, 4).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}
	if prop == nil || len(prop.Value) < 16 {
		return geometry.Rect{}, fmt.Errorf("short %s property", atomName)
	}

	return geometry.Rect{
		X:      int(xgb.Get32(prop.Value[0:])),
		Y:      int(xgb.Get32(prop.Value[4:])),
		Width:  int(xgb.Get32(prop.Value[8:])),
		Height: int(xgb.Get32(prop.Value[12:])),
	}, nil
}
