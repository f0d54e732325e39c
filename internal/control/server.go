// Package control exposes the daemon's control surface on the session bus
// and provides the matching client used by the notishift CLI.
package control

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// BusName is the well-known bus name claimed by notishiftd.
	BusName = "io.github.notishift.Daemon"
	// ObjectPath is the control object path.
	ObjectPath = "/io/github/notishift/Daemon"
	// Interface is the control interface name.
	Interface = "io.github.notishift.Control"
)

// StatusInfo is a snapshot of the engine's observable state.
type StatusInfo struct {
	Anchor         string
	CachePopulated bool
	OverlayVisible bool
	ReassertUntil  time.Time // zero when no re-assertion window is open
}

// Handlers are the callbacks behind the control methods. The daemon
// marshals them onto its event loop so engine mutation stays
// single-threaded.
type Handlers struct {
	GetAnchor func() string
	SetAnchor func(anchor string) error
	Reprocess func()
	Status    func() StatusInfo
}

// Server exports the control interface on the session bus.
type Server struct {
	conn     *dbus.Conn
	logger   *slog.Logger
	handlers Handlers
	running  bool
}

// NewServer creates a control server with the given handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger, handlers: handlers}
}

// Start connects to the session bus and exports the control object.
func (s *Server) Start() error {
	if s.running {
		return fmt.Errorf("control server already running")
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	obj := &controlObject{s: s}
	if err := conn.Export(obj, ObjectPath, Interface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: ObjectPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: controlMethods(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), ObjectPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken (is notishiftd already running?)", BusName)
	}

	s.running = true
	s.logger.Info("control server started", "interface", Interface, "path", ObjectPath)
	return nil
}

// Stop releases the bus name and closes the connection.
func (s *Server) Stop() error {
	if !s.running {
		return nil
	}
	s.running = false

	if _, err := s.conn.ReleaseName(BusName); err != nil {
		s.logger.Warn("failed to release bus name", "error", err)
	}
	return s.conn.Close()
}

// controlObject is the object exported on the bus. Methods follow the
// godbus export convention of returning *dbus.Error last.
type controlObject struct {
	s *Server
}

func (o *controlObject) GetAnchor() (string, *dbus.Error) {
	return o.s.handlers.GetAnchor(), nil
}

func (o *controlObject) SetAnchor(anchor string) *dbus.Error {
	if err := o.s.handlers.SetAnchor(anchor); err != nil {
		return dbus.MakeFailedError(err)
	}
	return nil
}

func (o *controlObject) Reprocess() *dbus.Error {
	o.s.handlers.Reprocess()
	return nil
}

func (o *controlObject) Status() (string, bool, bool, int64, *dbus.Error) {
	info := o.s.handlers.Status()
	var until int64
	if !info.ReassertUntil.IsZero() {
		until = info.ReassertUntil.Unix()
	}
	return info.Anchor, info.CachePopulated, info.OverlayVisible, until, nil
}

// controlMethods returns the D-Bus method introspection data.
func controlMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "GetAnchor",
			Args: []introspect.Arg{
				{Name: "anchor", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "SetAnchor",
			Args: []introspect.Arg{
				{Name: "anchor", Type: "s", Direction: "in"},
			},
		},
		{
			Name: "Reprocess",
		},
		{
			Name: "Status",
			Args: []introspect.Arg{
				{Name: "anchor", Type: "s", Direction: "out"},
				{Name: "cache_populated", Type: "b", Direction: "out"},
				{Name: "overlay_visible", Type: "b", Direction: "out"},
				{Name: "reassert_until", Type: "x", Direction: "out"},
			},
		},
	}
}
